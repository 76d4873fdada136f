package expr

import "testing"

func TestTable(t *testing.T) {
	tests := []struct {
		name      string
		table     Table
		sql       string
		pathName  string
		tableName string
	}{
		{"plain", T("employee"), `"employee"`, "employee", "employee"},
		{"aliased", TableAs("employee", "e"), `"employee" "e"`, "e", "employee"},
		{"schema", Table{Schema: "hr", Name: "employee", Alias: "e"}, `"hr"."employee" "e"`, "e", "hr.employee"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SQL(tt.table); got != tt.sql {
				t.Errorf("SQL() = %q, want %q", got, tt.sql)
			}
			if got := tt.table.PathName(); got != tt.pathName {
				t.Errorf("PathName() = %q, want %q", got, tt.pathName)
			}
			if got := tt.table.TableName(); got != tt.tableName {
				t.Errorf("TableName() = %q, want %q", got, tt.tableName)
			}
		})
	}
}

func TestForeignKey_On(t *testing.T) {
	emp := TableAs("employee", "e")
	dept := TableAs("department", "d")

	tests := []struct {
		name string
		fk   ForeignKey
		want string
	}{
		{
			name: "single column",
			fk:   ForeignKey{Local: emp, Columns: []string{"dept_id"}, RefColumns: []string{"id"}},
			want: `"e"."dept_id" = "d"."id"`,
		},
		{
			name: "composite",
			fk: ForeignKey{
				Local:      emp,
				Columns:    []string{"dept_id", "org_id"},
				RefColumns: []string{"id", "org_id"},
			},
			want: `("e"."dept_id" = "d"."id" AND "e"."org_id" = "d"."org_id")`,
		},
		{
			name: "mismatched lengths use the shorter list",
			fk:   ForeignKey{Local: emp, Columns: []string{"a", "b"}, RefColumns: []string{"x"}},
			want: `"e"."a" = "d"."x"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SQL(tt.fk.On(dept)); got != tt.want {
				t.Errorf("On() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSubQueryFunc(t *testing.T) {
	var sq SubQuery = SubQueryFunc(func(b *SQLBuilder) { b.Write("SELECT 2") })
	if got := SQL(Exists{Query: sq}); got != "EXISTS (SELECT 2)" {
		t.Errorf("SQL() = %q", got)
	}
}
