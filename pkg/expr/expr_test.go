package expr

import "testing"

func TestExpr_SQL(t *testing.T) {
	tests := []struct {
		name string
		expr Expr
		want string
	}{
		{"column", Col{Table: "e", Column: "id"}, `"e"."id"`},
		{"bare column", Col{Column: "id"}, `"id"`},
		{"literal escapes quotes", Lit("it's"), `'it''s'`},
		{"raw", Raw("now()"), "now()"},
		{"param", Param("$1"), "$1"},
		{"int", Int(-7), "-7"},
		{"bool", Bool(false), "FALSE"},
		{"null", Null{}, "NULL"},
		{"star", Star{}, "*"},
		{"func", Func{Name: "coalesce", Args: []Expr{Col{Column: "a"}, Int(0)}}, `coalesce("a", 0)`},
		{"alias", As(Func{Name: "count", Args: []Expr{Star{}}}, "n"), `count(*) AS "n"`},
		{"paren", Paren{Expr: Raw("1 + 1")}, "(1 + 1)"},
		{"asc", Asc(Col{Column: "id"}), `"id" ASC`},
		{"desc", Desc(Col{Column: "id"}), `"id" DESC`},
		{"name", Name(`we"ird`), `"we""ird"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SQL(tt.expr); got != tt.want {
				t.Errorf("SQL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOperators_SQL(t *testing.T) {
	a := Col{Table: "t", Column: "a"}
	b := Col{Table: "t", Column: "b"}

	tests := []struct {
		name string
		expr Expr
		want string
	}{
		{"eq", Eq{Left: a, Right: b}, `"t"."a" = "t"."b"`},
		{"ne", a.Ne(Int(1)), `"t"."a" <> 1`},
		{"lt", Lt{Left: a, Right: Int(1)}, `"t"."a" < 1`},
		{"gt", Gt{Left: a, Right: Int(1)}, `"t"."a" > 1`},
		{"lte", Lte{Left: a, Right: Int(1)}, `"t"."a" <= 1`},
		{"gte", Gte{Left: a, Right: Int(1)}, `"t"."a" >= 1`},
		{"in", In{Expr: a, Values: []string{"x", "y"}}, `"t"."a" IN ('x', 'y')`},
		{"in empty", In{Expr: a}, "FALSE"},
		{"is null", IsNull{Expr: a}, `"t"."a" IS NULL`},
		{"exists", Exists{Query: RawQuery("SELECT 1")}, "EXISTS (SELECT 1)"},
		{"and single", And(Raw("x")), "x"},
		{"and skips nil", And(Raw("x"), nil, Raw("y")), "(x AND y)"},
		{"and empty", And(), "TRUE"},
		{"or", Or(Raw("x"), Raw("y")), "(x OR y)"},
		{"or empty", Or(nil), "FALSE"},
		{"not", Not(Raw("x")), "NOT (x)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SQL(tt.expr); got != tt.want {
				t.Errorf("SQL() = %q, want %q", got, tt.want)
			}
		})
	}
}

type upperQuoter struct{}

func (upperQuoter) QuoteIdent(name string) string    { return "`" + name + "`" }
func (upperQuoter) QuoteLiteral(value string) string { return "<" + value + ">" }

func TestSQLBuilder_UsesQuoter(t *testing.T) {
	b := NewSQLBuilder(upperQuoter{})
	Eq{Left: Col{Table: "t", Column: "a"}, Right: Lit("v")}.Build(b)

	if got, want := b.String(), "`t`.`a` = <v>"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if b.Len() != len(b.String()) {
		t.Errorf("Len() = %d, want %d", b.Len(), len(b.String()))
	}
	if SQL(nil) != "" {
		t.Error("SQL(nil) should be empty")
	}
}
