package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/sqlkit/pkg/render"
)

// chdir switches into dir for the rest of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	oldCwd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(oldCwd) })
	require.NoError(t, os.Chdir(dir))
}

// repoRoot returns a temp dir marked as a repository root.
func repoRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	return root
}

func TestFindConfigFile_ExplicitPath(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(tmpFile, []byte("dialect: mysql"), 0o644))

	path, err := findConfigFile(tmpFile)
	require.NoError(t, err)
	assert.Equal(t, tmpFile, path)
}

func TestFindConfigFile_ExplicitPathNotFound(t *testing.T) {
	_, err := findConfigFile("/nonexistent/path/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestFindConfigFile_AutoDiscovery(t *testing.T) {
	root := repoRoot(t)
	configPath := filepath.Join(root, "sqlkit.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("dialect: mysql"), 0o644))

	nested := filepath.Join(root, "deep", "nested")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	chdir(t, nested)

	path, err := findConfigFile("")
	require.NoError(t, err)

	// Resolve symlinks for comparison (macOS /var -> /private/var)
	expectedPath, _ := filepath.EvalSymlinks(configPath)
	actualPath, _ := filepath.EvalSymlinks(path)
	assert.Equal(t, expectedPath, actualPath)
}

func TestFindConfigFile_PrefersYamlOverYml(t *testing.T) {
	root := repoRoot(t)
	yamlPath := filepath.Join(root, "sqlkit.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("dialect: mysql"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sqlkit.yml"), []byte("dialect: postgres"), 0o644))
	chdir(t, root)

	path, err := findConfigFile("")
	require.NoError(t, err)

	expectedPath, _ := filepath.EvalSymlinks(yamlPath)
	actualPath, _ := filepath.EvalSymlinks(path)
	assert.Equal(t, expectedPath, actualPath)
}

func TestFindConfigFile_StopsAtGitRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "sqlkit.yaml"), []byte("dialect: mysql"), 0o644))

	project := filepath.Join(root, "project")
	require.NoError(t, os.MkdirAll(filepath.Join(project, ".git"), 0o755))
	chdir(t, project)

	path, err := findConfigFile("")
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestLoadConfig_Defaults(t *testing.T) {
	chdir(t, repoRoot(t))

	cfg, configPath, err := LoadConfig("")
	require.NoError(t, err)
	assert.Empty(t, configPath)

	assert.Equal(t, "ansi", cfg.Dialect)
	assert.Empty(t, cfg.Render.Dialect)
	assert.False(t, cfg.Render.Pretty)
	assert.Equal(t, "text", cfg.Inspect.Format)
	assert.False(t, cfg.Check.PrintSQL)
}

func TestLoadConfig_FromFile(t *testing.T) {
	root := repoRoot(t)
	configPath := filepath.Join(root, "sqlkit.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(`
dialect: postgres
render:
  pretty: true
inspect:
  format: yaml
`), 0o644))
	chdir(t, root)

	cfg, foundPath, err := LoadConfig("")
	require.NoError(t, err)

	expectedPath, _ := filepath.EvalSymlinks(configPath)
	actualPath, _ := filepath.EvalSymlinks(foundPath)
	assert.Equal(t, expectedPath, actualPath)

	assert.Equal(t, "postgres", cfg.Dialect)
	assert.True(t, cfg.Render.Pretty)
	assert.Equal(t, "yaml", cfg.Inspect.Format)
	assert.False(t, cfg.Check.PrintSQL)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	root := repoRoot(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "sqlkit.yaml"), []byte("dialect: postgres"), 0o644))
	chdir(t, root)

	t.Setenv("SQLKIT_DIALECT", "mysql")
	t.Setenv("SQLKIT_RENDER_PRETTY", "true")

	cfg, _, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "mysql", cfg.Dialect)
	assert.True(t, cfg.Render.Pretty)
}

func TestLoadConfig_RejectsUnknownValues(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"dialect", "dialect: oracle", "dialect"},
		{"render dialect", "render:\n  dialect: db2", "render.dialect"},
		{"inspect format", "inspect:\n  format: xml", "inspect.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "sqlkit.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))

			_, _, err := LoadConfig(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestResolvedDialect(t *testing.T) {
	cfg := &Config{Dialect: "postgres"}

	d, err := cfg.ResolvedDialect("")
	require.NoError(t, err)
	assert.Equal(t, render.Postgres{}, d)

	cfg.Render.Dialect = "mysql"
	d, err = cfg.ResolvedDialect("")
	require.NoError(t, err)
	assert.Equal(t, render.MySQL{}, d)

	d, err = cfg.ResolvedDialect("ansi")
	require.NoError(t, err)
	assert.Equal(t, render.ANSI{}, d)

	_, err = cfg.ResolvedDialect("nope")
	require.Error(t, err)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, ExitCode(nil))
	assert.Equal(t, ExitGeneral, ExitCode(errors.New("boom")))
	assert.Equal(t, ExitConfig, ExitCode(ConfigError("loading", errors.New("x"))))
	assert.Equal(t, ExitDocument, ExitCode(DocumentError("doc", nil)))
	assert.Equal(t, ExitSyntax, ExitCode(SyntaxError("syntax", nil)))

	wrapped := errors.Join(errors.New("other"), SyntaxError("syntax", nil))
	assert.Equal(t, ExitSyntax, ExitCode(wrapped))

	assert.Equal(t, "doc: inner", DocumentError("doc", errors.New("inner")).Error())
	assert.Equal(t, "doc", DocumentError("doc", nil).Error())
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	NewLogger(&buf, 0, false).Info("hidden")
	assert.Empty(t, buf.String())

	NewLogger(&buf, 1, false).Info("shown")
	assert.Contains(t, buf.String(), "msg=shown")

	buf.Reset()
	NewLogger(&buf, 2, true).Warn("quiet wins")
	assert.Empty(t, buf.String())

	NewLogger(&buf, 2, false).Debug("debug")
	assert.Contains(t, buf.String(), "level=DEBUG")
}
