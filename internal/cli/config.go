package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/pthm/sqlkit/pkg/render"
)

const (
	maxWalkDepth = 25
)

// Config represents the sqlkit configuration from sqlkit.yaml.
type Config struct {
	// Dialect is the default dialect for commands that render SQL.
	Dialect string `mapstructure:"dialect" json:"dialect"`

	// Per-command configuration
	Render  RenderConfig  `mapstructure:"render" json:"render"`
	Inspect InspectConfig `mapstructure:"inspect" json:"inspect"`
	Check   CheckConfig   `mapstructure:"check" json:"check"`
}

// RenderConfig holds render command settings.
type RenderConfig struct {
	Dialect string `mapstructure:"dialect" json:"dialect,omitempty"`
	Pretty  bool   `mapstructure:"pretty" json:"pretty"`
}

// InspectConfig holds inspect command settings.
type InspectConfig struct {
	Format string `mapstructure:"format" json:"format"`
}

// CheckConfig holds check command settings.
type CheckConfig struct {
	// PrintSQL echoes the rendered statement on success.
	PrintSQL bool `mapstructure:"print_sql" json:"print_sql"`
}

// LoadConfig discovers and loads configuration with proper precedence:
// flags > env > config file > defaults.
//
// Returns the loaded config, the path to the config file (empty if none found),
// and any error encountered.
func LoadConfig(explicitConfigPath string) (*Config, string, error) {
	v := viper.New()

	// 1. Set defaults first (lowest precedence)
	setDefaults(v)

	// 2. Set up environment variable binding
	v.SetEnvPrefix("SQLKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 3. Find and load config file
	configPath, err := findConfigFile(explicitConfigPath)
	if err != nil {
		return nil, "", err
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, configPath, fmt.Errorf("reading config file: %w", err)
		}
	}

	// 4. Unmarshal into Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, configPath, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, configPath, err
	}

	return &cfg, configPath, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("dialect", "ansi")

	v.SetDefault("render.dialect", "")
	v.SetDefault("render.pretty", false)

	v.SetDefault("inspect.format", "text")

	v.SetDefault("check.print_sql", false)
}

// findConfigFile finds the config file to use.
// If explicitPath is provided, it validates the file exists.
// Otherwise, it walks up from cwd looking for sqlkit.yaml or sqlkit.yml,
// stopping at a .git directory or after maxWalkDepth levels.
func findConfigFile(explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicitPath)
		}
		return explicitPath, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting cwd: %w", err)
	}

	dir := cwd
	for i := 0; i < maxWalkDepth; i++ {
		for _, name := range []string{"sqlkit.yaml", "sqlkit.yml"} {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}

		// Check for repo boundary (.git file or directory)
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			break
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", nil
}

// Validate checks that configured dialects and formats are known.
func (c *Config) Validate() error {
	if _, err := render.DialectByName(c.Dialect); err != nil {
		return fmt.Errorf("dialect: %w", err)
	}
	if c.Render.Dialect != "" {
		if _, err := render.DialectByName(c.Render.Dialect); err != nil {
			return fmt.Errorf("render.dialect: %w", err)
		}
	}
	switch c.Inspect.Format {
	case "text", "yaml":
	default:
		return fmt.Errorf("inspect.format: unknown format %q (available: text, yaml)", c.Inspect.Format)
	}
	return nil
}

// ResolvedDialect returns the dialect for a command, with the flag value
// taking precedence over render.dialect and then the top-level dialect.
func (c *Config) ResolvedDialect(flagValue string) (render.Dialect, error) {
	for _, name := range []string{flagValue, c.Render.Dialect} {
		if name != "" {
			return render.DialectByName(name)
		}
	}
	return render.DialectByName(c.Dialect)
}
