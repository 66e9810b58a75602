package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/chazu/hypershape/pkg/shape"
)

// EnvPrefix is the prefix of environment variables read by Init.
const EnvPrefix = "HYPERSHAPE"

// LogConfig selects the log level and handler.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// EvalConfig controls cut script evaluation.
type EvalConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// MeshConfig controls tessellation.
type MeshConfig struct {
	Cells   int     `mapstructure:"cells"`
	Workers int     `mapstructure:"workers"`
	Explode float64 `mapstructure:"explode"`
}

// Config holds all runtime configuration.
// Values are populated from .hypershape.toml, HYPERSHAPE_* env vars, and CLI flags.
type Config struct {
	Log  LogConfig  `mapstructure:"log"`
	Eval EvalConfig `mapstructure:"eval"`
	Mesh MeshConfig `mapstructure:"mesh"`
}

// Init points viper at the config file and environment. An explicit
// cfgFile must exist; otherwise .hypershape.toml is looked up in the
// working directory and the home directory and may be absent.
func Init(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".hypershape")
		viper.SetConfigType("toml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && cfgFile == "" {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")
	viper.SetDefault("eval.timeout", 5*time.Second)
	viper.SetDefault("mesh.cells", 100)
	viper.SetDefault("mesh.workers", 4)
	viper.SetDefault("mesh.explode", 0.0)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values no command can run with.
func (c Config) Validate() error {
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	if c.Eval.Timeout <= 0 {
		return fmt.Errorf("eval.timeout must be positive, got %s", c.Eval.Timeout)
	}
	if c.Mesh.Cells <= 0 {
		return fmt.Errorf("mesh.cells must be positive, got %d", c.Mesh.Cells)
	}
	if c.Mesh.Workers <= 0 {
		return fmt.Errorf("mesh.workers must be positive, got %d", c.Mesh.Workers)
	}
	if c.Mesh.Explode < 0 {
		return fmt.Errorf("mesh.explode must be >= 0, got %g", c.Mesh.Explode)
	}
	return nil
}

// SlogLevel parses the configured level name.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// Logger builds the arena logger described by the log section.
func (l LogConfig) Logger(w io.Writer) (*shape.Logger, error) {
	level, err := l.SlogLevel()
	if err != nil {
		return nil, err
	}
	if l.Format == "json" {
		return shape.NewJSONLogger(w, level), nil
	}
	return shape.NewTextLogger(w, level), nil
}
