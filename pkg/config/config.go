// Package config provides configuration management for the grid-automata
// tool.
package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/grid-automata/pkg/model"
)

// Config holds all configuration for the tool.
type Config struct {
	Engine    EngineConfig    `mapstructure:"engine"`
	Benchmark BenchmarkConfig `mapstructure:"benchmark"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Log       LogConfig       `mapstructure:"log"`
}

// EngineConfig selects the engine variant and default parallelism.
type EngineConfig struct {
	Kind    string `mapstructure:"kind"`    // shared or halo
	Workers int    `mapstructure:"workers"` // default worker count
	Seed    int64  `mapstructure:"seed"`    // pseudorandom init seed
}

// BenchmarkConfig holds benchmark harness configuration.
type BenchmarkConfig struct {
	Runs     int  `mapstructure:"runs"`     // repetitions per configuration
	Baseline bool `mapstructure:"baseline"` // also run sequentially for speedup
}

// DatabaseConfig holds result database configuration.
type DatabaseConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Type     string `mapstructure:"type"` // sqlite, postgres or mysql
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Database string `mapstructure:"database"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	MaxConns int    `mapstructure:"max_conns"`
}

// StorageConfig holds report archive configuration.
type StorageConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Type      string `mapstructure:"type"` // cos or local
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	SecretID  string `mapstructure:"secret_id"`
	SecretKey string `mapstructure:"secret_key"`
	Domain    string `mapstructure:"domain"`
	Scheme    string `mapstructure:"scheme"`
	LocalPath string `mapstructure:"local_path"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"` // empty logs to stdout
}

// Load reads configuration from the specified file path.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/grid-automata")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// No config file anywhere on the search path; defaults apply.
		} else if os.IsNotExist(err) {
			// Explicit path that does not exist; defaults apply.
		} else {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("GRID_AUTOMATA")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadFromReader loads configuration from raw content (useful for testing).
func LoadFromReader(configType string, content []byte) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType(configType)
	if err := v.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if _, err := model.ParseEngineKind(c.Engine.Kind); err != nil {
		return fmt.Errorf("engine.kind: %w", err)
	}
	if c.Engine.Workers <= 0 {
		return fmt.Errorf("engine.workers must be positive, got %d", c.Engine.Workers)
	}
	if c.Benchmark.Runs <= 0 {
		return fmt.Errorf("benchmark.runs must be positive, got %d", c.Benchmark.Runs)
	}
	if c.Database.Enabled {
		switch c.Database.Type {
		case "sqlite", "postgres", "postgresql", "mysql":
		default:
			return fmt.Errorf("unsupported database type: %s", c.Database.Type)
		}
	}
	return nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("engine.kind", "shared")
	v.SetDefault("engine.workers", 4)
	v.SetDefault("engine.seed", 112233)

	v.SetDefault("benchmark.runs", 1)
	v.SetDefault("benchmark.baseline", false)

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.type", "sqlite")
	v.SetDefault("database.database", "./grid-automata.db")
	v.SetDefault("database.max_conns", 10)

	v.SetDefault("storage.enabled", false)
	v.SetDefault("storage.type", "local")
	v.SetDefault("storage.local_path", "./reports")
	v.SetDefault("storage.scheme", "https")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.output_path", "")
}
