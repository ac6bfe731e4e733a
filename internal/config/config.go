package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Data    DataConfig    `mapstructure:"data"`
	Index   IndexConfig   `mapstructure:"index"`
	History HistoryConfig `mapstructure:"history"`
	Quiz    QuizConfig    `mapstructure:"quiz"`
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
}

// DataConfig names the flat slang file loaded on first run and the snapshot
// the dictionary is persisted to afterwards.
type DataConfig struct {
	Source   string `mapstructure:"source"`
	Snapshot string `mapstructure:"snapshot"`
}

// IndexConfig holds the key folding applied by the word index
type IndexConfig struct {
	CaseInsensitive bool `mapstructure:"case_insensitive"`
	Normalise       bool `mapstructure:"normalise"`
	// MaxSymbol bounds the index alphabet; 0 accepts every code point.
	MaxSymbol int32 `mapstructure:"max_symbol"`
}

// HistoryConfig holds search history configuration
type HistoryConfig struct {
	Limit int `mapstructure:"limit"`
}

// QuizConfig holds quiz related configuration
type QuizConfig struct {
	Options int `mapstructure:"options"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LoadConfig loads configuration from file and environment variables.
// Environment variables are prefixed with SLANGDICT, e.g. SLANGDICT_SERVER_ADDR.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("slangdict")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data.source", "slang.txt")
	v.SetDefault("data.snapshot", "dictionary.yaml")

	v.SetDefault("index.case_insensitive", false)
	v.SetDefault("index.normalise", false)
	v.SetDefault("index.max_symbol", 0)

	v.SetDefault("history.limit", 0)

	v.SetDefault("quiz.options", 4)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", "5s")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Data.Source == "" && c.Data.Snapshot == "" {
		return fmt.Errorf("data source or snapshot is required")
	}
	if c.Index.MaxSymbol < 0 {
		return fmt.Errorf("invalid index max symbol: %d", c.Index.MaxSymbol)
	}
	if c.History.Limit < 0 {
		return fmt.Errorf("invalid history limit: %d", c.History.Limit)
	}
	if c.Quiz.Options < 2 {
		return fmt.Errorf("quiz needs at least 2 options, got %d", c.Quiz.Options)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	return nil
}
