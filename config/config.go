package config

import (
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds the full application configuration.
type Config struct {
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
	Display  DisplayConfig  `yaml:"display" mapstructure:"display"`
	Simulate SimulateConfig `yaml:"simulate" mapstructure:"simulate"`
	Build    BuildConfig    `yaml:"build" mapstructure:"build"`
}

type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"` // console or json
}

// DisplayConfig sets tree dump defaults.
type DisplayConfig struct {
	MaxDepth     int  `yaml:"max_depth" mapstructure:"max_depth"`
	SelectedOnly bool `yaml:"selected_only" mapstructure:"selected_only"`
}

// SimulateConfig sets policy rollout defaults.
type SimulateConfig struct {
	Episodes int    `yaml:"episodes" mapstructure:"episodes"`
	Seed     uint64 `yaml:"seed" mapstructure:"seed"`
}

// BuildConfig bounds tree expansion. Zero means unlimited.
type BuildConfig struct {
	MaxNodes int `yaml:"max_nodes" mapstructure:"max_nodes"`
}

// Load reads decide.yaml from the working directory if present, then
// DECIDE_* environment variables.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("decide")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("DECIDE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("display.max_depth", 0)
	v.SetDefault("display.selected_only", false)
	v.SetDefault("simulate.episodes", 10000)
	v.SetDefault("simulate.seed", 1)
	v.SetDefault("build.max_nodes", 0)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger configures the global zerolog logger.
func InitLogger(cfg LogConfig) error {
	return initLogger(cfg, os.Stderr)
}

func initLogger(cfg LogConfig, w io.Writer) error {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zerolog.SetGlobalLevel(level)

	switch cfg.Format {
	case "json":
		log.Logger = zerolog.New(w).With().Timestamp().Logger()
	case "console", "":
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: w})
	default:
		return eris.Errorf("config: unknown log format %q", cfg.Format)
	}
	return nil
}
