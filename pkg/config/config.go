// Package config provides configuration loading and validation for itree.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"

	"github.com/Sumatoshi-tech/itree/pkg/intervalio"
)

// Sentinel validation errors.
var (
	ErrInvalidPort       = errors.New("invalid server port")
	ErrInvalidMaxResults = errors.New("server max results must not be negative")
	ErrInvalidLineLimit  = errors.New("invalid input max line size")
	ErrInvalidLogLevel   = errors.New("invalid logging level")
	ErrInvalidSampling   = errors.New("telemetry sample ratio must be within [0, 1]")
	ErrInvalidFormat     = errors.New("invalid format")
)

// Config holds all configuration for itree.
type Config struct {
	Input     InputConfig     `mapstructure:"input"`
	Output    OutputConfig    `mapstructure:"output"`
	Server    ServerConfig    `mapstructure:"server"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// InputConfig controls how interval sets are read.
type InputConfig struct {
	// Format is one of auto, text, json, yaml.
	Format string `mapstructure:"format"`
	// MaxLineBytes is a humanized size such as "1MB".
	MaxLineBytes string `mapstructure:"max_line_bytes"`
}

// OutputConfig controls how query answers are printed.
type OutputConfig struct {
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
	Sort   bool   `mapstructure:"sort"`
}

// ServerConfig holds HTTP query service configuration.
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Port         int           `mapstructure:"port"`
	MaxResults   int           `mapstructure:"max_results"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// TelemetryConfig holds OpenTelemetry export configuration.
type TelemetryConfig struct {
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	SampleRatio  float64 `mapstructure:"sample_ratio"`
	OTLPInsecure bool    `mapstructure:"otlp_insecure"`
}

// LoadConfig loads configuration from file and environment variables.
// An empty configPath searches for itree.yaml in the usual locations and
// falls back to defaults when none exists.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName("itree")
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("./config")
		viperCfg.AddConfigPath("/etc/itree")
	}

	viperCfg.SetEnvPrefix("ITREE")
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var config Config

	unmarshalErr := viperCfg.Unmarshal(&config)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	validateErr := validateConfig(&config)
	if validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("input.format", DefaultInputFormat)
	viperCfg.SetDefault("input.max_line_bytes", DefaultMaxLineBytes)

	viperCfg.SetDefault("output.format", DefaultOutputFormat)
	viperCfg.SetDefault("output.color", DefaultOutputColor)
	viperCfg.SetDefault("output.sort", DefaultOutputSort)

	viperCfg.SetDefault("server.host", DefaultServerHost)
	viperCfg.SetDefault("server.port", DefaultServerPort)
	viperCfg.SetDefault("server.read_timeout", DefaultReadTimeout)
	viperCfg.SetDefault("server.write_timeout", DefaultWriteTimeout)
	viperCfg.SetDefault("server.max_results", DefaultMaxResults)

	viperCfg.SetDefault("logging.level", DefaultLogLevel)
	viperCfg.SetDefault("logging.json", false)

	viperCfg.SetDefault("telemetry.otlp_endpoint", "")
	viperCfg.SetDefault("telemetry.otlp_insecure", false)
	viperCfg.SetDefault("telemetry.sample_ratio", 0.0)
}

// validateConfig validates the configuration.
func validateConfig(config *Config) error {
	if config.Server.Port <= 0 || config.Server.Port > maxPort {
		return fmt.Errorf("%w: %d", ErrInvalidPort, config.Server.Port)
	}

	if config.Server.MaxResults < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxResults, config.Server.MaxResults)
	}

	_, err := config.Input.LineLimit()
	if err != nil {
		return err
	}

	_, err = config.Logging.SlogLevel()
	if err != nil {
		return err
	}

	if config.Telemetry.SampleRatio < 0 || config.Telemetry.SampleRatio > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidSampling, config.Telemetry.SampleRatio)
	}

	for _, name := range []string{config.Input.Format, config.Output.Format} {
		_, err = intervalio.ParseFormat(name)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidFormat, err)
		}
	}

	return nil
}

// LineLimit parses MaxLineBytes into a byte count.
func (c InputConfig) LineLimit() (int, error) {
	size, err := humanize.ParseBytes(c.MaxLineBytes)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrInvalidLineLimit, c.MaxLineBytes, err)
	}

	if size == 0 || size > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLineLimit, c.MaxLineBytes)
	}

	return int(size), nil
}

// SlogLevel converts Level into an slog.Level.
func (c LoggingConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level

	err := level.UnmarshalText([]byte(c.Level))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Level)
	}

	return level, nil
}
