package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Logger    LoggerConfig    `mapstructure:"logger"`
	Protocols ProtocolsConfig `mapstructure:"protocols"`
	Merger    MergerConfig    `mapstructure:"merger"`
	Validator ValidatorConfig `mapstructure:"validator"`
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

// ProtocolsConfig locates the per-protocol directory tree.
type ProtocolsConfig struct {
	Root string `mapstructure:"root"`
}

// MergerConfig holds settings for catalog generation.
type MergerConfig struct {
	Output        string `mapstructure:"output"`
	HashAlgorithm string `mapstructure:"hash_algorithm"`
}

// ValidatorConfig holds settings for descriptor validation.
type ValidatorConfig struct {
	Aggregate        bool          `mapstructure:"aggregate"`
	CheckLinks       bool          `mapstructure:"check_links"`
	LinkTimeout      time.Duration `mapstructure:"link_timeout"`
	LinkCacheTTL     time.Duration `mapstructure:"link_cache_ttl"`
	LinkCacheCleanup time.Duration `mapstructure:"link_cache_cleanup"`
}

// Load reads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("app.name", "protocol-catalog")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.encoding", "console")
	v.SetDefault("protocols.root", "protocols")
	v.SetDefault("merger.output", "config.json")
	v.SetDefault("merger.hash_algorithm", "md5")
	v.SetDefault("validator.aggregate", false)
	v.SetDefault("validator.check_links", false)
	v.SetDefault("validator.link_timeout", "10s")
	v.SetDefault("validator.link_cache_ttl", "10m")
	v.SetDefault("validator.link_cache_cleanup", "20m")

	// "config" would collide with the catalog output and descriptors, all named config.json
	v.SetConfigName("protocolctl")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("PROTOCOL_CATALOG")
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

// Validate rejects settings no command can run with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Protocols.Root) == "" {
		return errors.New("protocols.root must not be empty")
	}
	if strings.TrimSpace(c.Merger.Output) == "" {
		return errors.New("merger.output must not be empty")
	}
	switch c.Merger.GetHashAlgorithm() {
	case HashMD5, HashSHA256:
	default:
		return fmt.Errorf("merger.hash_algorithm %q is not supported", c.Merger.HashAlgorithm)
	}
	if c.Validator.CheckLinks && c.Validator.LinkTimeout <= 0 {
		return errors.New("validator.link_timeout must be positive when check_links is enabled")
	}
	return nil
}

// Supported icon hash algorithms.
const (
	HashMD5    = "md5"
	HashSHA256 = "sha256"
)

func (c MergerConfig) GetHashAlgorithm() string {
	return strings.ToLower(strings.TrimSpace(c.HashAlgorithm))
}

func (c ValidatorConfig) GetLinkTimeout() time.Duration {
	return c.LinkTimeout
}

func (c ValidatorConfig) GetLinkCacheTTL() time.Duration {
	return c.LinkCacheTTL
}

func (c ValidatorConfig) GetLinkCacheCleanup() time.Duration {
	return c.LinkCacheCleanup
}
