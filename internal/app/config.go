package app

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/bnema/ocicomp/internal/adapters/out/telemetry"
	"github.com/bnema/ocicomp/internal/usecase/component"
	"github.com/bnema/ocicomp/pkg/bytesize"
)

// Staging modes.
const (
	StagingModeFile   = "file"
	StagingModeMemory = "memory"
)

// Config holds the application configuration.
type Config struct {
	Server struct {
		Port              int           `mapstructure:"port" toml:"port"`
		ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" toml:"read_header_timeout"`
		ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" toml:"shutdown_timeout"`
	} `mapstructure:"server" toml:"server"`

	Registry struct {
		URL                   string        `mapstructure:"url" toml:"url"`
		Username              string        `mapstructure:"username" toml:"username"`
		Password              string        `mapstructure:"password" toml:"password,omitempty"`
		Timeout               time.Duration `mapstructure:"timeout" toml:"timeout"` // per operation
		DialTimeout           time.Duration `mapstructure:"dial_timeout" toml:"dial_timeout"`
		ResponseHeaderTimeout time.Duration `mapstructure:"response_header_timeout" toml:"response_header_timeout"`
		UserAgent             string        `mapstructure:"user_agent" toml:"user_agent"`
	} `mapstructure:"registry" toml:"registry"`

	Component struct {
		LayerMediaType  string `mapstructure:"layer_media_type" toml:"layer_media_type"`
		ConfigMediaType string `mapstructure:"config_media_type" toml:"config_media_type"`
		BinaryExtension string `mapstructure:"binary_extension" toml:"binary_extension"`
		ConfigMode      string `mapstructure:"config_mode" toml:"config_mode"` // "metadata" or "empty"
		StrictSemver    bool   `mapstructure:"strict_semver" toml:"strict_semver"`
	} `mapstructure:"component" toml:"component"`

	Staging struct {
		Mode string `mapstructure:"mode" toml:"mode"` // "file" or "memory"
		Dir  string `mapstructure:"dir" toml:"dir"`
	} `mapstructure:"staging" toml:"staging"`

	API struct {
		MaxUploadSize string `mapstructure:"max_upload_size" toml:"max_upload_size"` // e.g. "64MB"
		RateLimit     struct {
			Enabled        bool     `mapstructure:"enabled" toml:"enabled"`
			GlobalRPS      float64  `mapstructure:"global_rps" toml:"global_rps"`
			PerIPRPS       float64  `mapstructure:"per_ip_rps" toml:"per_ip_rps"`
			Burst          int      `mapstructure:"burst" toml:"burst"`
			TrustedProxies []string `mapstructure:"trusted_proxies" toml:"trusted_proxies"`
		} `mapstructure:"rate_limit" toml:"rate_limit"`
	} `mapstructure:"api" toml:"api"`

	Logging struct {
		Level  string `mapstructure:"level" toml:"level"`
		Format string `mapstructure:"format" toml:"format"`
		File   struct {
			Enabled    bool   `mapstructure:"enabled" toml:"enabled"`
			Path       string `mapstructure:"path" toml:"path"`
			MaxSize    int    `mapstructure:"max_size" toml:"max_size"`
			MaxBackups int    `mapstructure:"max_backups" toml:"max_backups"`
			MaxAge     int    `mapstructure:"max_age" toml:"max_age"`
		} `mapstructure:"file" toml:"file"`
	} `mapstructure:"logging" toml:"logging"`

	Telemetry telemetry.Config `mapstructure:"telemetry" toml:"telemetry"`
}

// initConfig loads configuration from file, .env and environment.
func initConfig(configPath string) (*viper.Viper, Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, Config{}, err
	}

	v := viper.New()
	if err := loadConfig(v, configPath); err != nil {
		return nil, Config{}, fmt.Errorf("failed to load config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return v, cfg, nil
}

// loadDotEnv loads ./.env when present. Variables already set win.
func loadDotEnv() error {
	if _, err := os.Stat(".env"); err != nil {
		return nil
	}
	if err := godotenv.Load(".env"); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// setDefaults registers every key with its default value.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_header_timeout", 10*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("registry.url", "http://localhost:5000")
	v.SetDefault("registry.username", "")
	v.SetDefault("registry.password", "")
	v.SetDefault("registry.timeout", 60*time.Second)
	v.SetDefault("registry.dial_timeout", 10*time.Second)
	v.SetDefault("registry.response_header_timeout", 30*time.Second)
	v.SetDefault("registry.user_agent", "")
	v.SetDefault("component.layer_media_type", component.DefaultLayerMediaType)
	v.SetDefault("component.config_media_type", component.DefaultConfigMediaType)
	v.SetDefault("component.binary_extension", ".wasm")
	v.SetDefault("component.config_mode", string(component.ConfigModeMetadata))
	v.SetDefault("component.strict_semver", false)
	v.SetDefault("staging.mode", StagingModeFile)
	v.SetDefault("staging.dir", DefaultStagingDir())
	v.SetDefault("api.max_upload_size", "64MB")
	v.SetDefault("api.rate_limit.enabled", true)
	v.SetDefault("api.rate_limit.global_rps", 200)
	v.SetDefault("api.rate_limit.per_ip_rps", 20)
	v.SetDefault("api.rate_limit.burst", 40)
	v.SetDefault("api.rate_limit.trusted_proxies", []string{})
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file.enabled", false)
	v.SetDefault("logging.file.path", "")
	v.SetDefault("logging.file.max_size", 100)
	v.SetDefault("logging.file.max_backups", 3)
	v.SetDefault("logging.file.max_age", 28)
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.endpoint", "")
	v.SetDefault("telemetry.auth_token", "")
	v.SetDefault("telemetry.traces", true)
	v.SetDefault("telemetry.metrics", true)
	v.SetDefault("telemetry.trace_sample_rate", 1.0)
}

// loadConfig reads the config file (if any) on top of the defaults and
// enables OCICOMP_ environment overrides.
func loadConfig(v *viper.Viper, configPath string) error {
	setDefaults(v)
	ConfigureViper(v, configPath)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("OCICOMP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return nil
}

func (c Config) validate() error {
	if c.Registry.URL == "" {
		return errors.New("registry.url is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	switch component.ConfigMode(c.Component.ConfigMode) {
	case component.ConfigModeMetadata, component.ConfigModeEmpty:
	default:
		return fmt.Errorf("component.config_mode must be %q or %q, got %q",
			component.ConfigModeMetadata, component.ConfigModeEmpty, c.Component.ConfigMode)
	}
	switch c.Staging.Mode {
	case StagingModeFile, StagingModeMemory:
	default:
		return fmt.Errorf("staging.mode must be %q or %q, got %q", StagingModeFile, StagingModeMemory, c.Staging.Mode)
	}
	limit, err := bytesize.Parse(c.API.MaxUploadSize)
	if err != nil {
		return fmt.Errorf("api.max_upload_size: %w", err)
	}
	if limit <= 0 {
		return errors.New("api.max_upload_size must be positive")
	}
	if c.API.RateLimit.Enabled && (c.API.RateLimit.GlobalRPS < 0 || c.API.RateLimit.PerIPRPS < 0) {
		return errors.New("api.rate_limit rates must not be negative")
	}
	return nil
}

// uploadLimit returns api.max_upload_size in bytes. The value is checked by
// validate.
func (c Config) uploadLimit() int64 {
	limit, _ := bytesize.Parse(c.API.MaxUploadSize)
	return limit
}

// componentConfig derives the orchestrator settings.
func (c Config) componentConfig() component.Config {
	return component.Config{
		LayerMediaType:   c.Component.LayerMediaType,
		ConfigMediaType:  c.Component.ConfigMediaType,
		ConfigMode:       component.ConfigMode(c.Component.ConfigMode),
		StrictSemver:     c.Component.StrictSemver,
		OperationTimeout: c.Registry.Timeout,
	}
}

// DefaultConfig returns the configuration used when no file or environment
// overrides are present.
func DefaultConfig() (Config, error) {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal defaults: %w", err)
	}
	return cfg, nil
}

// DefaultSettings returns the defaults as a nested map suitable for writing
// a config file. Durations are rendered as strings ("10s").
func DefaultSettings() map[string]any {
	v := viper.New()
	setDefaults(v)
	return humanize(v.AllSettings())
}

func humanize(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, val := range m {
		switch typed := val.(type) {
		case map[string]any:
			out[k] = humanize(typed)
		case time.Duration:
			out[k] = typed.String()
		default:
			out[k] = val
		}
	}
	return out
}
