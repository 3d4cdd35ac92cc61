package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

const EnvPrefix = "MULTICOL"

// Config holds the settings shared by the CLI and the viewer.
type Config struct {
	Viewport ViewportConfig `mapstructure:"viewport" yaml:"viewport"`
	Page     PageConfig     `mapstructure:"page" yaml:"page"`
	Fonts    FontConfig     `mapstructure:"fonts" yaml:"fonts"`
	Scripts  ScriptConfig   `mapstructure:"scripts" yaml:"scripts"`
	Network  NetworkConfig  `mapstructure:"network" yaml:"network"`
	Logger   LoggerConfig   `mapstructure:"logger" yaml:"logger"`
}

type ViewportConfig struct {
	Width  float64 `mapstructure:"width" yaml:"width"`
	Height float64 `mapstructure:"height" yaml:"height"`
}

// PageConfig controls paginated output. A zero height disables pagination.
type PageConfig struct {
	Height   float64 `mapstructure:"height" yaml:"height"`
	MaxPages int     `mapstructure:"max_pages" yaml:"max_pages"`
}

type FontConfig struct {
	Regular string  `mapstructure:"regular" yaml:"regular"`
	Bold    string  `mapstructure:"bold" yaml:"bold"`
	Size    float64 `mapstructure:"size" yaml:"size"`
}

type ScriptConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}

type NetworkConfig struct {
	Timeout   time.Duration `mapstructure:"timeout" yaml:"timeout"`
	UserAgent string        `mapstructure:"user_agent" yaml:"user_agent"`
}

type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("viewport.width", 800)
	v.SetDefault("viewport.height", 600)

	v.SetDefault("page.height", 0)
	v.SetDefault("page.max_pages", 500)

	v.SetDefault("fonts.regular", "")
	v.SetDefault("fonts.bold", "")
	v.SetDefault("fonts.size", 16)

	v.SetDefault("scripts.enabled", true)

	v.SetDefault("network.timeout", "30s")
	v.SetDefault("network.user_agent", "multicol/1.0")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.service_name", "multicol")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 7)
	v.SetDefault("logger.compress", false)
}

// NewViper returns a viper instance with defaults, the MULTICOL_ env
// prefix and the config file search path set up. An explicit file wins
// over the search path.
func NewViper(file string) *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("multicol")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/multicol")
	}
	return v
}

// Load reads the config file, if any, and returns the validated config.
// A missing file on the search path is not an error.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}
	return NewConfigFromViper(v)
}

func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks ranges and enumerations.
func (c *Config) Validate() error {
	if c.Viewport.Width <= 0 {
		return fmt.Errorf("%w: viewport.width must be positive", ErrInvalid)
	}
	if c.Viewport.Height < 0 || c.Page.Height < 0 {
		return fmt.Errorf("%w: heights must not be negative", ErrInvalid)
	}
	if c.Page.MaxPages <= 0 {
		return fmt.Errorf("%w: page.max_pages must be a positive integer", ErrInvalid)
	}
	if c.Fonts.Size <= 0 {
		return fmt.Errorf("%w: fonts.size must be positive", ErrInvalid)
	}
	switch c.Logger.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: logger.format %q is not console or json", ErrInvalid, c.Logger.Format)
	}
	return nil
}

// Paginated reports whether output should be split into pages.
func (c *Config) Paginated() bool { return c.Page.Height > 0 }
