package config

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	HTTP    HTTPConfig    `mapstructure:"http"`
	Backend BackendConfig `mapstructure:"backend"`
	Widget  WidgetConfig  `mapstructure:"widget"`
	Tracing TracingConfig `mapstructure:"tracing"`
	Logger  LoggerConfig  `mapstructure:"logger"`
}

type HTTPConfig struct {
	Port    int           `mapstructure:"port"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// BackendConfig points at the ad-serving backend. A zero Timeout means the
// outbound calls are not bounded.
type BackendConfig struct {
	BaseURL       string        `mapstructure:"base_url"`
	SessionCookie string        `mapstructure:"session_cookie"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

type WidgetConfig struct {
	MaxCards     int           `mapstructure:"max_cards"`
	DismissDelay time.Duration `mapstructure:"dismiss_delay"`
	ImagePrefix  string        `mapstructure:"image_prefix"`
}

// TracingConfig leaves tracing off when Endpoint is empty.
type TracingConfig struct {
	Endpoint    string `mapstructure:"endpoint"`
	ServiceName string `mapstructure:"service_name"`
	Environment string `mapstructure:"environment"`
	Version     string `mapstructure:"version"`
}

type LoggerConfig struct {
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.port", 8081)
	v.SetDefault("http.timeout", "15s")

	v.SetDefault("backend.base_url", "http://localhost:5000")
	v.SetDefault("backend.session_cookie", "")
	v.SetDefault("backend.timeout", "0s")

	v.SetDefault("widget.max_cards", 5)
	v.SetDefault("widget.dismiss_delay", "450ms")
	v.SetDefault("widget.image_prefix", "/static/images/")

	v.SetDefault("tracing.endpoint", "")
	v.SetDefault("tracing.service_name", "ad-widget")
	v.SetDefault("tracing.environment", "development")
	v.SetDefault("tracing.version", "0.1.0")

	v.SetDefault("logger.level", "info")
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AddConfigPath(".") // if its current directory

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) validate() error {
	if c.Backend.BaseURL == "" {
		return errors.New("backend.base_url is required")
	}
	if c.Widget.MaxCards <= 0 {
		return errors.New("widget.max_cards must be positive")
	}
	if c.Widget.DismissDelay < 0 {
		return errors.New("widget.dismiss_delay must not be negative")
	}
	return nil
}

func MustLoadConfig() *Config {
	config, err := LoadConfig()
	if err != nil {
		log.Fatalf("Could not load configuration: %v", err)
	}
	return config
}
