package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	APIBaseURL         string        `mapstructure:"api_base_url"`
	HTTPTimeoutSeconds int64         `mapstructure:"http_timeout_seconds"`
	HTTPTimeout        time.Duration `mapstructure:"-"`

	FakeAPIAddr     string `mapstructure:"fakeapi_addr"`
	FakeAPIDBPath   string `mapstructure:"fakeapi_db_path"`
	FakeAPISeedFile string `mapstructure:"fakeapi_seed_file"`
}

// Load reads configuration from configs/.env and environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("app_name", "postlist")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("api_base_url", "http://localhost:8080")
	v.SetDefault("http_timeout_seconds", 10)
	v.SetDefault("fakeapi_addr", ":8080")
	v.SetDefault("fakeapi_db_path", "./data/fakeapi.db")
	v.SetDefault("fakeapi_seed_file", "./configs/seed.yaml")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// finalize validates fields and derives durations.
func (c *Config) finalize() error {
	c.APIBaseURL = strings.TrimSpace(c.APIBaseURL)
	if err := validateBaseURL(c.APIBaseURL); err != nil {
		return err
	}
	if c.HTTPTimeoutSeconds <= 0 {
		return errors.New("invalid http_timeout_seconds (must be positive seconds)")
	}
	c.HTTPTimeout = time.Duration(c.HTTPTimeoutSeconds) * time.Second
	return nil
}

// WithBaseURL returns a copy of c pointing at a different backend.
func (c *Config) WithBaseURL(base string) (*Config, error) {
	cp := *c
	cp.APIBaseURL = strings.TrimSpace(base)
	if err := cp.finalize(); err != nil {
		return nil, err
	}
	return &cp, nil
}

func validateBaseURL(raw string) error {
	if raw == "" {
		return errors.New("api_base_url is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid api_base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return fmt.Errorf("invalid api_base_url %q (expected absolute http(s) url)", raw)
	}
	return nil
}
