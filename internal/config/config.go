package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type RedisConfig struct {
	URL      string        `yaml:"url"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

// PlannerConfig configures the itinerary generation service client.
// The server still recommends a polling interval per job; these values
// bound the loop when the server misbehaves.
type PlannerConfig struct {
	BaseURL         string        `yaml:"base_url"`
	APIKey          string        `yaml:"api_key"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	MaxPollFailures int           `yaml:"max_poll_failures"`
	JobDeadline     time.Duration `yaml:"job_deadline"`
	Workers         int           `yaml:"workers"`
}

type AuthConfig struct {
	// JWTSecret verifies tokens minted by the identity provider.
	JWTSecret string `yaml:"jwt_secret"`
}

type LimitsConfig struct {
	SubmitsPerHour int `yaml:"submits_per_hour"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Planner  PlannerConfig  `yaml:"planner"`
	Auth     AuthConfig     `yaml:"auth"`
	Limits   LimitsConfig   `yaml:"limits"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Redis.TTL <= 0 {
		cfg.Redis.TTL = time.Hour
	}
	if cfg.Planner.RequestTimeout <= 0 {
		cfg.Planner.RequestTimeout = 30 * time.Second
	}
	if cfg.Planner.MaxPollFailures <= 0 {
		cfg.Planner.MaxPollFailures = 5
	}
	if cfg.Planner.JobDeadline <= 0 {
		cfg.Planner.JobDeadline = 5 * time.Minute
	}
	if cfg.Planner.Workers <= 0 {
		cfg.Planner.Workers = 8
	}
	if cfg.Limits.SubmitsPerHour <= 0 {
		cfg.Limits.SubmitsPerHour = 10
	}

	// Minimal validation
	if cfg.Database.URL == "" {
		return nil, errors.New("database.url is required")
	}
	if cfg.Redis.URL == "" {
		return nil, errors.New("redis.url is required")
	}
	if cfg.Planner.BaseURL == "" {
		return nil, errors.New("planner.base_url is required")
	}
	if cfg.Auth.JWTSecret == "" && !dev {
		return nil, errors.New("auth.jwt_secret is required outside dev mode")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}
