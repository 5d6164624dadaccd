// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config reads the gateway settings from the environment with
caarlos0/env.

	cfg, err := config.Load()

The result is built once in main and handed to constructors. Nothing reads
the environment after startup.
*/
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/taibuivan/newsgate/internal/platform/constants"
)

// Config is the full gateway configuration.
type Config struct {
	ServerPort  string `env:"SERVER_PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Debug       bool   `env:"DEBUG"`

	// Credential store
	DatabaseURL   string `env:"DATABASE_URL,required,notEmpty"`
	DBMaxConns    int32  `env:"DB_MAX_CONNS" envDefault:"10"`
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Failed sign-in counters
	RedisURL            string        `env:"REDIS_URL,required,notEmpty"`
	SignInMaxAttempts   int           `env:"SIGNIN_MAX_ATTEMPTS" envDefault:"5"`
	SignInAttemptWindow time.Duration `env:"SIGNIN_ATTEMPT_WINDOW" envDefault:"15m"`

	// Bearer tokens
	JWTSecretKey string        `env:"JWT_SECRET_KEY,required,notEmpty"`
	JWTTokenTTL  time.Duration `env:"JWT_TOKEN_TTL" envDefault:"2h"`

	// News and comment services
	NewsServiceURL    string        `env:"NEWS_SERVICE_URL" envDefault:"http://localhost:8081/api/news"`
	CommentServiceURL string        `env:"COMMENT_SERVICE_URL" envDefault:"http://localhost:8082/api/comments"`
	DownstreamTimeout time.Duration `env:"DOWNSTREAM_TIMEOUT" envDefault:"5s"`

	AllowedOriginSuffix string `env:"ALLOWED_ORIGIN_SUFFIX" envDefault:"newsgate.app"`
}

// Load parses and checks the environment.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.check(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// check reports every value that parses but cannot work.
func (c *Config) check() error {
	var problems []error

	if c.JWTTokenTTL <= 0 {
		problems = append(problems, fmt.Errorf("JWT_TOKEN_TTL must be positive, got %s", c.JWTTokenTTL))
	}
	if c.DownstreamTimeout <= 0 || c.DownstreamTimeout >= constants.GlobalRequestTimeout {
		problems = append(problems, fmt.Errorf("DOWNSTREAM_TIMEOUT must be in (0, %s), got %s",
			constants.GlobalRequestTimeout, c.DownstreamTimeout))
	}
	if c.SignInMaxAttempts < 1 {
		problems = append(problems, fmt.Errorf("SIGNIN_MAX_ATTEMPTS must be at least 1, got %d", c.SignInMaxAttempts))
	}
	if c.SignInAttemptWindow <= 0 {
		problems = append(problems, fmt.Errorf("SIGNIN_ATTEMPT_WINDOW must be positive, got %s", c.SignInAttemptWindow))
	}
	if c.DBMaxConns < 1 {
		problems = append(problems, fmt.Errorf("DB_MAX_CONNS must be at least 1, got %d", c.DBMaxConns))
	}

	return errors.Join(problems...)
}

func (c *Config) IsDevelopment() bool { return c.Environment == "development" }

func (c *Config) IsProduction() bool { return c.Environment == "production" }

// OriginSuffix is the domain suffix CORS trusts outside development.
func (c *Config) OriginSuffix() string { return c.AllowedOriginSuffix }
