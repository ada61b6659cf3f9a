// Copyright (c) 2026 Nevisa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, Mail) via constructors.
  - Split by process: [Load] serves the release worker, [LoadAPI] adds the HTTP-only settings.
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds the runtime configuration shared by every Nevisa process.
type Config struct {
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis). Optional for the worker: an empty URL disables the pass lease.
	RedisURL string `env:"REDIS_URL"`

	// SiteBaseURL is the public origin used to build links in outbound emails.
	SiteBaseURL string `env:"SITE_BASE_URL" envDefault:"https://nevisa.ir"`

	Release Release
	Mail    Mail
}

// Release tunes the scheduler pass.
type Release struct {
	// Interval between passes when the worker runs as a daemon.
	Interval time.Duration `env:"RELEASE_INTERVAL" envDefault:"5m"`

	// BatchSize caps how many due episodes are loaded per query.
	BatchSize int `env:"RELEASE_BATCH_SIZE" envDefault:"100"`

	// LeaseTTL bounds how long one worker may hold the pass lease.
	LeaseTTL time.Duration `env:"RELEASE_LEASE_TTL" envDefault:"2m"`
}

// Mail configures the outbound email provider.
type Mail struct {
	// APIURL is the provider endpoint. Empty selects the log-only transport.
	APIURL string `env:"MAIL_API_URL"`
	APIKey string `env:"MAIL_API_KEY"`
	From   string `env:"MAIL_FROM" envDefault:"Nevisa <no-reply@nevisa.ir>"`

	// Timeout bounds a single provider call.
	Timeout time.Duration `env:"MAIL_TIMEOUT" envDefault:"10s"`

	// RatePerSecond is the provider's sustained send limit.
	RatePerSecond float64 `env:"MAIL_RATE_PER_SECOND" envDefault:"10"`

	// Concurrency bounds parallel sends within one release.
	Concurrency int `env:"MAIL_CONCURRENCY" envDefault:"4"`
}

// API extends [Config] with settings only the HTTP server needs.
type API struct {
	Config

	ServerPort string `env:"SERVER_PORT" envDefault:"8080"`

	// JWTPubKeyPath points at the RSA public key that verifies access tokens
	// issued by the identity service.
	JWTPubKeyPath string `env:"JWT_PUBLIC_KEY_PATH,required"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {
	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadAPI parses environment variables into an [API] struct.
func LoadAPI() (*API, error) {
	cfg := &API{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Release.BatchSize <= 0 {
		return fmt.Errorf("config: RELEASE_BATCH_SIZE must be positive, got %d", c.Release.BatchSize)
	}
	if c.Mail.Concurrency <= 0 {
		return fmt.Errorf("config: MAIL_CONCURRENCY must be positive, got %d", c.Mail.Concurrency)
	}
	if c.Mail.RatePerSecond <= 0 {
		return fmt.Errorf("config: MAIL_RATE_PER_SECOND must be positive, got %v", c.Mail.RatePerSecond)
	}
	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
