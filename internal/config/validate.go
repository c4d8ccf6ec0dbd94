package config

import (
	"errors"
	"fmt"
	"strings"
)

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

var validDBLogLevels = map[string]bool{"silent": true, "error": true, "warn": true, "info": true}

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("server.addr is required")
	}
	if c.Server.ShutdownTimeout < 0 {
		return errors.New("server.shutdown_timeout must be >= 0")
	}

	if !validLogLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}

	if c.Database.DSN == "" {
		return errors.New("database.dsn is required")
	}
	if !validDBLogLevels[strings.ToLower(c.Database.LogLevel)] {
		return fmt.Errorf("database.log_level %q is not one of silent, error, warn, info", c.Database.LogLevel)
	}

	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret is required")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("auth.token_ttl must be > 0")
	}
	if c.Auth.OTPTTL <= 0 {
		return errors.New("auth.otp_ttl must be > 0")
	}

	if c.Admin.Configured() && (c.Admin.Name == "" || c.Admin.Email == "" || c.Admin.Password == "") {
		return errors.New("admin.name, admin.email and admin.password must be set together")
	}

	if c.Realtime.Workers < 1 {
		return errors.New("realtime.workers must be >= 1")
	}
	if c.Realtime.QueueSize < 1 {
		return errors.New("realtime.queue_size must be >= 1")
	}
	if c.Realtime.WriteTimeout <= 0 {
		return errors.New("realtime.write_timeout must be > 0")
	}
	if c.Realtime.ReadLimit < 1 {
		return errors.New("realtime.read_limit must be >= 1")
	}

	if len(c.Payments.DefaultCurrency) != 3 {
		return fmt.Errorf("payments.default_currency must be a 3-letter ISO code, got %q", c.Payments.DefaultCurrency)
	}

	return nil
}
