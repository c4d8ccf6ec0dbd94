package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultAddr            = ":8000"
	DefaultMode            = "release"
	DefaultShutdownTimeout = 10 * time.Second
	DefaultLogLevel        = "info"
	DefaultDSN             = "ecommerce.db?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	DefaultDBLogLevel      = "warn"
	DefaultJWTSecret       = "development-insecure-secret-change-me"
	DefaultIssuer          = "ecommerce-api"
	DefaultAudience        = "ecommerce-clients"
	DefaultTokenTTL        = time.Hour
	DefaultOTPTTL          = 10 * time.Minute
	DefaultWorkers         = 4
	DefaultQueueSize       = 256
	DefaultWriteTimeout    = 5 * time.Second
	DefaultPingInterval    = 30 * time.Second
	DefaultReadLimit       = 1024
	DefaultCacheTTL        = 30 * time.Second
	DefaultCurrency        = "usd"
)

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.Mode == "" {
		c.Server.Mode = DefaultMode
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}

	if c.Database.DSN == "" {
		c.Database.DSN = DefaultDSN
	}
	if c.Database.LogLevel == "" {
		c.Database.LogLevel = DefaultDBLogLevel
	}

	if c.Auth.JWTSecret == "" {
		c.Auth.JWTSecret = DefaultJWTSecret
	}
	if c.Auth.Issuer == "" {
		c.Auth.Issuer = DefaultIssuer
	}
	if c.Auth.Audience == "" {
		c.Auth.Audience = DefaultAudience
	}
	if c.Auth.TokenTTL == 0 {
		c.Auth.TokenTTL = DefaultTokenTTL
	}
	if c.Auth.OTPTTL == 0 {
		c.Auth.OTPTTL = DefaultOTPTTL
	}

	if c.Realtime.Workers == 0 {
		c.Realtime.Workers = DefaultWorkers
	}
	if c.Realtime.QueueSize == 0 {
		c.Realtime.QueueSize = DefaultQueueSize
	}
	if c.Realtime.WriteTimeout == 0 {
		c.Realtime.WriteTimeout = DefaultWriteTimeout
	}
	if c.Realtime.PingInterval == 0 {
		c.Realtime.PingInterval = DefaultPingInterval
	}
	if c.Realtime.ReadLimit == 0 {
		c.Realtime.ReadLimit = DefaultReadLimit
	}

	if c.Catalog.CacheTTL == 0 {
		c.Catalog.CacheTTL = DefaultCacheTTL
	}

	if c.Payments.DefaultCurrency == "" {
		c.Payments.DefaultCurrency = DefaultCurrency
	}
}

// Default returns a configuration populated only with defaults.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}
