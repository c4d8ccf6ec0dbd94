// Package config loads service configuration from an optional YAML file
// and environment variables.
package config

import "time"

// Config is the top-level service configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Admin    AdminConfig    `yaml:"admin"`
	Realtime RealtimeConfig `yaml:"realtime"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Payments PaymentsConfig `yaml:"payments"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	Mode            string        `yaml:"mode"` // gin mode: debug, release, test
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// DatabaseConfig selects the storage backend. A DSN starting with
// postgres:// or postgresql:// opens Postgres; anything else is treated
// as a SQLite file path or URI.
type DatabaseConfig struct {
	DSN      string `yaml:"dsn"`
	LogLevel string `yaml:"log_level"` // silent, error, warn, info
}

type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret"`
	Issuer    string        `yaml:"issuer"`
	Audience  string        `yaml:"audience"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
	OTPTTL    time.Duration `yaml:"otp_ttl"`
	// ExposeOTP returns the generated OTP in the forget-password response.
	// Only meant for local development where no mailer is wired.
	ExposeOTP bool `yaml:"expose_otp"`
}

// AdminConfig describes the bootstrap admin account. Either all fields are
// set or none are.
type AdminConfig struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

// Configured reports whether any admin field is set.
func (a AdminConfig) Configured() bool {
	return a.Name != "" || a.Email != "" || a.Password != ""
}

// RealtimeConfig tunes the websocket notification channel.
type RealtimeConfig struct {
	// RequireToken makes /ws/:user_id demand a JWT whose subject matches the path.
	RequireToken bool          `yaml:"require_token"`
	Workers      int           `yaml:"workers"`
	QueueSize    int           `yaml:"queue_size"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	PingInterval time.Duration `yaml:"ping_interval"` // zero means default; negative disables keep-alive pings
	ReadLimit    int64         `yaml:"read_limit"`
}

type CatalogConfig struct {
	CacheTTL time.Duration `yaml:"cache_ttl"` // negative caches listings until the next catalog write
}

type PaymentsConfig struct {
	DefaultCurrency string `yaml:"default_currency"`
}
