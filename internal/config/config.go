package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"     validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Auth      AuthConfig      `mapstructure:"auth"       validate:"required"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit" validate:"required"`
	Security  SecurityConfig  `mapstructure:"security"   validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// Env controls how much detail unhandled-fault responses carry:
	// "development" includes the redacted error, "production" a fixed
	// generic message.
	Env string `mapstructure:"env" validate:"required,oneof=development production"`
}

// DatabaseConfig contains all database-related configuration settings.
// The URL is optional: without it the server runs with the in-memory
// principal store, which is enough for local development.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	// SigningSecret signs bearer tokens. Required, no default; 32 byte
	// minimum so HMAC-SHA256 gets a full-entropy key.
	SigningSecret string `mapstructure:"signing_secret" validate:"required,min=32"`
	// SigningAlgorithm is fixed to HS256; the field exists so the
	// deployed value is explicit in configuration dumps.
	SigningAlgorithm   string `mapstructure:"signing_algorithm"    validate:"required,oneof=HS256"`
	TokenLifetimeHours int    `mapstructure:"token_lifetime_hours" validate:"required,gt=0"`
}

// RateLimitConfig contains the admission-control policy.
type RateLimitConfig struct {
	RequestsPerMinute int `mapstructure:"requests_per_minute" validate:"required,gt=0"`
	BurstCapacity     int `mapstructure:"burst_capacity"      validate:"required,gte=1"`
	// EvictionIdleMinutes is how long an untouched client bucket
	// survives before the sweep removes it. Zero disables eviction.
	EvictionIdleMinutes int `mapstructure:"eviction_idle_minutes" validate:"gte=0"`
	// ExemptPaths bypass rate limiting only; every other middleware
	// stage still applies to them.
	ExemptPaths []string `mapstructure:"exempt_paths"`
}

// SecurityConfig contains the response-header policy.
type SecurityConfig struct {
	CORSAllowedOrigin string `mapstructure:"cors_allowed_origin" validate:"required"`
}
