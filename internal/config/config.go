// Package config defines the application configuration and its loading rules.
package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"     validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database"   validate:"required"`
	Auth       AuthConfig       `mapstructure:"auth"       validate:"required"`
	Pagination PaginationConfig `mapstructure:"pagination" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
// PoolSize bounds the number of open connections and acts as the
// admission-control limit: requests beyond it queue on the pool until
// PoolWaitTimeoutMS elapses, then fail as unavailable.
type DatabaseConfig struct {
	URL               string `mapstructure:"url"                  validate:"required"`
	PoolSize          int    `mapstructure:"pool_size"            validate:"required,gt=0"`
	PoolWaitTimeoutMS int    `mapstructure:"pool_wait_timeout_ms" validate:"required,gt=0"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
	BcryptCost           int    `mapstructure:"bcrypt_cost"            validate:"omitempty,gte=4,lte=31"`
}

// PaginationConfig contains the page-size limits for list endpoints.
// MaxPageSize caps requested limits (oversized limits are clamped, not
// rejected); DefaultPageSize applies when a request omits the limit.
type PaginationConfig struct {
	DefaultPageSize int `mapstructure:"default_page_size" validate:"required,gt=0"`
	MaxPageSize     int `mapstructure:"max_page_size"     validate:"required,gtefield=DefaultPageSize"`
}
