package config

// Config holds all application configuration.
// It is constructed once at startup by Load and treated as immutable for
// the lifetime of the process.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains authentication and credential-hashing settings.
// Rotating JWTSecret invalidates every outstanding token; that is accepted
// behavior, there is no revocation list.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`

	// Argon2id cost parameters. The values used at hash time are embedded
	// in the stored hash, so changing them only affects new hashes.
	Argon2Memory      uint32 `mapstructure:"argon2_memory"      validate:"required,gt=0"`
	Argon2Iterations  uint32 `mapstructure:"argon2_iterations"  validate:"required,gt=0"`
	Argon2Parallelism uint8  `mapstructure:"argon2_parallelism" validate:"required,gt=0"`
}
