package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Default values applied when neither the environment nor a config file
// provides a setting.
const (
	defaultPort                 = 8080
	defaultLogLevel             = "info"
	defaultTokenLifetimeMinutes = 24 * 60 // 24 hours

	// Argon2id defaults: ~19 MiB memory, 2 iterations, 1 lane.
	defaultArgon2Memory      = 19456
	defaultArgon2Iterations  = 2
	defaultArgon2Parallelism = 1
)

// Load reads configuration from environment variables and an optional
// config.yaml in the working directory. Environment variables use the
// LINGUA_ prefix with underscores for nesting (e.g. LINGUA_AUTH_JWT_SECRET
// maps to auth.jwt_secret) and take precedence over file values.
// Returns a validated Config or an error describing what is missing.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", defaultPort)
	v.SetDefault("server.log_level", defaultLogLevel)
	v.SetDefault("auth.token_lifetime_minutes", defaultTokenLifetimeMinutes)
	v.SetDefault("auth.argon2_memory", defaultArgon2Memory)
	v.SetDefault("auth.argon2_iterations", defaultArgon2Iterations)
	v.SetDefault("auth.argon2_parallelism", defaultArgon2Parallelism)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("LINGUA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The config file is optional; only a parse failure is an error.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// AutomaticEnv does not surface env-only keys through Unmarshal unless
	// the key is known to viper, so bind the ones we rely on explicitly.
	for _, key := range []string{
		"server.port", "server.log_level",
		"database.url",
		"auth.jwt_secret", "auth.token_lifetime_minutes",
		"auth.argon2_memory", "auth.argon2_iterations", "auth.argon2_parallelism",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
