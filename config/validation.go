package config

import (
	"fmt"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the loaded configuration is usable in the
// current environment. Development and test tolerate missing credentials;
// production does not.
func ValidateConfig(cfg *Config) error {
	if cfg.ServerPort == "" {
		return ValidationError{Field: "SERVER_PORT", Message: "must not be empty"}
	}
	if cfg.DBHost == "" || cfg.DBName == "" {
		return ValidationError{Field: "DB_HOST/DB_NAME", Message: "must not be empty"}
	}

	if !IsProduction() {
		return nil
	}

	if cfg.DBPassword == "" {
		return ValidationError{Field: "DB_PASSWORD", Message: "required in production"}
	}
	if cfg.JWTSecret == "" || cfg.JWTSecret == "dev-secret" {
		return ValidationError{Field: "JWT_SECRET", Message: "must be set to a real secret in production"}
	}
	if cfg.RedisPassword == "" && cfg.RedisURL == "" {
		return ValidationError{Field: "REDIS_PASSWORD", Message: "required in production"}
	}
	return nil
}
