package config

import (
	"errors"
	"fmt"
)

// Validate checks that required configuration values are present.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if cfg.DBUser == "" {
		return errors.New("DB_USER is required")
	}
	if cfg.DBName == "" {
		return errors.New("DB_NAME is required")
	}
	switch cfg.DBSSLMode {
	case "disable", "require", "verify-ca", "verify-full":
	default:
		return fmt.Errorf("unsupported DB_SSL_MODE %q", cfg.DBSSLMode)
	}
	return nil
}
