package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate rejects configurations the bridge cannot run with.
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.Host) == "" {
		return errors.New("host must not be empty")
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("port %d out of range 1-65535", cfg.Port)
	}
	if cfg.CommandTimeout <= 0 {
		return errors.New("command timeout must be positive")
	}
	if cfg.RenderTimeout <= 0 {
		return errors.New("render timeout must be positive")
	}
	return nil
}
