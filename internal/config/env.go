package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment override names shared with the original bridge tooling.
const (
	EnvHost = "C4D_HOST"
	EnvPort = "C4D_PORT"
)

// applyEnv overlays C4D_HOST and C4D_PORT onto cfg. An unparseable port is
// reported as a warning and the prior value kept.
func applyEnv(cfg Config) (Config, []Warning) {
	warnings := []Warning{}

	if host := strings.TrimSpace(os.Getenv(EnvHost)); host != "" {
		cfg.Host = host
	}

	if raw := strings.TrimSpace(os.Getenv(EnvPort)); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil {
			warnings = append(warnings, Warning{
				Message: fmt.Sprintf("%s=%q is not a valid port; keeping %d", EnvPort, raw, cfg.Port),
			})
		} else {
			cfg.Port = port
		}
	}

	return cfg, warnings
}
