package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Loaded captures resolved config path, parsed values, and non-fatal warnings.
type Loaded struct {
	Path     string
	Config   Config
	Warnings []Warning
	Exists   bool
}

// fileConfig is the TOML shape of the config file. Pointer fields distinguish
// "absent" from zero values.
type fileConfig struct {
	Host             *string `toml:"host"`
	Port             *int    `toml:"port"`
	CommandTimeoutMS *int    `toml:"command_timeout_ms"`
	RenderTimeoutMS  *int    `toml:"render_timeout_ms"`
}

// Load resolves, reads, parses, and validates the runtime configuration.
// Environment overrides (C4D_HOST, C4D_PORT) are applied after the file and
// before validation; they are read once per load.
func Load(explicitPath string) (Loaded, error) {
	resolvedPath, err := ResolvePath(explicitPath)
	if err != nil {
		return Loaded{}, err
	}

	cfg := Default()
	warnings := []Warning{}
	exists := true

	content, err := os.ReadFile(resolvedPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Loaded{}, fmt.Errorf("read config %q: %w", resolvedPath, err)
		}
		exists = false
		warnings = append(warnings, Warning{
			Message: fmt.Sprintf("config file %q not found; using defaults", resolvedPath),
		})
	} else {
		var file fileConfig
		if err := toml.Unmarshal(content, &file); err != nil {
			return Loaded{}, fmt.Errorf("parse config %q: %w", resolvedPath, err)
		}
		cfg = applyFile(cfg, file)
	}

	cfg, envWarnings := applyEnv(cfg)
	warnings = append(warnings, envWarnings...)

	if err := Validate(cfg); err != nil {
		return Loaded{}, fmt.Errorf("config %q: %w", resolvedPath, err)
	}

	return Loaded{
		Path:     resolvedPath,
		Config:   cfg,
		Warnings: warnings,
		Exists:   exists,
	}, nil
}

func applyFile(cfg Config, file fileConfig) Config {
	if file.Host != nil {
		cfg.Host = *file.Host
	}
	if file.Port != nil {
		cfg.Port = *file.Port
	}
	if file.CommandTimeoutMS != nil {
		cfg.CommandTimeout = time.Duration(*file.CommandTimeoutMS) * time.Millisecond
	}
	if file.RenderTimeoutMS != nil {
		cfg.RenderTimeout = time.Duration(*file.RenderTimeoutMS) * time.Millisecond
	}
	return cfg
}
