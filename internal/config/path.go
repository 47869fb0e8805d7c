package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ResolvePath selects the config file path: an explicit path wins, then
// $XDG_CONFIG_HOME/c4dlink/config.toml, then ~/.config/c4dlink/config.toml.
func ResolvePath(explicitPath string) (string, error) {
	if strings.TrimSpace(explicitPath) != "" {
		return explicitPath, nil
	}

	if xdg := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); xdg != "" {
		return filepath.Join(xdg, "c4dlink", "config.toml"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "c4dlink", "config.toml"), nil
}
