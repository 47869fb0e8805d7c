package config

import "time"

// Default returns the canonical runtime configuration used when no file or
// environment override is present. The endpoint matches the host plugin's
// loopback listener.
func Default() Config {
	return Config{
		Host:           "127.0.0.1",
		Port:           5555,
		CommandTimeout: 20 * time.Second,
		RenderTimeout:  120 * time.Second,
	}
}
