// Package config resolves, parses, validates, and defaults c4dlink
// configuration from its file, environment, and fallback sources.
package config

import (
	"net"
	"strconv"
	"time"
)

// Config is the fully materialized runtime configuration used by c4dlink.
type Config struct {
	Host           string
	Port           int
	CommandTimeout time.Duration
	RenderTimeout  time.Duration
}

// Address returns the host:port endpoint of the bridge socket.
func (c Config) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// TimeoutFor selects the round-trip timeout for one operation name.
// Render operations run far longer than everything else.
func (c Config) TimeoutFor(command string) time.Duration {
	if command == "render_frame" {
		return c.RenderTimeout
	}
	return c.CommandTimeout
}

// Warning is a non-fatal parse/validation message.
type Warning struct {
	Message string
}
