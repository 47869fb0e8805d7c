// Package doctor runs readiness diagnostics for config, the bridge endpoint,
// and the log sink.
package doctor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/c4dlink/c4dlink/internal/bridge"
	"github.com/c4dlink/c4dlink/internal/config"
	"github.com/c4dlink/c4dlink/internal/protocol"
)

// probeTimeout bounds each diagnostic network operation.
const probeTimeout = 3 * time.Second

// Check is one doctor assertion result.
type Check struct {
	Name    string
	Pass    bool
	Message string
}

// Report is the full doctor output contract.
type Report struct {
	Checks []Check
}

// OK returns true when all checks pass.
func (r Report) OK() bool {
	for _, check := range r.Checks {
		if !check.Pass {
			return false
		}
	}
	return true
}

// String renders the report as user-facing text output.
func (r Report) String() string {
	var b strings.Builder
	for _, check := range r.Checks {
		status := "OK"
		if !check.Pass {
			status = "FAIL"
		}
		b.WriteString(fmt.Sprintf("[%s] %s: %s\n", status, check.Name, check.Message))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// Run executes config/endpoint/round-trip checks for a loaded config.
func Run(ctx context.Context, cfg config.Loaded, logPath string) Report {
	checks := []Check{configCheck(cfg)}

	if logPath != "" {
		checks = append(checks, logSinkCheck(logPath))
	}

	addr := cfg.Config.Address()
	reachable := endpointCheck(ctx, addr)
	checks = append(checks, reachable)
	if reachable.Pass {
		checks = append(checks, roundTripCheck(ctx, addr))
	}

	return Report{Checks: checks}
}

func configCheck(cfg config.Loaded) Check {
	message := fmt.Sprintf("loaded %q", cfg.Path)
	if !cfg.Exists {
		message = fmt.Sprintf("no file at %q, using defaults", cfg.Path)
	}
	return Check{Name: "config", Pass: true, Message: message}
}

// logSinkCheck verifies the log file directory is writable.
func logSinkCheck(logPath string) Check {
	dir := filepath.Dir(logPath)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return Check{Name: "log.sink", Pass: false, Message: err.Error()}
	}
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return Check{Name: "log.sink", Pass: false, Message: err.Error()}
	}
	_ = f.Close()
	return Check{Name: "log.sink", Pass: true, Message: fmt.Sprintf("writable at %q", logPath)}
}

func endpointCheck(ctx context.Context, addr string) Check {
	if !bridge.Probe(ctx, addr, probeTimeout) {
		return Check{Name: "endpoint", Pass: false, Message: fmt.Sprintf("no host listening at %s", addr)}
	}
	return Check{Name: "endpoint", Pass: true, Message: fmt.Sprintf("host accepting connections at %s", addr)}
}

// roundTripCheck runs a full get_scene_info command through the connector.
func roundTripCheck(ctx context.Context, addr string) Check {
	cmd := protocol.Command{protocol.FieldCommand: string(bridge.KindGetSceneInfo)}
	resp, phase := bridge.CallTraced(ctx, addr, cmd, probeTimeout)
	if msg, failed := resp.Err(); failed {
		return Check{
			Name:    "round_trip",
			Pass:    false,
			Message: fmt.Sprintf("%s (phase %s)", msg, phase),
		}
	}
	return Check{Name: "round_trip", Pass: true, Message: "get_scene_info answered"}
}
