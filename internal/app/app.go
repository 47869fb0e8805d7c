package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"time"

	"github.com/c4dlink/c4dlink/internal/bridge"
	"github.com/c4dlink/c4dlink/internal/cli"
	"github.com/c4dlink/c4dlink/internal/config"
	"github.com/c4dlink/c4dlink/internal/doctor"
	"github.com/c4dlink/c4dlink/internal/handlers"
	"github.com/c4dlink/c4dlink/internal/logging"
	"github.com/c4dlink/c4dlink/internal/protocol"
	"github.com/c4dlink/c4dlink/internal/scene"
	"github.com/c4dlink/c4dlink/internal/version"
)

// statusProbeTimeout bounds the status command's reachability check.
const statusProbeTimeout = 3 * time.Second

type Runner struct {
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	r := Runner{Stdout: stdout, Stderr: stderr}
	return r.Execute(ctx, args)
}

func (r Runner) Execute(ctx context.Context, args []string) int {
	parsed, err := cli.Parse(args)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n\n", err)
		fmt.Fprint(r.Stderr, cli.HelpText("c4dlink"))
		return 2
	}

	if parsed.ShowHelp {
		fmt.Fprint(r.Stdout, cli.HelpText("c4dlink"))
		return 0
	}

	if parsed.Command == cli.CommandVersion {
		fmt.Fprintln(r.Stdout, version.String())
		return 0
	}

	logRuntime, err := logging.New()
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: setup logging: %v\n", err)
		return 1
	}
	defer func() { _ = logRuntime.Close() }()

	logger := r.Logger
	if logger == nil {
		logger = logRuntime.Logger
	}

	cfgLoaded, err := config.Load(parsed.ConfigPath)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		logger.Error("load config failed", "error", err.Error())
		return 1
	}
	for _, w := range cfgLoaded.Warnings {
		fmt.Fprintf(r.Stderr, "warning: %s\n", w.Message)
		logger.Warn("config warning", "message", w.Message)
	}

	if parsed.Host != "" {
		cfgLoaded.Config.Host = parsed.Host
	}
	if parsed.Port > 0 {
		cfgLoaded.Config.Port = parsed.Port
	}
	if err := config.Validate(cfgLoaded.Config); err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 2
	}

	logger.Info("command start",
		"command", parsed.Command,
		"endpoint", cfgLoaded.Config.Address(),
		"config", cfgLoaded.Path,
		"log", logRuntime.Path,
	)

	switch parsed.Command {
	case cli.CommandServe:
		return r.commandServe(ctx, cfgLoaded.Config, logger)
	case cli.CommandSend:
		return r.commandSend(ctx, cfgLoaded.Config, parsed.Payload, logger)
	case cli.CommandStatus:
		return r.commandStatus(ctx, cfgLoaded.Config)
	case cli.CommandDoctor:
		report := doctor.Run(ctx, cfgLoaded, logRuntime.Path)
		fmt.Fprintln(r.Stdout, report.String())
		if report.OK() {
			return 0
		}
		return 1
	default:
		fmt.Fprintf(r.Stderr, "error: unsupported command %q\n", parsed.Command)
		return 2
	}
}

// commandServe runs the reference scene host until context cancellation.
func (r Runner) commandServe(ctx context.Context, cfg config.Config, logger *slog.Logger) int {
	registry := bridge.NewRegistry()
	if err := handlers.Register(registry, scene.NewDocument(), nil); err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	listener, err := net.Listen("tcp", cfg.Address())
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		logger.Error("listen failed", "endpoint", cfg.Address(), "error", err.Error())
		return 1
	}

	fmt.Fprintf(r.Stdout, "listening on %s\n", listener.Addr())
	logger.Info("server started", "endpoint", listener.Addr().String())

	if err := bridge.NewServer(registry, logger).Serve(ctx, listener); err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	logger.Info("server stopped")
	return 0
}

// commandSend performs exactly one connector round trip and prints the raw
// response line.
func (r Runner) commandSend(ctx context.Context, cfg config.Config, payload string, logger *slog.Logger) int {
	var cmd protocol.Command
	if err := json.Unmarshal([]byte(payload), &cmd); err != nil {
		fmt.Fprintf(r.Stderr, "error: invalid command JSON: %v\n", err)
		return 2
	}
	name, ok := cmd.Name()
	if !ok {
		fmt.Fprintln(r.Stderr, "error: command field is required")
		return 2
	}

	resp, phase := bridge.CallTraced(ctx, cfg.Address(), cmd, cfg.TimeoutFor(name))

	out, err := json.Marshal(resp)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	fmt.Fprintln(r.Stdout, string(out))

	if msg, failed := resp.Err(); failed {
		logger.Error("command failed", "command", name, "phase", phase, "error", msg)
		return 1
	}
	logger.Info("command complete", "command", name, "phase", phase)
	return 0
}

func (r Runner) commandStatus(ctx context.Context, cfg config.Config) int {
	addr := cfg.Address()
	if !bridge.Probe(ctx, addr, statusProbeTimeout) {
		fmt.Fprintf(r.Stdout, "not connected (%s)\n", addr)
		return 1
	}

	cmd := protocol.Command{protocol.FieldCommand: string(bridge.KindGetSceneInfo)}
	resp := bridge.Call(ctx, addr, cmd, cfg.CommandTimeout)
	if msg, failed := resp.Err(); failed {
		fmt.Fprintf(r.Stderr, "error: %s\n", msg)
		return 1
	}

	fmt.Fprintf(r.Stdout, "connected to %s\n", addr)
	if info, ok := resp["scene_info"].(map[string]any); ok {
		fmt.Fprintf(r.Stdout, "scene: %v\n", info["filename"])
		fmt.Fprintf(r.Stdout, "objects: %v, materials: %v, polygons: %v\n",
			info["object_count"], info["material_count"], info["polygon_count"])
		fmt.Fprintf(r.Stdout, "frame: %v (%v-%v @ %v fps)\n",
			info["current_frame"], info["frame_start"], info["frame_end"], info["fps"])
	}
	return 0
}
