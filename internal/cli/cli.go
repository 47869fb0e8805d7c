package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type Command string

const (
	CommandServe   Command = "serve"
	CommandSend    Command = "send"
	CommandStatus  Command = "status"
	CommandDoctor  Command = "doctor"
	CommandVersion Command = "version"
	CommandHelp    Command = "help"
)

var validCommands = map[Command]struct{}{
	CommandServe:   {},
	CommandSend:    {},
	CommandStatus:  {},
	CommandDoctor:  {},
	CommandVersion: {},
	CommandHelp:    {},
}

type Parsed struct {
	Command    Command
	ConfigPath string
	Host       string
	Port       int
	Payload    string
	ShowHelp   bool
}

func Parse(args []string) (Parsed, error) {
	parsed := Parsed{Command: CommandHelp, ShowHelp: true}
	sawCommand := false

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch arg {
		case "-h", "--help":
			parsed.ShowHelp = true
			parsed.Command = CommandHelp
		case "--version":
			parsed.ShowHelp = false
			parsed.Command = CommandVersion
		case "--config":
			i++
			if i >= len(args) {
				return Parsed{}, errors.New("--config requires a path")
			}
			parsed.ConfigPath = args[i]
		case "--host":
			i++
			if i >= len(args) {
				return Parsed{}, errors.New("--host requires a value")
			}
			parsed.Host = args[i]
		case "--port":
			i++
			if i >= len(args) {
				return Parsed{}, errors.New("--port requires a value")
			}
			port, err := strconv.Atoi(args[i])
			if err != nil {
				return Parsed{}, fmt.Errorf("--port %q is not a number", args[i])
			}
			parsed.Port = port
		default:
			if strings.HasPrefix(arg, "-") {
				return Parsed{}, fmt.Errorf("unknown flag: %s", arg)
			}

			if !sawCommand {
				cmd := Command(arg)
				if _, ok := validCommands[cmd]; !ok {
					return Parsed{}, fmt.Errorf("unknown command: %s", arg)
				}
				parsed.Command = cmd
				parsed.ShowHelp = cmd == CommandHelp
				sawCommand = true
				continue
			}

			if parsed.Command == CommandSend && parsed.Payload == "" {
				parsed.Payload = arg
				continue
			}
			return Parsed{}, fmt.Errorf("unexpected argument %q", arg)
		}
	}

	if parsed.Command == CommandSend && parsed.Payload == "" {
		return Parsed{}, errors.New("send requires a JSON command argument")
	}

	return parsed, nil
}

func HelpText(binaryName string) string {
	return fmt.Sprintf(`Usage:
  %[1]s [--config PATH] [--host HOST] [--port PORT] <command>

Commands:
  serve          Run the reference scene host server
  send <json>    Send one JSON command line and print the response
  status         Probe the host and print a scene summary
  doctor         Run configuration and connectivity checks
  version        Print version information
  help           Show this help

Flags:
  --config PATH   Config file path (default: $XDG_CONFIG_HOME/c4dlink/config.toml)
  --host HOST     Bridge host (overrides config and C4D_HOST)
  --port PORT     Bridge port (overrides config and C4D_PORT)
  -h, --help      Show help
  --version       Show version
`, binaryName)
}
