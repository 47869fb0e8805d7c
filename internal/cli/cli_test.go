package cli

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDefaultsToHelp(t *testing.T) {
	parsed, err := Parse(nil)
	require.NoError(t, err)
	require.Equal(t, CommandHelp, parsed.Command)
	require.True(t, parsed.ShowHelp)
}

func TestParseCommands(t *testing.T) {
	for _, cmd := range []Command{CommandServe, CommandStatus, CommandDoctor, CommandVersion} {
		parsed, err := Parse([]string{string(cmd)})
		require.NoError(t, err)
		require.Equal(t, cmd, parsed.Command)
		require.False(t, parsed.ShowHelp)
	}
}

func TestParseSendRequiresPayload(t *testing.T) {
	_, err := Parse([]string{"send"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "requires a JSON command")

	parsed, err := Parse([]string{"send", `{"command":"list_objects"}`})
	require.NoError(t, err)
	require.Equal(t, CommandSend, parsed.Command)
	require.Equal(t, `{"command":"list_objects"}`, parsed.Payload)
}

func TestParseFlags(t *testing.T) {
	parsed, err := Parse([]string{"--config", "/tmp/c.toml", "--host", "10.0.0.4", "--port", "7777", "status"})
	require.NoError(t, err)
	require.Equal(t, CommandStatus, parsed.Command)
	require.Equal(t, "/tmp/c.toml", parsed.ConfigPath)
	require.Equal(t, "10.0.0.4", parsed.Host)
	require.Equal(t, 7777, parsed.Port)
}

func TestParseFlagErrors(t *testing.T) {
	_, err := Parse([]string{"--config"})
	require.Error(t, err)

	_, err = Parse([]string{"--host"})
	require.Error(t, err)

	_, err = Parse([]string{"--port", "abc"})
	require.Error(t, err)

	_, err = Parse([]string{"--frobnicate"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown flag")
}

func TestParseUnknownCommand(t *testing.T) {
	_, err := Parse([]string{"teleport"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown command")
}

func TestParseRejectsTrailingArguments(t *testing.T) {
	_, err := Parse([]string{"status", "extra"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unexpected argument")

	_, err = Parse([]string{"send", `{}`, "extra"})
	require.Error(t, err)
}

func TestHelpTextMentionsCommands(t *testing.T) {
	text := HelpText("c4dlink")
	require.Contains(t, text, "serve")
	require.Contains(t, text, "send <json>")
	require.Contains(t, text, "--port")
}
