package protocol

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommandName(t *testing.T) {
	name, ok := Command{"command": "list_objects"}.Name()
	require.True(t, ok)
	require.Equal(t, "list_objects", name)

	_, ok = Command{"command": 7}.Name()
	require.False(t, ok)

	_, ok = Command{}.Name()
	require.False(t, ok)
}

func TestCommandFieldAccessors(t *testing.T) {
	cmd := Command{
		"type":     "cube",
		"frame":    float64(12),
		"position": []any{1.0, 2.0, 3.0},
		"props":    map[string]any{"name": "Box1"},
	}

	require.Equal(t, "cube", cmd.String("type", "sphere"))
	require.Equal(t, "sphere", cmd.String("missing", "sphere"))
	require.Equal(t, 12, cmd.Int("frame", 0))
	require.Equal(t, 30, cmd.Int("missing", 30))

	vec, ok := cmd.Vector("position")
	require.True(t, ok)
	require.Equal(t, [3]float64{1, 2, 3}, vec)

	_, ok = cmd.Vector("props")
	require.False(t, ok)

	props, ok := cmd.Map("props")
	require.True(t, ok)
	require.Equal(t, "Box1", props["name"])
}

func TestErrorResponse(t *testing.T) {
	resp := ErrorResponse("Unknown command: %s", "warp")

	msg, failed := resp.Err()
	require.True(t, failed)
	require.Equal(t, "Unknown command: warp", msg)

	_, failed = Response{"objects": []any{}}.Err()
	require.False(t, failed)
}
