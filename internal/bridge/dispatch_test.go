package bridge

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/c4dlink/c4dlink/internal/protocol"
)

func TestRegisterRejectsUnknownKind(t *testing.T) {
	registry := NewRegistry()

	err := registry.Register("teleport", HandlerFunc(func(context.Context, protocol.Command) (protocol.Response, error) {
		return protocol.Response{}, nil
	}))
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown command kind")
}

func TestRegisterRejectsNilHandler(t *testing.T) {
	registry := NewRegistry()

	err := registry.Register(KindListObjects, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "nil handler")
}

func TestRegisterRejectsDuplicate(t *testing.T) {
	registry := NewRegistry()
	handler := HandlerFunc(func(context.Context, protocol.Command) (protocol.Response, error) {
		return protocol.Response{}, nil
	})

	require.NoError(t, registry.Register(KindListObjects, handler))

	err := registry.Register(KindListObjects, handler)
	require.Error(t, err)
	require.Contains(t, err.Error(), "duplicate registration")
}

func TestDispatchUnknownCommand(t *testing.T) {
	registry := NewRegistry()

	resp := registry.Dispatch(context.Background(), protocol.Command{"command": "warp"})

	msg, failed := resp.Err()
	require.True(t, failed)
	require.Equal(t, "Unknown command: warp", msg)
}

func TestDispatchForwardsHandlerResponseUnchanged(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(KindListObjects, HandlerFunc(func(context.Context, protocol.Command) (protocol.Response, error) {
		return protocol.Response{"objects": []any{}}, nil
	})))

	resp := registry.Dispatch(context.Background(), protocol.Command{"command": "list_objects"})
	require.Equal(t, protocol.Response{"objects": []any{}}, resp)
}

func TestDispatchHandlerErrorBecomesErrorResponse(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(KindLoadScene, HandlerFunc(func(context.Context, protocol.Command) (protocol.Response, error) {
		return nil, errors.New("File not found: missing.c4d")
	})))

	resp := registry.Dispatch(context.Background(), protocol.Command{"command": "load_scene"})

	msg, failed := resp.Err()
	require.True(t, failed)
	require.Equal(t, "File not found: missing.c4d", msg)
}

func TestDispatchRecoversHandlerPanic(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(KindRenderFrame, HandlerFunc(func(context.Context, protocol.Command) (protocol.Response, error) {
		panic("renderer exploded")
	})))

	resp := registry.Dispatch(context.Background(), protocol.Command{"command": "render_frame"})

	msg, failed := resp.Err()
	require.True(t, failed)
	require.Contains(t, msg, "renderer exploded")
}
