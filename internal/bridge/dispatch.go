// Package bridge implements the TCP transport and command dispatch shared by
// the host-side server and the orchestrator-side client.
package bridge

import (
	"context"
	"fmt"

	"github.com/c4dlink/c4dlink/internal/protocol"
)

// Kind enumerates the operations the host exposes over the wire.
type Kind string

const (
	KindGetSceneInfo   Kind = "get_scene_info"
	KindAddPrimitive   Kind = "add_primitive"
	KindModifyObject   Kind = "modify_object"
	KindListObjects    Kind = "list_objects"
	KindCreateMaterial Kind = "create_material"
	KindApplyMaterial  Kind = "apply_material"
	KindRenderFrame    Kind = "render_frame"
	KindSetKeyframe    Kind = "set_keyframe"
	KindSaveScene      Kind = "save_scene"
	KindLoadScene      Kind = "load_scene"
	KindExecutePython  Kind = "execute_python"
)

var knownKinds = map[Kind]struct{}{
	KindGetSceneInfo:   {},
	KindAddPrimitive:   {},
	KindModifyObject:   {},
	KindListObjects:    {},
	KindCreateMaterial: {},
	KindApplyMaterial:  {},
	KindRenderFrame:    {},
	KindSetKeyframe:    {},
	KindSaveScene:      {},
	KindLoadScene:      {},
	KindExecutePython:  {},
}

// Handler implements one named bridge operation. A returned error becomes a
// structured error response; it never affects the connection.
type Handler interface {
	Handle(ctx context.Context, cmd protocol.Command) (protocol.Response, error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, cmd protocol.Command) (protocol.Response, error)

func (f HandlerFunc) Handle(ctx context.Context, cmd protocol.Command) (protocol.Response, error) {
	return f(ctx, cmd)
}

// Registry routes operation names to registered handlers. Registration
// mistakes (unknown kind, nil handler, duplicate) fail immediately instead of
// at first dispatch.
type Registry struct {
	handlers map[Kind]Handler
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[Kind]Handler)}
}

// Register binds a handler to an operation kind.
func (r *Registry) Register(kind Kind, handler Handler) error {
	if _, ok := knownKinds[kind]; !ok {
		return fmt.Errorf("register %q: unknown command kind", kind)
	}
	if handler == nil {
		return fmt.Errorf("register %q: nil handler", kind)
	}
	if _, exists := r.handlers[kind]; exists {
		return fmt.Errorf("register %q: duplicate registration", kind)
	}
	r.handlers[kind] = handler
	return nil
}

// Kinds returns the registered operation kinds.
func (r *Registry) Kinds() []Kind {
	kinds := make([]Kind, 0, len(r.handlers))
	for kind := range r.handlers {
		kinds = append(kinds, kind)
	}
	return kinds
}

// Dispatch routes one command to its handler and always produces exactly one
// response. Unknown names, handler errors, and handler panics all become
// error responses; none of them is fatal to the session.
func (r *Registry) Dispatch(ctx context.Context, cmd protocol.Command) (resp protocol.Response) {
	name, _ := cmd.Name()
	handler, ok := r.handlers[Kind(name)]
	if !ok {
		return protocol.ErrorResponse("Unknown command: %s", name)
	}

	defer func() {
		if rec := recover(); rec != nil {
			resp = protocol.ErrorResponse("Error processing command: %v", rec)
		}
	}()

	result, err := handler.Handle(ctx, cmd)
	if err != nil {
		return protocol.ErrorResponse("%s", err.Error())
	}
	if result == nil {
		return protocol.Response{}
	}
	return result
}
