package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/c4dlink/c4dlink/internal/fsm"
	"github.com/c4dlink/c4dlink/internal/protocol"
)

// notConnectedMessage is the wire-compatible connect-failure error string.
const notConnectedMessage = "Not connected to Cinema 4D"

// Call performs one connection-per-call round trip: dial, send one command
// line, read one response line, close. It never returns an error; every
// failure becomes a response carrying an error field.
func Call(ctx context.Context, addr string, cmd protocol.Command, timeout time.Duration) protocol.Response {
	resp, _ := CallTraced(ctx, addr, cmd, timeout)
	return resp
}

// CallTraced is Call plus the terminal phase of the call state machine, for
// diagnostics and boundary logging.
func CallTraced(ctx context.Context, addr string, cmd protocol.Command, timeout time.Duration) (protocol.Response, fsm.State) {
	state := fsm.StateIdle
	advance := func(event fsm.Event) {
		if next, err := fsm.Transition(state, event); err == nil {
			state = next
		}
	}

	advance(fsm.EventDial)
	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		advance(fsm.EventFail)
		return protocol.ErrorResponse("%s", notConnectedMessage), state
	}
	defer func() {
		_ = conn.Close()
		advance(fsm.EventClose)
	}()

	// Cancellation must close the socket so a stuck receive unblocks and the
	// call still resolves to a single error outcome.
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	if timeout > 0 {
		if err := conn.SetDeadline(time.Now().Add(timeout)); err != nil {
			advance(fsm.EventFail)
			return protocol.ErrorResponse("set deadline: %v", err), state
		}
	}
	advance(fsm.EventDialed)

	payload, err := json.Marshal(cmd)
	if err != nil {
		advance(fsm.EventFail)
		return protocol.ErrorResponse("encode command: %v", err), state
	}
	if _, err := conn.Write(append(payload, '\n')); err != nil {
		advance(fsm.EventFail)
		return protocol.ErrorResponse("Communication error: %v", err), state
	}
	advance(fsm.EventSent)

	raw, err := readResponse(conn)
	if err != nil {
		advance(fsm.EventFail)
		if ctx.Err() != nil {
			return protocol.ErrorResponse("Communication error: %v", ctx.Err()), state
		}
		return protocol.ErrorResponse("Communication error: %v", err), state
	}

	text := strings.TrimSpace(string(raw))
	var resp protocol.Response
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		advance(fsm.EventFail)
		return protocol.ErrorResponse("Invalid response from Cinema 4D: %v", err), state
	}

	advance(fsm.EventReceived)
	return resp, state
}

// readResponse accumulates bytes until a chunk containing a newline arrives
// or the peer closes the connection with data already received.
func readResponse(conn net.Conn) ([]byte, error) {
	var data []byte
	chunk := make([]byte, receiveChunkSize)
	for {
		n, err := conn.Read(chunk)
		if n > 0 {
			data = append(data, chunk[:n]...)
			if bytes.IndexByte(chunk[:n], '\n') >= 0 {
				return data, nil
			}
		}
		if err != nil {
			if len(data) > 0 {
				return data, nil
			}
			return nil, fmt.Errorf("read response: %w", err)
		}
	}
}

// Probe reports whether a bridge host is accepting connections at addr.
func Probe(ctx context.Context, addr string, timeout time.Duration) bool {
	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}
