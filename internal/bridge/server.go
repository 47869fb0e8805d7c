package bridge

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/c4dlink/c4dlink/internal/protocol"
)

// receiveChunkSize bounds each read from a connection.
const receiveChunkSize = 4096

// acceptRetryDelay spaces retries after a transient accept failure.
const acceptRetryDelay = 100 * time.Millisecond

// Server accepts bridge connections and drives one receive/decode/dispatch/
// encode/send loop per connection. Within a connection requests are strictly
// alternated with responses; across connections no ordering is guaranteed.
type Server struct {
	registry *Registry
	logger   *slog.Logger

	mu    sync.Mutex
	conns map[net.Conn]struct{}
}

func NewServer(registry *Registry, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Server{
		registry: registry,
		logger:   logger,
		conns:    make(map[net.Conn]struct{}),
	}
}

// Serve accepts clients until context cancellation or listener close. A
// transient accept failure is logged and retried; it never permanently stops
// the accept loop. On shutdown every live connection is closed and all
// handler goroutines are joined before returning.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	var wg sync.WaitGroup

	go func() {
		<-ctx.Done()
		_ = listener.Close()
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) || ctx.Err() != nil {
				break
			}
			s.logger.Warn("accept failed", "error", err.Error())
			select {
			case <-ctx.Done():
			case <-time.After(acceptRetryDelay):
			}
			continue
		}

		s.track(conn)
		wg.Add(1)
		go func(c net.Conn) {
			defer wg.Done()
			s.handleConn(ctx, c)
		}(conn)
	}

	s.closeAll()
	wg.Wait()
	return nil
}

// handleConn runs the per-connection message loop. Transport failures,
// malformed JSON, and requests without a string command field all end the
// session; there is no per-message resynchronization.
func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	defer s.untrack(conn)
	defer conn.Close()

	remote := conn.RemoteAddr().String()
	s.logger.Info("client connected", "remote", remote)

	var lines protocol.LineBuffer
	chunk := make([]byte, receiveChunkSize)

	for {
		n, err := conn.Read(chunk)
		if n > 0 {
			lines.Append(chunk[:n])
			if !s.drainMessages(ctx, conn, &lines, remote) {
				return
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) {
				s.logger.Warn("receive failed", "remote", remote, "error", err.Error())
			}
			s.logger.Info("client disconnected", "remote", remote)
			return
		}
	}
}

// drainMessages answers every complete buffered message in arrival order.
// It reports false when the connection must be closed.
func (s *Server) drainMessages(ctx context.Context, conn net.Conn, lines *protocol.LineBuffer, remote string) bool {
	for {
		line, ok := lines.Next()
		if !ok {
			return true
		}

		cmd, err := protocol.DecodeCommand(line)
		if err != nil {
			s.logger.Warn("malformed message, closing connection", "remote", remote, "error", err.Error())
			return false
		}

		name, ok := cmd.Name()
		if !ok {
			s.logger.Warn("request missing command field, closing connection", "remote", remote)
			return false
		}

		resp := s.registry.Dispatch(ctx, cmd)
		payload, err := protocol.EncodeLine(resp)
		if err != nil {
			s.logger.Error("encode response failed", "remote", remote, "command", name, "error", err.Error())
			return false
		}
		if _, err := conn.Write(payload); err != nil {
			s.logger.Warn("write response failed", "remote", remote, "command", name, "error", err.Error())
			return false
		}
	}
}

func (s *Server) track(conn net.Conn) {
	s.mu.Lock()
	s.conns[conn] = struct{}{}
	s.mu.Unlock()
}

func (s *Server) untrack(conn net.Conn) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
}

// closeAll unblocks handler goroutines stuck in Read during shutdown.
func (s *Server) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.conns {
		_ = conn.Close()
	}
}
