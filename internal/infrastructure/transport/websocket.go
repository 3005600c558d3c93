// Package transport carries snapshots in and events out over a WebSocket
// connection to a single controller.
package transport

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/younwookim/puppet/internal/application/snapshot"
	"github.com/younwookim/puppet/internal/infrastructure/logging"
)

const writeTimeout = 5 * time.Second

type sessionState int

const (
	sessionIdle sessionState = iota
	sessionOpen
	sessionDone
)

// Config configures a Server
type Config struct {
	MaxMessageBytes int
	Logger          *logging.Logger
}

// Server accepts one controller session. Every message the controller sends
// is pushed to the queue; the queue is closed when the session ends.
type Server struct {
	queue    *snapshot.Queue
	logger   *logging.Logger
	upgrader websocket.Upgrader
	maxBytes int64

	mu      sync.Mutex
	conn    *websocket.Conn
	state   sessionState
	dropped int
}

// NewServer creates a new server feeding queue
func NewServer(queue *snapshot.Queue, cfg Config) *Server {
	return &Server{
		queue:    queue,
		logger:   cfg.Logger,
		maxBytes: int64(cfg.MaxMessageBytes),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Router returns the HTTP routes: /ws for the controller and /healthz
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", s.handleHealth)
	r.Get("/ws", s.handleWS)
	return r
}

// ListenAndServe serves on addr until ctx is done
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	s.logger.Debugf("waiting for controller on ws://%s/ws", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("ok"))
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	if s.state != sessionIdle {
		s.mu.Unlock()
		http.Error(w, "controller session already taken", http.StatusConflict)
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.mu.Unlock()
		s.logger.Errorf("websocket upgrade failed: %v", err)
		return
	}
	s.conn = conn
	s.state = sessionOpen
	s.mu.Unlock()

	s.logger.Debugf("controller connected from %s", r.RemoteAddr)
	defer s.endSession()

	for {
		payload, err := s.readMessage(conn)
		if errors.Is(err, errOversize) {
			s.logger.Errorf("discarding snapshot message over %s", humanize.IBytes(uint64(s.maxBytes)))
			continue
		}
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Errorf("controller connection lost: %v", err)
			}
			return
		}
		if len(payload) == 0 {
			continue
		}
		s.queue.Push(payload)
	}
}

var errOversize = errors.New("message too large")

// readMessage reads the next data message. A message over the size limit is
// skipped whole and reported as errOversize; the connection stays usable.
func (s *Server) readMessage(conn *websocket.Conn) ([]byte, error) {
	_, r, err := conn.NextReader()
	if err != nil {
		return nil, err
	}
	if s.maxBytes <= 0 {
		return io.ReadAll(r)
	}
	payload, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(payload)) > s.maxBytes {
		if _, err := io.Copy(io.Discard, r); err != nil {
			return nil, err
		}
		return nil, errOversize
	}
	return payload, nil
}

func (s *Server) endSession() {
	s.mu.Lock()
	conn := s.conn
	s.conn = nil
	s.state = sessionDone
	s.mu.Unlock()

	conn.Close()
	s.queue.Close()
	s.logger.Debugf("controller disconnected")
}

// Emit sends one event message to the controller. Events are dropped while
// no controller is connected.
func (s *Server) Emit(msg []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		s.dropped++
		return nil
	}
	s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return s.conn.WriteMessage(websocket.TextMessage, msg)
}

// Dropped returns the number of events sent while no controller was connected
func (s *Server) Dropped() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped
}
