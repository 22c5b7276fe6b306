// Package server serves the browser frontend. Every websocket connection is
// an independent session running its own simulation driver.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/zeusync/hogar/internal/config"
	"github.com/zeusync/hogar/internal/core/observability/log"
	"github.com/zeusync/hogar/internal/core/sim"
	"github.com/zeusync/hogar/pkg/generic"
)

const outboundQueue = 32

type Server struct {
	config   config.Server
	interval time.Duration
	tickRate int
	factory  *sim.Factory
	upgrader websocket.Upgrader
	buffers  *generic.Pool[*bytes.Buffer]

	// Session management
	sessions     sync.Map // map[string]*session
	sessionCount int64    // atomic

	// Server state
	running int32 // atomic bool
	closed  int32 // atomic bool

	httpServer *http.Server
	listener   net.Listener

	logger log.Log

	// Background workers
	ctx         context.Context
	cancel      context.CancelFunc
	workerGroup sync.WaitGroup
}

func New(cfg config.Server, simulation config.Simulation, factory *sim.Factory, logger log.Log) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		config:   cfg,
		interval: simulation.TickInterval(),
		tickRate: simulation.TickRateHz,
		factory:  factory,
		upgrader: websocket.Upgrader{
			ReadBufferSize:    4096,
			WriteBufferSize:   16 * 1024,
			EnableCompression: true,
			CheckOrigin:       func(r *http.Request) bool { return true },
		},
		buffers: generic.NewPool(
			func() *bytes.Buffer { return new(bytes.Buffer) },
			func(b *bytes.Buffer) { b.Reset() },
		),
		logger: logger.With(log.String("component", "server")),
		ctx:    ctx,
		cancel: cancel,
	}
	if s.config.Path == "" {
		s.config.Path = "/ws"
	}
	if s.config.WriteTimeout <= 0 {
		s.config.WriteTimeout = 5 * time.Second
	}

	s.logger.Info("Server created",
		log.String("listen_addr", cfg.Addr),
		log.Int("max_sessions", cfg.MaxSessions),
		log.Duration("tick_interval", s.interval))

	return s
}

// Handler routes the websocket endpoint and the health check.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(s.config.Path, s.handleWebSocket)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

// Start listens on the configured address and serves in the background.
func (s *Server) Start(_ context.Context) error {
	if atomic.LoadInt32(&s.closed) == 1 {
		return ErrServerClosed
	}
	if !atomic.CompareAndSwapInt32(&s.running, 0, 1) {
		return ErrServerAlreadyRunning
	}

	listener, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		atomic.StoreInt32(&s.running, 0)
		s.logger.Error("Failed to create listener", log.Error(err))
		return fmt.Errorf("%w: %w", ErrListenerFailed, err)
	}
	s.listener = listener
	s.httpServer = &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server failed", log.Error(err))
		}
	}()

	s.logger.Info("Server listening", log.String("addr", listener.Addr().String()))
	return nil
}

// Addr is the bound listen address; nil before Start.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Stop ends every session and shuts the HTTP server down.
func (s *Server) Stop(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&s.running, 1, 0) {
		return ErrServerNotRunning
	}

	s.logger.Info("Stopping server")
	s.cancel()

	err := s.httpServer.Shutdown(ctx)

	done := make(chan struct{})
	go func() {
		s.workerGroup.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		err = errors.Join(err, ctx.Err())
	}

	s.logger.Info("Server stopped")
	return err
}

// Close stops the server if needed and rejects further sessions.
func (s *Server) Close() error {
	if !atomic.CompareAndSwapInt32(&s.closed, 0, 1) {
		return nil // Already closed
	}
	if atomic.LoadInt32(&s.running) == 1 {
		_ = s.Stop(context.Background())
	}
	s.cancel()
	s.logger.Info("Server closed")
	return nil
}

func (s *Server) SessionCount() int {
	return int(atomic.LoadInt64(&s.sessionCount))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":        "ok",
		"sessions":      s.SessionCount(),
		"layout_digest": s.factory.Layout().DigestString(),
	})
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if atomic.LoadInt32(&s.closed) == 1 || s.ctx.Err() != nil {
		http.Error(w, ErrServerClosed.Error(), http.StatusServiceUnavailable)
		return
	}
	// Reserve the slot before upgrading so concurrent dials cannot overshoot.
	if n := atomic.AddInt64(&s.sessionCount, 1); s.config.MaxSessions > 0 && int(n) > s.config.MaxSessions {
		atomic.AddInt64(&s.sessionCount, -1)
		s.logger.Warn("Maximum sessions reached, rejecting connection",
			log.String("remote_addr", r.RemoteAddr))
		http.Error(w, ErrMaxSessionsReached.Error(), http.StatusServiceUnavailable)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		atomic.AddInt64(&s.sessionCount, -1)
		s.logger.Warn("Websocket upgrade failed", log.Error(err))
		return
	}

	s.workerGroup.Add(1)
	defer s.workerGroup.Done()

	sess, err := s.newSession(conn)
	if err != nil {
		atomic.AddInt64(&s.sessionCount, -1)
		s.logger.Error("Failed to create session", log.Error(err))
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "session setup failed"),
			time.Now().Add(time.Second))
		_ = conn.Close()
		return
	}

	s.sessions.Store(sess.id, sess)
	s.logger.Info("Session started",
		log.String("session_id", sess.id),
		log.String("remote_addr", conn.RemoteAddr().String()),
		log.Int64("total_sessions", atomic.LoadInt64(&s.sessionCount)))

	sess.run()

	s.sessions.Delete(sess.id)
	atomic.AddInt64(&s.sessionCount, -1)
	s.logger.Info("Session ended",
		log.String("session_id", sess.id),
		log.Uint64("ticks", sess.ticks),
		log.Int64("total_sessions", atomic.LoadInt64(&s.sessionCount)))
}

// encode marshals v into a pooled buffer. The writer returns it to the pool.
func (s *Server) encode(v any) (*bytes.Buffer, error) {
	buf := s.buffers.Get()
	if err := json.NewEncoder(buf).Encode(v); err != nil {
		s.buffers.Put(buf)
		return nil, err
	}
	return buf, nil
}
