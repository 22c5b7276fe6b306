package server

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/zeusync/hogar/internal/core/events/bus"
	"github.com/zeusync/hogar/internal/core/observability/log"
	"github.com/zeusync/hogar/internal/core/sim"
	"github.com/zeusync/hogar/internal/core/systems/physics"
)

type session struct {
	id     string
	conn   *websocket.Conn
	driver *sim.Driver
	server *Server
	logger log.Log

	out    chan *bytes.Buffer
	camera chan physics.Vec3
	ticks  uint64

	// ctx bounds the session and its asset loads.
	ctx    context.Context
	cancel context.CancelFunc
}

func (s *Server) newSession(conn *websocket.Conn) (*session, error) {
	id := uuid.NewString()
	ctx, cancel := context.WithCancel(log.ContextWithSession(s.ctx, id))
	driver, err := s.factory.New(ctx)
	if err != nil {
		cancel()
		return nil, err
	}
	if s.config.ReadLimit > 0 {
		conn.SetReadLimit(s.config.ReadLimit)
	}
	return &session{
		id:     id,
		conn:   conn,
		driver: driver,
		server: s,
		logger: s.logger.WithContext(ctx),
		out:    make(chan *bytes.Buffer, outboundQueue),
		camera: make(chan physics.Vec3, 1),
		ctx:    ctx,
		cancel: cancel,
	}, nil
}

// run owns the connection until the client leaves or the server stops. The
// calling goroutine ticks the driver; one goroutine reads and one writes.
// Pending asset loads are cancelled on return.
func (ss *session) run() {
	ctx, cancel := ss.ctx, ss.cancel
	defer cancel()
	defer ss.conn.Close()

	sub, err := ss.driver.Bus().Subscribe(bus.Wildcard, ss.forward)
	if err != nil {
		ss.logger.Error("Failed to subscribe to simulation events", log.Error(err))
		return
	}
	defer func() { _ = sub.Cancel() }()

	layout := ss.driver.Layout()
	ss.enqueue(HelloMessage{
		Type:         TypeHello,
		Session:      ss.id,
		TickRateHz:   ss.server.tickRate,
		LayoutDigest: layout.DigestString(),
		HalfExtent:   ss.driver.HalfExtent(),
		Collision:    ss.driver.Collision().String(),
		Obstacles:    layout.Obstacles(),
		Points:       ss.driver.Points(),
	})

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		ss.writeLoop(ctx, cancel)
	}()
	go ss.readLoop(cancel)

	ticker := time.NewTicker(ss.server.interval)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			// Unblock the reader; the writer exits on ctx.
			_ = ss.conn.SetReadDeadline(time.Now())
			<-writerDone
			return
		case now := <-ticker.C:
			select {
			case p := <-ss.camera:
				ss.driver.SetCameraPosition(p)
			default:
			}
			frame := ss.driver.Tick(now.Sub(last).Seconds())
			last = now
			if !frame.Skipped {
				ss.ticks = frame.Tick
			}
			ss.enqueue(FrameMessage{Type: TypeFrame, Frame: frame})
		}
	}
}

// forward relays simulation events to the client. It runs on the tick
// goroutine inside Driver.Tick.
func (ss *session) forward(e bus.Event) error {
	ss.enqueue(EventMessage{Type: TypeEvent, Event: e.Type(), Data: e.Data()})
	return nil
}

// enqueue drops the message when the client is not keeping up; the next
// frame supersedes it anyway.
func (ss *session) enqueue(v any) {
	buf, err := ss.server.encode(v)
	if err != nil {
		ss.logger.Error("Failed to encode message", log.Error(err))
		return
	}
	select {
	case ss.out <- buf:
	default:
		ss.server.buffers.Put(buf)
		ss.logger.Debug("Outbound queue full, dropping message")
	}
}

func (ss *session) writeLoop(ctx context.Context, cancel context.CancelFunc) {
	for {
		select {
		case <-ctx.Done():
			_ = ss.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
				time.Now().Add(time.Second))
			return
		case buf := <-ss.out:
			_ = ss.conn.SetWriteDeadline(time.Now().Add(ss.server.config.WriteTimeout))
			err := ss.conn.WriteMessage(websocket.TextMessage, buf.Bytes())
			ss.server.buffers.Put(buf)
			if err != nil {
				if !errors.Is(err, websocket.ErrCloseSent) {
					ss.logger.Error("Failed to write message", log.Error(err))
				}
				cancel()
				return
			}
		}
	}
}

func (ss *session) readLoop(cancel context.CancelFunc) {
	defer cancel()
	sampler := ss.driver.Input()
	for {
		_, raw, err := ss.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				ss.logger.Error("Failed to read message", log.Error(err))
			}
			// A lost connection is a lost focus.
			sampler.Blur()
			return
		}
		msg, err := decodeClientMessage(raw)
		if err == nil {
			var pos *physics.Vec3
			if pos, err = msg.apply(sampler); err == nil && pos != nil {
				// Keep only the latest placement.
				select {
				case <-ss.camera:
				default:
				}
				ss.camera <- *pos
			}
		}
		if err != nil {
			ss.logger.Warn("Ignoring client message", log.Error(err))
		}
	}
}
