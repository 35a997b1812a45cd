package bridge

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vango-dev/live/internal/errors"
	"github.com/vango-dev/live/pkg/dom"
	"github.com/vango-dev/live/pkg/live"
	"github.com/vango-dev/live/pkg/scenario"
)

// Session is one connected client and the document it drives.
type Session struct {
	id       string
	conn     *websocket.Conn
	doc      *dom.Document
	engine   *live.Engine
	recorder *scenario.Recorder

	server *Server
	logger *slog.Logger

	// mu serialises writes; gorilla allows one concurrent writer.
	mu     sync.Mutex
	done   chan struct{}
	closed atomic.Bool

	created time.Time
}

// newSession builds the session document and engine and runs setup.
func (s *Server) newSession(conn *websocket.Conn, requestID string) (*Session, error) {
	var (
		doc *dom.Document
		err error
	)
	if sc := s.config.Scenario; sc != nil {
		doc, err = sc.NewDocument()
	} else {
		doc, err = dom.ParseString(s.config.Page)
	}
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	logger := s.logger.With("session", id)
	if requestID != "" {
		logger = logger.With("request_id", requestID)
	}
	sess := &Session{
		id:   id,
		conn: conn,
		doc:  doc,
		engine: live.New(doc,
			live.WithLogger(logger),
			live.WithMetrics(s.engineMetrics),
			live.WithTracer(s.config.Tracer),
		),
		recorder: scenario.NewRecorder(),
		server:   s,
		logger:   logger,
		done:     make(chan struct{}),
		created:  time.Now(),
	}

	if sc := s.config.Scenario; sc != nil {
		if err := sc.Bind(sess.engine, sess.recorder); err != nil {
			return nil, err
		}
	}
	if s.config.Setup != nil {
		if err := s.config.Setup(sess); err != nil {
			return nil, fmt.Errorf("session setup: %w", err)
		}
	}
	return sess, nil
}

// ID returns the session identifier sent in the hello frame.
func (s *Session) ID() string { return s.id }

// Document returns the session document.
func (s *Session) Document() *dom.Document { return s.doc }

// Engine returns the session engine.
func (s *Session) Engine() *live.Engine { return s.engine }

// Recorder returns the recorder whose invocations are reported to the
// client. Callbacks installed by Setup may use it too.
func (s *Session) Recorder() *scenario.Recorder { return s.recorder }

// Done returns a channel that's closed when the session ends.
func (s *Session) Done() <-chan struct{} { return s.done }

// Close ends the session. It is safe to call more than once.
func (s *Session) Close() {
	if s.closed.Swap(true) {
		return
	}
	close(s.done)
	s.conn.Close()
}

// ReadLoop handles client frames until the connection closes or ctx ends.
func (s *Session) ReadLoop(ctx context.Context) {
	defer s.Close()

	timeout := s.server.config.ReadTimeout
	s.conn.SetReadLimit(s.server.config.ReadLimit)
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(timeout))
	})

	for {
		s.conn.SetReadDeadline(time.Now().Add(timeout))

		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
			}
			return
		}
		if ctx.Err() != nil {
			return
		}

		var env Envelope
		if err := json.Unmarshal(msg, &env); err != nil {
			s.logger.Error("frame decode error", "error", err)
			s.reject(0, errors.New("L020").Wrap(err))
			continue
		}
		s.handle(ctx, env)
	}
}

// WriteLoop pings the client until the session ends.
func (s *Session) WriteLoop() {
	ticker := time.NewTicker(s.server.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.mu.Lock()
			err := s.conn.WriteControl(websocket.PingMessage, nil,
				time.Now().Add(s.server.config.WriteTimeout))
			s.mu.Unlock()
			if err != nil {
				s.logger.Debug("ping failed", "error", err)
				s.Close()
				return
			}
		case <-s.done:
			return
		}
	}
}

func (s *Session) handle(ctx context.Context, env Envelope) {
	var result ResultData
	var err error
	switch env.Frame {
	case FrameEvent:
		var data EventData
		if err = decodeData(env, &data); err == nil {
			result, err = s.dispatch(ctx, data)
		}
	case FrameLayout:
		var data LayoutData
		if err = decodeData(env, &data); err == nil {
			err = s.layout(data)
		}
	case FrameScroll:
		var data ScrollData
		if err = decodeData(env, &data); err == nil {
			s.doc.ScrollTo(data.X, data.Y)
		}
	case FrameInsert:
		var data InsertData
		if err = decodeData(env, &data); err == nil {
			err = s.insert(data)
		}
	default:
		s.logger.Warn("unknown frame type", "frame", env.Frame)
		s.server.metrics.frames.WithLabelValues("unknown").Inc()
		s.reject(env.Seq, errors.New("L021").WithDetailf("unknown frame type %q", env.Frame))
		return
	}
	s.server.metrics.frames.WithLabelValues(env.Frame).Inc()
	if err != nil {
		s.reject(env.Seq, err)
		return
	}
	// Deliver insertions before the reply so future bindings are live for
	// the next frame.
	s.doc.Flush()
	s.send(FrameResult, env.Seq, result)
}

func decodeData(env Envelope, v any) error {
	if len(env.Data) == 0 {
		return errors.New("L020").WithDetailf("%s frame has no data", env.Frame)
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		return errors.New("L020").WithDetailf("%s frame data", env.Frame).Wrap(err)
	}
	return nil
}

func (s *Session) target(sel string) (*dom.Node, error) {
	if sel == "" {
		return nil, errors.New("L022").WithDetail("frame has no target")
	}
	n, err := s.doc.QuerySelector(sel)
	if err != nil {
		return nil, errors.New("L001").WithDetailf("selector %q", sel).Wrap(err)
	}
	if n == nil {
		return nil, errors.New("L022").WithDetailf("no element matches %q", sel)
	}
	return n, nil
}

func (s *Session) dispatch(ctx context.Context, data EventData) (ResultData, error) {
	target, err := s.target(data.Target)
	if err != nil {
		return ResultData{}, err
	}
	typ := strings.ToLower(data.Type)
	if typ == "" {
		return ResultData{}, errors.New("L020").WithDetail("event frame has no type")
	}

	result := ResultData{Event: typ}
	if kind, ok := strings.CutPrefix(typ, "pointer"); ok && data.Compat {
		events := target.PointerSequence(kind, data.ClientX, data.ClientY)
		result.DefaultPrevented = events[0].DefaultPrevented()
	} else {
		evt := dom.NewPointerEvent(typ, data.ClientX, data.ClientY)
		evt.Button = data.Button
		evt.Key = data.Key
		target.DispatchEvent(evt.WithContext(ctx))
		result.DefaultPrevented = evt.DefaultPrevented()
	}
	result.Invocations = s.recorder.Take()
	return result, nil
}

func (s *Session) layout(data LayoutData) error {
	for sel, box := range data.Rects {
		if len(box) != 4 {
			return errors.New("L020").WithDetailf("rect for %q must be [x, y, width, height]", sel)
		}
	}
	if err := data.Rects.Apply(s.doc); err != nil {
		return errors.New("L001").Wrap(err)
	}
	return nil
}

func (s *Session) insert(data InsertData) error {
	parent := s.doc.Body()
	if data.Parent != "" {
		var err error
		if parent, err = s.target(data.Parent); err != nil {
			return err
		}
	}
	if parent == nil {
		return errors.New("L022").WithDetail("document has no body")
	}
	nodes, err := s.doc.ParseFragment(parent, data.HTML)
	if err != nil {
		return errors.New("L020").Wrap(err)
	}
	for _, n := range nodes {
		if err := s.doc.AppendChild(parent, n); err != nil {
			return errors.New("L020").Wrap(err)
		}
	}
	return nil
}

// reject reports err to the client as an error frame.
func (s *Session) reject(seq uint64, err error) {
	data := ErrorData{Code: errors.Code(err), Message: err.Error()}
	var le *errors.LiveError
	if stderrors.As(err, &le) {
		data.Detail = le.Detail
	}
	s.server.metrics.errors.WithLabelValues(data.Code).Inc()
	s.send(FrameError, seq, data)
}

// send writes one frame. Write failures close the session.
func (s *Session) send(frame string, seq uint64, data any) {
	env, err := encode(frame, seq, data)
	if err != nil {
		s.logger.Error("frame encode error", "frame", frame, "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed.Load() {
		return
	}
	s.conn.SetWriteDeadline(time.Now().Add(s.server.config.WriteTimeout))
	if err := s.conn.WriteJSON(env); err != nil {
		s.logger.Error("write error", "frame", frame, "error", err)
		s.Close()
	}
}
