package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/inamate/sketchboard/internal/canvas"
	"github.com/inamate/sketchboard/internal/render"
	"github.com/inamate/sketchboard/internal/shape"
	"github.com/inamate/sketchboard/internal/state"
)

var (
	ErrBoardBusy      = errors.New("board already has an open session")
	ErrUnknownMessage = errors.New("unknown message type")
)

// Default surface size until the client reports its own.
const (
	defaultWidth  = 1280
	defaultHeight = 800
)

// Session is one interaction state and controller bound to a connection.
// Handle must be called from a single goroutine.
type Session struct {
	BoardID  string
	ClientID string

	state       *state.State
	controller  *canvas.Controller
	static      *render.Recorder
	interactive *render.Recorder

	send        func(*Message)
	lastState   StatePayload
	unsubscribe func()
}

// New loads the board through p and paints the initial frame.
func New(ctx context.Context, boardID, clientID string, p state.Persister, send func(*Message)) (*Session, error) {
	st := state.New(p)
	if err := st.Load(ctx); err != nil {
		return nil, err
	}

	static := render.NewRecorder(defaultWidth, defaultHeight)
	interactive := render.NewRecorder(defaultWidth, defaultHeight)
	controller, err := canvas.New(st, static, interactive)
	if err != nil {
		return nil, err
	}

	s := &Session{
		BoardID:     boardID,
		ClientID:    clientID,
		state:       st,
		controller:  controller,
		static:      static,
		interactive: interactive,
		send:        send,
	}
	s.unsubscribe = st.Subscribe(func(ev state.Event) {
		switch ev.Field {
		case state.FieldTool, state.FieldAction, state.FieldCurrentShape:
			s.publishState()
		}
	})

	if msg, err := newMessage(TypeWelcome, WelcomePayload{ClientID: clientID, BoardID: boardID}); err == nil {
		s.send(msg)
	}
	controller.Redraw()
	s.flush()
	s.publishState()
	return s, nil
}

// Handle applies one client message and sends the resulting frames.
func (s *Session) Handle(ctx context.Context, msg *Message) error {
	switch msg.Type {
	case TypePointerDown, TypePointerMove, TypePointerUp, TypeClick:
		var p PointerPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return fmt.Errorf("decode %s: %w", msg.Type, err)
		}
		switch msg.Type {
		case TypePointerDown:
			s.controller.PointerDown(ctx, p.Coords())
		case TypePointerMove:
			s.controller.PointerMove(p.Coords())
		case TypePointerUp:
			s.controller.PointerUp(ctx, p.Coords())
		case TypeClick:
			s.controller.Click(p.Coords())
		}

	case TypeWheel:
		var p WheelPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return fmt.Errorf("decode wheel: %w", err)
		}
		s.controller.Wheel(p.DX, p.DY)

	case TypeResize:
		var p ResizePayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return fmt.Errorf("decode resize: %w", err)
		}
		if p.Width <= 0 || p.Height <= 0 {
			return fmt.Errorf("resize: invalid size %vx%v", p.Width, p.Height)
		}
		s.controller.Resize(p.Width, p.Height, p.Scale)

	case TypeToolSet:
		var p ToolPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return fmt.Errorf("decode tool.set: %w", err)
		}
		tool, err := shape.ParseTool(p.Tool)
		if err != nil {
			return err
		}
		s.controller.SetTool(tool)

	default:
		return fmt.Errorf("%w: %q", ErrUnknownMessage, msg.Type)
	}

	s.flush()
	s.publishState()
	return nil
}

// flush sends the display list of every layer drawn on since the last flush.
func (s *Session) flush() {
	for _, l := range []struct {
		layer render.Layer
		rec   *render.Recorder
	}{
		{render.LayerStatic, s.static},
		{render.LayerInteractive, s.interactive},
	} {
		if len(l.rec.Flush()) == 0 {
			continue
		}
		msg, err := newMessage(TypeRender, RenderPayload{Layer: l.layer, Commands: l.rec.Commands()})
		if err != nil {
			slog.Error("marshal render", "error", err, "board", s.BoardID)
			continue
		}
		s.send(msg)
	}
}

func (s *Session) publishState() {
	snap := s.state.Snapshot()
	payload := StatePayload{
		Tool:   snap.Tool,
		Action: snap.Action,
		Cursor: s.controller.Cursor(),
	}
	if snap.CurrentShape != nil {
		payload.CurrentShapeID = snap.CurrentShape.ShapeID()
	}
	if payload == s.lastState {
		return
	}
	s.lastState = payload

	if msg, err := newMessage(TypeState, payload); err == nil {
		s.send(msg)
	}
}

// State exposes the session state for inspection.
func (s *Session) State() *state.State { return s.state }

func (s *Session) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}
