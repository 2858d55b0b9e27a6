package session

import (
	"encoding/json"

	"github.com/inamate/sketchboard/internal/geometry"
	"github.com/inamate/sketchboard/internal/render"
	"github.com/inamate/sketchboard/internal/shape"
	"github.com/inamate/sketchboard/internal/state"
)

type Message struct {
	Type     string          `json:"type"`
	BoardID  string          `json:"boardId,omitempty"`
	ClientID string          `json:"clientId,omitempty"`
	Payload  json.RawMessage `json:"payload"`
}

const (
	// Client → server input
	TypePointerDown = "pointer.down"
	TypePointerMove = "pointer.move"
	TypePointerUp   = "pointer.up"
	TypeClick       = "click"
	TypeWheel       = "wheel"
	TypeResize      = "resize"
	TypeToolSet     = "tool.set"

	// Server → client
	TypeWelcome = "welcome"
	TypeRender  = "render"
	TypeState   = "state"
	TypeError   = "error"
)

// PointerPayload carries a surface-local point.
type PointerPayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p PointerPayload) Coords() geometry.Coords {
	return geometry.Coords{X: p.X, Y: p.Y}
}

type WheelPayload struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

type ResizePayload struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Scale  float64 `json:"scale"`
}

type ToolPayload struct {
	Tool string `json:"tool"`
}

type WelcomePayload struct {
	ClientID string `json:"clientId"`
	BoardID  string `json:"boardId"`
}

// RenderPayload is the full display list of one layer. Clients clear the
// layer and replay the commands in order.
type RenderPayload struct {
	Layer    render.Layer         `json:"layer"`
	Commands []render.DrawCommand `json:"commands"`
}

type StatePayload struct {
	Tool           shape.Tool   `json:"tool"`
	Action         state.Action `json:"action"`
	Cursor         shape.Cursor `json:"cursor"`
	CurrentShapeID string       `json:"currentShapeId,omitempty"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

func newMessage(typ string, payload any) (*Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Message{Type: typ, Payload: data}, nil
}

func errorMessage(err error) *Message {
	data, _ := json.Marshal(ErrorPayload{Message: err.Error()})
	return &Message{Type: TypeError, Payload: data}
}
