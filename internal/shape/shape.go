// Package shape implements the drawable primitives and the dispatcher that
// routes generic operations to them.
//
// Shape is a closed sum type: only Line and Rectangle implement it. Both are
// value types whose nodes live in fixed-size arrays, so a copy of a shape
// never shares state with the original.
package shape

import (
	"errors"
	"fmt"
	"strings"

	"github.com/inamate/sketchboard/internal/geometry"
	"github.com/inamate/sketchboard/internal/typeid"
)

var (
	ErrUnknownKind    = errors.New("unknown shape kind")
	ErrUnknownTool    = errors.New("unknown tool")
	ErrMalformedShape = errors.New("malformed shape")
)

// Kind is the persisted type tag of a shape.
type Kind string

const (
	KindLine      Kind = "LINE"
	KindRectangle Kind = "RECTANGLE"
)

// Tool is the armed drawing tool.
type Tool string

const (
	ToolSelection Tool = "SELECTION"
	ToolLine      Tool = "LINE"
	ToolRectangle Tool = "RECTANGLE"
)

// ParseTool accepts a tool name in any case.
func ParseTool(name string) (Tool, error) {
	switch t := Tool(strings.ToUpper(strings.TrimSpace(name))); t {
	case ToolSelection, ToolLine, ToolRectangle:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTool, name)
}

// Kind returns the shape kind the tool creates. The selection tool creates nothing.
func (t Tool) Kind() (Kind, bool) {
	switch t {
	case ToolLine:
		return KindLine, true
	case ToolRectangle:
		return KindRectangle, true
	}
	return "", false
}

// Draws reports whether the tool creates shapes.
func (t Tool) Draws() bool {
	_, ok := t.Kind()
	return ok
}

// Cursor is a pointer-style hint, named after the CSS cursor keyword.
type Cursor string

const (
	CursorDefault  Cursor = "default"
	CursorPointer  Cursor = "pointer"
	CursorMove     Cursor = "move"
	CursorResizeNW Cursor = "nw-resize"
	CursorResizeNE Cursor = "ne-resize"
	CursorResizeSE Cursor = "se-resize"
	CursorResizeSW Cursor = "sw-resize"
)

// NodeProximity is how far, on each axis, a point may sit from a node and
// still grab it.
const NodeProximity = 5.0

// Node is a draggable control point. Its id is only valid for one revision
// of the owning shape.
type Node struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

func newNode(x, y float64) Node {
	return Node{ID: typeid.NewNodeID(), X: x, Y: y}
}

// Coords returns the node position.
func (n Node) Coords() geometry.Coords {
	return geometry.Coords{X: n.X, Y: n.Y}
}

// Contains reports whether p is close enough to grab the node.
func (n Node) Contains(p geometry.Coords) bool {
	return p.X >= n.X-NodeProximity && p.X <= n.X+NodeProximity &&
		p.Y >= n.Y-NodeProximity && p.Y <= n.Y+NodeProximity
}

// Shape is a committed drawable. Implemented by Line and Rectangle only.
type Shape interface {
	ShapeID() string
	Kind() Kind
	// Handles returns a copy of the shape's nodes in order.
	Handles() []Node
	// Bounds returns the normalized extent of the visible geometry.
	Bounds() geometry.Bounds

	sealed()
}

// indexOf returns the position of the node with id among nodes, or -1.
func indexOf(nodes []Node, id string) int {
	for i, n := range nodes {
		if n.ID == id {
			return i
		}
	}
	return -1
}
