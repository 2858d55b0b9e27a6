package shape

import (
	"github.com/inamate/sketchboard/internal/geometry"
	"github.com/inamate/sketchboard/internal/render"
)

// ToolSource reports the currently armed tool.
type ToolSource interface {
	Tool() Tool
}

// Dispatcher routes generic shape operations to the matching primitive. It
// holds no state of its own: creation follows the armed tool, every other
// operation follows the shape's own variant. Unknown tools and shapes are
// no-ops.
type Dispatcher struct {
	tools ToolSource
}

func NewDispatcher(tools ToolSource) *Dispatcher {
	return &Dispatcher{tools: tools}
}

func (d *Dispatcher) tool() Tool {
	if d.tools == nil {
		return ToolSelection
	}
	return d.tools.Tool()
}

// DrawCoords previews the armed tool's shape spanning start to end.
func (d *Dispatcher) DrawCoords(s render.Surface, start, end geometry.Coords) {
	switch d.tool() {
	case ToolLine:
		drawSegment(s, start, end)
	case ToolRectangle:
		strokeBox(s, start, end.X-start.X, end.Y-start.Y)
	}
}

// CreateShape builds a shape of the armed tool's kind.
func (d *Dispatcher) CreateShape(start, end geometry.Coords) (Shape, bool) {
	switch d.tool() {
	case ToolLine:
		return NewLine(start, end), true
	case ToolRectangle:
		return NewRectangle(start, end), true
	}
	return nil, false
}

// DrawShape strokes sh on s.
func (d *Dispatcher) DrawShape(s render.Surface, sh Shape) {
	switch v := sh.(type) {
	case Line:
		v.Draw(s)
	case Rectangle:
		v.Draw(s)
	}
}

// IsShapeDetected reports an edge hit.
func (d *Dispatcher) IsShapeDetected(sh Shape, p geometry.Coords) bool {
	switch v := sh.(type) {
	case Line:
		return v.Detect(p)
	case Rectangle:
		return v.Detect(p)
	}
	return false
}

// IsShapeContentDetected reports an interior hit. Lines have no interior.
func (d *Dispatcher) IsShapeContentDetected(sh Shape, p geometry.Coords) bool {
	switch v := sh.(type) {
	case Line:
		return false
	case Rectangle:
		return v.ContentDetected(p)
	}
	return false
}

// SelectShape renders the selection handles of sh.
func (d *Dispatcher) SelectShape(s render.Surface, sh Shape) {
	switch v := sh.(type) {
	case Line:
		v.Select(s)
	case Rectangle:
		v.Select(s)
	}
}

// UpdateShape returns sh after a drag. The result keeps the shape id and
// carries fresh node ids.
func (d *Dispatcher) UpdateShape(sh Shape, dragStart, dragEnd geometry.Coords, grabbed *Node) (Shape, bool) {
	switch v := sh.(type) {
	case Line:
		return v.Update(dragStart, dragEnd, grabbed), true
	case Rectangle:
		return v.Update(dragStart, dragEnd, grabbed), true
	}
	return nil, false
}

// CursorOnHover returns the pointer hint for hovering p over sh.
func (d *Dispatcher) CursorOnHover(sh Shape, p geometry.Coords, grabbed *Node) Cursor {
	switch v := sh.(type) {
	case Line:
		return v.Cursor(p, grabbed)
	case Rectangle:
		return v.Cursor(p, grabbed)
	}
	return CursorDefault
}

// NodeSelected returns the first node of sh that p grabs.
func (d *Dispatcher) NodeSelected(sh Shape, p geometry.Coords) (Node, bool) {
	if sh == nil {
		return Node{}, false
	}
	for _, n := range sh.Handles() {
		if n.Contains(p) {
			return n, true
		}
	}
	return Node{}, false
}
