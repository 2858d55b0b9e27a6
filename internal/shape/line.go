package shape

import (
	"math"

	"github.com/inamate/sketchboard/internal/geometry"
	"github.com/inamate/sketchboard/internal/render"
	"github.com/inamate/sketchboard/internal/typeid"
)

// Line is a straight segment. Nodes are the two endpoints.
type Line struct {
	ID    string
	Start geometry.Coords
	End   geometry.Coords
	Nodes [2]Node
}

// NewLine creates a line with a fresh id.
func NewLine(start, end geometry.Coords) Line {
	return Line{ID: typeid.NewShapeID()}.withEndpoints(start, end)
}

func (l Line) withEndpoints(start, end geometry.Coords) Line {
	l.Start = start
	l.End = end
	l.Nodes = lineNodes(start, end)
	return l
}

func lineNodes(start, end geometry.Coords) [2]Node {
	return [2]Node{newNode(start.X, start.Y), newNode(end.X, end.Y)}
}

func (l Line) ShapeID() string { return l.ID }
func (l Line) Kind() Kind      { return KindLine }
func (l Line) Handles() []Node { return l.Nodes[:] }
func (Line) sealed()           {}
func (l Line) Length() float64 { return math.Hypot(l.End.X-l.Start.X, l.End.Y-l.Start.Y) }

func (l Line) Bounds() geometry.Bounds {
	return geometry.BoundsOf(l.Start, l.End.X-l.Start.X, l.End.Y-l.Start.Y)
}

func drawSegment(s render.Surface, start, end geometry.Coords) {
	s.SetStrokeStyle(render.StrokeColor)
	s.SetLineWidth(render.StrokeWidth)
	s.BeginPath()
	s.MoveTo(start.X, start.Y)
	s.LineTo(end.X, end.Y)
	s.Stroke()
}

// Draw strokes the segment on s.
func (l Line) Draw(s render.Surface) {
	drawSegment(s, l.Start, l.End)
}

// Detect reports whether p is within tolerance of the segment.
func (l Line) Detect(p geometry.Coords) bool {
	return geometry.NearSegment(p, l.Start, l.End)
}

// Select renders a handle at each endpoint.
func (l Line) Select(s render.Surface) {
	drawHandles(s, l.Nodes[:])
}

// Update returns the line after a drag from dragStart to dragEnd. With no
// grabbed node the whole line moves by the drag delta; otherwise the other
// endpoint stays put and the grabbed one follows the pointer.
func (l Line) Update(dragStart, dragEnd geometry.Coords, grabbed *Node) Line {
	if grabbed == nil {
		d := dragEnd.Sub(dragStart)
		return l.withEndpoints(l.Start.Add(d), l.End.Add(d))
	}

	switch indexOf(l.Nodes[:], grabbed.ID) {
	case 0:
		return l.withEndpoints(dragEnd, l.End)
	case 1:
		return l.withEndpoints(l.Start, dragEnd)
	}
	return l
}

// Cursor returns the hover hint for p.
func (l Line) Cursor(p geometry.Coords, grabbed *Node) Cursor {
	if grabbed != nil {
		return CursorPointer
	}
	if l.Detect(p) {
		return CursorMove
	}
	return CursorDefault
}

func drawHandles(s render.Surface, nodes []Node) {
	s.SetFillStyle(render.HandleFill)
	s.SetStrokeStyle(render.AccentColor)
	s.SetLineWidth(render.StrokeWidth)
	for _, n := range nodes {
		s.BeginPath()
		s.Arc(n.X, n.Y, render.HandleRadius, 0, 2*math.Pi)
		s.Fill()
		s.Stroke()
		s.ClosePath()
	}
}
