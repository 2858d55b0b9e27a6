package shape

import (
	"github.com/inamate/sketchboard/internal/geometry"
	"github.com/inamate/sketchboard/internal/render"
	"github.com/inamate/sketchboard/internal/typeid"
)

// RectanglePadding pushes each corner node outside the visible box.
const RectanglePadding = 5.0

// Rectangle is an axis-aligned box anchored at Coords. Width and Height keep
// the sign of the drag that created them.
//
// Nodes follow the corners in drag order: Coords, then along the width,
// then the far corner, then along the height.
type Rectangle struct {
	ID     string
	Coords geometry.Coords
	Width  float64
	Height float64
	Nodes  [4]Node
}

// NewRectangle creates a rectangle spanning start to end.
func NewRectangle(start, end geometry.Coords) Rectangle {
	return Rectangle{ID: typeid.NewShapeID()}.reshape(start, end.X-start.X, end.Y-start.Y)
}

func (r Rectangle) reshape(coords geometry.Coords, width, height float64) Rectangle {
	r.Coords = coords
	r.Width = width
	r.Height = height
	r.Nodes = rectangleNodes(coords, width, height)
	return r
}

// outward returns the padding that moves a corner away from the interior
// along an axis of the given extent.
func outward(extent float64) float64 {
	if extent > 0 {
		return RectanglePadding
	}
	return -RectanglePadding
}

func rectangleNodes(c geometry.Coords, width, height float64) [4]Node {
	px, py := outward(width), outward(height)
	return [4]Node{
		newNode(c.X-px, c.Y-py),
		newNode(c.X+width+px, c.Y-py),
		newNode(c.X+width+px, c.Y+height+py),
		newNode(c.X-px, c.Y+height+py),
	}
}

func (r Rectangle) ShapeID() string { return r.ID }
func (r Rectangle) Kind() Kind      { return KindRectangle }
func (r Rectangle) Handles() []Node { return r.Nodes[:] }
func (Rectangle) sealed()           {}

func (r Rectangle) Bounds() geometry.Bounds {
	return geometry.BoundsOf(r.Coords, r.Width, r.Height)
}

// Corners returns the true (unpadded) corners in node order.
func (r Rectangle) Corners() [4]geometry.Coords {
	x0, y0 := r.Coords.X, r.Coords.Y
	x1, y1 := x0+r.Width, y0+r.Height
	return [4]geometry.Coords{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
}

func strokeBox(s render.Surface, c geometry.Coords, width, height float64) {
	s.SetStrokeStyle(render.StrokeColor)
	s.SetLineWidth(render.StrokeWidth)
	s.StrokeRect(c.X, c.Y, width, height)
}

// Draw strokes the outline on s.
func (r Rectangle) Draw(s render.Surface) {
	strokeBox(s, r.Coords, r.Width, r.Height)
}

// Detect reports whether p is within tolerance of one of the four edges.
// Edges run through the padded nodes.
func (r Rectangle) Detect(p geometry.Coords) bool {
	n1, n2, n3, n4 := r.Nodes[0], r.Nodes[1], r.Nodes[2], r.Nodes[3]

	switch {
	case geometry.IsBetween(p.X, n1.X, n2.X) && geometry.IsNear(p.Y, n1.Y):
		return true
	case geometry.IsNear(p.X, n2.X) && geometry.IsBetween(p.Y, n2.Y, n3.Y):
		return true
	case geometry.IsBetween(p.X, n4.X, n3.X) && geometry.IsNear(p.Y, n4.Y):
		return true
	case geometry.IsNear(p.X, n1.X) && geometry.IsBetween(p.Y, n1.Y, n4.Y):
		return true
	}
	return false
}

// ContentDetected reports whether p lies inside the visible box, edges included.
func (r Rectangle) ContentDetected(p geometry.Coords) bool {
	return r.Bounds().Contains(p)
}

// Select renders the padded selection outline and the corner handles.
func (r Rectangle) Select(s render.Surface) {
	n1 := r.Nodes[0]
	s.SetStrokeStyle(render.AccentColor)
	s.SetLineWidth(render.StrokeWidth)
	s.StrokeRect(n1.X, n1.Y, r.Width+2*outward(r.Width), r.Height+2*outward(r.Height))
	drawHandles(s, r.Nodes[:])
}

// Update returns the rectangle after a drag from dragStart to dragEnd. With
// no grabbed node the whole box moves. A grabbed corner moves by the drag
// delta while the opposite corner stays anchored.
func (r Rectangle) Update(dragStart, dragEnd geometry.Coords, grabbed *Node) Rectangle {
	d := dragEnd.Sub(dragStart)
	if grabbed == nil {
		return r.reshape(r.Coords.Add(d), r.Width, r.Height)
	}

	x0, y0 := r.Coords.X, r.Coords.Y
	x1, y1 := x0+r.Width, y0+r.Height
	switch indexOf(r.Nodes[:], grabbed.ID) {
	case 0:
		x0, y0 = x0+d.X, y0+d.Y
	case 1:
		x1, y0 = x1+d.X, y0+d.Y
	case 2:
		x1, y1 = x1+d.X, y1+d.Y
	case 3:
		x0, y1 = x0+d.X, y1+d.Y
	default:
		return r
	}
	return r.reshape(geometry.Coords{X: x0, Y: y0}, x1-x0, y1-y0)
}

// Cursor returns the hover hint for p. A grabbed corner yields the resize
// direction it points in on screen.
func (r Rectangle) Cursor(p geometry.Coords, grabbed *Node) Cursor {
	if grabbed != nil {
		center := r.Bounds().Center()
		west := grabbed.X < center.X
		north := grabbed.Y < center.Y
		switch {
		case north && west:
			return CursorResizeNW
		case north:
			return CursorResizeNE
		case west:
			return CursorResizeSW
		default:
			return CursorResizeSE
		}
	}
	if r.Detect(p) || r.ContentDetected(p) {
		return CursorMove
	}
	return CursorDefault
}
