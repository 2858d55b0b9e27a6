// Package desktop hosts the drawing surface inside a fyne window.
package desktop

import (
	"image/color"
	"math"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"

	"github.com/inamate/sketchboard/internal/render"
)

var namedColors = map[string]color.Color{
	"black":       color.Black,
	"white":       color.White,
	"transparent": color.Transparent,
}

// parseColor reads a CSS color name or #rgb / #rrggbb. Anything else is black.
func parseColor(s string) color.Color {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c
	}
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return color.Black
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.Black
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.Black
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}

type segment struct{ from, to fyne.Position }

type arc struct {
	center fyne.Position
	radius float32
}

// scene is a render.Surface that turns a display list into fyne canvas
// objects. Arcs are drawn as full circles.
type scene struct {
	width, height float64
	tx, ty        float64
	stack         [][2]float64

	stroke    color.Color
	fill      color.Color
	lineWidth float32

	segments []segment
	arcs     []arc
	start    fyne.Position
	cur      fyne.Position
	hasCur   bool

	objects []fyne.CanvasObject
}

// Build converts a layer's display list into canvas objects for a surface of
// the given size.
func Build(width, height float64, cmds []render.DrawCommand) []fyne.CanvasObject {
	s := &scene{
		width:     width,
		height:    height,
		stroke:    color.Black,
		fill:      color.Black,
		lineWidth: 1,
	}
	render.Replay(s, cmds)
	return s.objects
}

func (s *scene) pos(x, y float64) fyne.Position {
	return fyne.NewPos(float32(x+s.tx), float32(y+s.ty))
}

func (s *scene) Size() (float64, float64) { return s.width, s.height }

func (s *scene) ClearRect(x, y, width, height float64) {
	left, top := x+s.tx, y+s.ty
	if left <= 0 && top <= 0 && left+width >= s.width && top+height >= s.height {
		s.objects = nil
	}
}

func (s *scene) Save() { s.stack = append(s.stack, [2]float64{s.tx, s.ty}) }

func (s *scene) Restore() {
	if n := len(s.stack); n > 0 {
		s.tx, s.ty = s.stack[n-1][0], s.stack[n-1][1]
		s.stack = s.stack[:n-1]
	}
}

func (s *scene) Translate(x, y float64) {
	s.tx += x
	s.ty += y
}

func (s *scene) SetStrokeStyle(c string)    { s.stroke = parseColor(c) }
func (s *scene) SetFillStyle(c string)      { s.fill = parseColor(c) }
func (s *scene) SetLineWidth(width float64) { s.lineWidth = float32(width) }

func (s *scene) BeginPath() {
	s.segments = nil
	s.arcs = nil
	s.hasCur = false
}

func (s *scene) ClosePath() {
	if s.hasCur && s.cur != s.start {
		s.segments = append(s.segments, segment{s.cur, s.start})
		s.cur = s.start
	}
}

func (s *scene) MoveTo(x, y float64) {
	s.cur = s.pos(x, y)
	s.start = s.cur
	s.hasCur = true
}

func (s *scene) LineTo(x, y float64) {
	p := s.pos(x, y)
	if !s.hasCur {
		s.MoveTo(x, y)
		return
	}
	s.segments = append(s.segments, segment{s.cur, p})
	s.cur = p
}

func (s *scene) Arc(x, y, radius, _, _ float64) {
	s.arcs = append(s.arcs, arc{center: s.pos(x, y), radius: float32(radius)})
	s.hasCur = false
}

func circleAt(a arc) *canvas.Circle {
	c := canvas.NewCircle(color.Transparent)
	c.Position1 = fyne.NewPos(a.center.X-a.radius, a.center.Y-a.radius)
	c.Position2 = fyne.NewPos(a.center.X+a.radius, a.center.Y+a.radius)
	return c
}

func (s *scene) Stroke() {
	for _, seg := range s.segments {
		l := canvas.NewLine(s.stroke)
		l.Position1, l.Position2 = seg.from, seg.to
		l.StrokeWidth = s.lineWidth
		s.objects = append(s.objects, l)
	}
	for _, a := range s.arcs {
		c := circleAt(a)
		c.StrokeColor = s.stroke
		c.StrokeWidth = s.lineWidth
		s.objects = append(s.objects, c)
	}
}

func (s *scene) Fill() {
	for _, a := range s.arcs {
		c := circleAt(a)
		c.FillColor = s.fill
		s.objects = append(s.objects, c)
	}
}

func (s *scene) rect(x, y, width, height float64) *canvas.Rectangle {
	if width < 0 {
		x, width = x+width, -width
	}
	if height < 0 {
		y, height = y+height, -height
	}
	r := canvas.NewRectangle(color.Transparent)
	r.Move(s.pos(x, y))
	r.Resize(fyne.NewSize(float32(width), float32(height)))
	return r
}

func (s *scene) StrokeRect(x, y, width, height float64) {
	r := s.rect(x, y, width, height)
	r.StrokeColor = s.stroke
	r.StrokeWidth = s.lineWidth
	s.objects = append(s.objects, r)
}

// FillRect is clipped to the surface so oversized fills stay cheap.
func (s *scene) FillRect(x, y, width, height float64) {
	if width < 0 {
		x, width = x+width, -width
	}
	if height < 0 {
		y, height = y+height, -height
	}
	left := math.Max(x+s.tx, 0)
	top := math.Max(y+s.ty, 0)
	right := math.Min(x+s.tx+width, s.width)
	bottom := math.Min(y+s.ty+height, s.height)
	if right <= left || bottom <= top {
		return
	}
	r := canvas.NewRectangle(s.fill)
	r.Move(fyne.NewPos(float32(left), float32(top)))
	r.Resize(fyne.NewSize(float32(right-left), float32(bottom-top)))
	s.objects = append(s.objects, r)
}
