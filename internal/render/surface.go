// Package render defines the 2D drawing surface both canvas layers draw on.
package render

// Layer names one of the two stacked drawing surfaces.
type Layer string

const (
	// LayerStatic holds every committed shape.
	LayerStatic Layer = "static"
	// LayerInteractive holds the in-progress shape and selection handles.
	LayerInteractive Layer = "interactive"
)

// Style constants shared by every primitive.
const (
	StrokeColor      = "black"
	StrokeWidth      = 2.0
	AccentColor      = "#7dd3fc"
	HandleFill       = "white"
	HandleRadius     = 5.0
	BackgroundColor  = "#f0f0f0"
	BackgroundExtent = 10000.0
)

// Surface is a retained 2D drawing context with a save/restore transform
// stack, modelled on the HTML canvas 2D API.
type Surface interface {
	// Size returns the surface extent in logical (CSS) units.
	Size() (width, height float64)

	ClearRect(x, y, width, height float64)
	Save()
	Restore()
	Translate(x, y float64)

	SetStrokeStyle(color string)
	SetFillStyle(color string)
	SetLineWidth(width float64)

	BeginPath()
	ClosePath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Arc(x, y, radius, startAngle, endAngle float64)
	Stroke()
	Fill()

	StrokeRect(x, y, width, height float64)
	FillRect(x, y, width, height float64)
}

// Resizer is implemented by surfaces whose backing store follows the window.
// scale is the device pixel ratio.
type Resizer interface {
	Resize(width, height, scale float64)
}

// Clear wipes the whole surface.
func Clear(s Surface) {
	w, h := s.Size()
	s.ClearRect(0, 0, w, h)
}

// Translated runs draw between Save/Translate and Restore so every
// coordinate draw emits lands in un-panned logical space.
func Translated(s Surface, dx, dy float64, draw func()) {
	s.Save()
	s.Translate(dx, dy)
	draw()
	s.Restore()
}
