package desktop

import (
	"context"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	sketch "github.com/inamate/sketchboard/internal/canvas"
	"github.com/inamate/sketchboard/internal/geometry"
	"github.com/inamate/sketchboard/internal/render"
	"github.com/inamate/sketchboard/internal/shape"
	"github.com/inamate/sketchboard/internal/state"
)

const (
	minWidth  = 320
	minHeight = 240
)

// Board is a fyne widget showing both drawing layers and feeding pointer
// input to a gesture controller.
type Board struct {
	widget.BaseWidget

	controller  *sketch.Controller
	static      *render.Recorder
	interactive *render.Recorder
	ctx         context.Context
}

var (
	_ fyne.Widget        = (*Board)(nil)
	_ fyne.Draggable     = (*Board)(nil)
	_ fyne.Tappable      = (*Board)(nil)
	_ fyne.Scrollable    = (*Board)(nil)
	_ desktop.Mouseable  = (*Board)(nil)
	_ desktop.Hoverable  = (*Board)(nil)
	_ desktop.Cursorable = (*Board)(nil)
)

func NewBoard(ctx context.Context, st *state.State) (*Board, error) {
	static := render.NewRecorder(minWidth, minHeight)
	interactive := render.NewRecorder(minWidth, minHeight)
	controller, err := sketch.New(st, static, interactive, sketch.WithBackground())
	if err != nil {
		return nil, err
	}

	b := &Board{
		controller:  controller,
		static:      static,
		interactive: interactive,
		ctx:         ctx,
	}
	b.ExtendBaseWidget(b)
	controller.Redraw()
	return b, nil
}

func (b *Board) Controller() *sketch.Controller { return b.controller }

func (b *Board) SetTool(t shape.Tool) {
	b.controller.SetTool(t)
	b.repaint()
}

// repaint refreshes the widget when either layer was drawn on.
func (b *Board) repaint() {
	if !b.static.Dirty() && !b.interactive.Dirty() {
		return
	}
	b.static.Flush()
	b.interactive.Flush()
	b.Refresh()
}

func coords(p fyne.Position) geometry.Coords {
	return geometry.Coords{X: float64(p.X), Y: float64(p.Y)}
}

func (b *Board) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.controller.PointerDown(b.ctx, coords(e.Position))
	b.repaint()
}

func (b *Board) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.controller.PointerUp(b.ctx, coords(e.Position))
	b.repaint()
}

func (b *Board) MouseIn(e *desktop.MouseEvent) { b.MouseMoved(e) }
func (b *Board) MouseOut()                     {}

func (b *Board) MouseMoved(e *desktop.MouseEvent) {
	b.controller.PointerMove(coords(e.Position))
	b.repaint()
}

func (b *Board) Dragged(e *fyne.DragEvent) {
	b.controller.PointerMove(coords(e.Position))
	b.repaint()
}

func (b *Board) DragEnd() {}

func (b *Board) Tapped(e *fyne.PointEvent) {
	b.controller.Click(coords(e.Position))
	b.repaint()
}

// Scrolled pans the view. fyne reports content movement, the opposite sign
// of a browser wheel delta.
func (b *Board) Scrolled(e *fyne.ScrollEvent) {
	b.controller.Wheel(float64(-e.Scrolled.DX), float64(-e.Scrolled.DY))
	b.repaint()
}

func (b *Board) Cursor() desktop.Cursor {
	return cursorFor(b.controller.Cursor())
}

func cursorFor(c shape.Cursor) desktop.Cursor {
	switch c {
	case shape.CursorPointer:
		return desktop.PointerCursor
	case shape.CursorMove, shape.CursorResizeNW, shape.CursorResizeNE,
		shape.CursorResizeSE, shape.CursorResizeSW:
		return desktop.CrosshairCursor
	}
	return desktop.DefaultCursor
}

func (b *Board) CreateRenderer() fyne.WidgetRenderer {
	r := &boardRenderer{board: b}
	r.rebuild()
	return r
}

type boardRenderer struct {
	board   *Board
	size    fyne.Size
	objects []fyne.CanvasObject
}

func (r *boardRenderer) rebuild() {
	w, h := r.board.static.Size()
	objects := Build(w, h, r.board.static.Commands())
	r.objects = append(objects, Build(w, h, r.board.interactive.Commands())...)
}

func (r *boardRenderer) Objects() []fyne.CanvasObject { return r.objects }

func (r *boardRenderer) Layout(size fyne.Size) {
	if size == r.size || size.Width <= 0 || size.Height <= 0 {
		return
	}
	r.size = size
	r.board.controller.Resize(float64(size.Width), float64(size.Height), 1)
	r.board.static.Flush()
	r.board.interactive.Flush()
	r.rebuild()
}

func (r *boardRenderer) MinSize() fyne.Size { return fyne.NewSize(minWidth, minHeight) }

func (r *boardRenderer) Refresh() {
	r.rebuild()
	canvas.Refresh(r.board)
}

func (r *boardRenderer) Destroy() {}
