// Package canvas turns pointer input into shape edits on a two-layer canvas.
//
// The static layer holds committed shapes. The interactive layer holds the
// shape being drawn or edited plus selection handles. Every paint on either
// layer is translated by the current pan offset, so shapes are always stored
// and hit-tested in un-panned logical coordinates.
package canvas

import (
	"context"
	"errors"
	"log/slog"

	"github.com/inamate/sketchboard/internal/geometry"
	"github.com/inamate/sketchboard/internal/render"
	"github.com/inamate/sketchboard/internal/shape"
	"github.com/inamate/sketchboard/internal/state"
)

var ErrMissingSurface = errors.New("canvas: missing drawing surface")

// Option configures a Controller.
type Option func(*Controller)

// WithBackground fills the static layer with the background color on every
// full repaint.
func WithBackground() Option {
	return func(c *Controller) { c.background = true }
}

// Controller drives the draw/select/edit state machine. Its methods are not
// safe for concurrent use; callers deliver one input event at a time.
type Controller struct {
	state       *state.State
	shapes      *shape.Dispatcher
	static      render.Surface
	interactive render.Surface
	background  bool

	grabbed *shape.Node
	editPos geometry.Coords // last pointer position of an edit
	cursor  shape.Cursor
}

// New wires a controller to its state and both layers. Either surface being
// nil is fatal.
func New(st *state.State, static, interactive render.Surface, opts ...Option) (*Controller, error) {
	if static == nil || interactive == nil {
		return nil, ErrMissingSurface
	}
	if st == nil {
		st = state.New(nil)
	}
	c := &Controller{
		state:       st,
		shapes:      shape.NewDispatcher(st),
		static:      static,
		interactive: interactive,
		cursor:      shape.CursorDefault,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// State returns the interaction state the controller drives.
func (c *Controller) State() *state.State { return c.state }

// Cursor returns the hint computed by the last hover.
func (c *Controller) Cursor() shape.Cursor { return c.cursor }

// logical converts a surface-local point into un-panned canvas space.
func (c *Controller) logical(p geometry.Coords) geometry.Coords {
	return p.Sub(c.state.Offset())
}

func (c *Controller) paint(s render.Surface, draw func()) {
	o := c.state.Offset()
	render.Translated(s, o.X, o.Y, draw)
}

// Redraw repaints both layers from the state.
func (c *Controller) Redraw() {
	c.drawStatic()
	c.drawInteractive()
}

func (c *Controller) drawStatic() {
	render.Clear(c.static)
	c.paint(c.static, func() {
		if c.background {
			c.static.SetFillStyle(render.BackgroundColor)
			c.static.FillRect(-render.BackgroundExtent, -render.BackgroundExtent,
				2*render.BackgroundExtent, 2*render.BackgroundExtent)
		}
		for _, sh := range c.state.Shapes() {
			c.shapes.DrawShape(c.static, sh)
		}
	})
}

func (c *Controller) drawInteractive() {
	render.Clear(c.interactive)
	cur, ok := c.state.CurrentShape()
	if !ok {
		return
	}
	c.paint(c.interactive, func() {
		c.shapes.SelectShape(c.interactive, cur)
	})
}

type hit struct {
	shape shape.Shape
	node  *shape.Node
}

// hitAt resolves what a logical point lands on. The current selection wins,
// including its handles and interior; then committed shapes, topmost first,
// by edge only.
func (c *Controller) hitAt(p geometry.Coords) (hit, bool) {
	if cur, ok := c.state.CurrentShape(); ok {
		if n, ok := c.shapes.NodeSelected(cur, p); ok {
			return hit{shape: cur, node: &n}, true
		}
		if c.shapes.IsShapeDetected(cur, p) || c.shapes.IsShapeContentDetected(cur, p) {
			return hit{shape: cur}, true
		}
	}

	committed := c.state.Shapes()
	for i := len(committed) - 1; i >= 0; i-- {
		sh := committed[i]
		if !c.shapes.IsShapeDetected(sh, p) {
			continue
		}
		h := hit{shape: sh}
		if n, ok := c.shapes.NodeSelected(sh, p); ok {
			h.node = &n
		}
		return h, true
	}
	return hit{}, false
}

// Hover updates and returns the cursor hint for a surface-local point.
func (c *Controller) Hover(p geometry.Coords) shape.Cursor {
	c.cursor = c.hover(c.logical(p))
	return c.cursor
}

func (c *Controller) hover(p geometry.Coords) shape.Cursor {
	if c.state.Action() == state.ActionEdit {
		if cur, ok := c.state.CurrentShape(); ok && c.grabbed != nil {
			return c.shapes.CursorOnHover(cur, p, c.grabbed)
		}
		return shape.CursorMove
	}
	if h, ok := c.hitAt(p); ok {
		return c.shapes.CursorOnHover(h.shape, p, h.node)
	}
	return shape.CursorDefault
}

// SetTool arms t. A shape being edited is committed first, at its last
// previewed geometry. Dropping the selection also clears the interactive layer.
func (c *Controller) SetTool(t shape.Tool) {
	c.settleEdit(context.Background())
	_, had := c.state.CurrentShape()
	c.state.SetTool(t)
	if _, has := c.state.CurrentShape(); had && !has {
		render.Clear(c.interactive)
	}
}

// PointerDown starts a gesture at a surface-local point: editing when it
// lands on a shape, drawing when a drawing tool is armed.
func (c *Controller) PointerDown(ctx context.Context, p geometry.Coords) {
	// A release can be lost outside the surface.
	c.settleEdit(ctx)

	pos := c.logical(p)
	c.state.SetStartPosition(pos)

	if h, ok := c.hitAt(pos); ok {
		c.startEditing(ctx, h)
		return
	}
	if c.state.Tool().Draws() {
		c.state.SetAction(state.ActionDraw)
		render.Clear(c.interactive)
		slog.Debug("gesture started", "action", state.ActionDraw, "tool", c.state.Tool())
	}
}

func (c *Controller) startEditing(ctx context.Context, h hit) {
	c.state.SetAction(state.ActionEdit)
	c.state.SetCurrentShape(h.shape)
	c.grabbed = h.node
	c.editPos = c.state.StartPosition()

	// The committed list never holds a shape mid-edit. State logs and
	// returns persistence failures; the in-memory list stays authoritative.
	if err := c.state.RemoveShape(ctx, h.shape.ShapeID()); err != nil {
		slog.Debug("edit continues unsaved", "shape", h.shape.ShapeID(), "error", err)
	}
	c.drawStatic()

	render.Clear(c.interactive)
	c.paint(c.interactive, func() {
		c.shapes.DrawShape(c.interactive, h.shape)
		c.shapes.SelectShape(c.interactive, h.shape)
	})
	slog.Debug("gesture started", "action", state.ActionEdit, "shape", h.shape.ShapeID(), "grabbed", h.node != nil)
}

// PointerMove re-evaluates the hover hint and repaints the live layer of an
// active gesture.
func (c *Controller) PointerMove(p geometry.Coords) {
	pos := c.logical(p)
	c.cursor = c.hover(pos)
	start := c.state.StartPosition()

	switch c.state.Action() {
	case state.ActionEdit:
		cur, ok := c.state.CurrentShape()
		if !ok {
			return
		}
		c.editPos = pos
		render.Clear(c.interactive)
		c.paint(c.interactive, func() {
			updated, ok := c.shapes.UpdateShape(cur, start, pos, c.grabbed)
			if !ok {
				return
			}
			c.shapes.DrawShape(c.interactive, updated)
			c.shapes.SelectShape(c.interactive, updated)
		})

	case state.ActionDraw:
		render.Clear(c.interactive)
		c.paint(c.interactive, func() {
			c.shapes.DrawCoords(c.interactive, start, pos)
		})
	}
}

// PointerUp ends the active gesture. A release at the exact start point
// creates nothing and leaves an edited shape unchanged. Any finished gesture
// re-arms the selection tool.
func (c *Controller) PointerUp(ctx context.Context, p geometry.Coords) {
	pos := c.logical(p)
	start := c.state.StartPosition()

	switch c.state.Action() {
	case state.ActionEdit:
		c.stopEditing(ctx, start, pos)
	case state.ActionDraw:
		c.stopDrawing(ctx, start, pos)
	default:
		return
	}

	c.grabbed = nil
	c.state.SetAction(state.ActionIdle)
}

func (c *Controller) stopEditing(ctx context.Context, start, end geometry.Coords) {
	cur, ok := c.state.CurrentShape()
	if !ok {
		return
	}
	render.Clear(c.interactive)

	committed := cur
	if !start.Equal(end) {
		if updated, ok := c.shapes.UpdateShape(cur, start, end, c.grabbed); ok {
			committed = updated
		}
	}

	if err := c.state.AddShape(ctx, committed); err != nil {
		slog.Debug("edited shape kept unsaved", "shape", committed.ShapeID(), "error", err)
	}
	c.state.SetTool(shape.ToolSelection)
	c.state.SetCurrentShape(committed)
	c.drawStatic()
	c.drawInteractive()
	slog.Debug("shape committed", "id", committed.ShapeID(), "kind", committed.Kind(), "moved", !start.Equal(end))
}

// settleEdit ends an edit whose release never arrived, committing the shape
// where the pointer last left it.
func (c *Controller) settleEdit(ctx context.Context) {
	if c.state.Action() != state.ActionEdit {
		return
	}
	c.stopEditing(ctx, c.state.StartPosition(), c.editPos)
	c.grabbed = nil
	c.state.SetAction(state.ActionIdle)
}

func (c *Controller) stopDrawing(ctx context.Context, start, end geometry.Coords) {
	defer c.state.SetTool(shape.ToolSelection)

	if start.Equal(end) {
		render.Clear(c.interactive)
		return
	}
	sh, ok := c.shapes.CreateShape(start, end)
	if !ok {
		return
	}

	if err := c.state.AddShape(ctx, sh); err != nil {
		slog.Debug("drawn shape kept unsaved", "shape", sh.ShapeID(), "error", err)
	}
	render.Clear(c.interactive)
	c.paint(c.static, func() {
		c.shapes.DrawShape(c.static, sh)
	})
	slog.Debug("shape committed", "id", sh.ShapeID(), "kind", sh.Kind())
}

// Click selects whatever lies under a surface-local point while the
// selection tool is armed. Clicking empty space clears the selection.
func (c *Controller) Click(p geometry.Coords) {
	if c.state.Tool() != shape.ToolSelection {
		return
	}
	h, ok := c.hitAt(c.logical(p))
	if !ok {
		c.state.ClearCurrentShape()
		render.Clear(c.interactive)
		return
	}

	c.state.SetCurrentShape(h.shape)
	c.drawInteractive()
}

// Wheel pans the view against the wheel delta and repaints both layers.
func (c *Controller) Wheel(dx, dy float64) {
	c.state.Pan(dx, dy)
	c.Redraw()
}

// Resize forwards the new size to surfaces that track the window and
// repaints both layers.
func (c *Controller) Resize(width, height, scale float64) {
	for _, s := range []render.Surface{c.static, c.interactive} {
		if r, ok := s.(render.Resizer); ok {
			r.Resize(width, height, scale)
		}
	}
	c.Redraw()
}
