//go:build js && wasm

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"syscall/js"

	"github.com/inamate/sketchboard/internal/canvas"
	"github.com/inamate/sketchboard/internal/geometry"
	"github.com/inamate/sketchboard/internal/shape"
	"github.com/inamate/sketchboard/internal/state"
	"github.com/inamate/sketchboard/internal/store"
)

const (
	staticCanvasID      = "canvas-static"
	interactiveCanvasID = "canvas-interactive"
	storageKey          = "shapes"
)

var (
	controller *canvas.Controller
	top        *surface
	ctx        = context.Background()
)

func main() {
	doc := js.Global().Get("document")

	static, err := newSurface(doc, staticCanvasID)
	if err != nil {
		fail(err)
		return
	}
	interactive, err := newSurface(doc, interactiveCanvasID)
	if err != nil {
		fail(err)
		return
	}
	top = interactive

	st := state.New(store.NewShapeStore(localStorage{js.Global().Get("localStorage")}, storageKey))
	if err := st.Load(ctx); err != nil {
		slog.Warn("load shapes", "error", err)
	}

	controller, err = canvas.New(st, static, interactive, canvas.WithBackground())
	if err != nil {
		fail(err)
		return
	}
	resize(js.Undefined(), nil)

	on(interactive.el, "mousedown", func(e js.Value) { controller.PointerDown(ctx, point(e)) })
	on(interactive.el, "mousemove", func(e js.Value) { controller.PointerMove(point(e)) })
	// Releases outside the canvas still end the gesture.
	on(js.Global(), "mouseup", func(e js.Value) { controller.PointerUp(ctx, point(e)) })
	on(interactive.el, "click", func(e js.Value) { controller.Click(point(e)) })
	on(interactive.el, "wheel", func(e js.Value) {
		e.Call("preventDefault")
		controller.Wheel(e.Get("deltaX").Float(), e.Get("deltaY").Float())
	})
	js.Global().Call("addEventListener", "resize", js.FuncOf(resize))

	api := js.Global().Get("Object").New()
	api.Set("setTool", js.FuncOf(setTool))
	api.Set("getState", js.FuncOf(getState))
	js.Global().Set("sketchboard", api)
	js.Global().Set("sketchboardReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

func fail(err error) {
	slog.Error("start sketchboard", "error", err)
	js.Global().Set("sketchboardError", js.ValueOf(err.Error()))
}

// on registers fn for a DOM event and refreshes the cursor afterwards.
func on(target js.Value, event string, fn func(js.Value)) {
	target.Call("addEventListener", event, js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if len(args) > 0 {
			fn(args[0])
		}
		top.el.Get("style").Set("cursor", string(controller.Cursor()))
		return nil
	}))
}

// point converts a mouse event to coordinates local to the drawing surface.
func point(e js.Value) geometry.Coords {
	rect := top.el.Call("getBoundingClientRect")
	return geometry.Coords{
		X: e.Get("clientX").Float() - rect.Get("left").Float(),
		Y: e.Get("clientY").Float() - rect.Get("top").Float(),
	}
}

func resize(this js.Value, args []js.Value) interface{} {
	w := js.Global().Get("innerWidth").Float()
	h := js.Global().Get("innerHeight").Float()
	scale := js.Global().Get("devicePixelRatio").Float()
	controller.Resize(w, h, scale)
	return nil
}

func setTool(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || args[0].Type() != js.TypeString {
		return js.ValueOf(map[string]interface{}{"error": "missing tool name"})
	}
	tool, err := shape.ParseTool(args[0].String())
	if err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	controller.SetTool(tool)
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func getState(this js.Value, args []js.Value) interface{} {
	snap := controller.State().Snapshot()
	out := map[string]interface{}{
		"tool":       string(snap.Tool),
		"action":     string(snap.Action),
		"cursor":     string(controller.Cursor()),
		"shapeCount": snap.ShapeCount,
	}
	if snap.CurrentShape != nil {
		out["currentShapeId"] = snap.CurrentShape.ShapeID()
	}
	data, _ := json.Marshal(out)
	return js.ValueOf(string(data))
}

// surface draws on a <canvas> element's 2D context.
type surface struct {
	el            js.Value
	ctx           js.Value
	width, height float64
}

func newSurface(doc js.Value, id string) (*surface, error) {
	el := doc.Call("getElementById", id)
	if el.IsNull() || el.IsUndefined() {
		return nil, fmt.Errorf("canvas #%s not found", id)
	}
	c := el.Call("getContext", "2d")
	if c.IsNull() || c.IsUndefined() {
		return nil, fmt.Errorf("canvas #%s has no 2d context", id)
	}
	return &surface{el: el, ctx: c, width: el.Get("width").Float(), height: el.Get("height").Float()}, nil
}

func (s *surface) Size() (float64, float64) { return s.width, s.height }

// Resize sizes the backing store in device pixels and draws in CSS pixels.
func (s *surface) Resize(width, height, scale float64) {
	if scale <= 0 {
		scale = 1
	}
	s.width, s.height = width, height
	s.el.Set("width", width*scale)
	s.el.Set("height", height*scale)
	style := s.el.Get("style")
	style.Set("width", fmt.Sprintf("%gpx", width))
	style.Set("height", fmt.Sprintf("%gpx", height))
	s.ctx.Call("setTransform", scale, 0, 0, scale, 0, 0)
}

func (s *surface) ClearRect(x, y, w, h float64) { s.ctx.Call("clearRect", x, y, w, h) }
func (s *surface) Save()                        { s.ctx.Call("save") }
func (s *surface) Restore()                     { s.ctx.Call("restore") }
func (s *surface) Translate(x, y float64)       { s.ctx.Call("translate", x, y) }
func (s *surface) SetStrokeStyle(c string)      { s.ctx.Set("strokeStyle", c) }
func (s *surface) SetFillStyle(c string)        { s.ctx.Set("fillStyle", c) }
func (s *surface) SetLineWidth(w float64)       { s.ctx.Set("lineWidth", w) }
func (s *surface) BeginPath()                   { s.ctx.Call("beginPath") }
func (s *surface) ClosePath()                   { s.ctx.Call("closePath") }
func (s *surface) MoveTo(x, y float64)          { s.ctx.Call("moveTo", x, y) }
func (s *surface) LineTo(x, y float64)          { s.ctx.Call("lineTo", x, y) }
func (s *surface) Stroke()                      { s.ctx.Call("stroke") }
func (s *surface) Fill()                        { s.ctx.Call("fill") }
func (s *surface) StrokeRect(x, y, w, h float64) {
	s.ctx.Call("strokeRect", x, y, w, h)
}
func (s *surface) FillRect(x, y, w, h float64) { s.ctx.Call("fillRect", x, y, w, h) }
func (s *surface) Arc(x, y, r, start, end float64) {
	s.ctx.Call("arc", x, y, r, start, end)
}

// localStorage is a store.Backend over window.localStorage.
type localStorage struct {
	v js.Value
}

func (l localStorage) Get(_ context.Context, key string) ([]byte, error) {
	item := l.v.Call("getItem", key)
	if item.IsNull() || item.IsUndefined() {
		return nil, store.ErrNotFound
	}
	return []byte(item.String()), nil
}

func (l localStorage) Put(_ context.Context, key string, value []byte) error {
	l.v.Call("setItem", key, string(value))
	return nil
}

func (l localStorage) Close() error { return nil }
