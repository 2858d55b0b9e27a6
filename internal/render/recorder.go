package render

import "sync"

// Draw command operations. Names match the canvas 2D method they replay as.
const (
	OpClearRect   = "clearRect"
	OpSave        = "save"
	OpRestore     = "restore"
	OpTranslate   = "translate"
	OpStrokeStyle = "strokeStyle"
	OpFillStyle   = "fillStyle"
	OpLineWidth   = "lineWidth"
	OpBeginPath   = "beginPath"
	OpClosePath   = "closePath"
	OpMoveTo      = "moveTo"
	OpLineTo      = "lineTo"
	OpArc         = "arc"
	OpStroke      = "stroke"
	OpFill        = "fill"
	OpStrokeRect  = "strokeRect"
	OpFillRect    = "fillRect"
)

// DrawCommand is a single drawing operation for a remote or deferred surface
// to execute. Args are positional in the order of the matching Surface method.
type DrawCommand struct {
	Op    string    `json:"op"`
	Args  []float64 `json:"args,omitempty"`
	Style string    `json:"style,omitempty"`
}

// Recorder is a Surface that records what is drawn on it instead of
// rasterizing. It keeps two views of the stream: the retained display list
// since the last full clear, and the commands pending since the last Flush.
type Recorder struct {
	mu       sync.Mutex
	width    float64
	height   float64
	scale    float64
	tx, ty   float64
	stack    [][2]float64
	retained []DrawCommand
	pending  []DrawCommand
}

// NewRecorder returns a recorder of the given logical size.
func NewRecorder(width, height float64) *Recorder {
	return &Recorder{width: width, height: height, scale: 1}
}

// Commands returns a copy of the retained display list. Replaying it on a
// blank surface reproduces the current picture.
func (r *Recorder) Commands() []DrawCommand {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]DrawCommand(nil), r.retained...)
}

// Flush returns the commands recorded since the previous Flush and forgets them.
func (r *Recorder) Flush() []DrawCommand {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.pending
	r.pending = nil
	return out
}

// Dirty reports whether anything was drawn since the previous Flush.
func (r *Recorder) Dirty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending) > 0
}

// Scale returns the device pixel ratio set by the last Resize.
func (r *Recorder) Scale() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.scale
}

func (r *Recorder) record(cmd DrawCommand) {
	r.retained = append(r.retained, cmd)
	r.pending = append(r.pending, cmd)
}

func (r *Recorder) emit(op string, args ...float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record(DrawCommand{Op: op, Args: args})
}

func (r *Recorder) emitStyle(op, style string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record(DrawCommand{Op: op, Style: style})
}

func (r *Recorder) Size() (float64, float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

// Resize changes the logical size. Like a canvas element, a resized
// recorder starts blank.
func (r *Recorder) Resize(width, height, scale float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if scale <= 0 {
		scale = 1
	}
	r.width, r.height, r.scale = width, height, scale
	r.tx, r.ty = 0, 0
	r.stack = nil
	r.retained = nil
}

func (r *Recorder) ClearRect(x, y, width, height float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cmd := DrawCommand{Op: OpClearRect, Args: []float64{x, y, width, height}}
	left, top := x+r.tx, y+r.ty
	if left <= 0 && top <= 0 && left+width >= r.width && top+height >= r.height {
		r.retained = []DrawCommand{cmd}
		r.pending = append(r.pending, cmd)
		return
	}
	r.record(cmd)
}

func (r *Recorder) Save() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stack = append(r.stack, [2]float64{r.tx, r.ty})
	r.record(DrawCommand{Op: OpSave})
}

func (r *Recorder) Restore() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n := len(r.stack); n > 0 {
		r.tx, r.ty = r.stack[n-1][0], r.stack[n-1][1]
		r.stack = r.stack[:n-1]
	}
	r.record(DrawCommand{Op: OpRestore})
}

func (r *Recorder) Translate(x, y float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tx += x
	r.ty += y
	r.record(DrawCommand{Op: OpTranslate, Args: []float64{x, y}})
}

func (r *Recorder) SetStrokeStyle(color string) { r.emitStyle(OpStrokeStyle, color) }
func (r *Recorder) SetFillStyle(color string)   { r.emitStyle(OpFillStyle, color) }
func (r *Recorder) SetLineWidth(width float64)  { r.emit(OpLineWidth, width) }
func (r *Recorder) BeginPath()                  { r.emit(OpBeginPath) }
func (r *Recorder) ClosePath()                  { r.emit(OpClosePath) }
func (r *Recorder) MoveTo(x, y float64)         { r.emit(OpMoveTo, x, y) }
func (r *Recorder) LineTo(x, y float64)         { r.emit(OpLineTo, x, y) }
func (r *Recorder) Stroke()                     { r.emit(OpStroke) }
func (r *Recorder) Fill()                       { r.emit(OpFill) }

func (r *Recorder) Arc(x, y, radius, startAngle, endAngle float64) {
	r.emit(OpArc, x, y, radius, startAngle, endAngle)
}

func (r *Recorder) StrokeRect(x, y, width, height float64) {
	r.emit(OpStrokeRect, x, y, width, height)
}

func (r *Recorder) FillRect(x, y, width, height float64) {
	r.emit(OpFillRect, x, y, width, height)
}

// Replay executes commands against s. Commands with missing arguments or an
// unknown op are skipped.
func Replay(s Surface, commands []DrawCommand) {
	for _, cmd := range commands {
		a := cmd.Args
		switch cmd.Op {
		case OpClearRect:
			if len(a) == 4 {
				s.ClearRect(a[0], a[1], a[2], a[3])
			}
		case OpSave:
			s.Save()
		case OpRestore:
			s.Restore()
		case OpTranslate:
			if len(a) == 2 {
				s.Translate(a[0], a[1])
			}
		case OpStrokeStyle:
			s.SetStrokeStyle(cmd.Style)
		case OpFillStyle:
			s.SetFillStyle(cmd.Style)
		case OpLineWidth:
			if len(a) == 1 {
				s.SetLineWidth(a[0])
			}
		case OpBeginPath:
			s.BeginPath()
		case OpClosePath:
			s.ClosePath()
		case OpMoveTo:
			if len(a) == 2 {
				s.MoveTo(a[0], a[1])
			}
		case OpLineTo:
			if len(a) == 2 {
				s.LineTo(a[0], a[1])
			}
		case OpArc:
			if len(a) == 5 {
				s.Arc(a[0], a[1], a[2], a[3], a[4])
			}
		case OpStroke:
			s.Stroke()
		case OpFill:
			s.Fill()
		case OpStrokeRect:
			if len(a) == 4 {
				s.StrokeRect(a[0], a[1], a[2], a[3])
			}
		case OpFillRect:
			if len(a) == 4 {
				s.FillRect(a[0], a[1], a[2], a[3])
			}
		}
	}
}
