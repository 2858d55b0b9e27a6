package render

import (
	"reflect"
	"testing"
)

func ops(cmds []DrawCommand) []string {
	out := make([]string, len(cmds))
	for i, c := range cmds {
		out[i] = c.Op
	}
	return out
}

func TestRecorderFullClearResetsRetained(t *testing.T) {
	r := NewRecorder(800, 600)
	r.MoveTo(1, 2)
	r.LineTo(3, 4)

	Clear(r)
	r.Stroke()

	got := ops(r.Commands())
	want := []string{OpClearRect, OpStroke}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Commands() = %v, want %v", got, want)
	}

	pending := ops(r.Flush())
	wantPending := []string{OpMoveTo, OpLineTo, OpClearRect, OpStroke}
	if !reflect.DeepEqual(pending, wantPending) {
		t.Errorf("Flush() = %v, want %v", pending, wantPending)
	}
	if r.Dirty() {
		t.Error("Dirty() = true after Flush, want false")
	}
}

func TestRecorderPartialClearIsRetained(t *testing.T) {
	r := NewRecorder(800, 600)
	r.StrokeRect(0, 0, 10, 10)
	r.ClearRect(0, 0, 5, 5)

	if n := len(r.Commands()); n != 2 {
		t.Errorf("len(Commands()) = %d, want 2", n)
	}
}

func TestRecorderClearUnderTranslationIsPartial(t *testing.T) {
	r := NewRecorder(100, 100)
	r.FillRect(0, 0, 1, 1)
	Translated(r, 50, 0, func() {
		r.ClearRect(0, 0, 100, 100)
	})
	got := ops(r.Commands())
	want := []string{OpFillRect, OpSave, OpTranslate, OpClearRect, OpRestore}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Commands() = %v, want %v", got, want)
	}
}

func TestRecorderResize(t *testing.T) {
	r := NewRecorder(100, 100)
	r.Stroke()
	r.Resize(1024, 768, 2)

	if w, h := r.Size(); w != 1024 || h != 768 {
		t.Errorf("Size() = %v,%v, want 1024,768", w, h)
	}
	if r.Scale() != 2 {
		t.Errorf("Scale() = %v, want 2", r.Scale())
	}
	if n := len(r.Commands()); n != 0 {
		t.Errorf("len(Commands()) after resize = %d, want 0", n)
	}
}

func TestReplayReproducesStream(t *testing.T) {
	src := NewRecorder(200, 200)
	Clear(src)
	Translated(src, 10, 20, func() {
		src.SetStrokeStyle(StrokeColor)
		src.SetLineWidth(StrokeWidth)
		src.BeginPath()
		src.MoveTo(0, 0)
		src.LineTo(5, 5)
		src.Stroke()
		src.Arc(1, 1, HandleRadius, 0, 6.28)
		src.SetFillStyle(HandleFill)
		src.Fill()
		src.ClosePath()
		src.StrokeRect(1, 2, 3, 4)
		src.FillRect(4, 3, 2, 1)
	})

	dst := NewRecorder(200, 200)
	Replay(dst, src.Commands())

	if !reflect.DeepEqual(dst.Commands(), src.Commands()) {
		t.Errorf("Replay() produced\n%v\nwant\n%v", dst.Commands(), src.Commands())
	}
}

func TestReplaySkipsMalformed(t *testing.T) {
	dst := NewRecorder(10, 10)
	Replay(dst, []DrawCommand{
		{Op: OpMoveTo, Args: []float64{1}},
		{Op: "teleport"},
		{Op: OpStroke},
	})
	got := ops(dst.Commands())
	if !reflect.DeepEqual(got, []string{OpStroke}) {
		t.Errorf("Commands() = %v, want [stroke]", got)
	}
}
