package geometry

import (
	"math"
	"testing"
)

func TestIsBetween(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		a, b  float64
		want  bool
	}{
		{"inside ascending", 50, 10, 100, true},
		{"inside descending", 50, 100, 10, true},
		{"lower tolerance edge", 3, 10, 100, true},
		{"upper tolerance edge", 107, 10, 100, true},
		{"upper tolerance edge descending", 107, 100, 10, true},
		{"just below", 2.999, 10, 100, false},
		{"just above", 107.001, 100, 10, false},
		{"negative range", -20, -10, -30, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsBetween(tt.value, tt.a, tt.b); got != tt.want {
				t.Errorf("IsBetween(%v, %v, %v) = %v, want %v", tt.value, tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestIsBetweenSymmetry(t *testing.T) {
	for _, pair := range [][2]float64{{0, 40}, {40, 0}, {-15, 15}, {3, 3}} {
		a, b := pair[0], pair[1]
		lo := math.Min(a, b) - Tolerance
		hi := math.Max(a, b) + Tolerance
		for v := lo; v <= hi; v += 0.5 {
			if !IsBetween(v, a, b) || !IsBetween(v, b, a) {
				t.Errorf("IsBetween(%v, %v, %v) = false inside tolerance range", v, a, b)
			}
		}
		if IsBetween(lo-0.01, a, b) || IsBetween(hi+0.01, a, b) {
			t.Errorf("IsBetween accepted a value outside [%v, %v]", lo, hi)
		}
	}
}

func TestIsNear(t *testing.T) {
	if !IsNear(17, 10) {
		t.Error("IsNear(17, 10) = false, want true")
	}
	if IsNear(17.5, 10) {
		t.Error("IsNear(17.5, 10) = true, want false")
	}
}

func TestDistanceToLine(t *testing.T) {
	tests := []struct {
		name string
		p    Coords
		a, b Coords
		want float64
	}{
		{"on diagonal", Coords{5, 5}, Coords{0, 0}, Coords{10, 10}, 0},
		{"off horizontal", Coords{5, 3}, Coords{0, 0}, Coords{10, 0}, 3},
		{"off vertical", Coords{4, 5}, Coords{0, 0}, Coords{0, 10}, 4},
		{"off diagonal", Coords{0, 10}, Coords{0, 0}, Coords{10, 10}, 10 / math.Sqrt2},
		{"degenerate", Coords{3, 4}, Coords{0, 0}, Coords{0, 0}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceToLine(tt.p, tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("DistanceToLine(%v, %v, %v) = %v, want %v", tt.p, tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestNearSegment(t *testing.T) {
	a := Coords{10, 10}
	b := Coords{110, 60}

	tests := []struct {
		name string
		p    Coords
		want bool
	}{
		{"midpoint", Coords{60, 35}, true},
		{"endpoint", a, true},
		{"perpendicular within tolerance", Coords{60 - 2, 35 + 4}, true},
		{"perpendicular beyond tolerance", Coords{60 - 5, 35 + 10}, false},
		{"colinear beyond box", Coords{130, 70}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NearSegment(tt.p, a, b); got != tt.want {
				t.Errorf("NearSegment(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestNearSegmentAxisAligned(t *testing.T) {
	if !NearSegment(Coords{50, 16}, Coords{0, 10}, Coords{100, 10}) {
		t.Error("horizontal segment: point 6 units away not detected")
	}
	if NearSegment(Coords{50, 18}, Coords{0, 10}, Coords{100, 10}) {
		t.Error("horizontal segment: point 8 units away detected")
	}
	if !NearSegment(Coords{-6, 50}, Coords{0, 0}, Coords{0, 100}) {
		t.Error("vertical segment: point 6 units away not detected")
	}
}

func TestBoundsOfNormalizesNegativeExtents(t *testing.T) {
	got := BoundsOf(Coords{150, 120}, -100, -70)
	want := Bounds{MinX: 50, MinY: 50, MaxX: 150, MaxY: 120}
	if got != want {
		t.Errorf("BoundsOf() = %+v, want %+v", got, want)
	}
	if got.Width() != 100 || got.Height() != 70 {
		t.Errorf("extent = %vx%v, want 100x70", got.Width(), got.Height())
	}
	if c := got.Center(); c != (Coords{100, 85}) {
		t.Errorf("Center() = %v, want {100 85}", c)
	}
}

func TestBoundsContains(t *testing.T) {
	b := BoundsOf(Coords{0, 0}, 10, 10)
	if !b.Contains(Coords{10, 10}) {
		t.Error("Contains(corner) = false, want true")
	}
	if b.Contains(Coords{10.5, 5}) {
		t.Error("Contains(outside) = true, want false")
	}
	if !b.Expand(1).Contains(Coords{10.5, 5}) {
		t.Error("Expand(1).Contains(10.5,5) = false, want true")
	}
}
