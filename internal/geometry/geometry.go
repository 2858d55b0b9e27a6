// Package geometry holds the numeric predicates shared by every shape hit-test.
package geometry

import "math"

// Tolerance is the margin, in logical units, within which a pointer counts as
// touching a thin target such as an edge or an endpoint.
const Tolerance = 7.0

// Coords is a point in logical (un-panned) canvas space.
type Coords struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns the sum of two points.
func (c Coords) Add(other Coords) Coords {
	return Coords{X: c.X + other.X, Y: c.Y + other.Y}
}

// Sub returns the difference of two points.
func (c Coords) Sub(other Coords) Coords {
	return Coords{X: c.X - other.X, Y: c.Y - other.Y}
}

// Equal reports whether both coordinates match exactly.
func (c Coords) Equal(other Coords) bool {
	return c.X == other.X && c.Y == other.Y
}

// IsBetween reports whether value lies in [min(a,b)-Tolerance, max(a,b)+Tolerance].
func IsBetween(value, a, b float64) bool {
	lo := math.Min(a, b)
	hi := math.Max(a, b)
	return value >= lo-Tolerance && value <= hi+Tolerance
}

// IsNear is IsBetween with a single bound: value within Tolerance of a.
func IsNear(value, a float64) bool {
	return IsBetween(value, a, a)
}

// DistanceToLine returns the perpendicular distance from p to the infinite
// line through a and b. Coincident endpoints yield the distance to a.
func DistanceToLine(p, a, b Coords) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	if dx == 0 && dy == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}

	numerator := math.Abs(dy*p.X - dx*p.Y + b.X*a.Y - b.Y*a.X)
	return numerator / math.Sqrt(dy*dy+dx*dx)
}

// NearSegment reports whether p is within Tolerance of the segment a-b.
// The point must first pass the tolerant bounding-box test on both axes;
// axis-aligned segments are decided by that box alone.
func NearSegment(p, a, b Coords) bool {
	if !IsBetween(p.X, a.X, b.X) || !IsBetween(p.Y, a.Y, b.Y) {
		return false
	}

	if a.X == b.X || a.Y == b.Y {
		return true
	}

	return DistanceToLine(p, a, b) <= Tolerance
}

// Bounds is an axis-aligned box with non-negative extents.
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// BoundsOf normalizes an origin and signed extents into a Bounds.
func BoundsOf(origin Coords, width, height float64) Bounds {
	return Bounds{
		MinX: math.Min(origin.X, origin.X+width),
		MinY: math.Min(origin.Y, origin.Y+height),
		MaxX: math.Max(origin.X, origin.X+width),
		MaxY: math.Max(origin.Y, origin.Y+height),
	}
}

// Contains reports whether p lies inside the box, edges inclusive.
func (b Bounds) Contains(p Coords) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// Expand grows the box by d on every side.
func (b Bounds) Expand(d float64) Bounds {
	return Bounds{MinX: b.MinX - d, MinY: b.MinY - d, MaxX: b.MaxX + d, MaxY: b.MaxY + d}
}

// Width returns the horizontal extent.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical extent.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Center returns the midpoint of the box.
func (b Bounds) Center() Coords {
	return Coords{X: (b.MinX + b.MaxX) / 2, Y: (b.MinY + b.MaxY) / 2}
}
