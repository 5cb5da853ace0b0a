// Package geometry provides the pure 2D primitives the schematic engine is
// built on: points, axis-aligned segments, polylines and rectangles. All
// functions are side-effect free and total over finite inputs.
package geometry

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// Eps is the default tolerance used when matching endpoints, pins and
// junction positions. Coordinates are logical schematic units, so anything
// closer than this is considered the same location.
const Eps = 0.75

// Point is a position in schematic coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for constructing a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p translated by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Coord returns p's coordinate along the given axis.
func (p Point) Coord(a Axis) float64 {
	if a == AxisY {
		return p.Y
	}
	return p.X
}

// WithCoord returns a copy of p with the coordinate along a replaced by v.
func (p Point) WithCoord(a Axis, v float64) Point {
	if a == AxisY {
		p.Y = v
	} else {
		p.X = v
	}
	return p
}

func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

// EqualWithin reports whether a and b coincide within eps on both axes.
func EqualWithin(a, b Point, eps float64) bool {
	return scalar.EqualWithinAbs(a.X, b.X, eps) && scalar.EqualWithinAbs(a.Y, b.Y, eps)
}

// Equal reports whether a and b coincide within the default tolerance.
func Equal(a, b Point) bool {
	return EqualWithin(a, b, Eps)
}

// Axis identifies the direction a segment or wire run extends along.
type Axis int

const (
	// AxisNone marks geometry that is not axis-aligned (or degenerate).
	AxisNone Axis = iota
	// AxisX marks horizontal geometry: endpoints share a Y coordinate.
	AxisX
	// AxisY marks vertical geometry: endpoints share an X coordinate.
	AxisY
)

// Other returns the perpendicular axis. AxisNone maps to itself.
func (a Axis) Other() Axis {
	switch a {
	case AxisX:
		return AxisY
	case AxisY:
		return AxisX
	}
	return AxisNone
}

// String returns a human-readable axis name.
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	}
	return "none"
}

// SegmentAxis classifies the segment a→b: AxisX if the endpoints share a Y
// coordinate, AxisY if they share an X coordinate, AxisNone for diagonal or
// zero-length segments.
func SegmentAxis(a, b Point) Axis {
	sameY := scalar.EqualWithinAbs(a.Y, b.Y, Eps)
	sameX := scalar.EqualWithinAbs(a.X, b.X, Eps)
	switch {
	case sameX && sameY:
		return AxisNone
	case sameY:
		return AxisX
	case sameX:
		return AxisY
	}
	return AxisNone
}
