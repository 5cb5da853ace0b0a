package geometry

import "math"

// Rect is an axis-aligned rectangle given by two opposite corners with
// Min.X <= Max.X and Min.Y <= Max.Y.
type Rect struct {
	Min Point `json:"min"`
	Max Point `json:"max"`
}

// RectFromCenter builds the rectangle centered on c with the given half
// extents along X and Y.
func RectFromCenter(c Point, halfX, halfY float64) Rect {
	return Rect{
		Min: Point{X: c.X - halfX, Y: c.Y - halfY},
		Max: Point{X: c.X + halfX, Y: c.Y + halfY},
	}
}

// RectFromPoints builds the bounding rectangle of two arbitrary corners.
func RectFromPoints(a, b Point) Rect {
	return Rect{
		Min: Point{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)},
		Max: Point{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)},
	}
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return Point{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
}

// Expand returns the rectangle grown by d on every side.
func (r Rect) Expand(d float64) Rect {
	return Rect{
		Min: Point{X: r.Min.X - d, Y: r.Min.Y - d},
		Max: Point{X: r.Max.X + d, Y: r.Max.Y + d},
	}
}

// Contains reports whether p lies inside or on the boundary of r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Intersects reports whether r and s overlap with positive area. Rectangles
// that merely share an edge or corner do not intersect.
func (r Rect) Intersects(s Rect) bool {
	return r.Min.X < s.Max.X && s.Min.X < r.Max.X &&
		r.Min.Y < s.Max.Y && s.Min.Y < r.Max.Y
}
