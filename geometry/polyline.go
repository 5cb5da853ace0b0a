package geometry

// NormalizePolyline returns a cleaned copy of pts with consecutive duplicate
// vertices (within the default tolerance) collapsed and colinear interior
// vertices removed. If fewer than two distinct points remain the polyline is
// degenerate and nil is returned; callers drop such wires.
func NormalizePolyline(pts []Point) []Point {
	if len(pts) == 0 {
		return nil
	}
	out := make([]Point, 0, len(pts))
	for _, p := range pts {
		if len(out) > 0 && Equal(out[len(out)-1], p) {
			continue
		}
		out = append(out, p)
	}
	for i := 1; i+1 < len(out); {
		if colinear(out[i-1], out[i], out[i+1]) {
			out = append(out[:i], out[i+1:]...)
			continue
		}
		i++
	}
	if len(out) < 2 {
		return nil
	}
	return out
}

// colinear reports whether b lies on the straight line through a and c.
func colinear(a, b, c Point) bool {
	cross := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
	return cross < 1e-6 && cross > -1e-6
}

// PolylineLength returns the total length of the polyline.
func PolylineLength(pts []Point) float64 {
	var sum float64
	for i := 0; i+1 < len(pts); i++ {
		sum += pts[i].Dist(pts[i+1])
	}
	return sum
}
