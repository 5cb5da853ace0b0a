package geometry

import "math"

// ProjectToSegment returns the closest point to p on the segment a→b, along
// with the parametric position t in [0,1] of that point (0 at a, 1 at b).
// A degenerate segment projects onto a with t = 0.
func ProjectToSegment(p, a, b Point) (Point, float64) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return a, 0
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))
	return Point{X: a.X + t*dx, Y: a.Y + t*dy}, t
}

// DistToSegment returns the shortest distance from p to the segment a→b.
func DistToSegment(p, a, b Point) float64 {
	q, _ := ProjectToSegment(p, a, b)
	return p.Dist(q)
}

// NearestSegment scans the polyline and returns the index of the segment
// closest to p (the segment pts[i]→pts[i+1]) together with the distance to
// it. Polylines with fewer than two points have no segments; the result is
// then (-1, +Inf).
func NearestSegment(pts []Point, p Point) (int, float64) {
	best := -1
	bestDist := math.Inf(1)
	for i := 0; i+1 < len(pts); i++ {
		if d := DistToSegment(p, pts[i], pts[i+1]); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best, bestDist
}

// IntervalOverlap returns the length of the overlap between the intervals
// [aLo,aHi] and [bLo,bHi]. Either pair may be given in reverse order.
// Disjoint intervals overlap by zero.
func IntervalOverlap(aLo, aHi, bLo, bHi float64) float64 {
	if aLo > aHi {
		aLo, aHi = aHi, aLo
	}
	if bLo > bHi {
		bLo, bHi = bHi, bLo
	}
	lo := math.Max(aLo, bLo)
	hi := math.Min(aHi, bHi)
	if hi <= lo {
		return 0
	}
	return hi - lo
}
