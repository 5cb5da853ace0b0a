package schematic

import (
	"breadboard/geometry"
)

// replaceWire swaps old for the given replacements, preserving document
// order. Replacements are assumed to be normalized already.
func (s *Schematic) replaceWire(old *Wire, repl ...*Wire) {
	out := make([]*Wire, 0, len(s.Wires)+len(repl))
	for _, w := range s.Wires {
		if w == old {
			out = append(out, repl...)
			continue
		}
		out = append(out, w)
	}
	s.Wires = out
}

// SplitWireAt cuts the wire in two at the point on it nearest to p. The
// first half keeps the wire's id, the second gets a fresh one; both keep the
// style. Points farther than the matching tolerance from the wire, or that
// land on a terminal, leave the wire untouched and return (w, nil).
func (s *Schematic) SplitWireAt(w *Wire, p geometry.Point) (*Wire, *Wire) {
	idx, dist := geometry.NearestSegment(w.Points, p)
	if idx < 0 || dist > geometry.Eps {
		return w, nil
	}
	cut, _ := geometry.ProjectToSegment(p, w.Points[idx], w.Points[idx+1])
	if geometry.Equal(cut, w.Start()) || geometry.Equal(cut, w.End()) {
		return w, nil
	}
	first := make([]geometry.Point, 0, idx+2)
	first = append(first, w.Points[:idx+1]...)
	first = append(first, cut)
	second := make([]geometry.Point, 0, len(w.Points)-idx+1)
	second = append(second, cut)
	second = append(second, w.Points[idx+1:]...)

	a := w.withStyle(w.ID, geometry.NormalizePolyline(first))
	b := w.withStyle(s.UID("wire"), geometry.NormalizePolyline(second))
	if a.Points == nil || b.Points == nil {
		return w, nil
	}
	s.replaceWire(w, a, b)
	return a, b
}

// RemoveWireSegments deletes exactly the listed segment indices from the
// wire, splitting what remains into separate wires. Content on either side
// of the removed range, bends included, is preserved. The first surviving
// piece keeps the wire's id. The replacement wires are returned.
func (s *Schematic) RemoveWireSegments(w *Wire, indices []int) []*Wire {
	removed := make(map[int]bool, len(indices))
	for _, i := range indices {
		removed[i] = true
	}
	var pieces [][]geometry.Point
	var cur []geometry.Point
	for i := 0; i+1 < len(w.Points); i++ {
		if removed[i] {
			if len(cur) >= 2 {
				pieces = append(pieces, cur)
			}
			cur = nil
			continue
		}
		if cur == nil {
			cur = append(cur, w.Points[i])
		}
		cur = append(cur, w.Points[i+1])
	}
	if len(cur) >= 2 {
		pieces = append(pieces, cur)
	}

	var repl []*Wire
	for _, pts := range pieces {
		pts = geometry.NormalizePolyline(pts)
		if pts == nil {
			continue
		}
		id := w.ID
		if len(repl) > 0 {
			id = s.UID("wire")
		}
		repl = append(repl, w.withStyle(id, pts))
	}
	s.replaceWire(w, repl...)
	return repl
}

// GapForComponent cuts the body-crossing span out of any wire that runs
// straight across the component, so the wire ends at one pin and a second
// wire starts at the other. Wires already terminating at the pins are left
// alone.
func (s *Schematic) GapForComponent(c *Component) {
	pins := c.PinPositions()
	axis := c.Axis()
	snapshot := append([]*Wire(nil), s.Wires...)
	for _, w := range snapshot {
		for i := 0; i+1 < len(w.Points); i++ {
			a, b := w.Points[i], w.Points[i+1]
			if geometry.SegmentAxis(a, b) != axis {
				continue
			}
			if geometry.DistToSegment(pins[0], a, b) > geometry.Eps ||
				geometry.DistToSegment(pins[1], a, b) > geometry.Eps {
				continue
			}
			_, t0 := geometry.ProjectToSegment(pins[0], a, b)
			_, t1 := geometry.ProjectToSegment(pins[1], a, b)
			near, far := pins[0], pins[1]
			if t0 > t1 {
				near, far = far, near
			}
			first := append(append([]geometry.Point(nil), w.Points[:i+1]...), near)
			second := append([]geometry.Point{far}, w.Points[i+1:]...)
			head := w.withStyle(w.ID, geometry.NormalizePolyline(first))
			tail := w.withStyle(s.UID("wire"), geometry.NormalizePolyline(second))
			var repl []*Wire
			if head.Points != nil {
				repl = append(repl, head)
			}
			if tail.Points != nil {
				if head.Points == nil {
					tail.ID = w.ID
				}
				repl = append(repl, tail)
			}
			s.replaceWire(w, repl...)
			break
		}
	}
}

// StitchComponent makes the document consistent with a freshly placed
// component: wires crossing the body are gapped at the pins, and wires
// running under a pin are split there so the pin sits on wire terminals.
func (s *Schematic) StitchComponent(c *Component) {
	s.GapForComponent(c)
	for _, pin := range c.PinPositions() {
		snapshot := append([]*Wire(nil), s.Wires...)
		for _, w := range snapshot {
			if w.EndsAt(pin) {
				continue
			}
			if _, d := geometry.NearestSegment(w.Points, pin); d <= geometry.Eps {
				s.SplitWireAt(w, pin)
			}
		}
	}
}

// MendThroughComponent joins the two wire stubs meeting the component's pins
// into one wire running straight through where the body was. Used when a
// component is deleted. If either pin has no wire the document is left
// unchanged.
func (s *Schematic) MendThroughComponent(c *Component) {
	pins := c.PinPositions()
	var left, right *Wire
	for _, w := range s.WiresEndingAt(pins[0]) {
		left = w
		break
	}
	for _, w := range s.WiresEndingAt(pins[1]) {
		if w != left {
			right = w
			break
		}
	}
	if left == nil || right == nil {
		return
	}
	a := left.Points
	if geometry.Equal(left.Start(), pins[0]) {
		a = reversed(a)
	}
	b := right.Points
	if geometry.Equal(right.End(), pins[1]) {
		b = reversed(b)
	}
	joined := append(append([]geometry.Point(nil), a...), b...)
	merged := left.withStyle(left.ID, geometry.NormalizePolyline(joined))
	if merged.Points == nil {
		return
	}
	s.RemoveWire(right.ID)
	s.replaceWire(left, merged)
}

func reversed(pts []geometry.Point) []geometry.Point {
	out := make([]geometry.Point, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}
