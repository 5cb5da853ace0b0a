package schematic

import (
	"breadboard/geometry"
)

// AddManualJunction places a user junction at p. A suppressed tombstone at
// the same spot is revived rather than duplicated.
func (s *Schematic) AddManualJunction(p geometry.Point) *Junction {
	for _, j := range s.Junctions {
		if geometry.Equal(j.At, p) {
			j.Manual = true
			j.Suppressed = false
			return j
		}
	}
	j := &Junction{ID: s.UID("junction"), At: p, Manual: true}
	s.Junctions = append(s.Junctions, j)
	return j
}

// SuppressJunctionAt removes the junction at p and leaves a tombstone so
// document maintenance does not derive a dot there again.
func (s *Schematic) SuppressJunctionAt(p geometry.Point) {
	for _, j := range s.Junctions {
		if geometry.Equal(j.At, p) {
			j.Manual = false
			j.Suppressed = true
			j.NetID = ""
			return
		}
	}
	s.Junctions = append(s.Junctions, &Junction{ID: s.UID("junction"), At: p, Suppressed: true})
}

// RefreshJunctions re-derives automatic junction dots from wire geometry:
// one dot wherever a wire terminal taps another wire's interior, and
// wherever three or more wire terminals meet. Manual junctions always stay,
// suppressed spots are never repopulated, and automatic dots that no longer
// mark a connection are removed.
func (s *Schematic) RefreshJunctions() {
	var taps []geometry.Point
	addTap := func(p geometry.Point) {
		for _, t := range taps {
			if geometry.Equal(t, p) {
				return
			}
		}
		taps = append(taps, p)
	}

	// Terminals touching another wire's interior.
	for _, w := range s.Wires {
		for _, term := range []geometry.Point{w.Start(), w.End()} {
			for _, other := range s.Wires {
				if other == w {
					continue
				}
				if other.EndsAt(term) {
					continue
				}
				if _, d := geometry.NearestSegment(other.Points, term); d <= geometry.Eps {
					addTap(term)
				}
			}
		}
	}

	// Locations where three or more terminals meet.
	type cluster struct {
		at geometry.Point
		n  int
	}
	var clusters []*cluster
	for _, w := range s.Wires {
		for _, term := range []geometry.Point{w.Start(), w.End()} {
			found := false
			for _, cl := range clusters {
				if geometry.Equal(cl.at, term) {
					cl.n++
					found = true
					break
				}
			}
			if !found {
				clusters = append(clusters, &cluster{at: term, n: 1})
			}
		}
	}
	for _, cl := range clusters {
		if cl.n >= 3 {
			addTap(cl.at)
		}
	}

	keep := s.Junctions[:0]
	covered := make([]bool, len(taps))
	for _, j := range s.Junctions {
		switch {
		case j.Manual || j.Suppressed:
			keep = append(keep, j)
		default:
			live := false
			for i, t := range taps {
				if geometry.Equal(j.At, t) {
					covered[i] = true
					live = true
					break
				}
			}
			if live {
				keep = append(keep, j)
			}
		}
		if j.Manual {
			for i, t := range taps {
				if geometry.Equal(j.At, t) {
					covered[i] = true
				}
			}
		}
	}
	s.Junctions = keep

	for i, t := range taps {
		if covered[i] {
			continue
		}
		if s.suppressedAt(t) {
			continue
		}
		s.Junctions = append(s.Junctions, &Junction{ID: s.UID("junction"), At: t})
	}
}

// suppressedAt reports whether a suppression tombstone covers p.
func (s *Schematic) suppressedAt(p geometry.Point) bool {
	for _, j := range s.Junctions {
		if j.Suppressed && geometry.Equal(j.At, p) {
			return true
		}
	}
	return false
}

// ShiftJunctions moves every junction lying within tolerance of the segment
// a→b by the given delta. Movement uses this when a whole wire run shifts
// sideways so the dots riding on it follow.
func (s *Schematic) ShiftJunctions(a, b geometry.Point, delta geometry.Point) {
	for _, j := range s.Junctions {
		if geometry.DistToSegment(j.At, a, b) <= geometry.Eps {
			j.At = j.At.Add(delta)
		}
	}
}
