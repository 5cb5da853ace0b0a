package schematic

import (
	"fmt"
	"sort"

	"breadboard/geometry"
)

// RefreshNets recomputes electrical nets. Wires belong to the same net when
// a terminal of one touches the other (terminal to terminal, or a T-tap onto
// an interior segment) and no suppression tombstone sits on the touch point.
// Components never bridge nets; each side of a part is its own net. Net ids
// are assigned deterministically by ascending wire id.
func (s *Schematic) RefreshNets() {
	s.netByWire = make(map[string]string, len(s.Wires))

	order := make([]*Wire, len(s.Wires))
	copy(order, s.Wires)
	sort.Slice(order, func(i, j int) bool { return order[i].ID < order[j].ID })

	adj := make(map[string][]string, len(order))
	for i, a := range order {
		for _, b := range order[i+1:] {
			if s.wiresTouch(a, b) {
				adj[a.ID] = append(adj[a.ID], b.ID)
				adj[b.ID] = append(adj[b.ID], a.ID)
			}
		}
	}

	next := 0
	for _, w := range order {
		if _, done := s.netByWire[w.ID]; done {
			continue
		}
		next++
		net := fmt.Sprintf("net-%d", next)
		queue := []string{w.ID}
		s.netByWire[w.ID] = net
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, nb := range adj[cur] {
				if _, seen := s.netByWire[nb]; seen {
					continue
				}
				s.netByWire[nb] = net
				queue = append(queue, nb)
			}
		}
	}

	for _, j := range s.Junctions {
		if j.Suppressed {
			continue
		}
		j.NetID = ""
		for _, w := range s.Wires {
			if _, d := geometry.NearestSegment(w.Points, j.At); d <= geometry.Eps {
				j.NetID = s.netByWire[w.ID]
				break
			}
		}
	}
}

// NetOf returns the net id assigned to the wire by the last RefreshNets,
// or "" when unknown.
func (s *Schematic) NetOf(wireID string) string {
	return s.netByWire[wireID]
}

// wiresTouch reports whether a terminal of one wire lands on the other wire,
// ignoring touch points covered by a suppression tombstone.
func (s *Schematic) wiresTouch(a, b *Wire) bool {
	check := func(term geometry.Point, w *Wire) bool {
		if _, d := geometry.NearestSegment(w.Points, term); d > geometry.Eps {
			return false
		}
		return !s.suppressedAt(term)
	}
	for _, term := range []geometry.Point{a.Start(), a.End()} {
		if check(term, b) {
			return true
		}
	}
	for _, term := range []geometry.Point{b.Start(), b.End()} {
		if check(term, a) {
			return true
		}
	}
	return false
}
