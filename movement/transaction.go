package movement

import (
	"math"
	"sort"

	"breadboard/constraint"
	"breadboard/geometry"
	"breadboard/schematic"
)

// Transaction holds the state of one live move. For a run-constrained move
// it remembers the collapsed run's geometry and the removed wires so Finish
// can rebuild the run and hand the original strokes down to the new stubs.
type Transaction struct {
	CompID   string
	FreeDrag bool

	RunID string
	Axis  geometry.Axis
	Line  float64
	// Lo and Hi bound the component center along the run axis.
	Lo, Hi float64
	// OuterA and OuterB are the run's endpoints before the collapse.
	OuterA, OuterB geometry.Point
	// CollapsedID names the synthetic wire spanning the run while it moves.
	CollapsedID string

	removed []*schematic.Wire
	sources []strokeSource
	solver  *constraint.Solver
}

// strokeSource is one pre-collapse run segment projected onto the run axis.
type strokeSource struct {
	WireID string
	Lo, Hi float64
	Color  string
	Stroke string
}

// styleFor picks the color and stroke for a rebuilt stub covering [lo, hi]
// with midpoint mid. Preference order: the removed wire whose polyline
// passes closest to the midpoint, then the source segment sharing the most
// of the stub's interval, then the source whose own midpoint is nearest.
// Ties at every stage go to the lowest wire id so repeated finishes agree.
func (tx *Transaction) styleFor(lo, hi float64, mid geometry.Point) (color, stroke string) {
	if w := tx.nearestRemoved(mid); w != nil {
		return w.Color, w.Stroke
	}
	if s := tx.bestOverlap(lo, hi); s != nil {
		return s.Color, s.Stroke
	}
	if s := tx.nearestSource((lo + hi) / 2); s != nil {
		return s.Color, s.Stroke
	}
	return "", ""
}

// nearestRemoved finds the removed wire whose polyline comes within Eps of
// the point, preferring closer wires and lower ids on equal distance.
func (tx *Transaction) nearestRemoved(p geometry.Point) *schematic.Wire {
	var best *schematic.Wire
	bestDist := math.Inf(1)
	for _, w := range tx.sortedRemoved() {
		_, d := geometry.NearestSegment(w.Points, p)
		if d <= geometry.Eps && d < bestDist {
			best, bestDist = w, d
		}
	}
	return best
}

func (tx *Transaction) bestOverlap(lo, hi float64) *strokeSource {
	var best *strokeSource
	bestShare := 0.0
	for i := range tx.sources {
		s := &tx.sources[i]
		share := geometry.IntervalOverlap(lo, hi, s.Lo, s.Hi)
		if share > bestShare || (share == bestShare && share > 0 && best != nil && s.WireID < best.WireID) {
			best, bestShare = s, share
		}
	}
	return best
}

func (tx *Transaction) nearestSource(mid float64) *strokeSource {
	var best *strokeSource
	bestDist := math.Inf(1)
	for i := range tx.sources {
		s := &tx.sources[i]
		d := math.Abs((s.Lo+s.Hi)/2 - mid)
		if d < bestDist || (d == bestDist && best != nil && s.WireID < best.WireID) {
			best, bestDist = s, d
		}
	}
	return best
}

// sortedRemoved returns the removed wires in ascending id order so the
// first within-Eps hit at a given distance is the lowest id.
func (tx *Transaction) sortedRemoved() []*schematic.Wire {
	ws := make([]*schematic.Wire, len(tx.removed))
	copy(ws, tx.removed)
	sort.Slice(ws, func(i, j int) bool { return ws[i].ID < ws[j].ID })
	return ws
}
