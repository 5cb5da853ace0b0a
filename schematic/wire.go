package schematic

import (
	"breadboard/geometry"
)

// Wire is an orthogonal polyline of at least two points. Wires carry their
// visual style with them; electrical meaning comes from geometry alone. A
// wire's identity is not stable across topology-changing edits, only its
// geometry and style are.
type Wire struct {
	ID     string           `json:"id"`
	Points []geometry.Point `json:"points"`
	Color  string           `json:"color,omitempty"`
	Stroke string           `json:"stroke,omitempty"`
}

// Start returns the first point of the wire.
func (w *Wire) Start() geometry.Point {
	return w.Points[0]
}

// End returns the last point of the wire.
func (w *Wire) End() geometry.Point {
	return w.Points[len(w.Points)-1]
}

// EndsAt reports whether either terminal of the wire coincides with p.
func (w *Wire) EndsAt(p geometry.Point) bool {
	return geometry.Equal(w.Start(), p) || geometry.Equal(w.End(), p)
}

// Clone returns a deep copy of the wire.
func (w *Wire) Clone() *Wire {
	cp := *w
	cp.Points = append([]geometry.Point(nil), w.Points...)
	return &cp
}

// withStyle copies w's visual style onto a new wire with the given points.
func (w *Wire) withStyle(id string, pts []geometry.Point) *Wire {
	return &Wire{ID: id, Points: pts, Color: w.Color, Stroke: w.Stroke}
}

// Junction marks an electrical connection dot on a wire. Manual junctions
// were placed by hand and are never removed by document maintenance;
// suppressed entries are tombstones left where an automatic dot was deleted,
// so it is not derived again at that spot.
type Junction struct {
	ID         string         `json:"id"`
	At         geometry.Point `json:"at"`
	Manual     bool           `json:"manual,omitempty"`
	Suppressed bool           `json:"suppressed,omitempty"`
	NetID      string         `json:"netId,omitempty"`
}

// Clone returns a copy of the junction.
func (j *Junction) Clone() *Junction {
	cp := *j
	return &cp
}
