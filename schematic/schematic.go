package schematic

import (
	"math"

	"github.com/google/uuid"

	"breadboard/geometry"
)

// DefaultGrid is the spacing wire routing and component placement snap to
// when the document does not override it.
const DefaultGrid = 10.0

// Schematic is the owning container for one document. The engine packages
// never hold references into a schematic across edits; they re-query through
// it instead.
type Schematic struct {
	Components []*Component `json:"components"`
	Wires      []*Wire      `json:"wires"`
	Junctions  []*Junction  `json:"junctions"`
	Grid       float64      `json:"grid,omitempty"`

	// PushUndo, when set, is invoked before any user-level mutation so the
	// caller can snapshot the document. Undo storage itself lives outside
	// the engine.
	PushUndo func() `json:"-"`

	netByWire map[string]string
}

// New returns an empty schematic with the default grid.
func New() *Schematic {
	return &Schematic{Grid: DefaultGrid}
}

// UID returns a fresh document-unique id with the given prefix, e.g.
// "wire-1f3a9c2e".
func (s *Schematic) UID(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}

// Snap quantizes v to the document grid.
func (s *Schematic) Snap(v float64) float64 {
	g := s.Grid
	if g <= 0 {
		g = DefaultGrid
	}
	return math.Round(v/g) * g
}

// SnapPoint quantizes both coordinates of p to the document grid.
func (s *Schematic) SnapPoint(p geometry.Point) geometry.Point {
	return geometry.Point{X: s.Snap(p.X), Y: s.Snap(p.Y)}
}

// SnapshotUndo invokes the undo hook if one is installed.
func (s *Schematic) SnapshotUndo() {
	if s.PushUndo != nil {
		s.PushUndo()
	}
}

// Clone returns a deep copy of the document. The undo hook and derived net
// table are not carried over.
func (s *Schematic) Clone() *Schematic {
	cp := &Schematic{Grid: s.Grid}
	cp.Components = make([]*Component, len(s.Components))
	for i, c := range s.Components {
		cp.Components[i] = c.Clone()
	}
	cp.Wires = make([]*Wire, len(s.Wires))
	for i, w := range s.Wires {
		cp.Wires[i] = w.Clone()
	}
	cp.Junctions = make([]*Junction, len(s.Junctions))
	for i, j := range s.Junctions {
		cp.Junctions[i] = j.Clone()
	}
	return cp
}

// Restore replaces the document contents with those of other. The undo hook
// stays as it is.
func (s *Schematic) Restore(other *Schematic) {
	s.Components = other.Components
	s.Wires = other.Wires
	s.Junctions = other.Junctions
	s.Grid = other.Grid
	s.netByWire = nil
}

// AllComponents returns the live component slice. Callers treat it as
// read-only and re-query after any structural edit.
func (s *Schematic) AllComponents() []*Component {
	return s.Components
}

// AllWires returns the live wire slice, read-only for callers.
func (s *Schematic) AllWires() []*Wire {
	return s.Wires
}

// AllJunctions returns the live junction slice, read-only for callers.
func (s *Schematic) AllJunctions() []*Junction {
	return s.Junctions
}

// PinPositions looks a component up by id and returns its pin locations.
func (s *Schematic) PinPositions(componentID string) ([2]geometry.Point, bool) {
	c := s.ComponentByID(componentID)
	if c == nil {
		return [2]geometry.Point{}, false
	}
	return c.PinPositions(), true
}

// ComponentByID returns the component with the given id, or nil.
func (s *Schematic) ComponentByID(id string) *Component {
	for _, c := range s.Components {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// WireByID returns the wire with the given id, or nil.
func (s *Schematic) WireByID(id string) *Wire {
	for _, w := range s.Wires {
		if w.ID == id {
			return w
		}
	}
	return nil
}

// ComponentAt returns the first component whose bounds contain p, or nil.
func (s *Schematic) ComponentAt(p geometry.Point) *Component {
	for _, c := range s.Components {
		if c.Bounds().Contains(p) {
			return c
		}
	}
	return nil
}

// WiresEndingAt returns every wire with a terminal point at p.
func (s *Schematic) WiresEndingAt(p geometry.Point) []*Wire {
	var out []*Wire
	for _, w := range s.Wires {
		if len(w.Points) >= 2 && w.EndsAt(p) {
			out = append(out, w)
		}
	}
	return out
}

// AdjacentOther returns the polyline vertex next to the given terminal of
// the wire: the second point when endpoint is the start, the second-to-last
// when it is the end. ok is false when endpoint is not a terminal of w.
func (s *Schematic) AdjacentOther(w *Wire, endpoint geometry.Point) (geometry.Point, bool) {
	if len(w.Points) < 2 {
		return geometry.Point{}, false
	}
	if geometry.Equal(w.Start(), endpoint) {
		return w.Points[1], true
	}
	if geometry.Equal(w.End(), endpoint) {
		return w.Points[len(w.Points)-2], true
	}
	return geometry.Point{}, false
}

// JunctionAt returns the visible junction at p, or nil. Suppressed
// tombstones are not visible.
func (s *Schematic) JunctionAt(p geometry.Point) *Junction {
	for _, j := range s.Junctions {
		if !j.Suppressed && geometry.Equal(j.At, p) {
			return j
		}
	}
	return nil
}

// AddWire normalizes and appends a wire. Degenerate wires are dropped and
// nil is returned; otherwise the stored wire is returned.
func (s *Schematic) AddWire(w *Wire) *Wire {
	pts := geometry.NormalizePolyline(w.Points)
	if pts == nil {
		return nil
	}
	w.Points = pts
	if w.ID == "" {
		w.ID = s.UID("wire")
	}
	s.Wires = append(s.Wires, w)
	return w
}

// RemoveWire deletes the wire with the given id. Unknown ids are ignored.
func (s *Schematic) RemoveWire(id string) {
	out := s.Wires[:0]
	for _, w := range s.Wires {
		if w.ID != id {
			out = append(out, w)
		}
	}
	s.Wires = out
}

// AddComponent places a component, stitching any wires it lands on so the
// pins sit on wire terminals and the body is not drawn over.
func (s *Schematic) AddComponent(c *Component) {
	if c.ID == "" {
		c.ID = s.UID(string(c.Type))
	}
	s.Components = append(s.Components, c)
	s.StitchComponent(c)
	s.Refresh()
}

// RemoveComponent deletes a component and mends the wire gap its body left
// behind.
func (s *Schematic) RemoveComponent(id string) {
	c := s.ComponentByID(id)
	if c == nil {
		return
	}
	s.MendThroughComponent(c)
	out := s.Components[:0]
	for _, cc := range s.Components {
		if cc.ID != id {
			out = append(out, cc)
		}
	}
	s.Components = out
	s.Refresh()
}

// Bounds returns the bounding rectangle of everything in the document.
// ok is false for an empty schematic.
func (s *Schematic) Bounds() (geometry.Rect, bool) {
	first := true
	var r geometry.Rect
	grow := func(b geometry.Rect) {
		if first {
			r = b
			first = false
			return
		}
		r.Min.X = math.Min(r.Min.X, b.Min.X)
		r.Min.Y = math.Min(r.Min.Y, b.Min.Y)
		r.Max.X = math.Max(r.Max.X, b.Max.X)
		r.Max.Y = math.Max(r.Max.Y, b.Max.Y)
	}
	for _, c := range s.Components {
		grow(c.Bounds())
	}
	for _, w := range s.Wires {
		for _, p := range w.Points {
			grow(geometry.Rect{Min: p, Max: p})
		}
	}
	for _, j := range s.Junctions {
		if !j.Suppressed {
			grow(geometry.Rect{Min: j.At, Max: j.At})
		}
	}
	if first {
		return geometry.Rect{}, false
	}
	return r, true
}

// Refresh runs the document maintenance passes: polyline normalization,
// junction derivation and net assignment. Call it after any batch of
// structural edits.
func (s *Schematic) Refresh() {
	s.NormalizeWires()
	s.RefreshJunctions()
	s.RefreshNets()
}

// NormalizeWires cleans every polyline and drops wires that degenerate to
// fewer than two distinct points.
func (s *Schematic) NormalizeWires() {
	out := s.Wires[:0]
	for _, w := range s.Wires {
		pts := geometry.NormalizePolyline(w.Points)
		if pts == nil {
			continue
		}
		w.Points = pts
		out = append(out, w)
	}
	s.Wires = out
}
