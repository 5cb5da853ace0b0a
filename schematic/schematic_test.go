package schematic

import (
	"strings"
	"testing"

	"breadboard/geometry"
)

func TestUID(t *testing.T) {
	s := New()
	a := s.UID("wire")
	b := s.UID("wire")
	if !strings.HasPrefix(a, "wire-") {
		t.Errorf("UID = %q, want wire- prefix", a)
	}
	if a == b {
		t.Errorf("UID returned %q twice", a)
	}
}

func TestSnap(t *testing.T) {
	s := New()
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{4, 0},
		{5, 10},
		{14.9, 10},
		{-7, -10},
	}
	for _, tt := range tests {
		if got := s.Snap(tt.in); got != tt.want {
			t.Errorf("Snap(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestWiresEndingAt(t *testing.T) {
	s := New()
	s.AddWire(&Wire{ID: "w1", Points: []geometry.Point{geometry.Pt(0, 0), geometry.Pt(100, 0)}})
	s.AddWire(&Wire{ID: "w2", Points: []geometry.Point{geometry.Pt(100, 0), geometry.Pt(100, 50)}})
	s.AddWire(&Wire{ID: "w3", Points: []geometry.Point{geometry.Pt(200, 0), geometry.Pt(300, 0)}})

	got := s.WiresEndingAt(geometry.Pt(100, 0))
	if len(got) != 2 {
		t.Fatalf("got %d wires, want 2", len(got))
	}
	if got[0].ID != "w1" || got[1].ID != "w2" {
		t.Errorf("got %s,%s, want w1,w2", got[0].ID, got[1].ID)
	}

	// Near misses within tolerance still count.
	got = s.WiresEndingAt(geometry.Pt(100.5, 0.3))
	if len(got) != 2 {
		t.Errorf("tolerant match got %d wires, want 2", len(got))
	}
}

func TestAdjacentOther(t *testing.T) {
	s := New()
	w := &Wire{ID: "w", Points: []geometry.Point{geometry.Pt(0, 0), geometry.Pt(50, 0), geometry.Pt(50, 40)}}
	s.AddWire(w)

	p, ok := s.AdjacentOther(w, geometry.Pt(0, 0))
	if !ok || p != geometry.Pt(50, 0) {
		t.Errorf("adjacent of start = %v,%v, want (50,0),true", p, ok)
	}
	p, ok = s.AdjacentOther(w, geometry.Pt(50, 40))
	if !ok || p != geometry.Pt(50, 0) {
		t.Errorf("adjacent of end = %v,%v, want (50,0),true", p, ok)
	}
	if _, ok := s.AdjacentOther(w, geometry.Pt(50, 0)); ok {
		t.Error("interior vertex reported as terminal")
	}
}

func TestCloneIsDeep(t *testing.T) {
	s := New()
	s.AddComponent(&Component{ID: "r1", Type: Resistor, X: 100, Y: 100})
	s.AddWire(&Wire{ID: "w1", Points: []geometry.Point{geometry.Pt(0, 0), geometry.Pt(10, 0)}, Color: "red"})
	s.AddManualJunction(geometry.Pt(5, 0))

	cp := s.Clone()
	cp.Components[0].X = 999
	cp.Wires[0].Points[0].X = 999
	cp.Junctions[0].At.X = 999

	if s.Components[0].X == 999 || s.Wires[0].Points[0].X == 999 || s.Junctions[0].At.X == 999 {
		t.Error("mutating the clone changed the original")
	}
}

func TestSnapshotUndoHook(t *testing.T) {
	s := New()
	calls := 0
	s.PushUndo = func() { calls++ }
	s.SnapshotUndo()
	s.SnapshotUndo()
	if calls != 2 {
		t.Errorf("undo hook ran %d times, want 2", calls)
	}
	s.PushUndo = nil
	s.SnapshotUndo() // must not panic
}

func TestAddWireDropsDegenerate(t *testing.T) {
	s := New()
	if w := s.AddWire(&Wire{Points: []geometry.Point{geometry.Pt(1, 1), geometry.Pt(1.2, 1)}}); w != nil {
		t.Errorf("degenerate wire stored: %+v", w)
	}
	if len(s.Wires) != 0 {
		t.Errorf("wires = %d, want 0", len(s.Wires))
	}
}

func TestRemoveComponentMendsWire(t *testing.T) {
	s := New()
	// A wire running straight across where the component will sit.
	s.AddWire(&Wire{ID: "w1", Points: []geometry.Point{geometry.Pt(0, 50), geometry.Pt(200, 50)}, Color: "red"})
	c := &Component{ID: "r1", Type: Resistor, X: 100, Y: 50}
	s.AddComponent(c)

	// Placement gapped the wire at the pins.
	if len(s.Wires) != 2 {
		t.Fatalf("after placement wires = %d, want 2", len(s.Wires))
	}

	s.RemoveComponent("r1")
	if len(s.Wires) != 1 {
		t.Fatalf("after removal wires = %d, want 1", len(s.Wires))
	}
	w := s.Wires[0]
	if w.Points[0] != geometry.Pt(0, 50) || w.Points[len(w.Points)-1] != geometry.Pt(200, 50) {
		t.Errorf("mended wire = %v, want straight (0,50)..(200,50)", w.Points)
	}
	if w.Color != "red" {
		t.Errorf("mended color = %q, want red", w.Color)
	}
}
