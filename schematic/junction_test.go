package schematic

import (
	"testing"

	"breadboard/geometry"
)

// tee builds a horizontal wire with a vertical branch tapping its middle.
func tee(s *Schematic) {
	s.AddWire(&Wire{ID: "main", Points: []geometry.Point{geometry.Pt(0, 50), geometry.Pt(200, 50)}})
	s.AddWire(&Wire{ID: "branch", Points: []geometry.Point{geometry.Pt(100, 50), geometry.Pt(100, 150)}})
}

func TestRefreshJunctionsDerivesTap(t *testing.T) {
	s := New()
	tee(s)
	s.RefreshJunctions()

	if len(s.Junctions) != 1 {
		t.Fatalf("junctions = %d, want 1", len(s.Junctions))
	}
	j := s.Junctions[0]
	if !geometry.Equal(j.At, geometry.Pt(100, 50)) {
		t.Errorf("junction at %v, want (100,50)", j.At)
	}
	if j.Manual || j.Suppressed {
		t.Errorf("derived junction flags = manual:%v suppressed:%v", j.Manual, j.Suppressed)
	}

	// Re-running must not duplicate it.
	s.RefreshJunctions()
	if len(s.Junctions) != 1 {
		t.Errorf("after second refresh junctions = %d, want 1", len(s.Junctions))
	}
}

func TestRefreshJunctionsThreeTerminals(t *testing.T) {
	s := New()
	s.AddWire(&Wire{ID: "a", Points: []geometry.Point{geometry.Pt(0, 0), geometry.Pt(100, 0)}})
	s.AddWire(&Wire{ID: "b", Points: []geometry.Point{geometry.Pt(100, 0), geometry.Pt(200, 0)}})
	s.AddWire(&Wire{ID: "c", Points: []geometry.Point{geometry.Pt(100, 0), geometry.Pt(100, 80)}})
	s.RefreshJunctions()

	if len(s.Junctions) != 1 || !geometry.Equal(s.Junctions[0].At, geometry.Pt(100, 0)) {
		t.Fatalf("junctions = %+v, want one at (100,0)", s.Junctions)
	}
}

func TestTwoTerminalCornerHasNoJunction(t *testing.T) {
	s := New()
	s.AddWire(&Wire{ID: "a", Points: []geometry.Point{geometry.Pt(0, 0), geometry.Pt(100, 0)}})
	s.AddWire(&Wire{ID: "b", Points: []geometry.Point{geometry.Pt(100, 0), geometry.Pt(100, 80)}})
	s.RefreshJunctions()
	if len(s.Junctions) != 0 {
		t.Errorf("junctions = %+v, want none at a plain corner", s.Junctions)
	}
}

func TestSuppressedJunctionNotRegenerated(t *testing.T) {
	s := New()
	tee(s)
	s.RefreshJunctions()
	s.SuppressJunctionAt(geometry.Pt(100, 50))

	s.RefreshJunctions()
	for _, j := range s.Junctions {
		if !j.Suppressed {
			t.Fatalf("junction regenerated at suppressed spot: %+v", j)
		}
	}
}

func TestManualJunctionSurvivesRefresh(t *testing.T) {
	s := New()
	s.AddWire(&Wire{ID: "w", Points: []geometry.Point{geometry.Pt(0, 0), geometry.Pt(100, 0)}})
	s.AddManualJunction(geometry.Pt(50, 0))

	s.RefreshJunctions()
	if len(s.Junctions) != 1 || !s.Junctions[0].Manual {
		t.Fatalf("manual junction lost: %+v", s.Junctions)
	}
}

func TestOrphanedAutoJunctionRemoved(t *testing.T) {
	s := New()
	tee(s)
	s.RefreshJunctions()
	s.RemoveWire("branch")
	s.RefreshJunctions()
	if len(s.Junctions) != 0 {
		t.Errorf("junctions = %+v, want none after branch removed", s.Junctions)
	}
}

func TestShiftJunctions(t *testing.T) {
	s := New()
	tee(s)
	s.RefreshJunctions()
	s.ShiftJunctions(geometry.Pt(0, 50), geometry.Pt(200, 50), geometry.Pt(0, 10))
	if got := s.Junctions[0].At; !geometry.Equal(got, geometry.Pt(100, 60)) {
		t.Errorf("junction at %v, want (100,60)", got)
	}
}
