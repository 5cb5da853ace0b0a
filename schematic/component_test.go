package schematic

import (
	"testing"

	"breadboard/geometry"
)

func TestComponentPinPositions(t *testing.T) {
	tests := []struct {
		name  string
		rot   int
		wantA geometry.Point
		wantB geometry.Point
	}{
		{"rot 0", 0, geometry.Pt(85, 50), geometry.Pt(115, 50)},
		{"rot 90", 90, geometry.Pt(100, 35), geometry.Pt(100, 65)},
		{"rot 180", 180, geometry.Pt(115, 50), geometry.Pt(85, 50)},
		{"rot 270", 270, geometry.Pt(100, 65), geometry.Pt(100, 35)},
		{"rot normalized", 450, geometry.Pt(100, 35), geometry.Pt(100, 65)},
		{"rot negative", -90, geometry.Pt(100, 65), geometry.Pt(100, 35)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Component{ID: "r1", Type: Resistor, X: 100, Y: 50, Rot: tt.rot}
			pins := c.PinPositions()
			if pins[0] != tt.wantA || pins[1] != tt.wantB {
				t.Errorf("pins = %v,%v, want %v,%v", pins[0], pins[1], tt.wantA, tt.wantB)
			}
		})
	}
}

func TestComponentAxis(t *testing.T) {
	c := &Component{Type: Capacitor}
	if got := c.Axis(); got != geometry.AxisX {
		t.Errorf("axis at rot 0 = %v, want x", got)
	}
	c.Rotate()
	if got := c.Axis(); got != geometry.AxisY {
		t.Errorf("axis at rot 90 = %v, want y", got)
	}
	if c.Rot != 90 {
		t.Errorf("rot = %d, want 90", c.Rot)
	}
	c.Rotate()
	c.Rotate()
	c.Rotate()
	if c.Rot != 0 {
		t.Errorf("rot after full turn = %d, want 0", c.Rot)
	}
}

func TestComponentBounds(t *testing.T) {
	c := &Component{Type: Resistor, X: 0, Y: 0}
	b := c.Bounds()
	want := geometry.RectFromCenter(geometry.Pt(0, 0), 15, 5)
	if b != want {
		t.Errorf("bounds = %+v, want %+v", b, want)
	}
	c.Rot = 90
	b = c.Bounds()
	want = geometry.RectFromCenter(geometry.Pt(0, 0), 5, 15)
	if b != want {
		t.Errorf("rotated bounds = %+v, want %+v", b, want)
	}
}

func TestUnknownTypeFallsBack(t *testing.T) {
	c := &Component{Type: ComponentType("relay")}
	if got := c.HalfSpan(); got != defaultFootprint.Span/2 {
		t.Errorf("half span = %v, want default %v", got, defaultFootprint.Span/2)
	}
}
