// Package schematic holds the document model for an orthogonal circuit
// schematic: two-terminal components, axis-aligned wires and junction dots,
// plus the maintenance operations (wire surgery, junction derivation, net
// assignment) that keep a document consistent while it is edited.
package schematic

import (
	"breadboard/geometry"
)

// ComponentType identifies the kind of two-terminal component.
type ComponentType string

const (
	Resistor  ComponentType = "resistor"
	Capacitor ComponentType = "capacitor"
	Inductor  ComponentType = "inductor"
	Diode     ComponentType = "diode"
	Battery   ComponentType = "battery"
	ACSource  ComponentType = "ac"
)

// footprint fixes the geometry of each component type: the full pin-to-pin
// span along the principal axis and the full body width perpendicular to
// it.
type footprint struct {
	Span  float64
	Width float64
}

var footprints = map[ComponentType]footprint{
	Resistor:  {Span: 30, Width: 10},
	Capacitor: {Span: 20, Width: 12},
	Inductor:  {Span: 30, Width: 10},
	Diode:     {Span: 20, Width: 10},
	Battery:   {Span: 20, Width: 14},
	ACSource:  {Span: 20, Width: 20},
}

// defaultFootprint covers unknown types so documents from newer versions
// still load and move sensibly.
var defaultFootprint = footprint{Span: 20, Width: 10}

// Component is a two-terminal part placed on the schematic. X and Y are the
// body center; the pins sit on the principal axis at the type's half span,
// rotated by Rot degrees. Rot is always one of 0, 90, 180, 270.
type Component struct {
	ID    string        `json:"id"`
	Type  ComponentType `json:"type"`
	X     float64       `json:"x"`
	Y     float64       `json:"y"`
	Rot   int           `json:"rot"`
	Label string        `json:"label,omitempty"`
	Value string        `json:"value,omitempty"`
}

// Center returns the body center.
func (c *Component) Center() geometry.Point {
	return geometry.Point{X: c.X, Y: c.Y}
}

// SetCenter moves the body center to p.
func (c *Component) SetCenter(p geometry.Point) {
	c.X, c.Y = p.X, p.Y
}

// Axis returns the principal axis the pins lie on: AxisX at 0/180 degrees,
// AxisY at 90/270.
func (c *Component) Axis() geometry.Axis {
	if normRot(c.Rot) == 90 || normRot(c.Rot) == 270 {
		return geometry.AxisY
	}
	return geometry.AxisX
}

func (c *Component) footprint() footprint {
	if fp, ok := footprints[c.Type]; ok {
		return fp
	}
	return defaultFootprint
}

// HalfSpan returns the center-to-pin distance along the principal axis.
func (c *Component) HalfSpan() float64 {
	return c.footprint().Span / 2
}

// HalfWidth returns the body half extent perpendicular to the principal axis.
func (c *Component) HalfWidth() float64 {
	return c.footprint().Width / 2
}

// PinPositions returns the two pin locations in schematic coordinates.
// Rotation flips pin order at 180/270 so polarized parts keep their sense.
func (c *Component) PinPositions() [2]geometry.Point {
	h := c.HalfSpan()
	var a, b geometry.Point
	switch normRot(c.Rot) {
	case 90:
		a, b = geometry.Pt(c.X, c.Y-h), geometry.Pt(c.X, c.Y+h)
	case 180:
		a, b = geometry.Pt(c.X+h, c.Y), geometry.Pt(c.X-h, c.Y)
	case 270:
		a, b = geometry.Pt(c.X, c.Y+h), geometry.Pt(c.X, c.Y-h)
	default:
		a, b = geometry.Pt(c.X-h, c.Y), geometry.Pt(c.X+h, c.Y)
	}
	return [2]geometry.Point{a, b}
}

// Bounds returns the collision box, pins included. The box is always axis
// aligned because rotation happens in quarter turns.
func (c *Component) Bounds() geometry.Rect {
	halfX, halfY := c.HalfSpan(), c.HalfWidth()
	if c.Axis() == geometry.AxisY {
		halfX, halfY = halfY, halfX
	}
	return geometry.RectFromCenter(c.Center(), halfX, halfY)
}

// Rotate turns the component a quarter turn clockwise.
func (c *Component) Rotate() {
	c.Rot = normRot(c.Rot + 90)
}

// Clone returns a deep copy of the component.
func (c *Component) Clone() *Component {
	cp := *c
	return &cp
}

func normRot(rot int) int {
	rot %= 360
	if rot < 0 {
		rot += 360
	}
	return rot / 90 * 90
}
