// Package constraint models movement legality as a bipartite graph of
// entities (things that occupy positions) and prioritized constraints over
// them, with a validator registry and a solver that folds both into a
// single verdict for a proposed position. Violations are ordinary data; the
// solver never panics over an illegal move, it reports it.
package constraint

import (
	"math"

	"breadboard/geometry"
)

// EntityKind classifies what a graph entity stands for in the document.
type EntityKind string

const (
	EntityComponent    EntityKind = "component"
	EntityWirePoint    EntityKind = "wire-point"
	EntityWireSegment  EntityKind = "wire-segment"
	EntityJunction     EntityKind = "junction"
	EntityWireEndpoint EntityKind = "wire-endpoint"
)

// Entity is one constrained position. Body is set for entities that occupy
// area (components) and nil for bare points.
type Entity struct {
	ID       string
	Kind     EntityKind
	Position geometry.Point
	Body     *Body

	constraints map[string]bool
}

// Body carries the axis-aligned half extents used by distance checks.
type Body struct {
	HalfX float64
	HalfY float64
}

// Bounds returns the entity's collision box at the given center.
func (b *Body) Bounds(center geometry.Point) geometry.Rect {
	return geometry.RectFromCenter(center, b.HalfX, b.HalfY)
}

// Priority bands, higher wins. The values leave room to interleave
// custom constraints between the standard ones.
const (
	PriorityManualJunction = 200
	PriorityPinConnection  = 150
	PriorityAutoJunction   = 120
	PriorityTopology       = 100
	PriorityRubberBand     = 90
	PriorityOrthogonal     = 80
	PriorityNoOverlap      = 70
	PriorityMinDistance    = 60
	PriorityGridSnap       = 50
	PriorityAlignment      = 40
)

// Kind names a constraint rule type.
type Kind string

const (
	KindFixedPosition    Kind = "fixed-position"
	KindFixedAxis        Kind = "fixed-axis"
	KindMinDistance      Kind = "min-distance"
	KindPinClearance     Kind = "pin-clearance"
	KindPinTouch         Kind = "pin-touch"
	KindOnGrid           Kind = "on-grid"
	KindCoincident       Kind = "coincident"
	KindConnected        Kind = "connected"
	KindOrthogonal       Kind = "orthogonal"
	KindNoOverlap        Kind = "no-overlap"
	KindRubberBand       Kind = "rubber-band"
	KindAlign            Kind = "align"
	KindMaintainTopology Kind = "maintain-topology"
)

// Params is the closed set of per-kind constraint parameters. Each rule type
// has its own struct; there is no untyped parameter bag.
type Params interface {
	kind() Kind
}

// FixedPosition pins an entity to a point. Used for manual junctions.
type FixedPosition struct {
	At        geometry.Point
	Tolerance float64
}

func (FixedPosition) kind() Kind { return KindFixedPosition }

// FixedAxis locks the off-axis coordinate to Line and bounds the coordinate
// along the free axis to [Min, Max]. NewFixedAxis leaves the range open.
type FixedAxis struct {
	Free geometry.Axis
	Line float64
	Min  float64
	Max  float64
}

func (FixedAxis) kind() Kind { return KindFixedAxis }

// NewFixedAxis builds an unbounded axis lock: slide anywhere along free,
// off-axis pinned to line.
func NewFixedAxis(free geometry.Axis, line float64) FixedAxis {
	return FixedAxis{Free: free, Line: line, Min: math.Inf(-1), Max: math.Inf(1)}
}

// MinDistance keeps the entity's box at least Gap away from another
// entity's box.
type MinDistance struct {
	Other string
	Gap   float64
}

func (MinDistance) kind() Kind { return KindMinDistance }

// PinClearance forbids any pin of the entity from coinciding with a pin of
// another component: two touching pins would short the parts together.
type PinClearance struct {
	Other   string
	Epsilon float64
}

func (PinClearance) kind() Kind { return KindPinClearance }

// PinTouch requires pin Pin of the entity to coincide with the target
// entity within Epsilon. TargetPin selects a pin on the target, or -1 for
// the target's own position. Within SnapRange the pin is pulled onto the
// target instead of rejecting.
type PinTouch struct {
	Pin       int
	Target    string
	TargetPin int
	Epsilon   float64
	SnapRange float64
}

func (PinTouch) kind() Kind { return KindPinTouch }

// OnGrid snaps the position to the given spacing. Always satisfiable.
type OnGrid struct {
	Spacing float64
}

func (OnGrid) kind() Kind { return KindOnGrid }

// The remaining rule types are declared so callers can express them; their
// validators currently accept everything.

type Coincident struct{ Other string }

func (Coincident) kind() Kind { return KindCoincident }

type Connected struct{ Other string }

func (Connected) kind() Kind { return KindConnected }

type Orthogonal struct{}

func (Orthogonal) kind() Kind { return KindOrthogonal }

type NoOverlap struct{}

func (NoOverlap) kind() Kind { return KindNoOverlap }

type RubberBand struct{ Slack float64 }

func (RubberBand) kind() Kind { return KindRubberBand }

type Align struct{ Axis geometry.Axis }

func (Align) kind() Kind { return KindAlign }

type MaintainTopology struct{}

func (MaintainTopology) kind() Kind { return KindMaintainTopology }

// Constraint binds a rule to the entities it governs.
type Constraint struct {
	ID       string
	Kind     Kind
	Priority int
	Entities []string
	Params   Params
	Enabled  bool
}

// New builds an enabled constraint. The kind comes from the params, so the
// two can never disagree.
func New(id string, priority int, params Params, entities ...string) *Constraint {
	return &Constraint{
		ID:       id,
		Kind:     params.kind(),
		Priority: priority,
		Entities: entities,
		Params:   params,
		Enabled:  true,
	}
}

// Severity grades a violation.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Violation reports one failed constraint with a human-readable reason.
type Violation struct {
	ConstraintID string
	Kind         Kind
	Severity     Severity
	Reason       string
}

// EntityUpdate is a secondary position change a constraint requires of some
// other entity when the primary move happens.
type EntityUpdate struct {
	EntityID string
	Position geometry.Point
}

// SolveResult is the solver's verdict on a proposed move.
type SolveResult struct {
	Allowed       bool
	FinalPosition geometry.Point
	Affected      []EntityUpdate
	Violations    []Violation
}
