package constraint

import (
	"fmt"
	"math"

	"breadboard/geometry"
)

// DocumentReader is the slice of the document the validators need: pin
// lookups for connection rules. The schematic package satisfies it.
type DocumentReader interface {
	PinPositions(componentID string) ([2]geometry.Point, bool)
}

// Context carries what a validator may consult beyond its own constraint.
type Context struct {
	Graph *Graph
	Doc   DocumentReader
}

// Verdict is one validator's answer for a proposed position. Position is
// always set: the (possibly adjusted) point solving continues from.
type Verdict struct {
	OK       bool
	Reason   string
	Position geometry.Point
	Updates  []EntityUpdate
}

func accept(pos geometry.Point) Verdict {
	return Verdict{OK: true, Position: pos}
}

func reject(pos geometry.Point, reason string) Verdict {
	return Verdict{OK: false, Reason: reason, Position: pos}
}

// Validator checks one constraint against an entity's proposed position.
type Validator func(ctx *Context, c *Constraint, e *Entity, pos geometry.Point) Verdict

// Registry maps rule types to validators.
type Registry struct {
	validators map[Kind]Validator
}

// NewRegistry returns a registry with the built-in validators installed.
func NewRegistry() *Registry {
	r := &Registry{validators: make(map[Kind]Validator)}
	r.Register(KindFixedPosition, validateFixedPosition)
	r.Register(KindFixedAxis, validateFixedAxis)
	r.Register(KindMinDistance, validateMinDistance)
	r.Register(KindPinClearance, validatePinClearance)
	r.Register(KindPinTouch, validatePinTouch)
	r.Register(KindOnGrid, validateOnGrid)
	for _, k := range []Kind{
		KindCoincident, KindConnected, KindOrthogonal, KindNoOverlap,
		KindRubberBand, KindAlign, KindMaintainTopology,
	} {
		r.Register(k, validateAlways)
	}
	return r
}

// Register installs or replaces the validator for a rule type.
func (r *Registry) Register(k Kind, v Validator) {
	r.validators[k] = v
}

// Validate dispatches to the rule type's validator. Unknown rule types are
// treated as satisfied so documents with newer constraint kinds keep
// working.
func (r *Registry) Validate(ctx *Context, c *Constraint, e *Entity, pos geometry.Point) Verdict {
	v, ok := r.validators[c.Kind]
	if !ok {
		return accept(pos)
	}
	return v(ctx, c, e, pos)
}

// validateAlways is the placeholder for declared-but-passive rule types.
func validateAlways(_ *Context, _ *Constraint, _ *Entity, pos geometry.Point) Verdict {
	return accept(pos)
}

func validateFixedPosition(_ *Context, c *Constraint, _ *Entity, pos geometry.Point) Verdict {
	p, ok := c.Params.(FixedPosition)
	if !ok {
		return accept(pos)
	}
	tol := p.Tolerance
	if tol <= 0 {
		tol = geometry.Eps
	}
	if geometry.EqualWithin(pos, p.At, tol) {
		return accept(pos)
	}
	return reject(p.At, fmt.Sprintf("position is fixed at %v", p.At))
}

func validateFixedAxis(_ *Context, c *Constraint, _ *Entity, pos geometry.Point) Verdict {
	p, ok := c.Params.(FixedAxis)
	if !ok {
		return accept(pos)
	}
	adjusted := pos.WithCoord(p.Free.Other(), p.Line)
	v := adjusted.Coord(p.Free)
	v = math.Max(p.Min, math.Min(p.Max, v))
	adjusted = adjusted.WithCoord(p.Free, v)
	return accept(adjusted)
}

func validateMinDistance(ctx *Context, c *Constraint, e *Entity, pos geometry.Point) Verdict {
	p, ok := c.Params.(MinDistance)
	if !ok {
		return accept(pos)
	}
	other := ctx.Graph.Entity(p.Other)
	if other == nil || other.ID == e.ID {
		return accept(pos)
	}
	mine := bodyOrPoint(e.Body, pos)
	theirs := bodyOrPoint(other.Body, other.Position).Expand(p.Gap)
	if mine.Intersects(theirs) {
		return reject(pos, fmt.Sprintf("too close to %s", other.ID))
	}
	return accept(pos)
}

func bodyOrPoint(b *Body, at geometry.Point) geometry.Rect {
	if b == nil {
		return geometry.Rect{Min: at, Max: at}
	}
	return b.Bounds(at)
}

func validatePinClearance(ctx *Context, c *Constraint, e *Entity, pos geometry.Point) Verdict {
	p, ok := c.Params.(PinClearance)
	if !ok || ctx.Doc == nil {
		return accept(pos)
	}
	mine, ok := ctx.Doc.PinPositions(e.ID)
	if !ok {
		return accept(pos)
	}
	theirs, ok := ctx.Doc.PinPositions(p.Other)
	if !ok {
		return accept(pos)
	}
	eps := p.Epsilon
	if eps <= 0 {
		eps = geometry.Eps
	}
	delta := pos.Sub(e.Position)
	for _, m := range mine {
		moved := m.Add(delta)
		for _, t := range theirs {
			if geometry.EqualWithin(moved, t, eps) {
				return reject(pos, fmt.Sprintf("pin would touch a pin of %s", p.Other))
			}
		}
	}
	return accept(pos)
}

func validatePinTouch(ctx *Context, c *Constraint, e *Entity, pos geometry.Point) Verdict {
	p, ok := c.Params.(PinTouch)
	if !ok || ctx.Doc == nil {
		return accept(pos)
	}
	pins, ok := ctx.Doc.PinPositions(e.ID)
	if !ok || p.Pin < 0 || p.Pin > 1 {
		return accept(pos)
	}
	// Pin offset relative to the entity's current position, carried over to
	// the proposed one.
	offset := pins[p.Pin].Sub(e.Position)
	pin := pos.Add(offset)

	var target geometry.Point
	if p.TargetPin >= 0 {
		tp, ok := ctx.Doc.PinPositions(p.Target)
		if !ok || p.TargetPin > 1 {
			return accept(pos)
		}
		target = tp[p.TargetPin]
	} else {
		te := ctx.Graph.Entity(p.Target)
		if te == nil {
			return accept(pos)
		}
		target = te.Position
	}

	eps := p.Epsilon
	if eps <= 0 {
		eps = geometry.Eps
	}
	if geometry.EqualWithin(pin, target, eps) {
		return accept(pos)
	}
	snap := p.SnapRange
	if snap <= 0 {
		snap = 4 * eps
	}
	if pin.Dist(target) <= snap {
		// Close enough to pull the pin onto the target.
		return accept(pos.Add(target.Sub(pin)))
	}
	return reject(pos, fmt.Sprintf("pin %d must touch %s", p.Pin, p.Target))
}

func validateOnGrid(_ *Context, c *Constraint, _ *Entity, pos geometry.Point) Verdict {
	p, ok := c.Params.(OnGrid)
	if !ok || p.Spacing <= 0 {
		return accept(pos)
	}
	return accept(geometry.Point{
		X: math.Round(pos.X/p.Spacing) * p.Spacing,
		Y: math.Round(pos.Y/p.Spacing) * p.Spacing,
	})
}
