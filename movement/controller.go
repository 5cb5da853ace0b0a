// Package movement implements the transactional drag protocol for
// components: beginning a move collapses the straight run the component
// rides on into a single wire and derives the legal slide range, updates
// validate candidate positions through the constraint solver, and finishing
// re-segments the run around the component's final position. At most one
// move is live per controller and every entry path finishes an outstanding
// one first, so the document is never left half-collapsed.
package movement

import (
	"errors"
	"fmt"
	"math"

	"breadboard/constraint"
	"breadboard/geometry"
	"breadboard/schematic"
	"breadboard/topology"
)

// ErrUnknownComponent is returned by Begin for an id not in the document.
var ErrUnknownComponent = errors.New("unknown component id")

// Document is the capability surface the controller needs from its host.
// *schematic.Schematic satisfies it; tests may substitute their own.
type Document interface {
	AllComponents() []*schematic.Component
	AllWires() []*schematic.Wire
	ComponentByID(id string) *schematic.Component
	WireByID(id string) *schematic.Wire
	WiresEndingAt(p geometry.Point) []*schematic.Wire
	AdjacentOther(w *schematic.Wire, endpoint geometry.Point) (geometry.Point, bool)
	PinPositions(componentID string) ([2]geometry.Point, bool)
	AddWire(w *schematic.Wire) *schematic.Wire
	RemoveWire(id string)
	RemoveWireSegments(w *schematic.Wire, indices []int) []*schematic.Wire
	GapForComponent(c *schematic.Component)
	StitchComponent(c *schematic.Component)
	ShiftJunctions(a, b, delta geometry.Point)
	UID(prefix string) string
	SnapshotUndo()
	Refresh()
}

// Controller owns the drag state machine: idle, or one live transaction.
type Controller struct {
	doc  Document
	topo *topology.Topology
	tx   *Transaction
}

// NewController builds a controller over the document and takes an initial
// topology snapshot.
func NewController(doc Document) *Controller {
	c := &Controller{doc: doc}
	c.RebuildTopology()
	return c
}

// RebuildTopology re-derives the connectivity snapshot from the document.
func (c *Controller) RebuildTopology() *topology.Topology {
	c.topo = topology.Rebuild(c.doc.AllComponents(), c.doc.AllWires())
	return c.topo
}

// Topology returns the snapshot from the last rebuild. During a live move it
// reflects the document as it was when the move began.
func (c *Controller) Topology() *topology.Topology {
	return c.topo
}

// RunForComponent returns the straight run the component is embedded in,
// per the last rebuild, or nil.
func (c *Controller) RunForComponent(id string) *topology.Run {
	return c.topo.RunForComponent(id)
}

// RunByID resolves a run id from the last rebuild, or nil.
func (c *Controller) RunByID(id string) *topology.Run {
	return c.topo.RunByID(id)
}

// Moving reports whether a transaction is live.
func (c *Controller) Moving() bool {
	return c.tx != nil
}

// Active returns the live transaction, or nil when idle.
func (c *Controller) Active() *Transaction {
	return c.tx
}

// Begin starts a move for the component. An outstanding transaction is
// finished first. When the component rides a straight run the run collapses
// to one synthetic wire and the slide range is derived from the neighbors'
// pin spans; a component with no run falls back to a free drag which only
// checks collisions and pin clearance.
func (c *Controller) Begin(compID string) (*Transaction, error) {
	if c.tx != nil {
		c.Finish()
	}
	comp := c.doc.ComponentByID(compID)
	if comp == nil {
		return nil, fmt.Errorf("begin move %q: %w", compID, ErrUnknownComponent)
	}
	c.doc.SnapshotUndo()
	c.RebuildTopology()

	run := c.topo.RunForComponent(compID)
	if run == nil {
		c.tx = c.beginFree(comp)
		return c.tx, nil
	}
	c.tx = c.beginOnRun(comp, run)
	return c.tx, nil
}

// beginFree detaches the component from any wires it touches and sets up
// collision-only solving.
func (c *Controller) beginFree(comp *schematic.Component) *Transaction {
	c.doc.StitchComponent(comp)
	tx := &Transaction{CompID: comp.ID, FreeDrag: true}
	tx.solver = c.buildSolver(comp, nil, 0, 0)
	return tx
}

// beginOnRun collapses the run and derives the clamp range.
func (c *Controller) beginOnRun(comp *schematic.Component, run *topology.Run) *Transaction {
	axis := run.Axis
	tx := &Transaction{
		CompID: comp.ID,
		RunID:  run.ID,
		Axis:   axis,
		Line:   run.Line,
		OuterA: run.Start,
		OuterB: run.End,
	}

	// Record the pre-collapse wires: full polylines for the proximity stage
	// of style inheritance, per-segment intervals for the fallback stages.
	for _, wid := range run.Wires {
		w := c.doc.WireByID(wid)
		if w == nil {
			continue
		}
		tx.removed = append(tx.removed, w.Clone())
		for _, seg := range run.Segments[wid] {
			a, b := w.Points[seg], w.Points[seg+1]
			lo, hi := a.Coord(axis), b.Coord(axis)
			if lo > hi {
				lo, hi = hi, lo
			}
			tx.sources = append(tx.sources, strokeSource{
				WireID: wid, Lo: lo, Hi: hi, Color: w.Color, Stroke: w.Stroke,
			})
		}
	}

	// Collapse: remove exactly the run's segments, then span one synthetic
	// wire across the whole run.
	for _, wid := range run.Wires {
		if w := c.doc.WireByID(wid); w != nil {
			c.doc.RemoveWireSegments(w, run.Segments[wid])
		}
	}
	syn := c.doc.AddWire(&schematic.Wire{
		ID:     c.doc.UID("wire"),
		Points: []geometry.Point{run.Start, run.End},
		Color:  run.Color,
	})
	if syn != nil {
		tx.CollapsedID = syn.ID
	}

	tx.Lo, tx.Hi = c.slideRange(comp, run)

	// Pin the component onto the run's line.
	comp.SetCenter(comp.Center().WithCoord(axis.Other(), run.Line))

	tx.solver = c.buildSolver(comp, run, tx.Lo, tx.Hi)
	return tx
}

// slideRange computes the legal range for the component's center: the run
// inset by its own pin half-span, pushed further inward by every neighbor
// on the run so pin spans cannot overlap.
func (c *Controller) slideRange(comp *schematic.Component, run *topology.Run) (float64, float64) {
	axis := run.Axis
	h := comp.HalfSpan()
	lo := run.Lo + h
	hi := run.Hi - h
	center := comp.Center().Coord(axis)
	for _, other := range c.doc.AllComponents() {
		if other.ID == comp.ID {
			continue
		}
		if c.topo.RunByComponent[other.ID] != run.ID {
			continue
		}
		oc := other.Center().Coord(axis)
		oh := other.HalfSpan()
		if oc < center {
			lo = math.Max(lo, oc+oh+h)
		} else {
			hi = math.Min(hi, oc-oh-h)
		}
	}
	return lo, hi
}

// buildSolver assembles the per-transaction constraint graph: the moving
// component with its collision body, every other component as an obstacle,
// an axis lock when the move rides a run, and pin clearance against parts
// the run does not already join.
func (c *Controller) buildSolver(comp *schematic.Component, run *topology.Run, lo, hi float64) *constraint.Solver {
	g := constraint.NewGraph()
	g.AddEntity(&constraint.Entity{
		ID:       comp.ID,
		Kind:     constraint.EntityComponent,
		Position: comp.Center(),
		Body:     bodyOf(comp),
	})
	if run != nil {
		lock := constraint.FixedAxis{Free: run.Axis, Line: run.Line, Min: lo, Max: hi}
		g.AddConstraint(constraint.New("lock:"+comp.ID, constraint.PriorityTopology, lock, comp.ID))
	}
	for _, other := range c.doc.AllComponents() {
		if other.ID == comp.ID {
			continue
		}
		g.AddEntity(&constraint.Entity{
			ID:       other.ID,
			Kind:     constraint.EntityComponent,
			Position: other.Center(),
			Body:     bodyOf(other),
		})
		g.AddConstraint(constraint.New(
			"dist:"+other.ID,
			constraint.PriorityMinDistance,
			constraint.MinDistance{Other: other.ID},
			comp.ID,
		))
		// Pins meeting along the shared run join the parts; that is a
		// connection, not a short. Clearance applies to everything else.
		if run != nil && c.topo.RunByComponent[other.ID] == run.ID {
			continue
		}
		g.AddConstraint(constraint.New(
			"pins:"+other.ID,
			constraint.PriorityNoOverlap,
			constraint.PinClearance{Other: other.ID},
			comp.ID,
		))
	}
	return constraint.NewSolver(g, constraint.NewRegistry(), c.doc)
}

func bodyOf(comp *schematic.Component) *constraint.Body {
	b := comp.Bounds()
	return &constraint.Body{
		HalfX: (b.Max.X - b.Min.X) / 2,
		HalfY: (b.Max.Y - b.Min.Y) / 2,
	}
}

// Update moves the live transaction by a delta. The candidate position is
// clamped by the axis lock, then collision and pin rules run; a rejected
// candidate leaves the document untouched. ok is false when no move is
// live. The result carries the violations for the caller to surface.
func (c *Controller) Update(dx, dy float64) (constraint.SolveResult, bool) {
	tx := c.tx
	if tx == nil {
		return constraint.SolveResult{}, false
	}
	comp := c.doc.ComponentByID(tx.CompID)
	if comp == nil {
		return constraint.SolveResult{}, false
	}
	cand := comp.Center().Add(geometry.Pt(dx, dy))
	res := tx.solver.Solve(comp.ID, cand)
	if !res.Allowed {
		return res, true
	}
	tx.solver.Apply(comp.ID, res)
	comp.SetCenter(res.FinalPosition)
	return res, true
}
