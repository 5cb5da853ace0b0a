package movement

import (
	"math"
	"sort"

	"breadboard/geometry"
	"breadboard/schematic"
)

// Finish commits the live move and returns the controller to idle. For a
// run move the synthetic wire is replaced by up to two stubs joining the
// component's pins to the run endpoints, wires and junctions that met the
// old line follow it to the new one, and inline neighbors get their pin
// gaps carved back out. Calling Finish with no live move is a no-op.
func (c *Controller) Finish() {
	tx := c.tx
	if tx == nil {
		return
	}
	c.tx = nil

	comp := c.doc.ComponentByID(tx.CompID)
	if comp == nil {
		// Component vanished mid-move; drop the synthetic wire and heal.
		if tx.CollapsedID != "" {
			c.doc.RemoveWire(tx.CollapsedID)
		}
		c.doc.Refresh()
		c.RebuildTopology()
		return
	}

	if tx.FreeDrag {
		c.doc.StitchComponent(comp)
		c.doc.Refresh()
		c.RebuildTopology()
		return
	}

	axis := tx.Axis
	other := axis.Other()

	// Final position: clamped onto the legal range one last time. A caller
	// may have placed the component directly between updates.
	center := comp.Center()
	if tx.Lo <= tx.Hi {
		v := math.Min(math.Max(center.Coord(axis), tx.Lo), tx.Hi)
		center = center.WithCoord(axis, v)
	}
	comp.SetCenter(center)

	newLine := center.Coord(other)
	delta := newLine - tx.Line
	newA := tx.OuterA.WithCoord(other, newLine)
	newB := tx.OuterB.WithCoord(other, newLine)

	if tx.CollapsedID != "" {
		c.doc.RemoveWire(tx.CollapsedID)
	}

	// Two stubs from the run endpoints to the component's pins. A pin
	// sitting on a run endpoint leaves that side without a stub.
	pins, _ := c.doc.PinPositions(comp.ID)
	pLo, pHi := pins[0], pins[1]
	if pLo.Coord(axis) > pHi.Coord(axis) {
		pLo, pHi = pHi, pLo
	}
	lo, hi := newA, newB
	if lo.Coord(axis) > hi.Coord(axis) {
		lo, hi = hi, lo
	}
	c.emitStub(tx, lo, pLo)
	c.emitStub(tx, pHi, hi)

	if math.Abs(delta) > 1e-9 {
		c.repointTerminals(tx, newLine)
		shift := geometry.Point{}.WithCoord(other, delta)
		c.doc.ShiftJunctions(tx.OuterA, tx.OuterB, shift)
	}

	// Neighbors the stubs now run through get their gaps carved back.
	for _, n := range c.doc.AllComponents() {
		if n.ID == comp.ID {
			continue
		}
		if c.topo.RunByComponent[n.ID] == tx.RunID {
			c.doc.GapForComponent(n)
		}
	}

	c.doc.Refresh()
	c.RebuildTopology()
}

// EnsureFinish commits any outstanding move. Safe to call at any time.
func (c *Controller) EnsureFinish() {
	c.Finish()
}

// emitStub adds one rebuilt run piece from a to b, inheriting color and
// stroke from the wires that covered that stretch before the collapse.
func (c *Controller) emitStub(tx *Transaction, a, b geometry.Point) {
	if geometry.EqualWithin(a, b, geometry.Eps) {
		return
	}
	lo, hi := a.Coord(tx.Axis), b.Coord(tx.Axis)
	if lo > hi {
		lo, hi = hi, lo
	}
	mid := geometry.Pt((a.X+b.X)/2, (a.Y+b.Y)/2)
	color, stroke := tx.styleFor(lo, hi, mid)
	c.doc.AddWire(&schematic.Wire{
		ID:     c.doc.UID("wire"),
		Points: []geometry.Point{a, b},
		Color:  color,
		Stroke: stroke,
	})
}

// repointTerminals walks every wire terminal that sat on the old run line
// and moves it to the new one. A terminal whose wire approaches along the
// run axis keeps its old point as a corner and grows a perpendicular jog,
// so no segment turns diagonal.
func (c *Controller) repointTerminals(tx *Transaction, newLine float64) {
	other := tx.Axis.Other()
	wires := append([]*schematic.Wire(nil), c.doc.AllWires()...)
	sort.Slice(wires, func(i, j int) bool { return wires[i].ID < wires[j].ID })
	for _, w := range wires {
		if len(w.Points) < 2 {
			continue
		}
		for _, atStart := range []bool{true, false} {
			p := w.Start()
			if !atStart {
				p = w.End()
			}
			if geometry.DistToSegment(p, tx.OuterA, tx.OuterB) > geometry.Eps {
				continue
			}
			if math.Abs(p.Coord(other)-newLine) <= 1e-9 {
				continue
			}
			target := p.WithCoord(other, newLine)
			adj, ok := c.doc.AdjacentOther(w, p)
			alongAxis := ok && math.Abs(adj.Coord(other)-p.Coord(other)) <= geometry.Eps
			switch {
			case alongAxis && atStart:
				w.Points = append([]geometry.Point{target}, w.Points...)
			case alongAxis:
				w.Points = append(w.Points, target)
			case atStart:
				w.Points[0] = target
			default:
				w.Points[len(w.Points)-1] = target
			}
		}
	}
}
