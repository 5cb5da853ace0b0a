package topology

import (
	"fmt"
	"math"

	"breadboard/geometry"
	"breadboard/schematic"
)

// Rebuild constructs a fresh topology snapshot from the given components and
// wires. The inputs are only read. Edge and run ordering is deterministic in
// document order, so identical documents produce identical graphs.
func Rebuild(comps []*schematic.Component, wires []*schematic.Wire) *Topology {
	b := &builder{
		topo: &Topology{
			Nodes:          make(map[NodeKey]*Node),
			Edges:          make(map[string]*Edge),
			RunByComponent: make(map[string]string),
		},
		wireColor: make(map[string]string, len(wires)),
	}
	for _, w := range wires {
		b.wireColor[w.ID] = w.Color
		for i := 0; i+1 < len(w.Points); i++ {
			b.addSegment(w, i)
		}
	}
	for _, c := range comps {
		b.addBridge(c)
	}
	b.traceRuns()
	b.mapComponents(comps)
	return b.topo
}

type builder struct {
	topo      *Topology
	order     []string // edge ids in insertion order, for deterministic tracing
	wireColor map[string]string
}

func (b *builder) node(p geometry.Point) *Node {
	k := keyOf(p)
	if n, ok := b.topo.Nodes[k]; ok {
		return n
	}
	n := &Node{Key: k, At: p}
	b.topo.Nodes[k] = n
	return n
}

func (b *builder) addEdge(e *Edge, a, bn *Node) {
	if a.Key == bn.Key {
		return // zero-length after rounding
	}
	e.A, e.B = a.Key, bn.Key
	b.topo.Edges[e.ID] = e
	b.order = append(b.order, e.ID)
	a.Edges = append(a.Edges, e.ID)
	bn.Edges = append(bn.Edges, e.ID)
	switch e.Axis {
	case geometry.AxisX:
		a.DegX++
		bn.DegX++
	case geometry.AxisY:
		a.DegY++
		bn.DegY++
	}
}

func (b *builder) addSegment(w *schematic.Wire, i int) {
	pa, pb := w.Points[i], w.Points[i+1]
	na, nb := b.node(pa), b.node(pb)
	if na == nb {
		return
	}
	axis := geometry.AxisNone
	switch {
	case na.Key.Y == nb.Key.Y:
		axis = geometry.AxisX
	case na.Key.X == nb.Key.X:
		axis = geometry.AxisY
	}
	b.addEdge(&Edge{
		ID:     fmt.Sprintf("%s:%d", w.ID, i),
		WireID: w.ID,
		Seg:    i,
		Axis:   axis,
	}, na, nb)
}

// addBridge inserts a synthetic edge across an embedded component: one whose
// pins both coincide with existing graph nodes. The bridge lets a run pass
// straight through a part that sits inline on a wire.
func (b *builder) addBridge(c *schematic.Component) {
	pins := c.PinPositions()
	na, ok := b.topo.Nodes[keyOf(pins[0])]
	if !ok {
		return
	}
	nb, ok := b.topo.Nodes[keyOf(pins[1])]
	if !ok {
		return
	}
	axis := geometry.AxisNone
	switch {
	case na.Key.Y == nb.Key.Y:
		axis = geometry.AxisX
	case na.Key.X == nb.Key.X:
		axis = geometry.AxisY
	}
	if axis == geometry.AxisNone {
		return
	}
	b.addEdge(&Edge{
		ID:     "comp:" + c.ID,
		CompID: c.ID,
		Axis:   axis,
	}, na, nb)
}

// traceRuns walks every axis-aligned edge into its maximal straight chain.
func (b *builder) traceRuns() {
	visited := make(map[string]bool, len(b.order))
	for _, id := range b.order {
		e := b.topo.Edges[id]
		// Chains start from wire segments; a bridge with no wire on either
		// side is not a run on its own.
		if e.Axis == geometry.AxisNone || e.WireID == "" || visited[e.ID] {
			continue
		}
		visited[e.ID] = true
		chain := []*Edge{e}
		endB := b.extend(e, e.B, visited, func(n *Edge) { chain = append(chain, n) })
		endA := b.extend(e, e.A, visited, func(n *Edge) { chain = append([]*Edge{n}, chain...) })
		b.finishRun(chain, endA, endB, e.Axis)
	}
}

// extend follows the chain outward from the given end of the current edge,
// passing through a node only while its same-axis degree is exactly two.
// It returns the node key the chain stops at.
func (b *builder) extend(cur *Edge, at NodeKey, visited map[string]bool, add func(*Edge)) NodeKey {
	axis := cur.Axis
	for {
		n := b.topo.Nodes[at]
		if n.deg(axis) != 2 {
			return at
		}
		var next *Edge
		for _, eid := range n.Edges {
			cand := b.topo.Edges[eid]
			if cand.Axis == axis && cand.ID != cur.ID && !visited[cand.ID] {
				next = cand
				break
			}
		}
		if next == nil {
			return at
		}
		visited[next.ID] = true
		add(next)
		if next.A == at {
			at = next.B
		} else {
			at = next.A
		}
		cur = next
	}
}

func (b *builder) finishRun(chain []*Edge, endA, endB NodeKey, axis geometry.Axis) {
	t := b.topo
	start, end := t.Nodes[endA].At, t.Nodes[endB].At
	if start.Coord(axis) > end.Coord(axis) {
		start, end = end, start
	}

	r := &Run{
		ID:       fmt.Sprintf("run-%d", len(t.Runs)+1),
		Axis:     axis,
		Start:    start,
		End:      end,
		Segments: make(map[string][]int),
		Line:     start.Coord(axis.Other()),
		Lo:       start.Coord(axis),
		Hi:       end.Coord(axis),
	}
	color := ""
	colorSet := false
	for _, e := range chain {
		if e.WireID == "" {
			continue
		}
		if _, seen := r.Segments[e.WireID]; !seen {
			r.Wires = append(r.Wires, e.WireID)
		}
		r.Segments[e.WireID] = append(r.Segments[e.WireID], e.Seg)
	}
	for _, wid := range r.Wires {
		c := b.wireColor[wid]
		if !colorSet {
			color, colorSet = c, true
			continue
		}
		if c != color {
			color = Mixed
			break
		}
	}
	r.Color = color
	t.Runs = append(t.Runs, r)
}

// mapComponents resolves which run each component is embedded in: the axis
// must match and the run's span must cover both pins within half a unit.
func (b *builder) mapComponents(comps []*schematic.Component) {
	const tol = 0.5
	for _, c := range comps {
		axis := c.Axis()
		pins := c.PinPositions()
		for _, r := range b.topo.Runs {
			if r.Axis != axis {
				continue
			}
			ok := true
			for _, pin := range pins {
				if math.Abs(pin.Coord(axis.Other())-r.Line) > tol {
					ok = false
					break
				}
				v := pin.Coord(axis)
				if v < r.Lo-tol || v > r.Hi+tol {
					ok = false
					break
				}
			}
			if ok {
				b.topo.RunByComponent[c.ID] = r.ID
				break
			}
		}
	}
}
