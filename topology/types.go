// Package topology derives the connectivity structure of a schematic: a
// node/edge graph over wire segment endpoints, and its decomposition into
// straight runs, the maximal chains of collinear segments a component can
// slide along. Building is a pure function of the document; nothing here
// mutates a schematic or an earlier graph.
package topology

import (
	"math"

	"breadboard/geometry"
)

// Mixed is the sentinel color of a run whose contributing wires disagree on
// color.
const Mixed = "mixed"

// NodeKey identifies a graph node by its rounded coordinates. Points within
// half a unit of each other collapse onto the same node.
type NodeKey struct {
	X int
	Y int
}

func keyOf(p geometry.Point) NodeKey {
	return NodeKey{X: int(math.Round(p.X)), Y: int(math.Round(p.Y))}
}

// Node is a connectivity point of the graph. DegX and DegY count incident
// axis-aligned edges per axis; they are what detects branch points when runs
// are traced.
type Node struct {
	Key   NodeKey
	At    geometry.Point
	Edges []string
	DegX  int
	DegY  int
}

func (n *Node) deg(a geometry.Axis) int {
	if a == geometry.AxisY {
		return n.DegY
	}
	return n.DegX
}

// Edge connects two nodes. Wire segments carry the owning wire id and the
// segment index; synthetic bridges across an embedded component carry the
// component id instead and have ids of the form "comp:<id>".
type Edge struct {
	ID     string
	WireID string
	Seg    int
	CompID string
	A      NodeKey
	B      NodeKey
	Axis   geometry.Axis
}

// Run is a maximal straight chain of same-axis edges: every interior node
// has same-axis degree exactly two, so no branch interrupts it. Start and
// End are the axis-extreme endpoints with Start before End along the axis.
type Run struct {
	ID    string
	Axis  geometry.Axis
	Start geometry.Point
	End   geometry.Point
	// Color is the shared color of the contributing wires, or Mixed.
	Color string
	// Wires lists contributing wire ids in chain order, without repeats.
	Wires []string
	// Segments records which segment indices of each contributing wire
	// belong to this run.
	Segments map[string][]int
	// Line is the fixed off-axis coordinate the run lies on; Lo and Hi are
	// its extent along the axis.
	Line float64
	Lo   float64
	Hi   float64
}

// Length returns the run's extent along its axis.
func (r *Run) Length() float64 {
	return r.Hi - r.Lo
}

// Topology is one immutable snapshot of the graph.
type Topology struct {
	Nodes map[NodeKey]*Node
	Edges map[string]*Edge
	Runs  []*Run
	// RunByComponent maps a component id to the id of the unique run whose
	// axis matches the component and whose span covers both pins.
	RunByComponent map[string]string
}

// RunByID returns the run with the given id, or nil.
func (t *Topology) RunByID(id string) *Run {
	for _, r := range t.Runs {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// RunForComponent returns the run the component is embedded in, or nil.
func (t *Topology) RunForComponent(compID string) *Run {
	id, ok := t.RunByComponent[compID]
	if !ok {
		return nil
	}
	return t.RunByID(id)
}
