package constraint

import (
	"fmt"

	"breadboard/geometry"
)

// Solver runs an entity's constraints, highest priority first, against a
// proposed position. Each validator sees the position as refined so far;
// a lower-priority validator may adjust it further but can never lift a
// higher-priority rejection.
type Solver struct {
	graph    *Graph
	registry *Registry
	doc      DocumentReader
}

// NewSolver wires a solver to its graph and registry. doc may be nil when
// no document-dependent rules are in play.
func NewSolver(g *Graph, r *Registry, doc DocumentReader) *Solver {
	return &Solver{graph: g, registry: r, doc: doc}
}

// Graph returns the solver's constraint graph.
func (s *Solver) Graph() *Graph {
	return s.graph
}

// Solve evaluates a proposed position for the entity and reports whether it
// may be committed, the refined final position, any secondary entity moves
// the constraints require, and every violated constraint.
func (s *Solver) Solve(entityID string, proposed geometry.Point) SolveResult {
	e := s.graph.Entity(entityID)
	if e == nil {
		return SolveResult{
			FinalPosition: proposed,
			Violations: []Violation{{
				Severity: SeverityError,
				Reason:   fmt.Sprintf("unknown entity %q", entityID),
			}},
		}
	}

	res := SolveResult{Allowed: true}
	pos := proposed
	affected := make(map[string]geometry.Point)
	ctx := &Context{Graph: s.graph, Doc: s.doc}

	for _, c := range s.graph.ConstraintsFor(entityID) {
		v := s.registry.Validate(ctx, c, e, pos)
		pos = v.Position
		if !v.OK {
			res.Allowed = false
			res.Violations = append(res.Violations, Violation{
				ConstraintID: c.ID,
				Kind:         c.Kind,
				Severity:     SeverityError,
				Reason:       v.Reason,
			})
		}
		for _, u := range v.Updates {
			affected[u.EntityID] = u.Position
		}
	}

	res.FinalPosition = pos
	for id, p := range affected {
		res.Affected = append(res.Affected, EntityUpdate{EntityID: id, Position: p})
	}
	return res
}

// Apply commits a solve result: the entity and every affected entity take
// their new positions. Disallowed results leave the graph untouched and
// return false.
func (s *Solver) Apply(entityID string, res SolveResult) bool {
	if !res.Allowed {
		return false
	}
	if e := s.graph.Entity(entityID); e != nil {
		e.Position = res.FinalPosition
	}
	for _, u := range res.Affected {
		if e := s.graph.Entity(u.EntityID); e != nil {
			e.Position = u.Position
		}
	}
	return true
}
