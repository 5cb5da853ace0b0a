package constraint

import "sort"

// Graph holds the entities and constraints of one solving context. It is a
// plain container; legality logic lives in the registry's validators.
type Graph struct {
	entities    map[string]*Entity
	constraints map[string]*Constraint
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		entities:    make(map[string]*Entity),
		constraints: make(map[string]*Constraint),
	}
}

// AddEntity inserts or replaces an entity. Constraints that already
// reference the id attach to it, so entity and constraint insertion order
// does not matter.
func (g *Graph) AddEntity(e *Entity) {
	if old, ok := g.entities[e.ID]; ok {
		e.constraints = old.constraints
	}
	if e.constraints == nil {
		e.constraints = make(map[string]bool)
	}
	for cid, c := range g.constraints {
		for _, eid := range c.Entities {
			if eid == e.ID {
				e.constraints[cid] = true
				break
			}
		}
	}
	g.entities[e.ID] = e
}

// Entity returns the entity with the given id, or nil.
func (g *Graph) Entity(id string) *Entity {
	return g.entities[id]
}

// Entities returns all entities in unspecified order.
func (g *Graph) Entities() []*Entity {
	out := make([]*Entity, 0, len(g.entities))
	for _, e := range g.entities {
		out = append(out, e)
	}
	return out
}

// RemoveEntity deletes an entity and detaches it from its constraints.
// Constraints left with no attached entities are removed too.
func (g *Graph) RemoveEntity(id string) {
	e, ok := g.entities[id]
	if !ok {
		return
	}
	delete(g.entities, id)
	for cid := range e.constraints {
		c, ok := g.constraints[cid]
		if !ok {
			continue
		}
		remaining := c.Entities[:0]
		for _, eid := range c.Entities {
			if eid != id {
				remaining = append(remaining, eid)
			}
		}
		c.Entities = remaining
		if len(c.Entities) == 0 {
			delete(g.constraints, cid)
		}
	}
}

// AddConstraint attaches a constraint to its entities.
func (g *Graph) AddConstraint(c *Constraint) {
	g.constraints[c.ID] = c
	for _, eid := range c.Entities {
		if e, ok := g.entities[eid]; ok {
			e.constraints[c.ID] = true
		}
	}
}

// RemoveConstraint deletes a constraint and detaches it from every entity.
func (g *Graph) RemoveConstraint(id string) {
	if _, ok := g.constraints[id]; !ok {
		return
	}
	delete(g.constraints, id)
	for _, e := range g.entities {
		delete(e.constraints, id)
	}
}

// Constraint returns the constraint with the given id, or nil.
func (g *Graph) Constraint(id string) *Constraint {
	return g.constraints[id]
}

// ConstraintsFor returns the enabled constraints incident on the entity,
// highest priority first. Ties order by id so solving is deterministic.
func (g *Graph) ConstraintsFor(entityID string) []*Constraint {
	e, ok := g.entities[entityID]
	if !ok {
		return nil
	}
	out := make([]*Constraint, 0, len(e.constraints))
	for cid := range e.constraints {
		c, ok := g.constraints[cid]
		if !ok || !c.Enabled {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority > out[j].Priority
		}
		return out[i].ID < out[j].ID
	})
	return out
}
