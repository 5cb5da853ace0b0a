package constraint

import (
	"math"
	"strings"
	"testing"

	"breadboard/geometry"
)

type pinDoc map[string][2]geometry.Point

func (d pinDoc) PinPositions(id string) ([2]geometry.Point, bool) {
	p, ok := d[id]
	return p, ok
}

func TestValidateFixedPosition(t *testing.T) {
	r := NewRegistry()
	ctx := &Context{Graph: NewGraph()}
	c := New("j", PriorityManualJunction, FixedPosition{At: geometry.Pt(100, 100)}, "e")
	e := &Entity{ID: "e", Kind: EntityJunction}

	v := r.Validate(ctx, c, e, geometry.Pt(100.2, 100))
	if !v.OK {
		t.Errorf("within tolerance rejected: %+v", v)
	}
	v = r.Validate(ctx, c, e, geometry.Pt(140, 100))
	if v.OK {
		t.Error("move away from fixed position accepted")
	}
	if v.Position != geometry.Pt(100, 100) {
		t.Errorf("adjusted position = %v, want the fixed point", v.Position)
	}
}

func TestValidateFixedAxis(t *testing.T) {
	r := NewRegistry()
	ctx := &Context{Graph: NewGraph()}
	p := NewFixedAxis(geometry.AxisX, 50)
	p.Min, p.Max = 100, 300
	c := New("axis", PriorityTopology, p, "e")
	e := &Entity{ID: "e", Kind: EntityComponent}

	tests := []struct {
		name string
		pos  geometry.Point
		want geometry.Point
	}{
		{"off the line", geometry.Pt(150, 80), geometry.Pt(150, 50)},
		{"below range", geometry.Pt(10, 50), geometry.Pt(100, 50)},
		{"above range", geometry.Pt(500, 50), geometry.Pt(300, 50)},
		{"already legal", geometry.Pt(200, 50), geometry.Pt(200, 50)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := r.Validate(ctx, c, e, tt.pos)
			if !v.OK {
				t.Fatalf("fixed-axis must clamp, not reject: %+v", v)
			}
			if v.Position != tt.want {
				t.Errorf("position = %v, want %v", v.Position, tt.want)
			}
		})
	}
}

func TestValidateMinDistance(t *testing.T) {
	g := NewGraph()
	g.AddEntity(&Entity{ID: "other", Kind: EntityComponent, Position: geometry.Pt(100, 0), Body: &Body{HalfX: 30, HalfY: 10}})
	r := NewRegistry()
	ctx := &Context{Graph: g}
	e := &Entity{ID: "e", Kind: EntityComponent, Body: &Body{HalfX: 30, HalfY: 10}}
	c := New("d", PriorityMinDistance, MinDistance{Other: "other"}, "e")

	if v := r.Validate(ctx, c, e, geometry.Pt(50, 0)); v.OK {
		t.Error("overlapping boxes accepted")
	}
	if v := r.Validate(ctx, c, e, geometry.Pt(40, 0)); !v.OK {
		t.Errorf("boxes touching at x=40..70 vs 70..130: %+v", v)
	}
	if v := r.Validate(ctx, c, e, geometry.Pt(200, 0)); !v.OK {
		t.Errorf("distant boxes rejected: %+v", v)
	}

	gap := New("g", PriorityMinDistance, MinDistance{Other: "other", Gap: 15}, "e")
	if v := r.Validate(ctx, gap, e, geometry.Pt(40, 0)); v.OK {
		t.Error("gap of 15 violated but accepted")
	}

	missing := New("m", PriorityMinDistance, MinDistance{Other: "ghost"}, "e")
	if v := r.Validate(ctx, missing, e, geometry.Pt(100, 0)); !v.OK {
		t.Error("missing counterpart must be a no-op")
	}
}

func TestValidatePinTouch(t *testing.T) {
	g := NewGraph()
	g.AddEntity(&Entity{ID: "end", Kind: EntityWireEndpoint, Position: geometry.Pt(130, 50)})
	doc := pinDoc{"r1": {geometry.Pt(70, 50), geometry.Pt(130, 50)}}
	r := NewRegistry()
	ctx := &Context{Graph: g, Doc: doc}
	e := &Entity{ID: "r1", Kind: EntityComponent, Position: geometry.Pt(100, 50)}
	c := New("touch", PriorityPinConnection, PinTouch{Pin: 1, Target: "end", TargetPin: -1}, "r1")

	t.Run("already touching", func(t *testing.T) {
		v := r.Validate(ctx, c, e, geometry.Pt(100, 50))
		if !v.OK || v.Position != geometry.Pt(100, 50) {
			t.Errorf("verdict = %+v, want accept unchanged", v)
		}
	})
	t.Run("near miss snaps", func(t *testing.T) {
		v := r.Validate(ctx, c, e, geometry.Pt(98, 50))
		if !v.OK {
			t.Fatalf("near miss rejected: %+v", v)
		}
		if v.Position != geometry.Pt(100, 50) {
			t.Errorf("snapped position = %v, want (100,50)", v.Position)
		}
	})
	t.Run("far miss rejects", func(t *testing.T) {
		v := r.Validate(ctx, c, e, geometry.Pt(300, 50))
		if v.OK {
			t.Error("pin far from endpoint accepted")
		}
	})
}

func TestValidatePinClearance(t *testing.T) {
	g := NewGraph()
	g.AddEntity(&Entity{ID: "r2", Kind: EntityComponent, Position: geometry.Pt(260, 50)})
	doc := pinDoc{
		"r1": {geometry.Pt(70, 50), geometry.Pt(130, 50)},
		"r2": {geometry.Pt(230, 50), geometry.Pt(290, 50)},
	}
	r := NewRegistry()
	ctx := &Context{Graph: g, Doc: doc}
	e := &Entity{ID: "r1", Kind: EntityComponent, Position: geometry.Pt(100, 50)}
	c := New("clear", PriorityNoOverlap, PinClearance{Other: "r2"}, "r1")

	// Moving r1 right by 100 puts its second pin at (230,50), exactly on
	// r2's first pin.
	if v := r.Validate(ctx, c, e, geometry.Pt(200, 50)); v.OK {
		t.Error("coinciding pins accepted")
	}
	// Just outside the tolerance is fine.
	if v := r.Validate(ctx, c, e, geometry.Pt(199, 50)); !v.OK {
		t.Errorf("pins 1 unit apart rejected: %+v", v)
	}
	// Within tolerance still trips.
	if v := r.Validate(ctx, c, e, geometry.Pt(199.5, 50)); v.OK {
		t.Error("pins 0.5 apart accepted")
	}
}

func TestValidateOnGrid(t *testing.T) {
	r := NewRegistry()
	ctx := &Context{Graph: NewGraph()}
	c := New("grid", PriorityGridSnap, OnGrid{Spacing: 10}, "e")
	v := r.Validate(ctx, c, &Entity{ID: "e"}, geometry.Pt(103, 97))
	if !v.OK || v.Position != geometry.Pt(100, 100) {
		t.Errorf("verdict = %+v, want snap to (100,100)", v)
	}
}

func TestSolvePriorityOrder(t *testing.T) {
	// The axis lock (priority 100) clamps into range before the min
	// distance check (priority 60) runs, so the clamped position is what
	// gets collision-tested.
	g := NewGraph()
	g.AddEntity(&Entity{ID: "mover", Kind: EntityComponent, Position: geometry.Pt(150, 50), Body: &Body{HalfX: 30, HalfY: 10}})
	g.AddEntity(&Entity{ID: "wall", Kind: EntityComponent, Position: geometry.Pt(400, 50), Body: &Body{HalfX: 30, HalfY: 10}})
	axis := NewFixedAxis(geometry.AxisX, 50)
	axis.Min, axis.Max = 100, 300
	g.AddConstraint(New("axis", PriorityTopology, axis, "mover"))
	g.AddConstraint(New("dist", PriorityMinDistance, MinDistance{Other: "wall"}, "mover"))
	s := NewSolver(g, NewRegistry(), nil)

	res := s.Solve("mover", geometry.Pt(900, 80))
	if !res.Allowed {
		t.Fatalf("clamped position should clear the wall: %+v", res.Violations)
	}
	if res.FinalPosition != geometry.Pt(300, 50) {
		t.Errorf("final = %v, want clamp to (300,50)", res.FinalPosition)
	}
}

func TestSolveRejectionLatches(t *testing.T) {
	g := NewGraph()
	g.AddEntity(&Entity{ID: "mover", Kind: EntityComponent, Position: geometry.Pt(0, 0), Body: &Body{HalfX: 30, HalfY: 10}})
	g.AddEntity(&Entity{ID: "wall", Kind: EntityComponent, Position: geometry.Pt(100, 0), Body: &Body{HalfX: 30, HalfY: 10}})
	g.AddConstraint(New("dist", PriorityMinDistance, MinDistance{Other: "wall"}, "mover"))
	g.AddConstraint(New("grid", PriorityGridSnap, OnGrid{Spacing: 10}, "mover"))
	s := NewSolver(g, NewRegistry(), nil)

	res := s.Solve("mover", geometry.Pt(93, 2))
	if res.Allowed {
		t.Fatal("overlap accepted")
	}
	// Grid snap still refined the position even though the move is
	// rejected; the rejection is what matters.
	if res.FinalPosition != geometry.Pt(90, 0) {
		t.Errorf("final = %v, want (90,0)", res.FinalPosition)
	}
	if len(res.Violations) != 1 {
		t.Fatalf("violations = %d, want 1", len(res.Violations))
	}
	viol := res.Violations[0]
	if viol.Kind != KindMinDistance || viol.ConstraintID != "dist" {
		t.Errorf("violation = %+v", viol)
	}
	if !strings.Contains(viol.Reason, "wall") {
		t.Errorf("reason %q does not name the counterpart", viol.Reason)
	}
}

func TestSolveUnknownEntity(t *testing.T) {
	s := NewSolver(NewGraph(), NewRegistry(), nil)
	res := s.Solve("ghost", geometry.Pt(1, 2))
	if res.Allowed {
		t.Error("unknown entity allowed")
	}
	if len(res.Violations) != 1 || res.Violations[0].Severity != SeverityError {
		t.Errorf("violations = %+v", res.Violations)
	}
}

// followerParams is a test-only rule: it drags a second entity along with
// the primary one, exercising the affected-entity merge and Apply.
type followerParams struct{ Other string }

func (followerParams) kind() Kind { return Kind("test-follower") }

func TestSolveAffectedEntitiesAndApply(t *testing.T) {
	g := NewGraph()
	g.AddEntity(&Entity{ID: "lead", Kind: EntityComponent, Position: geometry.Pt(0, 0)})
	g.AddEntity(&Entity{ID: "tail", Kind: EntityJunction, Position: geometry.Pt(0, 20)})
	g.AddConstraint(New("follow", PriorityRubberBand, followerParams{Other: "tail"}, "lead"))

	r := NewRegistry()
	r.Register(Kind("test-follower"), func(ctx *Context, c *Constraint, e *Entity, pos geometry.Point) Verdict {
		p := c.Params.(followerParams)
		other := ctx.Graph.Entity(p.Other)
		delta := pos.Sub(e.Position)
		return Verdict{OK: true, Position: pos, Updates: []EntityUpdate{
			{EntityID: p.Other, Position: other.Position.Add(delta)},
		}}
	})
	s := NewSolver(g, r, nil)

	res := s.Solve("lead", geometry.Pt(50, 0))
	if !res.Allowed {
		t.Fatalf("solve failed: %+v", res.Violations)
	}
	if len(res.Affected) != 1 || res.Affected[0].EntityID != "tail" {
		t.Fatalf("affected = %+v", res.Affected)
	}
	if res.Affected[0].Position != geometry.Pt(50, 20) {
		t.Errorf("tail target = %v, want (50,20)", res.Affected[0].Position)
	}

	if !s.Apply("lead", res) {
		t.Fatal("apply refused an allowed result")
	}
	if g.Entity("lead").Position != geometry.Pt(50, 0) {
		t.Errorf("lead = %v, want (50,0)", g.Entity("lead").Position)
	}
	if g.Entity("tail").Position != geometry.Pt(50, 20) {
		t.Errorf("tail = %v, want (50,20)", g.Entity("tail").Position)
	}
}

func TestApplyRefusesDisallowed(t *testing.T) {
	g := NewGraph()
	g.AddEntity(&Entity{ID: "e", Kind: EntityComponent, Position: geometry.Pt(1, 1)})
	s := NewSolver(g, NewRegistry(), nil)
	res := SolveResult{Allowed: false, FinalPosition: geometry.Pt(9, 9)}
	if s.Apply("e", res) {
		t.Fatal("apply committed a disallowed result")
	}
	if g.Entity("e").Position != geometry.Pt(1, 1) {
		t.Errorf("position changed to %v", g.Entity("e").Position)
	}
}

func TestFixedAxisUnboundedByDefault(t *testing.T) {
	p := NewFixedAxis(geometry.AxisY, 10)
	if !math.IsInf(p.Min, -1) || !math.IsInf(p.Max, 1) {
		t.Errorf("range = [%v,%v], want unbounded", p.Min, p.Max)
	}
}
