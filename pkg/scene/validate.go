package scene

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ChicagoDave/tubenet/pkg/network"
	"github.com/ChicagoDave/tubenet/pkg/routing"
	"github.com/ChicagoDave/tubenet/pkg/validation"
)

// ValidateGraph checks a scene graph for internal consistency.
func ValidateGraph(g *Graph) *validation.Report {
	report := validation.NewReport()
	if g == nil {
		report.AddError(validation.Result{
			Level:   validation.LevelTopology,
			Message: "scene graph is nil",
			Path:    "graph",
		})
		return report
	}

	ids := validateEntityIDs(g, report)
	validateGroupIndices(g, ids, report)
	validateReferences(g, ids, report)
	return report
}

// validateEntityIDs checks that all entity IDs are non-empty and unique.
func validateEntityIDs(g *Graph, report *validation.Report) map[string]Entity {
	seen := make(map[string]Entity, len(g.Entities))
	for i, e := range g.Entities {
		path := fmt.Sprintf("entities[%d]", i)
		if e.ID == "" {
			report.AddError(validation.Result{
				Level:   validation.LevelTopology,
				Message: "entity has empty ID",
				Path:    path,
			})
			continue
		}
		if _, dup := seen[e.ID]; dup {
			report.AddError(validation.Result{
				Level:       validation.LevelTopology,
				Message:     fmt.Sprintf("duplicate entity ID %q", e.ID),
				Path:        path,
				ActualValue: e.ID,
			})
			continue
		}
		seen[e.ID] = e
	}
	return seen
}

// validateGroupIndices checks that every grouped ID exists and sits in the
// right group.
func validateGroupIndices(g *Graph, ids map[string]Entity, report *validation.Report) {
	for typ, members := range g.Groups.EntityTypes {
		for _, id := range members {
			e, ok := ids[id]
			switch {
			case !ok:
				report.AddError(validation.Result{
					Level:   validation.LevelTopology,
					Message: fmt.Sprintf("type group %q references unknown entity %q", typ, id),
					Path:    fmt.Sprintf("groups.entity_types.%s", typ),
				})
			case e.Type != typ:
				report.AddError(validation.Result{
					Level:       validation.LevelTopology,
					Message:     fmt.Sprintf("entity %q is grouped as %q", id, typ),
					Path:        fmt.Sprintf("groups.entity_types.%s", typ),
					ActualValue: e.Type,
				})
			}
		}
	}
	for city, members := range g.Groups.Cities {
		for _, id := range members {
			if e, ok := ids[id]; !ok || e.City != city {
				report.AddError(validation.Result{
					Level:   validation.LevelTopology,
					Message: fmt.Sprintf("city group %d references entity %q outside the city", city, id),
					Path:    fmt.Sprintf("groups.cities.%d", city),
				})
			}
		}
	}
}

// validateReferences checks that edges and pods only name existing buildings.
func validateReferences(g *Graph, ids map[string]Entity, report *validation.Report) {
	for _, e := range g.Entities {
		if e.Type != EntityTube && e.Type != EntityTeleporter && e.Type != EntityPod {
			continue
		}
		for _, child := range e.Children {
			b, ok := ids[child]
			if !ok || (b.Type != EntityPad && b.Type != EntityHangout) {
				report.AddError(validation.Result{
					Level:       validation.LevelTopology,
					Message:     fmt.Sprintf("%s %q references unknown building %q", e.Type, e.ID, child),
					Path:        e.ID,
					ActualValue: child,
				})
			}
		}
	}
}

// ValidateWorld audits a world from the outside: the partition invariants,
// each connected component against its city, and every tube pair against
// the crossing rule. It is meant for replays and tests, not the hot path.
func ValidateWorld(w *network.World) *validation.Report {
	report := validation.NewReport()

	// 1. Partition invariants
	if err := w.CheckInvariants(); err != nil {
		for _, msg := range strings.Split(err.Error(), "\n") {
			report.AddError(validation.Result{
				Level:   validation.LevelTopology,
				Message: msg,
				Path:    "world",
			})
		}
	}

	// 2. Components match cities
	validateComponents(w, report)

	// 3. Planarity
	validateCrossings(w, report)

	return report
}

func validateComponents(w *network.World, report *validation.Report) {
	for _, comp := range routing.Components(w.Adjacency()) {
		c, ok := w.CityOf(comp[0])
		path := fmt.Sprintf("building[%d]", comp[0])
		if !ok {
			report.AddError(validation.Result{
				Level:   validation.LevelTopology,
				Message: fmt.Sprintf("component of %d buildings has no city", len(comp)),
				Path:    path,
			})
			continue
		}
		if want := c.BuildingIDs(); !slices.Equal(comp, want) {
			report.AddError(validation.Result{
				Level:       validation.LevelTopology,
				Message:     fmt.Sprintf("city %d does not match its connected component", c.ID),
				Path:        fmt.Sprintf("city[%d]", c.ID),
				ActualValue: comp,
				Expected:    fmt.Sprint(want),
			})
		}
	}
}

func validateCrossings(w *network.World, report *validation.Report) {
	opts := w.Options()
	var tubes []*network.Edge
	for _, e := range w.Edges() {
		if e.Kind == network.Tube {
			tubes = append(tubes, e)
		}
	}
	for i, a := range tubes {
		p1, _ := w.Building(a.A)
		p2, _ := w.Building(a.B)
		for _, b := range tubes[i+1:] {
			if a.A == b.A || a.A == b.B || a.B == b.A || a.B == b.B {
				continue
			}
			q1, _ := w.Building(b.A)
			q2, _ := w.Building(b.B)
			// The later tube was the candidate when it was built.
			if opts.Crossing.Intersects(q1.Pos, q2.Pos, p1.Pos, p2.Pos, opts.Epsilon) {
				report.AddError(validation.Result{
					Level:   validation.LevelTopology,
					Message: fmt.Sprintf("tube %d-%d crosses tube %d-%d", b.A, b.B, a.A, a.B),
					Path:    EdgeID(b.ID),
				})
			}
		}
	}
}
