package scene

import (
	"fmt"
	"math"

	"github.com/ChicagoDave/tubenet/pkg/network"
)

// BuildingID, EdgeID and PodID name world elements inside a graph.
func BuildingID(id int) string { return fmt.Sprintf("b%d", id) }
func EdgeID(id int) string     { return fmt.Sprintf("e%d", id) }
func PodID(id int) string      { return fmt.Sprintf("p%d", id) }

// Assemble converts a world into a scene graph. The output depends only on
// the world state, so equal worlds give equal graphs.
func Assemble(w *network.World, turn, resources int) *Graph {
	g := NewGraph()

	assembleBuildings(w, g)
	assembleEdges(w, g)
	assemblePods(w, g)

	g.Metadata = Metadata{
		Turn:      turn,
		Resources: resources,
		Bounds:    computeBounds(g.Entities),
		Digest:    Digest(w),
	}
	return g
}

func assembleBuildings(w *network.World, g *Graph) {
	for _, b := range w.Buildings() {
		e := Entity{
			ID:       BuildingID(b.ID),
			Type:     EntityHangout,
			Position: b.Pos,
			City:     b.City,
			Metadata: map[string]any{"role": b.Role.String()},
		}
		if b.Kind == network.Pad {
			e.Type = EntityPad
			e.Metadata["demand"] = b.Demand
		} else {
			e.Metadata["category"] = b.Category
		}
		addEntity(g, e)
	}
}

func assembleEdges(w *network.World, g *Graph) {
	for _, edge := range w.Edges() {
		a, _ := w.Building(edge.A)
		b, _ := w.Building(edge.B)
		end := b.Pos
		e := Entity{
			ID:       EdgeID(edge.ID),
			Type:     EntityTube,
			Position: a.Pos,
			End:      &end,
			City:     a.City,
			Metadata: map[string]any{
				"capacity": edge.Capacity,
				"pods":     edge.Pods,
				"awake":    edge.Awake,
			},
			Children: []string{BuildingID(edge.A), BuildingID(edge.B)},
		}
		if edge.Kind == network.Teleporter {
			e.Type = EntityTeleporter
		} else {
			e.Metadata["length"] = edge.Length
		}
		addEntity(g, e)
	}
}

func assemblePods(w *network.World, g *Graph) {
	for _, p := range w.Pods() {
		start, _ := w.Building(p.Route[0])
		stops := make([]string, len(p.Route))
		for i, id := range p.Route {
			stops[i] = BuildingID(id)
		}
		addEntity(g, Entity{
			ID:       PodID(p.ID),
			Type:     EntityPod,
			Position: start.Pos,
			City:     p.City,
			Children: stops,
		})
	}
}

func addEntity(g *Graph, e Entity) {
	g.Entities = append(g.Entities, e)
	g.Groups.EntityTypes[e.Type] = append(g.Groups.EntityTypes[e.Type], e.ID)
	if e.City != 0 {
		g.Groups.Cities[e.City] = append(g.Groups.Cities[e.City], e.ID)
	}
}

func computeBounds(entities []Entity) BoundingBox {
	if len(entities) == 0 {
		return BoundingBox{}
	}
	bb := BoundingBox{}
	bb.Min.X, bb.Min.Y = math.Inf(1), math.Inf(1)
	bb.Max.X, bb.Max.Y = math.Inf(-1), math.Inf(-1)
	for _, e := range entities {
		bb.Min.X = math.Min(bb.Min.X, e.Position.X)
		bb.Min.Y = math.Min(bb.Min.Y, e.Position.Y)
		bb.Max.X = math.Max(bb.Max.X, e.Position.X)
		bb.Max.Y = math.Max(bb.Max.Y, e.Position.Y)
	}
	return bb
}
