package scene

import "github.com/ChicagoDave/tubenet/pkg/geo"

// EntityType identifies the kind of entity.
type EntityType string

const (
	EntityPad        EntityType = "pad"
	EntityHangout    EntityType = "hangout"
	EntityTube       EntityType = "tube"
	EntityTeleporter EntityType = "teleporter"
	EntityPod        EntityType = "pod"
)

// BoundingBox defines an axis-aligned bounding box.
type BoundingBox struct {
	Min geo.Point `json:"min"`
	Max geo.Point `json:"max"`
}

// Entity is a single element in the scene graph. Buildings sit at Position;
// edges run from Position to End; pods list their stops in Children.
type Entity struct {
	ID       string         `json:"id"`
	Type     EntityType     `json:"type"`
	Position geo.Point      `json:"position"`
	End      *geo.Point     `json:"end,omitempty"`
	City     int            `json:"city"`
	Metadata map[string]any `json:"metadata,omitempty"`
	Children []string       `json:"children,omitempty"`
}

// Graph is the renderable snapshot of a world.
type Graph struct {
	Metadata Metadata `json:"metadata"`
	Entities []Entity `json:"entities"`
	Groups   Groups   `json:"groups"`
}

// Metadata holds scene-level information.
type Metadata struct {
	Turn      int         `json:"turn"`
	Resources int         `json:"resources"`
	Bounds    BoundingBox `json:"bounds"`
	Digest    string      `json:"digest"`
}

// Groups organizes entity IDs for fast filtering.
type Groups struct {
	Cities      map[int][]string        `json:"cities"`
	EntityTypes map[EntityType][]string `json:"entity_types"`
}

// NewGraph creates an empty scene graph.
func NewGraph() *Graph {
	return &Graph{
		Entities: []Entity{},
		Groups: Groups{
			Cities:      make(map[int][]string),
			EntityTypes: make(map[EntityType][]string),
		},
	}
}
