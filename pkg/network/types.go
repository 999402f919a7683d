package network

import (
	"github.com/ChicagoDave/tubenet/pkg/geo"
)

// BuildingKind distinguishes demand sources from sinks.
type BuildingKind int

const (
	Pad BuildingKind = iota
	Hangout
)

func (k BuildingKind) String() string {
	if k == Pad {
		return "pad"
	}
	return "hangout"
}

// TeleportRole records which end of a teleporter a building hosts, if any.
type TeleportRole int

const (
	RoleFree TeleportRole = iota
	RoleEntrance
	RoleExit
)

func (r TeleportRole) String() string {
	switch r {
	case RoleEntrance:
		return "entrance"
	case RoleExit:
		return "exit"
	default:
		return "free"
	}
}

// Building is a pad or a hangout. Position and kind never change; only the
// teleporter role and the owning city do.
type Building struct {
	ID       int          `json:"id"`
	Pos      geo.Point    `json:"pos"`
	Kind     BuildingKind `json:"kind"`
	Category int          `json:"category,omitempty"` // hangouts only
	// Demand is the arriving population by category (pads only).
	Demand map[int]int  `json:"demand,omitempty"`
	Role   TeleportRole `json:"role"`
	City   int          `json:"city"` // 0 until connected
}

// NewPad returns a pad whose demand counts one astronaut per listed category.
// Repeated categories accumulate.
func NewPad(id int, pos geo.Point, categories ...int) Building {
	demand := make(map[int]int, len(categories))
	for _, c := range categories {
		demand[c]++
	}
	return Building{ID: id, Pos: pos, Kind: Pad, Demand: demand}
}

// NewHangout returns a hangout of the given category.
func NewHangout(id int, pos geo.Point, category int) Building {
	return Building{ID: id, Pos: pos, Kind: Hangout, Category: category}
}

// EdgeKind distinguishes tubes from teleporters.
type EdgeKind int

const (
	Tube EdgeKind = iota
	Teleporter
)

func (k EdgeKind) String() string {
	if k == Tube {
		return "tube"
	}
	return "teleporter"
}

// Edge joins two buildings. Teleporters have unlimited capacity, stored as 0.
type Edge struct {
	ID       int      `json:"id"`
	Kind     EdgeKind `json:"kind"`
	A        int      `json:"a"`
	B        int      `json:"b"`
	Capacity int      `json:"capacity"`
	Length   float64  `json:"length"`
	Pods     int      `json:"pods"`  // pods whose route uses this edge
	Awake    bool     `json:"awake"` // at least one pod services it
}

// Other returns the endpoint opposite id.
func (e *Edge) Other(id int) int {
	if e.A == id {
		return e.B
	}
	return e.A
}

// Pod is a vehicle looping over a fixed route inside one city.
type Pod struct {
	ID    int   `json:"id"`
	City  int   `json:"city"`
	Route []int `json:"route"`
}

// ConnectResult describes what a successful Connect did to the city
// partition.
type ConnectResult struct {
	Edge     int  `json:"edge"`
	City     int  `json:"city"`               // city that now holds the edge
	Created  bool `json:"created,omitempty"`  // a new city was formed
	Absorbed int  `json:"absorbed,omitempty"` // city merged away, 0 if none
}

// pairKey normalizes an unordered building pair.
func pairKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}
