package network

import (
	"maps"
	"slices"
	"sort"

	"github.com/ChicagoDave/tubenet/pkg/routing"
)

// City is a connected component of buildings. Cities only grow: a merge
// replaces two cities with one.
type City struct {
	ID int

	buildings    map[int]bool
	pads         map[int]bool
	hangouts     map[int]bool
	hangoutTypes map[int]int
	tubes        map[int]bool
	teleporters  map[int]bool
	pods         map[int]bool
	adj          routing.Adjacency
	demand       map[int]int
}

func newCity(id int) *City {
	return &City{
		ID:           id,
		buildings:    make(map[int]bool),
		pads:         make(map[int]bool),
		hangouts:     make(map[int]bool),
		hangoutTypes: make(map[int]int),
		tubes:        make(map[int]bool),
		teleporters:  make(map[int]bool),
		pods:         make(map[int]bool),
		adj:          make(routing.Adjacency),
		demand:       make(map[int]int),
	}
}

func (c *City) addBuilding(b *Building) {
	c.buildings[b.ID] = true
	b.City = c.ID
	if _, ok := c.adj[b.ID]; !ok {
		c.adj[b.ID] = nil
	}
	switch b.Kind {
	case Pad:
		c.pads[b.ID] = true
		for cat, n := range b.Demand {
			c.demand[cat] += n
		}
	case Hangout:
		c.hangouts[b.ID] = true
		c.hangoutTypes[b.Category]++
	}
}

func (c *City) addEdge(e *Edge) {
	if e.Capacity == 0 {
		c.teleporters[e.ID] = true
	} else {
		c.tubes[e.ID] = true
	}
	c.adj[e.A] = append(c.adj[e.A], e.B)
	c.adj[e.B] = append(c.adj[e.B], e.A)
}

// absorb folds other into c. The caller re-points buildings and pods.
func (c *City) absorb(other *City) {
	maps.Copy(c.buildings, other.buildings)
	maps.Copy(c.pads, other.pads)
	maps.Copy(c.hangouts, other.hangouts)
	maps.Copy(c.tubes, other.tubes)
	maps.Copy(c.teleporters, other.teleporters)
	maps.Copy(c.pods, other.pods)
	maps.Copy(c.adj, other.adj)
	for cat, n := range other.demand {
		c.demand[cat] += n
	}
	for cat, n := range other.hangoutTypes {
		c.hangoutTypes[cat] += n
	}
}

// Size is the merge weight: buildings plus edges.
func (c *City) Size() int {
	return len(c.buildings) + len(c.tubes) + len(c.teleporters)
}

// Has reports whether the building belongs to c.
func (c *City) Has(id int) bool { return c.buildings[id] }

// HasPod reports whether the pod belongs to c.
func (c *City) HasPod(id int) bool { return c.pods[id] }

// BuildingIDs returns the ids of every member building, ascending.
func (c *City) BuildingIDs() []int { return sortedKeys(c.buildings) }

// PadIDs returns the ids of the member pads, ascending.
func (c *City) PadIDs() []int { return sortedKeys(c.pads) }

// HangoutIDs returns the ids of the member hangouts, ascending.
func (c *City) HangoutIDs() []int { return sortedKeys(c.hangouts) }

// TubeIDs returns the edge ids of the city's tubes, ascending.
func (c *City) TubeIDs() []int { return sortedKeys(c.tubes) }

// TeleporterIDs returns the edge ids of the city's teleporters, ascending.
func (c *City) TeleporterIDs() []int { return sortedKeys(c.teleporters) }

// PodIDs returns the ids of the pods running in the city, ascending.
func (c *City) PodIDs() []int { return sortedKeys(c.pods) }

// EdgeCount returns the number of tubes and teleporters in c.
func (c *City) EdgeCount() int { return len(c.tubes) + len(c.teleporters) }

// Demand returns a copy of the aggregated pad demand by category.
func (c *City) Demand() map[int]int { return maps.Clone(c.demand) }

// HangoutTypes returns a copy of the hangout count per category.
func (c *City) HangoutTypes() map[int]int { return maps.Clone(c.hangoutTypes) }

// Adjacency returns a copy of the city's adjacency with sorted neighbours.
func (c *City) Adjacency() routing.Adjacency {
	out := make(routing.Adjacency, len(c.adj))
	for id, n := range c.adj {
		s := slices.Clone(n)
		sort.Ints(s)
		out[id] = s
	}
	return out
}

// Path returns the shortest hop path between two members, or nil if either
// is not in the city.
func (c *City) Path(a, b int) []int {
	if !c.Has(a) || !c.Has(b) {
		return nil
	}
	return routing.FindPath(a, b, c.adj)
}

func sortedKeys(m map[int]bool) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
