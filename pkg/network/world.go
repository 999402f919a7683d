package network

import (
	"fmt"
	"sort"

	"github.com/ChicagoDave/tubenet/pkg/geo"
	"github.com/ChicagoDave/tubenet/pkg/routing"
)

// Options tunes geometry and capacity rules.
type Options struct {
	Epsilon         float64
	Crossing        geo.CrossingMode
	MaxTubeCapacity int
}

// DefaultOptions returns the judge's rules with strict segment crossing.
func DefaultOptions() Options {
	return Options{
		Epsilon:         geo.DefaultEpsilon,
		Crossing:        geo.CrossingStrict,
		MaxTubeCapacity: 3,
	}
}

// World holds every known building, edge, city and pod. Ids are stable:
// buildings use the judge's ids, edges and pods are numbered from 0, cities
// from 1 so that 0 means "no city".
type World struct {
	opts Options

	buildings map[int]*Building
	edges     []*Edge
	pairs     map[[2]int]int
	cities    map[int]*City
	pods      map[int]*Pod

	nextCity int
	nextPod  int
}

// New returns an empty world.
func New(opts Options) *World {
	if opts.Epsilon <= 0 {
		opts.Epsilon = geo.DefaultEpsilon
	}
	if opts.Crossing == "" {
		opts.Crossing = geo.CrossingStrict
	}
	if opts.MaxTubeCapacity <= 0 {
		opts.MaxTubeCapacity = 3
	}
	return &World{
		opts:      opts,
		buildings: make(map[int]*Building),
		pairs:     make(map[[2]int]int),
		cities:    make(map[int]*City),
		pods:      make(map[int]*Pod),
		nextCity:  1,
	}
}

// Options returns the rules the world was created with.
func (w *World) Options() Options { return w.opts }

// AddBuilding registers a building. Its city and teleporter role start
// cleared whatever the argument holds.
func (w *World) AddBuilding(b Building) error {
	if _, ok := w.buildings[b.ID]; ok {
		return fmt.Errorf("building %d: %w", b.ID, ErrDuplicateBuilding)
	}
	b.City = 0
	b.Role = RoleFree
	w.buildings[b.ID] = &b
	return nil
}

// Building returns the building with the given id.
func (w *World) Building(id int) (*Building, bool) {
	b, ok := w.buildings[id]
	return b, ok
}

// Buildings returns all buildings ordered by id.
func (w *World) Buildings() []*Building {
	out := make([]*Building, 0, len(w.buildings))
	for _, b := range w.buildings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// IsolatedPads returns ids of pads that belong to no city, ascending.
func (w *World) IsolatedPads() []int { return w.isolated(Pad) }

// IsolatedHangouts returns ids of hangouts that belong to no city, ascending.
func (w *World) IsolatedHangouts() []int { return w.isolated(Hangout) }

func (w *World) isolated(kind BuildingKind) []int {
	var ids []int
	for id, b := range w.buildings {
		if b.Kind == kind && b.City == 0 {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

// Edge returns the edge joining a and b in either direction.
func (w *World) Edge(a, b int) (*Edge, bool) {
	id, ok := w.pairs[pairKey(a, b)]
	if !ok {
		return nil, false
	}
	return w.edges[id], true
}

// EdgeByID returns the edge with the given id.
func (w *World) EdgeByID(id int) (*Edge, bool) {
	if id < 0 || id >= len(w.edges) {
		return nil, false
	}
	return w.edges[id], true
}

// Edges returns all edges ordered by id.
func (w *World) Edges() []*Edge {
	out := make([]*Edge, len(w.edges))
	copy(out, w.edges)
	return out
}

// UnservedTubes returns ids of tubes that no pod services, ascending.
func (w *World) UnservedTubes() []int {
	var ids []int
	for _, e := range w.edges {
		if e.Kind == Tube && !e.Awake {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

// City returns the city with the given id.
func (w *World) City(id int) (*City, bool) {
	c, ok := w.cities[id]
	return c, ok
}

// CityOf returns the city a building belongs to.
func (w *World) CityOf(buildingID int) (*City, bool) {
	b, ok := w.buildings[buildingID]
	if !ok || b.City == 0 {
		return nil, false
	}
	return w.City(b.City)
}

// Cities returns all cities ordered by id.
func (w *World) Cities() []*City {
	out := make([]*City, 0, len(w.cities))
	for _, c := range w.cities {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Adjacency returns the adjacency of every edge in the world.
func (w *World) Adjacency() routing.Adjacency {
	links := make([]routing.Link, 0, len(w.edges))
	for _, e := range w.edges {
		links = append(links, routing.Link{A: e.A, B: e.B})
	}
	return routing.BuildAdjacency(links)
}

// CheckConnect returns the error Connect would return for a and b without
// changing anything.
func (w *World) CheckConnect(a, b int) error {
	_, _, err := w.connectable(a, b)
	return err
}

func (w *World) connectable(a, b int) (*Building, *Building, error) {
	ba, ok := w.buildings[a]
	if !ok {
		return nil, nil, fmt.Errorf("building %d: %w", a, ErrInvalidReference)
	}
	bb, ok := w.buildings[b]
	if !ok {
		return nil, nil, fmt.Errorf("building %d: %w", b, ErrInvalidReference)
	}
	if a == b {
		return nil, nil, fmt.Errorf("building %d to itself: %w", a, ErrGeometricallyInvalid)
	}
	if _, exists := w.pairs[pairKey(a, b)]; exists {
		return nil, nil, fmt.Errorf("%d-%d: %w", a, b, ErrAlreadyConnected)
	}
	switch {
	case ba.City != 0 && ba.City == bb.City:
		return nil, nil, fmt.Errorf("%d-%d share city %d: %w", a, b, ba.City, ErrAlreadyConnected)
	case ba.City == 0 && bb.City == 0 && ba.Kind == bb.Kind:
		return nil, nil, fmt.Errorf("%d-%d are both %ss: %w", a, b, ba.Kind, ErrNoDemandIntent)
	}
	return ba, bb, nil
}

// Connect adds an edge of the given kind between a and b and updates the
// city partition. It checks references and topology only; callers run
// CheckTube or CheckTeleporter first. Nothing is mutated on error.
func (w *World) Connect(a, b int, kind EdgeKind) (ConnectResult, error) {
	ba, bb, err := w.connectable(a, b)
	if err != nil {
		return ConnectResult{}, err
	}

	e := w.newEdge(ba, bb, kind)
	res := ConnectResult{Edge: e.ID}
	switch {
	case ba.City == 0 && bb.City == 0:
		c := newCity(w.nextCity)
		w.nextCity++
		w.cities[c.ID] = c
		c.addBuilding(ba)
		c.addBuilding(bb)
		c.addEdge(e)
		res.City, res.Created = c.ID, true
	case ba.City == 0:
		c := w.cities[bb.City]
		c.addBuilding(ba)
		c.addEdge(e)
		res.City = c.ID
	case bb.City == 0:
		c := w.cities[ba.City]
		c.addBuilding(bb)
		c.addEdge(e)
		res.City = c.ID
	default:
		keep, gone := w.merge(w.cities[ba.City], w.cities[bb.City])
		keep.addEdge(e)
		res.City, res.Absorbed = keep.ID, gone
	}
	return res, nil
}

func (w *World) newEdge(a, b *Building, kind EdgeKind) *Edge {
	e := &Edge{ID: len(w.edges), Kind: kind, A: a.ID, B: b.ID}
	if kind == Tube {
		e.Capacity = 1
		e.Length = a.Pos.Distance(b.Pos)
	} else {
		a.Role = RoleEntrance
		b.Role = RoleExit
	}
	w.edges = append(w.edges, e)
	w.pairs[pairKey(a.ID, b.ID)] = e.ID
	return e
}

// merge folds the smaller city into the larger and returns the survivor and
// the id of the absorbed city. Ties keep the older city.
func (w *World) merge(x, y *City) (*City, int) {
	keep, gone := x, y
	if y.Size() > x.Size() || (y.Size() == x.Size() && y.ID < x.ID) {
		keep, gone = y, x
	}
	for id := range gone.buildings {
		w.buildings[id].City = keep.ID
	}
	for id := range gone.pods {
		w.pods[id].City = keep.ID
	}
	keep.absorb(gone)
	delete(w.cities, gone.ID)
	return keep, gone.ID
}
