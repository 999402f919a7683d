package network

import (
	"fmt"
	"sort"
)

// Pod returns the pod with the given id.
func (w *World) Pod(id int) (*Pod, bool) {
	p, ok := w.pods[id]
	return p, ok
}

// Pods returns all live pods ordered by id.
func (w *World) Pods() []*Pod {
	out := make([]*Pod, 0, len(w.pods))
	for _, p := range w.pods {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// NextPodID returns the id the next AddPod will assign.
func (w *World) NextPodID() int { return w.nextPod }

// CheckPod returns nil if a pod can be created on route. The route must be a
// cycle of at least three stops, every hop must follow an existing edge, and
// every tube on it must have a free slot.
func (w *World) CheckPod(route []int) error {
	_, err := w.routeEdges(route)
	return err
}

// AddPod creates a pod on route and marks its edges awake.
func (w *World) AddPod(route []int) (*Pod, error) {
	edges, err := w.routeEdges(route)
	if err != nil {
		return nil, err
	}
	p := &Pod{
		ID:    w.nextPod,
		City:  w.buildings[route[0]].City,
		Route: append([]int(nil), route...),
	}
	w.nextPod++
	w.pods[p.ID] = p
	w.cities[p.City].pods[p.ID] = true
	for _, e := range edges {
		e.Pods++
		e.Awake = true
	}
	return p, nil
}

// RemovePod retires a pod and frees its slots. An edge left without pods
// goes back to sleep.
func (w *World) RemovePod(id int) error {
	p, ok := w.pods[id]
	if !ok {
		return fmt.Errorf("pod %d: %w", id, ErrInvalidReference)
	}
	edges, err := w.distinctEdges(p.Route)
	if err != nil {
		return err
	}
	for _, e := range edges {
		e.Pods--
		e.Awake = e.Pods > 0
	}
	if c, ok := w.cities[p.City]; ok {
		delete(c.pods, id)
	}
	delete(w.pods, id)
	return nil
}

func (w *World) routeEdges(route []int) ([]*Edge, error) {
	if len(route) < 3 || route[0] != route[len(route)-1] {
		return nil, fmt.Errorf("route %v: %w", route, ErrBelowMinimumRoute)
	}
	for _, id := range route {
		if _, ok := w.buildings[id]; !ok {
			return nil, fmt.Errorf("route stop %d: %w", id, ErrInvalidReference)
		}
	}
	edges, err := w.distinctEdges(route)
	if err != nil {
		return nil, err
	}
	for _, e := range edges {
		if e.Kind == Tube && e.Pods >= e.Capacity {
			return nil, fmt.Errorf("tube %d-%d carries %d of %d pods: %w", e.A, e.B, e.Pods, e.Capacity, ErrNoCapacity)
		}
	}
	return edges, nil
}

// distinctEdges returns each edge a route travels once, in travel order.
func (w *World) distinctEdges(route []int) ([]*Edge, error) {
	seen := make(map[int]bool)
	var edges []*Edge
	for i := 0; i+1 < len(route); i++ {
		e, ok := w.Edge(route[i], route[i+1])
		if !ok {
			return nil, fmt.Errorf("no link %d-%d: %w", route[i], route[i+1], ErrInvalidReference)
		}
		if !seen[e.ID] {
			seen[e.ID] = true
			edges = append(edges, e)
		}
	}
	return edges, nil
}

// CheckUpgrade returns nil if the tube between a and b can take one more
// pod slot.
func (w *World) CheckUpgrade(a, b int) error {
	e, ok := w.Edge(a, b)
	if !ok || e.Kind != Tube {
		return fmt.Errorf("tube %d-%d: %w", a, b, ErrInvalidReference)
	}
	if e.Capacity >= w.opts.MaxTubeCapacity {
		return fmt.Errorf("tube %d-%d at capacity %d: %w", a, b, e.Capacity, ErrNoCapacity)
	}
	return nil
}

// UpgradeTube raises the capacity of the tube between a and b by one.
func (w *World) UpgradeTube(a, b int) (*Edge, error) {
	if err := w.CheckUpgrade(a, b); err != nil {
		return nil, err
	}
	e, _ := w.Edge(a, b)
	e.Capacity++
	return e, nil
}

// ObserveRoute reconciles a route reported by the judge with the known
// edges. A higher reported tube capacity is adopted; an unknown pair is an
// invalid reference.
func (w *World) ObserveRoute(a, b, capacity int) error {
	e, ok := w.Edge(a, b)
	if !ok {
		return fmt.Errorf("reported route %d-%d: %w", a, b, ErrInvalidReference)
	}
	if e.Kind == Tube && capacity > e.Capacity {
		e.Capacity = min(capacity, w.opts.MaxTubeCapacity)
	}
	return nil
}
