package network

import (
	"errors"
	"fmt"

	"github.com/ChicagoDave/tubenet/pkg/routing"
)

// CheckInvariants verifies that the city partition matches the edges:
// every member points back at its city, adjacency is symmetric, every edge
// and pod lives in the city of its endpoints, and each city is exactly one
// connected component. All violations are joined into the returned error.
func (w *World) CheckInvariants() error {
	var errs []error
	for _, b := range w.Buildings() {
		if b.City == 0 {
			continue
		}
		c, ok := w.cities[b.City]
		if !ok {
			errs = append(errs, fmt.Errorf("building %d points at missing city %d", b.ID, b.City))
			continue
		}
		if !c.Has(b.ID) {
			errs = append(errs, fmt.Errorf("building %d missing from city %d", b.ID, c.ID))
		}
	}
	for _, c := range w.Cities() {
		for id := range c.buildings {
			if b, ok := w.buildings[id]; !ok || b.City != c.ID {
				errs = append(errs, fmt.Errorf("city %d lists building %d which does not point back", c.ID, id))
			}
		}
		if !routing.IsSymmetric(c.adj) {
			errs = append(errs, fmt.Errorf("city %d adjacency is not symmetric", c.ID))
		}
		if comps := routing.Components(c.adj); len(comps) != 1 {
			errs = append(errs, fmt.Errorf("city %d spans %d components", c.ID, len(comps)))
		}
		for _, ids := range [][]int{c.TubeIDs(), c.TeleporterIDs()} {
			for _, id := range ids {
				e := w.edges[id]
				if !c.Has(e.A) || !c.Has(e.B) {
					errs = append(errs, fmt.Errorf("city %d holds edge %d-%d outside its members", c.ID, e.A, e.B))
				}
			}
		}
		for id := range c.pods {
			if p, ok := w.pods[id]; !ok || p.City != c.ID {
				errs = append(errs, fmt.Errorf("city %d lists pod %d which does not point back", c.ID, id))
			}
		}
	}
	for _, e := range w.edges {
		if w.buildings[e.A].City == 0 || w.buildings[e.A].City != w.buildings[e.B].City {
			errs = append(errs, fmt.Errorf("edge %d-%d spans cities %d and %d",
				e.A, e.B, w.buildings[e.A].City, w.buildings[e.B].City))
		}
		if e.Kind == Tube && e.Pods > e.Capacity {
			errs = append(errs, fmt.Errorf("tube %d-%d carries %d pods over capacity %d", e.A, e.B, e.Pods, e.Capacity))
		}
	}
	return errors.Join(errs...)
}
