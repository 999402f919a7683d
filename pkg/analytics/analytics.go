package analytics

import (
	"math"
	"sort"

	"github.com/ChicagoDave/tubenet/pkg/network"
	"github.com/ChicagoDave/tubenet/pkg/routing"
	"github.com/ChicagoDave/tubenet/pkg/validation"
)

// Resolve analyses how well the network carries demand to matching
// hangouts. It returns the summary and a report of demand findings.
func Resolve(w *network.World) (*Summary, *validation.Report) {
	report := validation.NewReport()
	s := &Summary{
		IsolatedPads:     len(w.IsolatedPads()),
		IsolatedHangouts: len(w.IsolatedHangouts()),
		UnservedTubes:    len(w.UnservedTubes()),
	}

	// 1. Stranded demand
	for _, id := range w.IsolatedPads() {
		b, _ := w.Building(id)
		for _, n := range b.Demand {
			s.StrandedDemand += n
		}
	}

	// 2. Per-city supply chains
	reachable := 0
	for _, c := range w.Cities() {
		cs := resolveCity(w, c)
		s.Cities = append(s.Cities, cs)
		for _, f := range cs.Categories {
			s.TotalDemand += f.Demand
			reachable += f.Reachable
		}
	}
	s.TotalDemand += s.StrandedDemand

	// 3. Coverage over all demand, stranded included
	if s.TotalDemand > 0 {
		s.Coverage = float64(reachable) / float64(s.TotalDemand)
	}

	validateSupply(s, report)
	return s, report
}

func resolveCity(w *network.World, c *network.City) CitySupply {
	cs := CitySupply{
		City:        c.ID,
		Sources:     c.PadIDs(),
		Drains:      c.HangoutIDs(),
		Tubes:       len(c.TubeIDs()),
		Teleporters: len(c.TeleporterIDs()),
		Pods:        len(c.PodIDs()),
	}

	// Hangouts by category.
	byCategory := make(map[int][]int)
	for _, id := range cs.Drains {
		b, _ := w.Building(id)
		byCategory[b.Category] = append(byCategory[b.Category], id)
	}

	flows := make(map[int]*CategoryFlow)
	flow := func(cat int) *CategoryFlow {
		f, ok := flows[cat]
		if !ok {
			f = &CategoryFlow{Category: cat, Hangouts: len(byCategory[cat])}
			flows[cat] = f
		}
		return f
	}
	hops := make(map[int]int)

	adj := c.Adjacency()
	for _, id := range cs.Sources {
		pad, _ := w.Building(id)
		dist := routing.Distances(id, adj)
		for cat, n := range pad.Demand {
			f := flow(cat)
			f.Demand += n
			if h, ok := nearestHops(dist, byCategory[cat]); ok {
				f.Reachable += n
				hops[cat] += h * n
			}
		}
	}
	for cat := range byCategory {
		flow(cat)
	}

	demand, reachable := 0, 0
	for cat, f := range flows {
		if f.Reachable > 0 {
			f.MeanHops = float64(hops[cat]) / float64(f.Reachable)
		}
		switch {
		case f.Demand > 0 && f.Hangouts == 0:
			cs.Overflow = append(cs.Overflow, cat)
		case f.Demand == 0 && f.Hangouts > 0:
			cs.Underflow = append(cs.Underflow, cat)
		}
		demand += f.Demand
		reachable += f.Reachable
		cs.Categories = append(cs.Categories, *f)
	}
	sort.Slice(cs.Categories, func(i, j int) bool { return cs.Categories[i].Category < cs.Categories[j].Category })
	sort.Ints(cs.Overflow)
	sort.Ints(cs.Underflow)
	if demand > 0 {
		cs.Coverage = float64(reachable) / float64(demand)
	}
	return cs
}

// nearestHops returns the smallest hop count from dist to any of targets.
func nearestHops(dist map[int]int, targets []int) (int, bool) {
	best := math.MaxInt
	for _, id := range targets {
		if d, ok := dist[id]; ok && d < best {
			best = d
		}
	}
	return best, best != math.MaxInt
}
