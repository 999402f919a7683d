package routing

import (
	"reflect"
	"testing"
)

// chain builds 0-1-2-...-(n-1).
func chain(n int) Adjacency {
	var links []Link
	for i := 0; i+1 < n; i++ {
		links = append(links, Link{i, i + 1})
	}
	return BuildAdjacency(links)
}

func TestFindPathShortest(t *testing.T) {
	// Long way round 0-1-2-3-4, shortcut 0-4.
	adj := BuildAdjacency([]Link{{0, 1}, {1, 2}, {2, 3}, {3, 4}, {0, 4}})
	got := FindPath(0, 3, adj)
	want := []int{0, 4, 3}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestFindPathSameID(t *testing.T) {
	got := FindPath(2, 2, chain(4))
	if !reflect.DeepEqual(got, []int{2}) {
		t.Errorf("expected single-element path, got %v", got)
	}
}

func TestFindPathUnreachable(t *testing.T) {
	adj := BuildAdjacency([]Link{{0, 1}, {5, 6}})
	if got := FindPath(0, 6, adj); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

func TestFindPathAbsentID(t *testing.T) {
	adj := chain(3)
	if got := FindPath(0, 99, adj); got != nil {
		t.Errorf("expected nil for absent target, got %v", got)
	}
	if got := FindPath(99, 0, adj); got != nil {
		t.Errorf("expected nil for absent start, got %v", got)
	}
	if got := FindPath(99, 99, adj); got != nil {
		t.Errorf("expected nil for absent equal ids, got %v", got)
	}
}

func TestFindPathLongChain(t *testing.T) {
	adj := chain(10000)
	got := FindPath(0, 9999, adj)
	if len(got) != 10000 {
		t.Fatalf("expected 10000 hops, got %d", len(got))
	}
	if got[0] != 0 || got[len(got)-1] != 9999 {
		t.Errorf("expected path from 0 to 9999, got %d..%d", got[0], got[len(got)-1])
	}
}

func TestDistances(t *testing.T) {
	d := Distances(0, chain(4))
	for id, want := range map[int]int{0: 0, 1: 1, 2: 2, 3: 3} {
		if d[id] != want {
			t.Errorf("expected distance %d to %d, got %d", want, id, d[id])
		}
	}
	if Distances(42, chain(2)) != nil {
		t.Error("expected nil for absent start")
	}
}

func TestBuildAdjacencySymmetric(t *testing.T) {
	adj := BuildAdjacency([]Link{{3, 1}, {1, 2}, {1, 3}})
	if !IsSymmetric(adj) {
		t.Fatal("expected symmetric adjacency")
	}
	if !reflect.DeepEqual(adj[1], []int{2, 3}) {
		t.Errorf("expected sorted, deduplicated neighbours [2 3], got %v", adj[1])
	}
}

func TestIsSymmetricDetectsOneWay(t *testing.T) {
	adj := Adjacency{1: {2}, 2: nil}
	if IsSymmetric(adj) {
		t.Error("expected one-way entry to be reported")
	}
}

func TestComponents(t *testing.T) {
	adj := BuildAdjacency([]Link{{4, 5}, {0, 1}, {1, 2}, {7, 5}})
	got := Components(adj)
	want := [][]int{{0, 1, 2}, {4, 5, 7}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func BenchmarkFindPath(b *testing.B) {
	adj := chain(1000)
	for b.Loop() {
		FindPath(0, 999, adj)
	}
}
