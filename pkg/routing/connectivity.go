package routing

import "sort"

// Link is an undirected connection between two buildings.
type Link struct {
	A, B int
}

// BuildAdjacency turns a list of links into a symmetric adjacency map.
// Duplicate links collapse and neighbour lists are sorted, so the result is
// deterministic regardless of input order.
func BuildAdjacency(links []Link) Adjacency {
	conn := make(map[int]map[int]bool)
	add := func(a, b int) {
		if conn[a] == nil {
			conn[a] = make(map[int]bool)
		}
		conn[a][b] = true
	}
	for _, l := range links {
		add(l.A, l.B)
		add(l.B, l.A)
	}

	adj := make(Adjacency, len(conn))
	for id, neighbours := range conn {
		ids := make([]int, 0, len(neighbours))
		for nid := range neighbours {
			ids = append(ids, nid)
		}
		sort.Ints(ids)
		adj[id] = ids
	}
	return adj
}

// Components partitions the buildings of adj into connected components.
// Each component is sorted, and components are ordered by their smallest id.
func Components(adj Adjacency) [][]int {
	ids := make([]int, 0, len(adj))
	for id := range adj {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	seen := make(map[int]bool, len(ids))
	var out [][]int
	for _, id := range ids {
		if seen[id] {
			continue
		}
		var comp []int
		stack := []int{id}
		seen[id] = true
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			comp = append(comp, cur)
			for _, next := range adj[cur] {
				if !seen[next] {
					seen[next] = true
					stack = append(stack, next)
				}
			}
		}
		sort.Ints(comp)
		out = append(out, comp)
	}
	return out
}

// IsSymmetric reports whether every a->b entry has a matching b->a entry.
func IsSymmetric(adj Adjacency) bool {
	for a, neighbours := range adj {
		for _, b := range neighbours {
			if !contains(adj[b], a) {
				return false
			}
		}
	}
	return true
}

func contains(ids []int, id int) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}
