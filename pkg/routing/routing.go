package routing

// Adjacency maps a building id to its neighbours. Both directions of every
// link are present.
type Adjacency map[int][]int

// FindPath returns the shortest hop path from start to target, both ends
// included. It returns nil if either id is absent from adj or target is
// unreachable, and a single-element path when start == target.
func FindPath(start, target int, adj Adjacency) []int {
	if _, ok := adj[start]; !ok {
		return nil
	}
	if _, ok := adj[target]; !ok {
		return nil
	}
	if start == target {
		return []int{start}
	}

	prev := map[int]int{start: start}
	queue := []int{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range adj[cur] {
			if _, seen := prev[next]; seen {
				continue
			}
			prev[next] = cur
			if next == target {
				return unwind(prev, start, target)
			}
			queue = append(queue, next)
		}
	}
	return nil
}

func unwind(prev map[int]int, start, target int) []int {
	var path []int
	for id := target; ; id = prev[id] {
		path = append(path, id)
		if id == start {
			break
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Distances returns the hop count from start to every reachable building.
func Distances(start int, adj Adjacency) map[int]int {
	if _, ok := adj[start]; !ok {
		return nil
	}
	dist := map[int]int{start: 0}
	queue := []int{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range adj[cur] {
			if _, seen := dist[next]; seen {
				continue
			}
			dist[next] = dist[cur] + 1
			queue = append(queue, next)
		}
	}
	return dist
}
