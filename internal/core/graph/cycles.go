package graph

// =============================================================================
// Cycle Detection
// =============================================================================

// DetectCycles finds dependency cycles using depth-first traversal with a
// path stack. Traversal starts from every unvisited node in lexicographic
// order, so the output is reproducible.
//
// When traversal reaches a node already on the current path, the path slice
// from that node's first occurrence to the current node is emitted as a
// cycle. The wrap-around edge back to the start is implied, not stored.
//
// A fully explored node is never re-examined from another starting point,
// so a node lying on two distinct cycles may have only the first-discovered
// cycle reported. The guarantee is at least one cycle per strongly-connected
// component, not full elementary-cycle enumeration.
//
// Self-loops recorded by the builder are reported first, as cycles of
// length 1.
func DetectCycles(g *Graph) [][]string {
	var cycles [][]string

	for _, node := range g.SelfLoops() {
		cycles = append(cycles, []string{node})
	}

	visited := make(map[string]bool)
	onStack := make(map[string]bool)
	var path []string

	var dfs func(node string)
	dfs = func(node string) {
		if onStack[node] {
			// Found a cycle: the path segment from the node's first
			// stack occurrence through the current tip.
			for i, p := range path {
				if p == node {
					cycle := make([]string, len(path)-i)
					copy(cycle, path[i:])
					cycles = append(cycles, cycle)
					break
				}
			}
			return
		}
		if visited[node] {
			return
		}

		visited[node] = true
		onStack[node] = true
		path = append(path, node)

		for _, dep := range g.Dependencies(node) {
			dfs(dep)
		}

		onStack[node] = false
		path = path[:len(path)-1]
	}

	for _, node := range g.Nodes() {
		if !visited[node] {
			dfs(node)
		}
	}

	return cycles
}

// CycleNodes returns the sorted union of all nodes appearing in any cycle.
func CycleNodes(cycles [][]string) []string {
	seen := make(map[string]struct{})
	for _, cycle := range cycles {
		for _, node := range cycle {
			seen[node] = struct{}{}
		}
	}
	return sortedKeys(seen)
}
