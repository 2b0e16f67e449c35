package graph

// =============================================================================
// Startup Order
// =============================================================================

// StartupOrder computes a startup order for the graph using Kahn's
// algorithm. Dependencies come before dependents: for every edge A→B
// (A depends on B), B appears before A in the result.
//
// The in-degree of a node is its number of unresolved dependencies. The
// queue is seeded with every dependency-free node in lexicographic order
// and processed FIFO; completing a node releases the nodes that depend
// on it.
//
// Nodes on a cycle, and nodes that depend on a cycle, never reach
// in-degree 0 and are omitted. A result shorter than the node count is
// the signal that no full order exists; callers needing the cycles
// themselves must run DetectCycles, not infer them from the length.
func StartupOrder(g *Graph) []string {
	nodes := g.Nodes()
	if len(nodes) == 0 {
		return nil
	}

	inDegree := make(map[string]int, len(nodes))
	dependents := make(map[string][]string)

	for _, node := range nodes {
		deps := g.Dependencies(node)
		inDegree[node] = len(deps)
		for _, dep := range deps {
			dependents[dep] = append(dependents[dep], node)
		}
	}

	var queue []string
	for _, node := range nodes {
		if inDegree[node] == 0 {
			queue = append(queue, node)
		}
	}

	order := make([]string, 0, len(nodes))
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		order = append(order, node)

		for _, dependent := range dependents[node] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	return order
}
