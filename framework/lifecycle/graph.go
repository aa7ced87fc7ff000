package lifecycle

// graph is the dependency graph: nodes are IDs, edges point from a
// dependency to its dependents. The manager owns it exclusively and keeps
// it acyclic at all times.
type graph struct {
	nodes map[ID]struct{}
	order []ID        // insertion order, breaks topological ties
	edges map[ID][]ID // dependency → dependents
}

func newGraph() *graph {
	return &graph{
		nodes: make(map[ID]struct{}),
		edges: make(map[ID][]ID),
	}
}

// addNode inserts a node if absent. Reports whether it was inserted.
func (g *graph) addNode(id ID) bool {
	if _, ok := g.nodes[id]; ok {
		return false
	}
	g.nodes[id] = struct{}{}
	g.order = append(g.order, id)
	return true
}

// addEdge inserts a dependency→dependent edge. Reports whether it was new.
func (g *graph) addEdge(dep, dependent ID) bool {
	for _, d := range g.edges[dep] {
		if d == dependent {
			return false
		}
	}
	g.edges[dep] = append(g.edges[dep], dependent)
	return true
}

// register adds id and one edge per dependency, then checks acyclicity.
// On a cycle the just-added nodes and edges are rolled back so the graph
// never exposes a transient invalid state, and a CircularDependencyError
// naming one offending cycle is returned.
func (g *graph) register(id ID, deps []ID) error {
	var addedNodes []ID
	if g.addNode(id) {
		addedNodes = append(addedNodes, id)
	}
	type edge struct{ from, to ID }
	var addedEdges []edge
	for _, dep := range deps {
		if g.addNode(dep) {
			addedNodes = append(addedNodes, dep)
		}
		if g.addEdge(dep, id) {
			addedEdges = append(addedEdges, edge{dep, id})
		}
	}

	cycle := g.findCycle()
	if cycle == nil {
		return nil
	}

	// Roll back this registration attempt.
	for _, e := range addedEdges {
		deps := g.edges[e.from]
		for i, d := range deps {
			if d == e.to {
				g.edges[e.from] = append(deps[:i], deps[i+1:]...)
				break
			}
		}
	}
	for _, n := range addedNodes {
		delete(g.nodes, n)
		for i, o := range g.order {
			if o == n {
				g.order = append(g.order[:i], g.order[i+1:]...)
				break
			}
		}
	}
	return &CircularDependencyError{ID: id, Path: cycle}
}

// topological returns a total order consistent with every edge, dependencies
// first. Ties between independent nodes are broken by registration order, so
// the result is reproducible across runs.
func (g *graph) topological() []ID {
	indegree := make(map[ID]int, len(g.nodes))
	for id := range g.nodes {
		indegree[id] = 0
	}
	for _, dependents := range g.edges {
		for _, d := range dependents {
			indegree[d]++
		}
	}

	out := make([]ID, 0, len(g.nodes))
	emitted := make(map[ID]bool, len(g.nodes))
	for len(out) < len(g.nodes) {
		progressed := false
		for _, id := range g.order {
			if emitted[id] || indegree[id] != 0 {
				continue
			}
			emitted[id] = true
			out = append(out, id)
			for _, d := range g.edges[id] {
				indegree[d]--
			}
			progressed = true
			break
		}
		if !progressed {
			// Unreachable while register keeps the graph acyclic.
			break
		}
	}
	return out
}

// reverseTopological is topological reversed; used for teardown.
func (g *graph) reverseTopological() []ID {
	order := g.topological()
	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}
	return order
}

// findCycle returns one cycle as a path (first node repeated last), or nil
// if the graph is a DAG. It peels indegree-zero nodes; whatever remains is
// cyclic, and a walk inside the remainder must loop.
func (g *graph) findCycle() []ID {
	indegree := make(map[ID]int, len(g.nodes))
	for id := range g.nodes {
		indegree[id] = 0
	}
	for _, dependents := range g.edges {
		for _, d := range dependents {
			indegree[d]++
		}
	}

	queue := make([]ID, 0, len(g.nodes))
	for _, id := range g.order {
		if indegree[id] == 0 {
			queue = append(queue, id)
		}
	}
	remaining := len(g.nodes)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		remaining--
		for _, d := range g.edges[id] {
			indegree[d]--
			if indegree[d] == 0 {
				queue = append(queue, d)
			}
		}
	}
	if remaining == 0 {
		return nil
	}

	// Every leftover node keeps a leftover predecessor, so walking
	// predecessors must eventually repeat a node; that repeat closes a cycle.
	var start ID
	for _, id := range g.order {
		if indegree[id] > 0 {
			start = id
			break
		}
	}
	seen := make(map[ID]int)
	path := []ID{}
	cur := start
	for {
		if at, ok := seen[cur]; ok {
			cycle := append(path[at:], cur)
			// The walk followed edges backwards; reverse for presentation.
			for i, j := 0, len(cycle)-1; i < j; i, j = i+1, j-1 {
				cycle[i], cycle[j] = cycle[j], cycle[i]
			}
			return cycle
		}
		seen[cur] = len(path)
		path = append(path, cur)
		cur = g.leftoverPredecessor(cur, indegree)
	}
}

// leftoverPredecessor returns a predecessor of id that survived the Kahn
// peel. Callers guarantee one exists.
func (g *graph) leftoverPredecessor(id ID, indegree map[ID]int) ID {
	for from, dependents := range g.edges {
		if indegree[from] == 0 {
			continue
		}
		for _, d := range dependents {
			if d == id {
				return from
			}
		}
	}
	return id
}
