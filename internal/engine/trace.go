package engine

// Edge connects an operand (From) to the node it helped produce (To).
type Edge struct {
	From Value
	To   Value
}

// Trace collects the nodes and edges reachable from root.
//
// Nodes are listed in depth-first pre-order starting at root; each node and
// each edge appears exactly once. Trace only reads the graph.
func Trace(root Value) ([]Value, []Edge) {
	var (
		nodes []Value
		edges []Edge
	)
	seen := make(map[Value]struct{})
	stack := []Value{root}

	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		nodes = append(nodes, v)

		prev := v.node().prev
		for _, child := range prev {
			edges = append(edges, Edge{From: child, To: v})
		}
		// Push in reverse so the first operand is visited first.
		for i := len(prev) - 1; i >= 0; i-- {
			stack = append(stack, prev[i])
		}
	}

	return nodes, edges
}
