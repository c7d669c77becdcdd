package engine

// TopoSort returns every node reachable from root in post-order: each node
// appears after all of its children. root is always last.
//
// The traversal uses an explicit stack, so graph depth is bounded by memory
// rather than by the goroutine stack. Memory is O(nodes) for the visited set
// and O(depth) for the stack.
func TopoSort(root Value) []Value {
	type frame struct {
		v    Value
		next int // Index of the next child to visit
	}

	topo := make([]Value, 0, 16)
	visited := map[Value]struct{}{root: {}}
	stack := []frame{{v: root}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		prev := top.v.node().prev

		if top.next < len(prev) {
			child := prev[top.next]
			top.next++
			if _, seen := visited[child]; !seen {
				visited[child] = struct{}{}
				stack = append(stack, frame{v: child})
			}
			continue
		}

		topo = append(topo, top.v)
		stack = stack[:len(stack)-1]
	}

	return topo
}

// Backward computes the gradient of v with respect to every node reachable
// from it.
//
// Algorithm:
//  1. Topologically sort the graph below v
//  2. Seed v.grad = 1 (dv/dv)
//  3. Fire each node's backward rule in reverse topological order
//
// Gradients accumulate (+=). Nothing is zeroed first: call ZeroGrad or
// ZeroGradAll before a fresh pass. Nodes not reachable from v are untouched.
func (v Value) Backward() {
	topo := TopoSort(v)

	v.SetGrad(1)
	for i := len(topo) - 1; i >= 0; i-- {
		if fn := topo[i].node().backward; fn != nil {
			fn()
		}
	}
}

// ZeroGrad resets the gradient of each value to 0.
func ZeroGrad(vs ...Value) {
	for _, v := range vs {
		v.SetGrad(0)
	}
}

// ZeroGradAll resets the gradient of root and every node reachable from it.
func ZeroGradAll(root Value) {
	ZeroGrad(TopoSort(root)...)
}
