package domain

import (
	"github.com/samber/lo"
)

// ParentsGraph returns the adjacency map from each canonical key to the canonical keys of
// its parents. Parent references made through an alias are resolved to the aliased key.
func (m SecurityMetadata) ParentsGraph() map[string][]string {
	return lo.MapValues(m.secureDelegations, func(d SecureDelegation, _ string) []string {
		return normalizeSet(lo.Map(d.ParentDelegations, func(parent string, _ int) string {
			if canonical, ok := m.keysEquivalences[parent]; ok {
				return canonical
			}
			return parent
		}))
	})
}

const (
	unvisited = iota
	inProgress
	finished
)

type dfsFrame struct {
	node string
	next int
}

// findCycle runs an iterative depth-first search over graph and returns the first cycle
// found as a path whose first and last elements are equal, or nil. Edges to nodes that
// are not keys of graph lead to leaves.
func findCycle(graph map[string][]string) []string {
	state := make(map[string]int, len(graph))

	for _, start := range sortedKeys(graph) {
		if state[start] != unvisited {
			continue
		}

		state[start] = inProgress
		stack := []dfsFrame{{node: start}}

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			edges := graph[top.node]

			if top.next >= len(edges) {
				state[top.node] = finished
				stack = stack[:len(stack)-1]
				continue
			}

			child := edges[top.next]
			top.next++

			switch state[child] {
			case inProgress:
				return cyclePath(stack, child)
			case unvisited:
				if _, known := graph[child]; !known {
					state[child] = finished
					continue
				}
				state[child] = inProgress
				stack = append(stack, dfsFrame{node: child})
			}
		}
	}

	return nil
}

func cyclePath(stack []dfsFrame, closing string) []string {
	path := make([]string, 0, len(stack)+1)
	for i := range stack {
		if stack[i].node == closing || len(path) > 0 {
			path = append(path, stack[i].node)
		}
	}
	return append(path, closing)
}
