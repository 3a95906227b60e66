package graph

import (
	"sort"

	"tk/internal/ticket"
)

// CycleMode selects which dependency edges participate in cycle
// detection.
type CycleMode int

const (
	// UnresolvedEdges skips edges pointing at closed tickets. A cycle
	// that runs through a closed ticket can no longer deadlock anyone,
	// so the default check ignores it.
	UnresolvedEdges CycleMode = iota

	// AllEdges considers every edge regardless of status. Useful for
	// auditing the full graph history.
	AllEdges
)

type dfsColor int

const (
	white dfsColor = iota
	gray
	black
)

// Cycles finds dependency cycles with a depth-first search. Each cycle
// is reported once as the sequence of IDs along the back edge,
// starting at the point where the walk re-entered its own path. A
// self-loop comes back as a single-element cycle. Iteration order is
// sorted IDs, so output is deterministic for a given collection.
//
// Dangling edges are skipped here; Analyze reports those separately.
func Cycles(tickets ticket.Collection, mode CycleMode) [][]string {
	colors := make(map[string]dfsColor, len(tickets))

	var (
		cycles [][]string
		path   []string
	)

	var visit func(id string)

	visit = func(id string) {
		colors[id] = gray
		path = append(path, id)

		t := tickets[id]
		deps := append([]string(nil), t.Deps...)
		sort.Strings(deps)

		for _, dep := range deps {
			target, ok := tickets[dep]
			if !ok {
				continue
			}

			if mode == UnresolvedEdges && target.Closed() {
				continue
			}

			switch colors[dep] {
			case white:
				visit(dep)
			case gray:
				cycles = append(cycles, extractCycle(path, dep))
			case black:
			}
		}

		path = path[:len(path)-1]
		colors[id] = black
	}

	for _, id := range tickets.IDs() {
		if colors[id] == white {
			visit(id)
		}
	}

	return cycles
}

// extractCycle copies the tail of the path starting at the re-entered
// node.
func extractCycle(path []string, start string) []string {
	for i, id := range path {
		if id == start {
			return append([]string(nil), path[i:]...)
		}
	}

	return []string{start}
}
