package graph

import (
	"fmt"
	"io"
	"sort"

	"tk/internal/ticket"
)

// Node is one entry in a dependency tree. Children are the node's
// dependencies. Ref marks a ticket that was already expanded earlier
// in the same tree walk; its children are elided to keep shared
// subtrees from printing twice and cycles from recursing forever.
// Missing marks a dependency ID with no ticket behind it.
type Node struct {
	ID       string
	Ticket   *ticket.Ticket
	Children []*Node
	Ref      bool
	Missing  bool
}

// Tree expands a single ticket into its dependency tree.
func Tree(tickets ticket.Collection, rootID string) *Node {
	visited := make(map[string]bool)

	return expand(tickets, rootID, visited)
}

// Forest builds trees for the whole collection. Roots are tickets no
// other ticket depends on; tickets reachable only through a cycle have
// no such root, so whatever the root pass left unvisited gets promoted
// to a root afterwards. Every ticket therefore appears at least once.
// With full unset, closed and archived roots are skipped.
func Forest(tickets ticket.Collection, full bool) []*Node {
	hasParent := make(map[string]bool)

	for _, id := range tickets.IDs() {
		for _, dep := range tickets[id].Deps {
			hasParent[dep] = true
		}
	}

	visited := make(map[string]bool)

	var roots []*Node

	for _, id := range tickets.IDs() {
		t := tickets[id]
		if hasParent[id] {
			continue
		}

		if !full && (!t.Open() || t.Archived) {
			continue
		}

		roots = append(roots, expand(tickets, id, visited))
	}

	for _, id := range tickets.IDs() {
		t := tickets[id]
		if visited[id] {
			continue
		}

		if !full && (!t.Open() || t.Archived) {
			continue
		}

		roots = append(roots, expand(tickets, id, visited))
	}

	return roots
}

func expand(tickets ticket.Collection, id string, visited map[string]bool) *Node {
	t, ok := tickets[id]
	if !ok {
		return &Node{ID: id, Missing: true}
	}

	node := &Node{ID: id, Ticket: t}

	if visited[id] {
		node.Ref = true

		return node
	}

	visited[id] = true

	deps := append([]string(nil), t.Deps...)
	sort.Strings(deps)

	for _, dep := range deps {
		node.Children = append(node.Children, expand(tickets, dep, visited))
	}

	return node
}

// Render writes a tree with box-drawing connectors.
func Render(w io.Writer, node *Node) {
	fmt.Fprintln(w, label(node))
	renderChildren(w, node, "")
}

func renderChildren(w io.Writer, node *Node, prefix string) {
	for i, child := range node.Children {
		connector, childPrefix := "├── ", prefix+"│   "
		if i == len(node.Children)-1 {
			connector, childPrefix = "└── ", prefix+"    "
		}

		fmt.Fprintf(w, "%s%s%s\n", prefix, connector, label(child))
		renderChildren(w, child, childPrefix)
	}
}

func label(node *Node) string {
	if node.Missing {
		return fmt.Sprintf("%s (missing)", node.ID)
	}

	t := node.Ticket

	s := fmt.Sprintf("%s [%s] p%d %s", t.ID, t.Status, t.Priority, t.Title)
	if t.Archived {
		s += " (archived)"
	}

	if node.Ref {
		s += " (see above)"
	}

	return s
}
