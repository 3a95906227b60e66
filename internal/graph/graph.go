// Package graph derives views from ticket dependency edges: the
// ready/blocked partition, cycle detection, and the tree rendering.
// It never touches disk; callers hand it a loaded collection.
package graph

import (
	"sort"

	"tk/internal/ticket"
)

// Dangling is a dependency edge whose target does not exist.
type Dangling struct {
	TicketID string
	DepID    string
}

// Readiness partitions the open tickets of a collection.
//
// A ticket is ready when every dependency resolves and is closed. It
// is blocked when every dependency resolves but at least one is still
// open. Tickets with a dangling edge land in neither set; they show up
// in Dangling instead so the broken reference is surfaced rather than
// silently treated as satisfied or unsatisfied.
type Readiness struct {
	Ready    []*ticket.Ticket
	Blocked  []*ticket.Ticket
	Dangling []Dangling
}

// BlockingDeps returns the open dependencies holding back a blocked
// ticket, sorted by ID.
func BlockingDeps(tickets ticket.Collection, t *ticket.Ticket) []string {
	var out []string

	for _, dep := range t.Deps {
		if target, ok := tickets[dep]; ok && target.Open() {
			out = append(out, dep)
		}
	}

	sort.Strings(out)

	return out
}

// Analyze computes the readiness partition for a collection. Closed
// and archived tickets are never ready or blocked, but their closed
// status still satisfies the dependencies of others. Both result
// slices are ordered by priority, then creation time, then ID.
func Analyze(tickets ticket.Collection) Readiness {
	var result Readiness

	for _, id := range tickets.IDs() {
		t := tickets[id]
		if !t.Open() || t.Archived {
			continue
		}

		dangling := false
		blocked := false

		for _, dep := range t.Deps {
			target, ok := tickets[dep]
			if !ok {
				result.Dangling = append(result.Dangling, Dangling{TicketID: t.ID, DepID: dep})
				dangling = true

				continue
			}

			if target.Open() {
				blocked = true
			}
		}

		switch {
		case dangling:
		case blocked:
			result.Blocked = append(result.Blocked, t)
		default:
			result.Ready = append(result.Ready, t)
		}
	}

	sortTickets(result.Ready)
	sortTickets(result.Blocked)

	return result
}

// sortTickets orders by priority ascending, then creation time, then
// ID as the deterministic tiebreak.
func sortTickets(tickets []*ticket.Ticket) {
	sort.Slice(tickets, func(i, j int) bool {
		a, b := tickets[i], tickets[j]

		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}

		if !a.Created.Equal(b.Created) {
			return a.Created.Before(b.Created)
		}

		return a.ID < b.ID
	})
}
