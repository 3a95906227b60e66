// Package query filters loaded ticket collections for list-style
// commands.
package query

import (
	"tk/internal/ticket"
)

// Filter narrows a collection. Zero-valued fields match everything.
// Tags are ANDed: a ticket must carry every listed tag. Archived
// tickets are excluded unless IncludeArchived is set.
type Filter struct {
	Status          string
	Type            string
	Tags            []string
	IncludeArchived bool
}

// Apply returns the matching tickets as a new collection. The input is
// not modified.
func (f Filter) Apply(tickets ticket.Collection) ticket.Collection {
	out := make(ticket.Collection)

	for id, t := range tickets {
		if f.matches(t) {
			out[id] = t
		}
	}

	return out
}

func (f Filter) matches(t *ticket.Ticket) bool {
	if t.Archived && !f.IncludeArchived {
		return false
	}

	if f.Status != "" && t.Status != f.Status {
		return false
	}

	if f.Type != "" && t.Type != f.Type {
		return false
	}

	for _, tag := range f.Tags {
		if !t.HasTag(tag) {
			return false
		}
	}

	return true
}
