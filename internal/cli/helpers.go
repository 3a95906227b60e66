package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"tk/internal/ticket"
)

var (
	errIDRequired    = errors.New("ticket ID is required")
	errTitleRequired = errors.New("title is required")
)

// jsonTicket is the machine-readable shape used by --json output and
// the query command.
type jsonTicket struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Status   string   `json:"status"`
	Type     string   `json:"type"`
	Priority int      `json:"priority"`
	Created  string   `json:"created"`
	Deps     []string `json:"deps"`
	Tags     []string `json:"tags"`
	Archived bool     `json:"archived"`
	Body     string   `json:"body,omitempty"`
}

func toJSONTicket(t *ticket.Ticket, withBody bool) jsonTicket {
	out := jsonTicket{
		ID:       t.ID,
		Title:    t.Title,
		Status:   t.Status,
		Type:     t.Type,
		Priority: t.Priority,
		Created:  t.Created.Format(time.RFC3339),
		Deps:     t.Deps,
		Tags:     t.Tags,
		Archived: t.Archived,
	}

	if out.Deps == nil {
		out.Deps = []string{}
	}

	if out.Tags == nil {
		out.Tags = []string{}
	}

	if withBody {
		out.Body = t.Body
	}

	return out
}

func toJSONTickets(tickets []*ticket.Ticket, withBody bool) []jsonTicket {
	out := make([]jsonTicket, 0, len(tickets))

	for _, t := range tickets {
		out = append(out, toJSONTicket(t, withBody))
	}

	return out
}

func formatTicketLine(t *ticket.Ticket) string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "%s [%s] p%d %s", t.ID, t.Status, t.Priority, t.Title)

	if len(t.Tags) > 0 {
		builder.WriteString(" #")
		builder.WriteString(strings.Join(t.Tags, " #"))
	}

	if t.Archived {
		builder.WriteString(" (archived)")
	}

	return builder.String()
}

// sortedByPriority returns the collection's tickets ordered the way
// list commands print them: priority, then age, then ID.
func sortedByPriority(tickets ticket.Collection) []*ticket.Ticket {
	out := make([]*ticket.Ticket, 0, len(tickets))

	for _, id := range tickets.IDs() {
		out = append(out, tickets[id])
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]

		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}

		if !a.Created.Equal(b.Created) {
			return a.Created.Before(b.Created)
		}

		return a.ID < b.ID
	})

	return out
}
