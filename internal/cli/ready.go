package cli

import (
	"context"
	"fmt"
	"strings"

	"tk/internal/graph"
	"tk/internal/ticket"

	flag "github.com/spf13/pflag"
)

// ReadyCmd returns the ready command.
func ReadyCmd(a *app) *Command {
	fs := flag.NewFlagSet("ready", flag.ContinueOnError)
	fs.StringSlice("tag", nil, "Only tickets carrying every listed tag (repeatable or comma-separated)")

	return &Command{
		Flags: fs,
		Usage: "ready [flags]",
		Short: "List tickets ready to work on",
		Long:  "List open tickets whose dependencies are all closed, sorted by priority, then age.",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			return execReady(o, a, fs)
		},
	}
}

func execReady(o *IO, a *app, fs *flag.FlagSet) error {
	_, result, err := analyze(a)
	if err != nil {
		return err
	}

	warnDangling(o, result.Dangling)

	tags, _ := fs.GetStringSlice("tag")
	ready := filterByTags(result.Ready, tags)

	if o.JSON {
		return o.PrintJSON(toJSONTickets(ready, false))
	}

	for _, t := range ready {
		o.Println(formatTicketLine(t))
	}

	return nil
}

// BlockedCmd returns the blocked command.
func BlockedCmd(a *app) *Command {
	fs := flag.NewFlagSet("blocked", flag.ContinueOnError)
	fs.StringSlice("tag", nil, "Only tickets carrying every listed tag (repeatable or comma-separated)")

	return &Command{
		Flags: fs,
		Usage: "blocked [flags]",
		Short: "List blocked tickets and what blocks them",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			return execBlocked(o, a, fs)
		},
	}
}

func execBlocked(o *IO, a *app, fs *flag.FlagSet) error {
	tickets, result, err := analyze(a)
	if err != nil {
		return err
	}

	warnDangling(o, result.Dangling)

	tags, _ := fs.GetStringSlice("tag")
	blocked := filterByTags(result.Blocked, tags)

	if o.JSON {
		type blockedTicket struct {
			jsonTicket

			BlockedBy []string `json:"blocked_by"`
		}

		out := make([]blockedTicket, 0, len(blocked))
		for _, t := range blocked {
			out = append(out, blockedTicket{
				jsonTicket: toJSONTicket(t, false),
				BlockedBy:  graph.BlockingDeps(tickets, t),
			})
		}

		return o.PrintJSON(out)
	}

	for _, t := range blocked {
		blockers := graph.BlockingDeps(tickets, t)
		o.Println(formatTicketLine(t), "<- blocked by:", strings.Join(blockers, ", "))
	}

	return nil
}

// analyze loads the archive too: archived tickets are never ready or
// blocked themselves, but a closed archived ticket still satisfies the
// dependencies pointing at it.
func analyze(a *app) (ticket.Collection, graph.Readiness, error) {
	tickets, err := a.store.LoadAll(true)
	if err != nil {
		return nil, graph.Readiness{}, err
	}

	return tickets, graph.Analyze(tickets), nil
}

// filterByTags narrows the candidate list after the readiness split so
// that dependency satisfaction is still judged against every ticket.
func filterByTags(tickets []*ticket.Ticket, tags []string) []*ticket.Ticket {
	if len(tags) == 0 {
		return tickets
	}

	out := make([]*ticket.Ticket, 0, len(tickets))

outer:
	for _, t := range tickets {
		for _, tag := range tags {
			if !t.HasTag(tag) {
				continue outer
			}
		}

		out = append(out, t)
	}

	return out
}

func warnDangling(o *IO, dangling []graph.Dangling) {
	for _, d := range dangling {
		o.WarnLLM(
			fmt.Sprintf("%s depends on %s which does not exist", d.TicketID, d.DepID),
			"remove the dependency with: tk undep "+d.TicketID+" "+d.DepID,
		)
	}
}
