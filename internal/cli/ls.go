package cli

import (
	"context"
	"fmt"

	"tk/internal/query"
	"tk/internal/ticket"

	flag "github.com/spf13/pflag"
)

// LsCmd returns the ls command.
func LsCmd(a *app) *Command {
	fs := flag.NewFlagSet("ls", flag.ContinueOnError)
	fs.String("status", "", "Filter by status (open|closed)")
	fs.String("type", "", "Filter by type")
	fs.StringArray("tag", nil, "Filter by tag, all must match (repeatable)")
	fs.Bool("all", false, "Include archived tickets")

	return &Command{
		Flags: fs,
		Usage: "ls [flags]",
		Short: "List tickets",
		Long:  "List tickets sorted by priority, then age. Archived tickets are hidden unless --all is set.",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			return execLs(o, a, fs)
		},
	}
}

func execLs(o *IO, a *app, fs *flag.FlagSet) error {
	filter, err := filterFromFlags(fs)
	if err != nil {
		return err
	}

	tickets, err := a.store.LoadAll(filter.IncludeArchived)
	if err != nil {
		return err
	}

	matched := sortedByPriority(filter.Apply(tickets))

	if o.JSON {
		return o.PrintJSON(toJSONTickets(matched, false))
	}

	for _, t := range matched {
		o.Println(formatTicketLine(t))
	}

	return nil
}

func filterFromFlags(fs *flag.FlagSet) (query.Filter, error) {
	status, _ := fs.GetString("status")
	if fs.Changed("status") && !ticket.IsValidStatus(status) {
		return query.Filter{}, fmt.Errorf("invalid status: %s", status)
	}

	ticketType, _ := fs.GetString("type")
	if fs.Changed("type") {
		normalized, ok := ticket.NormalizeType(ticketType)
		if !ok {
			return query.Filter{}, fmt.Errorf("%w: %s", errInvalidType, ticketType)
		}

		ticketType = normalized
	}

	tags, _ := fs.GetStringArray("tag")
	all, _ := fs.GetBool("all")

	return query.Filter{
		Status:          status,
		Type:            ticketType,
		Tags:            tags,
		IncludeArchived: all,
	}, nil
}
