package cli

import (
	"context"

	"tk/internal/ticket"

	flag "github.com/spf13/pflag"
)

// ShowCmd returns the show command.
func ShowCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("show", flag.ContinueOnError),
		Usage: "show <id>",
		Short: "Show ticket details",
		Long:  "Display the full contents of a ticket. The ID may be a unique prefix.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			return execShow(o, a, args)
		},
	}
}

func execShow(o *IO, a *app, args []string) error {
	if len(args) == 0 {
		return errIDRequired
	}

	id, err := a.store.Resolve(args[0])
	if err != nil {
		return err
	}

	t, err := a.store.Load(id)
	if err != nil {
		return err
	}

	if o.JSON {
		return o.PrintJSON(toJSONTicket(t, true))
	}

	o.Printf("%s", ticket.Encode(t))

	return nil
}
