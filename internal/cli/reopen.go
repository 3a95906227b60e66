package cli

import (
	"context"
	"fmt"

	"tk/internal/ticket"

	flag "github.com/spf13/pflag"
)

// ReopenCmd returns the reopen command.
func ReopenCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("reopen", flag.ContinueOnError),
		Usage: "reopen <id>",
		Short: "Reopen a closed ticket",
		Exec: func(_ context.Context, o *IO, args []string) error {
			return execReopen(o, a, args)
		},
	}
}

func execReopen(o *IO, a *app, args []string) error {
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

	if t.Open() {
		return fmt.Errorf("%w: %s", errAlreadyOpen, id)
	}

	t.Status = ticket.StatusOpen

	if err := a.store.Save(t); err != nil {
		return err
	}

	o.Println("reopened", id)

	return nil
}
