package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tk/internal/ticket"

	flag "github.com/spf13/pflag"
)

var (
	errAlreadyClosed = errors.New("ticket is already closed")
	errAlreadyOpen   = errors.New("ticket is already open")
)

// CloseCmd returns the close command.
func CloseCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("close", flag.ContinueOnError),
		Usage: "close <id>",
		Short: "Close a ticket",
		Long:  "Mark a ticket closed. Tickets depending on it may become ready.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			return execClose(o, a, args)
		},
	}
}

func execClose(o *IO, a *app, args []string) error {
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

	if t.Closed() {
		return fmt.Errorf("%w: %s", errAlreadyClosed, id)
	}

	t.Status = ticket.StatusClosed

	if err := a.store.Save(t); err != nil {
		return err
	}

	o.Println("closed", id)

	// Report tickets this close unblocked.
	tickets, err := a.store.LoadAll(true)
	if err != nil {
		return err
	}

	var unblocked []string

	for _, other := range sortedByPriority(tickets) {
		if !other.Open() || other.Archived || !dependsOn(other, id) {
			continue
		}

		if allDepsClosed(tickets, other) {
			unblocked = append(unblocked, other.ID)
		}
	}

	if len(unblocked) > 0 {
		o.Println("now ready:", strings.Join(unblocked, ", "))
	}

	return nil
}

func dependsOn(t *ticket.Ticket, id string) bool {
	for _, dep := range t.Deps {
		if dep == id {
			return true
		}
	}

	return false
}

func allDepsClosed(tickets ticket.Collection, t *ticket.Ticket) bool {
	for _, dep := range t.Deps {
		target, ok := tickets[dep]
		if !ok || target.Open() {
			return false
		}
	}

	return true
}
