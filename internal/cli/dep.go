package cli

import (
	"context"
	"errors"
	"strings"

	"tk/internal/graph"

	flag "github.com/spf13/pflag"
)

var errTwoIDsRequired = errors.New("two ticket IDs are required")

// DepCmd returns the dep command.
func DepCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("dep", flag.ContinueOnError),
		Usage: "dep <id> <dep-id>",
		Short: "Add a dependency",
		Long:  "Record that <id> depends on <dep-id>. Warns when the new edge closes a cycle.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			return execDep(o, a, args)
		},
	}
}

func execDep(o *IO, a *app, args []string) error {
	if len(args) < 2 {
		return errTwoIDsRequired
	}

	id, err := a.store.Resolve(args[0])
	if err != nil {
		return err
	}

	depID, err := a.store.Resolve(args[1])
	if err != nil {
		return err
	}

	t, err := a.store.Load(id)
	if err != nil {
		return err
	}

	if err := t.AddDep(depID); err != nil {
		return err
	}

	if err := a.store.Save(t); err != nil {
		return err
	}

	o.Println("added dependency:", id, "->", depID)

	// The edge is written either way; a cycle is reported, not blocked,
	// so the operator can decide which edge to drop.
	tickets, err := a.store.LoadAll(true)
	if err != nil {
		return err
	}

	for _, cycle := range graph.Cycles(tickets, graph.UnresolvedEdges) {
		o.WarnLLM(
			"dependency cycle: "+strings.Join(cycle, " -> ")+" -> "+cycle[0],
			"remove one edge with: tk undep <id> <dep-id>",
		)
	}

	return nil
}

// UndepCmd returns the undep command.
func UndepCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("undep", flag.ContinueOnError),
		Usage: "undep <id> <dep-id>",
		Short: "Remove a dependency",
		Exec: func(_ context.Context, o *IO, args []string) error {
			return execUndep(o, a, args)
		},
	}
}

func execUndep(o *IO, a *app, args []string) error {
	if len(args) < 2 {
		return errTwoIDsRequired
	}

	id, err := a.store.Resolve(args[0])
	if err != nil {
		return err
	}

	depID, err := a.store.Resolve(args[1])
	if err != nil {
		return err
	}

	t, err := a.store.Load(id)
	if err != nil {
		return err
	}

	if err := t.RemoveDep(depID); err != nil {
		return err
	}

	if err := a.store.Save(t); err != nil {
		return err
	}

	o.Println("removed dependency:", id, "->", depID)

	return nil
}
