package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tk/internal/store"

	flag "github.com/spf13/pflag"
)

var errHasDependents = errors.New("other tickets depend on this one")

// DeleteCmd returns the delete command.
func DeleteCmd(a *app) *Command {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	fs.Bool("force", false, "Delete even when other tickets depend on it")

	return &Command{
		Flags: fs,
		Usage: "delete <id> [flags]",
		Short: "Delete a ticket permanently",
		Long: "Remove the ticket file. Unlike archive this frees nothing gracefully: dependents\n" +
			"are left with a dangling edge, so deletion is refused unless --force is given.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			return execDelete(o, a, fs, args)
		},
	}
}

func execDelete(o *IO, a *app, fs *flag.FlagSet, args []string) error {
	if len(args) == 0 {
		return errIDRequired
	}

	id, err := a.store.Resolve(args[0])
	if err != nil {
		return err
	}

	tickets, err := a.store.LoadAll(true)
	if err != nil {
		return err
	}

	dependents := store.Dependents(tickets, id)

	force, _ := fs.GetBool("force")
	if len(dependents) > 0 && !force {
		return fmt.Errorf("%w: %s (use --force to delete anyway)", errHasDependents, strings.Join(dependents, ", "))
	}

	if err := a.store.Delete(id); err != nil {
		return err
	}

	o.Println("deleted", id)

	for _, dep := range dependents {
		o.WarnLLM(
			dep+" now has a dangling dependency on "+id,
			"run: tk undep "+dep+" "+id,
		)
	}

	return nil
}
