package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tk/internal/store"

	flag "github.com/spf13/pflag"
)

var errArchiveOpen = errors.New("refusing to archive an open ticket (close it first, or pass --force)")

// ArchiveCmd returns the archive command.
func ArchiveCmd(a *app) *Command {
	fs := flag.NewFlagSet("archive", flag.ContinueOnError)
	fs.Bool("force", false, "Archive even if the ticket is still open")

	return &Command{
		Flags: fs,
		Usage: "archive <id> [flags]",
		Short: "Move a ticket into the archive",
		Long:  "Move the ticket file into the archive subdirectory. The file content is unchanged and the ID stays reserved.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			return execArchive(o, a, fs, args)
		},
	}
}

func execArchive(o *IO, a *app, fs *flag.FlagSet, args []string) error {
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

	force, _ := fs.GetBool("force")
	if t.Open() && !force {
		return fmt.Errorf("%w: %s", errArchiveOpen, id)
	}

	if err := a.store.Archive(id); err != nil {
		return err
	}

	o.Println("archived", id)

	// Open tickets still depending on an archived one deserve a flag;
	// the dependency keeps counting, but it is now out of sight.
	tickets, err := a.store.LoadAll(false)
	if err != nil {
		return err
	}

	if dependents := store.Dependents(tickets, id); len(dependents) > 0 {
		o.WarnLLM(
			"archived ticket is still a dependency of "+strings.Join(dependents, ", "),
			"close or undep those tickets if the dependency no longer applies",
		)
	}

	return nil
}

// UnarchiveCmd returns the unarchive command.
func UnarchiveCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("unarchive", flag.ContinueOnError),
		Usage: "unarchive <id>",
		Short: "Move a ticket back out of the archive",
		Exec: func(_ context.Context, o *IO, args []string) error {
			return execUnarchive(o, a, args)
		},
	}
}

func execUnarchive(o *IO, a *app, args []string) error {
	if len(args) == 0 {
		return errIDRequired
	}

	id, err := a.store.Resolve(args[0])
	if err != nil {
		return err
	}

	if err := a.store.Unarchive(id); err != nil {
		return err
	}

	o.Println("unarchived", id)

	return nil
}
