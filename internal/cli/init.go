package cli

import (
	"context"

	flag "github.com/spf13/pflag"
)

// InitCmd returns the init command.
func InitCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("init", flag.ContinueOnError),
		Usage: "init",
		Short: "Create the ticket directory",
		Long:  "Create the ticket directory (and its archive) in the current project. Safe to run twice.",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			if err := a.store.Init(); err != nil {
				return err
			}

			o.Println("initialized", a.store.Dir())

			return nil
		},
	}
}
