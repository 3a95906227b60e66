package cli

import (
	"context"

	"tk/internal/ticket"

	flag "github.com/spf13/pflag"
)

// PrintConfigCmd returns the print-config command.
func PrintConfigCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("print-config", flag.ContinueOnError),
		Usage: "print-config",
		Short: "Show resolved configuration",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			return execPrintConfig(o, a)
		},
	}
}

func execPrintConfig(o *IO, a *app) error {
	formatted, err := ticket.FormatConfig(a.cfg)
	if err != nil {
		return err
	}

	o.Println(formatted)

	o.Println("")
	o.Println("# Sources:")

	if a.sources.Global != "" {
		o.Println("#   global:", a.sources.Global)
	}

	if a.sources.Project != "" {
		o.Println("#   project:", a.sources.Project)
	}

	if a.sources.Global == "" && a.sources.Project == "" {
		o.Println("#   (using defaults only)")
	}

	return nil
}
