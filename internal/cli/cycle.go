package cli

import (
	"context"
	"strings"

	"tk/internal/graph"

	flag "github.com/spf13/pflag"
)

// CycleCmd returns the dep-cycle command.
func CycleCmd(a *app) *Command {
	fs := flag.NewFlagSet("dep-cycle", flag.ContinueOnError)
	fs.Bool("all", false, "Include edges through closed tickets")

	return &Command{
		Flags: fs,
		Usage: "dep-cycle [flags]",
		Short: "Detect dependency cycles",
		Long: "Walk the dependency graph and report every cycle. By default edges into closed\n" +
			"tickets are ignored since they can no longer block anything; --all checks every edge.",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			return execCycle(o, a, fs)
		},
	}
}

func execCycle(o *IO, a *app, fs *flag.FlagSet) error {
	tickets, err := a.store.LoadAll(true)
	if err != nil {
		return err
	}

	mode := graph.UnresolvedEdges

	if all, _ := fs.GetBool("all"); all {
		mode = graph.AllEdges
	}

	cycles := graph.Cycles(tickets, mode)

	if o.JSON {
		if cycles == nil {
			cycles = [][]string{}
		}

		return o.PrintJSON(cycles)
	}

	if len(cycles) == 0 {
		o.Println("no cycles")

		return nil
	}

	for _, cycle := range cycles {
		o.Println(strings.Join(cycle, " -> ") + " -> " + cycle[0])
	}

	o.WarnLLM("dependency graph has cycles", "break each cycle with: tk undep <id> <dep-id>")

	return nil
}
