package cli

import (
	"bytes"
	"context"

	"tk/internal/graph"

	flag "github.com/spf13/pflag"
)

// TreeCmd returns the tree command.
func TreeCmd(a *app) *Command {
	fs := flag.NewFlagSet("tree", flag.ContinueOnError)
	fs.Bool("full", false, "Include closed and archived tickets as roots")

	return &Command{
		Flags: fs,
		Usage: "tree [id] [flags]",
		Short: "Show dependency trees",
		Long: "Render tickets as dependency trees, children being the dependencies. With an ID,\n" +
			"only that ticket's tree is shown. A ticket already printed earlier in the walk is\n" +
			"marked (see above) instead of being expanded again.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			return execTree(o, a, fs, args)
		},
	}
}

func execTree(o *IO, a *app, fs *flag.FlagSet, args []string) error {
	tickets, err := a.store.LoadAll(true)
	if err != nil {
		return err
	}

	var roots []*graph.Node

	if len(args) > 0 {
		id, err := a.store.Resolve(args[0])
		if err != nil {
			return err
		}

		roots = []*graph.Node{graph.Tree(tickets, id)}
	} else {
		full, _ := fs.GetBool("full")
		roots = graph.Forest(tickets, full)
	}

	var buf bytes.Buffer

	for i, root := range roots {
		if i > 0 {
			buf.WriteByte('\n')
		}

		graph.Render(&buf, root)
	}

	o.Printf("%s", buf.String())

	return nil
}
