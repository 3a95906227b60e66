package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"

	flag "github.com/spf13/pflag"
)

var (
	errExprRequired = errors.New("jq expression is required")
	errJqNotFound   = errors.New("jq not found in PATH")
)

// QueryCmd returns the query command.
func QueryCmd(a *app) *Command {
	fs := flag.NewFlagSet("query", flag.ContinueOnError)
	fs.Bool("archived", false, "Include archived tickets")

	return &Command{
		Flags: fs,
		Usage: "query <jq-expr> [flags]",
		Short: "Run a jq expression over all tickets",
		Long: "Pipe the full ticket list, as a JSON array, through jq. Example:\n" +
			"  tk query '.[] | select(.priority == 1) | .id'",
		Exec: func(ctx context.Context, o *IO, args []string) error {
			return execQuery(ctx, o, a, fs, args)
		},
	}
}

func execQuery(ctx context.Context, o *IO, a *app, fs *flag.FlagSet, args []string) error {
	if len(args) == 0 {
		return errExprRequired
	}

	includeArchived, _ := fs.GetBool("archived")

	tickets, err := a.store.LoadAll(includeArchived)
	if err != nil {
		return err
	}

	input, err := json.Marshal(toJSONTickets(sortedByPriority(tickets), true))
	if err != nil {
		return err
	}

	jq, err := exec.LookPath("jq")
	if err != nil {
		return errJqNotFound
	}

	cmd := exec.CommandContext(ctx, jq, args[0])
	cmd.Stdin = bytes.NewReader(input)

	var out, errOut bytes.Buffer

	cmd.Stdout = &out
	cmd.Stderr = &errOut

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("jq: %v: %s", err, bytes.TrimSpace(errOut.Bytes()))
	}

	o.Printf("%s", out.String())

	return nil
}
