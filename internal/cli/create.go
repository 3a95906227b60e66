package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"tk/internal/ticket"

	flag "github.com/spf13/pflag"
)

var (
	errInvalidType     = errors.New("invalid type")
	errInvalidPriority = errors.New("invalid priority (must be 1-3)")
	errEmptyTag        = errors.New("empty tag not allowed")
	errNoStdin         = errors.New("no stdin available for --description -")
)

// CreateCmd returns the create command.
func CreateCmd(a *app) *Command {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	fs.StringP("type", "t", ticket.TypeTask, "Type (task|bug|feature|epic|chore|docs|refactor|test)")
	fs.IntP("priority", "p", ticket.DefaultPriority, "Priority 1-3 (1=most urgent)")
	fs.StringSlice("tags", nil, "Tags (repeatable or comma-separated)")
	fs.StringArray("dep", nil, "Dependency ticket ID or prefix (repeatable)")
	fs.StringP("description", "d", "", "Body text below the title (\"-\" reads stdin)")

	return &Command{
		Flags: fs,
		Usage: "create <title> [flags]",
		Short: "Create a ticket, prints its ID",
		Long:  "Create a new ticket file. Prints the generated ticket ID on success.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			return execCreate(o, a, fs, args)
		},
	}
}

func execCreate(o *IO, a *app, fs *flag.FlagSet, args []string) error {
	if len(args) == 0 || args[0] == "" {
		return errTitleRequired
	}

	title := args[0]

	ticketType, _ := fs.GetString("type")

	normalized, ok := ticket.NormalizeType(ticketType)
	if !ok {
		return fmt.Errorf("%w: %s", errInvalidType, ticketType)
	}

	priority, _ := fs.GetInt("priority")
	if !ticket.IsValidPriority(priority) {
		return errInvalidPriority
	}

	tags, _ := fs.GetStringSlice("tags")
	for _, tag := range tags {
		if tag == "" {
			return errEmptyTag
		}
	}

	t := ticket.New(title, normalized, priority, tags)

	body, _ := fs.GetString("description")
	if body == "-" {
		if a.in == nil {
			return errNoStdin
		}

		data, err := io.ReadAll(a.in)
		if err != nil {
			return err
		}

		body = strings.TrimRight(string(data), "\n")
	}

	t.Body = body

	// Dependencies may be prefixes; resolve them against existing
	// tickets before the new one gets an ID.
	deps, _ := fs.GetStringArray("dep")
	for _, dep := range deps {
		resolved, err := a.store.Resolve(dep)
		if err != nil {
			return err
		}

		if err := t.AddDep(resolved); err != nil {
			return err
		}
	}

	if err := a.store.Create(t); err != nil {
		return err
	}

	o.Println(t.ID)

	return nil
}
