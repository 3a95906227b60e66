package cli

import (
	"context"
	"os"
	"strings"

	"tk/internal/ticket"

	flag "github.com/spf13/pflag"
)

// NoteCmd returns the note command.
func NoteCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("note", flag.ContinueOnError),
		Usage: "note <id> [text...]",
		Short: "Append a timestamped note to a ticket",
		Long: "Append a note to the ticket body. The note line carries a UTC timestamp and\n" +
			"the author from $USER. Without text arguments, an editor opens on a scratch\n" +
			"file and its trimmed contents become the note.",
		Exec: func(ctx context.Context, o *IO, args []string) error {
			return execNote(ctx, o, a, args)
		},
	}
}

func execNote(ctx context.Context, o *IO, a *app, args []string) error {
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

	content := strings.TrimSpace(strings.Join(args[1:], " "))
	if content == "" {
		content, err = noteFromEditor(ctx, a, id)
		if err != nil {
			return err
		}
	}

	t.AppendNote(ticket.NewNote(content, a.env))

	if err := a.store.Save(t); err != nil {
		return err
	}

	o.Println("noted", id)

	return nil
}

// noteFromEditor opens a scratch file in the editor and returns its trimmed
// contents. The scratch file is removed afterwards.
func noteFromEditor(ctx context.Context, a *app, id string) (string, error) {
	editor, err := resolveEditor(a.cfg, a.env)
	if err != nil {
		return "", err
	}

	scratch, err := os.CreateTemp("", "tk-note-"+id+"-*.md")
	if err != nil {
		return "", err
	}

	path := scratch.Name()

	if err := scratch.Close(); err != nil {
		return "", err
	}

	defer os.Remove(path)

	if err := runEditor(ctx, editor, path); err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	content := strings.TrimSpace(string(data))
	if content == "" {
		return "", ticket.ErrEmptyNote
	}

	return content, nil
}
