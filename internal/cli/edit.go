package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"tk/internal/ticket"

	flag "github.com/spf13/pflag"
)

// EditCmd returns the edit command.
func EditCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("edit", flag.ContinueOnError),
		Usage: "edit <id>",
		Short: "Replace a ticket's title and body",
		Long: "With piped input, replace the ticket's title and body from stdin; the first\n" +
			"non-blank line must be a \"# Title\" heading. On a terminal, open the ticket\n" +
			"file in an editor instead. Uses config editor, then $EDITOR, then zed, vi, nano.",
		Exec: func(ctx context.Context, o *IO, args []string) error {
			return execEdit(ctx, o, a, args)
		},
	}
}

func execEdit(ctx context.Context, o *IO, a *app, args []string) error {
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

	if stdinPiped(a.in) {
		return editFromStdin(o, a, t)
	}

	path := a.store.Path(id)
	if t.Archived {
		path = a.store.ArchivePath(id)
	}

	editor, err := resolveEditor(a.cfg, a.env)
	if err != nil {
		return err
	}

	if err := runEditor(ctx, editor, path); err != nil {
		return err
	}

	// Re-parse so a broken edit is caught immediately instead of at
	// the next load.
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if _, err := ticket.Decode(data); err != nil {
		return fmt.Errorf("ticket is no longer valid after edit: %w", err)
	}

	return nil
}

// editFromStdin replaces the title and body from piped input while leaving
// the frontmatter untouched.
func editFromStdin(o *IO, a *app, t *ticket.Ticket) error {
	data, err := io.ReadAll(a.in)
	if err != nil {
		return err
	}

	input := string(data)
	if strings.TrimSpace(input) == "" {
		return errors.New("no input provided, expected: # Title followed by an optional body")
	}

	title, body, err := ticket.ExtractTitle(input)
	if err != nil {
		return err
	}

	t.Title = title
	t.Body = body

	if err := a.store.Save(t); err != nil {
		return err
	}

	o.Println("updated", t.ID)

	return nil
}

// stdinPiped reports whether input arrived via a pipe or redirect rather
// than an interactive terminal.
func stdinPiped(in io.Reader) bool {
	if in == nil {
		return false
	}

	f, ok := in.(*os.File)
	if !ok {
		return true
	}

	info, err := f.Stat()
	if err != nil {
		return false
	}

	return info.Mode()&os.ModeCharDevice == 0
}

// resolveEditor checks for an available editor using the env map.
// Priority: config.Editor -> $EDITOR -> zed -> vi -> nano -> error.
func resolveEditor(cfg ticket.Config, env map[string]string) (string, error) {
	if cfg.Editor != "" {
		if _, err := exec.LookPath(cfg.Editor); err == nil {
			return cfg.Editor, nil
		}
	}

	if editor := env["EDITOR"]; editor != "" {
		if _, err := exec.LookPath(editor); err == nil {
			return editor, nil
		}
	}

	for _, fallback := range []string{"zed", "vi", "nano"} {
		if _, err := exec.LookPath(fallback); err == nil {
			return fallback, nil
		}
	}

	return "", ticket.ErrNoEditorFound
}

func runEditor(ctx context.Context, editor, path string) error {
	// zed forks by default; -n -w keeps it attached until the file is
	// closed.
	var cmd *exec.Cmd

	if filepath.Base(editor) == "zed" {
		cmd = exec.CommandContext(ctx, editor, "-n", "-w", path)
	} else {
		cmd = exec.CommandContext(ctx, editor, path)
	}

	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("%w: %s exited with %d", ticket.ErrEditorFailed, editor, exitErr.ExitCode())
		}

		return fmt.Errorf("%w: %v", ticket.ErrEditorFailed, err)
	}

	return nil
}
