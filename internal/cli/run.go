package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"tk/internal/store"
	"tk/internal/ticket"
)

const (
	minArgs      = 2
	consumedOne  = 1
	consumedTwo  = 2
	consumedNone = 0
	helpFlag     = "--help"
)

// app carries the resolved environment every command needs.
type app struct {
	cfg     ticket.Config
	sources ticket.ConfigSources
	store   *store.Store
	env     map[string]string
	in      io.Reader
}

// Run is the main entry point. Returns exit code.
func Run(in io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string, _ <-chan os.Signal) int {
	if len(args) < minArgs {
		printUsage(out)

		return 0
	}

	// Parse global flags
	flags, err := parseGlobalFlags(args[1:])
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	// Default workDir to current directory
	workDir := flags.workDir
	if workDir == "" {
		workDir, err = os.Getwd()
		if err != nil {
			fprintln(errOut, "error: cannot get working directory:", err)

			return 1
		}
	}

	// Load and validate config
	cliOverrides := ticket.Config{TicketDir: flags.ticketDir}

	cfg, sources, err := ticket.LoadConfig(workDir, flags.configPath, cliOverrides, flags.hasTicketDirOverride, env)
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	// Resolve ticket directory to absolute path
	ticketDirAbs := cfg.TicketDir
	if !filepath.IsAbs(ticketDirAbs) {
		ticketDirAbs = filepath.Join(workDir, ticketDirAbs)
	}

	if len(flags.remaining) == 0 {
		printUsage(out)

		return 0
	}

	name := flags.remaining[0]
	if name == "-h" || name == helpFlag {
		printUsage(out)

		return 0
	}

	a := &app{
		cfg:     cfg,
		sources: sources,
		store:   store.New(ticketDirAbs),
		env:     env,
		in:      in,
	}

	ioCtx := NewIO(out, errOut)
	ioCtx.JSON = flags.jsonOutput

	for _, cmd := range commands(a) {
		if cmd.Name() == name {
			return cmd.Run(context.Background(), ioCtx, flags.remaining[1:])
		}
	}

	fprintln(errOut, "error: unknown command:", name)
	printUsage(errOut)

	return 1
}

// commands builds the registry. Order here is help output order.
func commands(a *app) []*Command {
	return []*Command{
		InitCmd(a),
		CreateCmd(a),
		LsCmd(a),
		ShowCmd(a),
		EditCmd(a),
		CloseCmd(a),
		ReopenCmd(a),
		DepCmd(a),
		UndepCmd(a),
		ReadyCmd(a),
		BlockedCmd(a),
		CycleCmd(a),
		TreeCmd(a),
		NoteCmd(a),
		ArchiveCmd(a),
		UnarchiveCmd(a),
		DeleteCmd(a),
		QueryCmd(a),
		PrintConfigCmd(a),
	}
}

type globalFlags struct {
	workDir              string
	configPath           string
	ticketDir            string
	hasTicketDirOverride bool
	jsonOutput           bool
	remaining            []string
}

func parseGlobalFlags(args []string) (globalFlags, error) {
	var flags globalFlags

	idx := 0
	for idx < len(args) {
		consumed, err := parseFlag(args, idx, &flags)
		if err != nil {
			return globalFlags{}, err
		}

		if consumed == 0 {
			// Not a flag, this is the command
			flags.remaining = args[idx:]

			break
		}

		idx += consumed
	}

	return flags, nil
}

// parseFlag tries to parse a flag at args[idx]. Returns number of args consumed (0 if not a flag).
func parseFlag(args []string, idx int, flags *globalFlags) (int, error) {
	arg := args[idx]

	// -C/--cwd flag (work directory)
	if (arg == "-C" || arg == "--cwd") && idx+1 < len(args) {
		flags.workDir = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "-C"); ok {
		flags.workDir = after

		return consumedOne, nil
	}

	if after, ok := strings.CutPrefix(arg, "--cwd="); ok {
		flags.workDir = after

		return consumedOne, nil
	}

	// -c/--config flag
	if arg == "-c" || arg == "--config" {
		if idx+1 >= len(args) {
			return consumedNone, fmt.Errorf("%w: %s", ticket.ErrFlagRequiresArg, arg)
		}

		flags.configPath = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "--config="); ok {
		flags.configPath = after

		return consumedOne, nil
	}

	// --ticket-dir flag
	if arg == "--ticket-dir" {
		if idx+1 >= len(args) {
			return consumedNone, fmt.Errorf("%w: %s", ticket.ErrFlagRequiresArg, arg)
		}

		flags.ticketDir = args[idx+1]
		flags.hasTicketDirOverride = true

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "--ticket-dir="); ok {
		flags.ticketDir = after
		flags.hasTicketDirOverride = true

		return consumedOne, nil
	}

	// --json flag
	if arg == "--json" {
		flags.jsonOutput = true

		return consumedOne, nil
	}

	// -h/--help flags
	if arg == "-h" || arg == helpFlag {
		flags.remaining = []string{helpFlag}

		return len(args) - idx, nil
	}

	// Unknown flag
	if strings.HasPrefix(arg, "-") && arg != "-" {
		return consumedNone, fmt.Errorf("%w: %s", ticket.ErrUnknownFlag, arg)
	}

	// Not a flag
	return consumedNone, nil
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func printUsage(w io.Writer) {
	fprintln(w, `tk - file-backed ticket tracker

Usage: tk [options] <command> [args]

Options:
  -C, --cwd <dir>      Run as if started in <dir>
  -c, --config <file>  Use specified config file
  --ticket-dir <dir>   Override the ticket directory
  --json               Machine-readable output where supported

Commands:`)

	for _, cmd := range commands(&app{}) {
		fprintln(w, cmd.HelpLine())
	}
}
