package cli_test

import (
	"testing"

	"tk/internal/cli"
)

func Test_Ready_Filters_By_Tag(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.MustRun("init")

	backend := c.MustRun("create", "API endpoint", "--tags", "backend")
	frontend := c.MustRun("create", "Button styling", "--tags", "frontend")
	plain := c.MustRun("create", "Write docs")

	out := c.MustRun("ready", "--tag", "backend")
	cli.AssertContains(t, out, backend)
	cli.AssertNotContains(t, out, frontend)
	cli.AssertNotContains(t, out, plain)
}

func Test_Ready_Tag_Filter_Requires_All_Tags(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.MustRun("init")

	both := c.MustRun("create", "Auth endpoint", "--tags", "backend,auth")
	one := c.MustRun("create", "Logging endpoint", "--tags", "backend")

	out := c.MustRun("ready", "--tag", "backend", "--tag", "auth")
	cli.AssertContains(t, out, both)
	cli.AssertNotContains(t, out, one)

	// Comma-separated spelling behaves the same.
	out = c.MustRun("ready", "--tag", "backend,auth")
	cli.AssertContains(t, out, both)
	cli.AssertNotContains(t, out, one)
}

func Test_Ready_Tag_Filter_Keeps_Dependency_Check_Global(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.MustRun("init")

	// The blocker carries no tag. Filtering candidates by tag must not
	// make its dependent look ready.
	blocker := c.MustRun("create", "Untagged blocker")
	dependent := c.MustRun("create", "Tagged dependent", "--tags", "backend", "--dep", blocker)

	out := c.MustRun("ready", "--tag", "backend")
	cli.AssertNotContains(t, out, dependent)

	c.MustRun("close", blocker)

	out = c.MustRun("ready", "--tag", "backend")
	cli.AssertContains(t, out, dependent)
}

func Test_Blocked_Filters_By_Tag(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.MustRun("init")

	base := c.MustRun("create", "Base work")
	backend := c.MustRun("create", "Backend follow-up", "--tags", "backend", "--dep", base)
	frontend := c.MustRun("create", "Frontend follow-up", "--tags", "frontend", "--dep", base)

	out := c.MustRun("blocked", "--tag", "backend")
	cli.AssertContains(t, out, backend)
	cli.AssertContains(t, out, base)
	cli.AssertNotContains(t, out, frontend)
}
