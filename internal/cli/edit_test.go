package cli_test

import (
	"os/exec"
	"testing"

	"tk/internal/cli"
)

func Test_Edit_Runs_Configured_Editor(t *testing.T) {
	t.Parallel()

	if _, err := exec.LookPath("true"); err != nil {
		t.Skip("no true binary")
	}

	c := cli.NewCLI(t)
	c.Env["EDITOR"] = "true"
	c.MustRun("init")

	id := c.MustRun("create", "Editable")
	c.MustRun("edit", id)
}

func Test_Edit_Reports_Editor_Failure(t *testing.T) {
	t.Parallel()

	if _, err := exec.LookPath("false"); err != nil {
		t.Skip("no false binary")
	}

	c := cli.NewCLI(t)
	c.Env["EDITOR"] = "false"
	c.MustRun("init")

	id := c.MustRun("create", "Editable")

	stderr := c.MustFail("edit", id)
	cli.AssertContains(t, stderr, "editor failed")
}

func Test_Edit_Replaces_Title_And_Body_From_Stdin(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.MustRun("init")

	id := c.MustRun("create", "Old title", "-d", "old body")

	stdout, stderr, code := c.RunWithInput("# New title\n\nfresh body\n", "edit", id)
	if code != 0 {
		t.Fatalf("edit failed: %d\nstderr: %s", code, stderr)
	}

	cli.AssertContains(t, stdout, "updated "+id)

	content := c.ReadTicket(id)
	cli.AssertContains(t, content, "# New title")
	cli.AssertContains(t, content, "fresh body")
	cli.AssertNotContains(t, content, "Old title")
	cli.AssertNotContains(t, content, "old body")
}

func Test_Edit_Stdin_Requires_Title_Heading(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.MustRun("init")

	id := c.MustRun("create", "Keep me", "-d", "keep body")

	_, stderr, code := c.RunWithInput("just prose, no heading\n", "edit", id)
	if code == 0 {
		t.Fatal("edit should reject input without a title heading")
	}

	cli.AssertContains(t, stderr, "title heading")

	content := c.ReadTicket(id)
	cli.AssertContains(t, content, "# Keep me")
	cli.AssertContains(t, content, "keep body")
}

func Test_Edit_Stdin_Rejects_Empty_Input(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.MustRun("init")

	id := c.MustRun("create", "Keep me")

	_, stderr, code := c.RunWithInput("", "edit", id)
	if code == 0 {
		t.Fatal("edit should reject empty input")
	}

	cli.AssertContains(t, stderr, "no input")
}

func Test_Edit_Requires_ID(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.MustRun("init")

	stderr := c.MustFail("edit")
	cli.AssertContains(t, stderr, "ticket ID is required")
}
