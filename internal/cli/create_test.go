package cli_test

import (
	"regexp"
	"strings"
	"testing"

	"tk/internal/cli"
)

func Test_Create_Prints_ID(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.MustRun("init")

	id := c.MustRun("create", "My first ticket")

	if matched, _ := regexp.MatchString(`^tk-[0-9a-f]{4}$`, id); !matched {
		t.Errorf("ID %q does not look like a ticket ID", id)
	}

	content := c.ReadTicket(id)
	cli.AssertContains(t, content, "# My first ticket")
	cli.AssertContains(t, content, "status: open")
	cli.AssertContains(t, content, "type: task")
	cli.AssertContains(t, content, "priority: 2")
}

func Test_Create_With_Flags(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.MustRun("init")

	id := c.MustRun("create", "Urgent bug", "-t", "bug", "-p", "1", "--tags", "auth,ci", "-d", "steps to reproduce")

	content := c.ReadTicket(id)
	cli.AssertContains(t, content, "type: bug")
	cli.AssertContains(t, content, "priority: 1")
	cli.AssertContains(t, content, "- auth")
	cli.AssertContains(t, content, "- ci")
	cli.AssertContains(t, content, "steps to reproduce")
}

func Test_Create_Normalizes_Type_Aliases(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.MustRun("init")

	id := c.MustRun("create", "New thing", "-t", "feat")
	cli.AssertContains(t, c.ReadTicket(id), "type: feature")

	id = c.MustRun("create", "Broken thing", "-t", "fix")
	cli.AssertContains(t, c.ReadTicket(id), "type: bug")
}

func Test_Create_With_Dep_Prefix(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.MustRun("init")

	first := c.MustRun("create", "Base")
	second := c.MustRun("create", "On top", "--dep", strings.TrimPrefix(first, "tk-"))

	cli.AssertContains(t, c.ReadTicket(second), "- "+first)
}

func Test_Create_Validation(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name       string
		args       []string
		wantStderr string
	}{
		{
			name:       "missing title",
			args:       []string{"create"},
			wantStderr: "title is required",
		},
		{
			name:       "bad type",
			args:       []string{"create", "T", "-t", "story"},
			wantStderr: "invalid type",
		},
		{
			name:       "bad priority",
			args:       []string{"create", "T", "-p", "4"},
			wantStderr: "invalid priority",
		},
		{
			name:       "empty tag",
			args:       []string{"create", "T", "--tags", "auth,"},
			wantStderr: "empty tag",
		},
		{
			name:       "unknown dep",
			args:       []string{"create", "T", "--dep", "ffff"},
			wantStderr: "ticket not found",
		},
	} {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := cli.NewCLI(t)
			c.MustRun("init")

			stderr := c.MustFail(tt.args...)
			cli.AssertContains(t, stderr, tt.wantStderr)
		})
	}
}

func Test_Create_Body_From_Stdin(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.MustRun("init")

	stdout, stderr, code := c.RunWithInput("piped body\nsecond line\n", "create", "Piped", "-d", "-")
	if code != 0 {
		t.Fatalf("create failed: %s", stderr)
	}

	id := strings.TrimSpace(stdout)
	content := c.ReadTicket(id)
	cli.AssertContains(t, content, "piped body\nsecond line")
}

func Test_Create_Requires_Init(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	stderr := c.MustFail("create", "No dir yet")
	cli.AssertContains(t, stderr, "tk init")
}
