package cli_test

import (
	"encoding/json"
	"strings"
	"testing"

	"tk/internal/cli"
)

func Test_Ls_Lists_By_Priority(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.MustRun("init")

	low := c.MustRun("create", "Low", "-p", "3")
	high := c.MustRun("create", "High", "-p", "1")

	out := c.MustRun("ls")

	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d:\n%s", len(lines), out)
	}

	cli.AssertContains(t, lines[0], high)
	cli.AssertContains(t, lines[1], low)
}

func Test_Ls_Filters(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.MustRun("init")

	bug := c.MustRun("create", "A bug", "-t", "bug", "--tags", "ci")
	task := c.MustRun("create", "A task")
	closed := c.MustRun("create", "Done already")
	c.MustRun("close", closed)

	out := c.MustRun("ls", "--type", "bug")
	cli.AssertContains(t, out, bug)
	cli.AssertNotContains(t, out, task)

	out = c.MustRun("ls", "--status", "closed")
	cli.AssertContains(t, out, closed)
	cli.AssertNotContains(t, out, bug)

	out = c.MustRun("ls", "--tag", "ci")
	cli.AssertContains(t, out, bug)
	cli.AssertNotContains(t, out, task)
}

func Test_Ls_Hides_Archived_Unless_Asked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.MustRun("init")

	id := c.MustRun("create", "Old work")
	c.MustRun("close", id)
	c.MustRun("archive", id)

	out, _, code := c.Run("ls")
	if code != 0 {
		t.Fatalf("ls failed: %d", code)
	}

	cli.AssertNotContains(t, out, id)

	out = c.MustRun("ls", "--all")
	cli.AssertContains(t, out, id)
	cli.AssertContains(t, out, "(archived)")
}

func Test_Ls_Json_Output(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.MustRun("init")
	id := c.MustRun("create", "Machine readable", "--tags", "x")

	out := c.MustRun("--json", "ls")

	var tickets []struct {
		ID       string   `json:"id"`
		Title    string   `json:"title"`
		Status   string   `json:"status"`
		Priority int      `json:"priority"`
		Deps     []string `json:"deps"`
		Tags     []string `json:"tags"`
	}

	if err := json.Unmarshal([]byte(out), &tickets); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}

	if len(tickets) != 1 {
		t.Fatalf("expected 1 ticket, got %d", len(tickets))
	}

	got := tickets[0]
	if got.ID != id || got.Title != "Machine readable" || got.Status != "open" || got.Priority != 2 {
		t.Errorf("unexpected ticket: %+v", got)
	}

	// Always arrays, never null.
	if got.Deps == nil || got.Tags == nil {
		t.Errorf("deps/tags should be arrays: %+v", got)
	}
}

func Test_Ls_Rejects_Bad_Filters(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.MustRun("init")

	stderr := c.MustFail("ls", "--status", "in-progress")
	cli.AssertContains(t, stderr, "invalid status")

	stderr = c.MustFail("ls", "--type", "story")
	cli.AssertContains(t, stderr, "invalid type")
}
