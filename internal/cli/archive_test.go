package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"tk/internal/cli"
)

func Test_Archive_Roundtrip(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.MustRun("init")

	id := c.MustRun("create", "Done work")
	c.MustRun("close", id)

	before := c.ReadTicket(id)

	c.MustRun("archive", id)

	archivePath := filepath.Join(c.TicketDir(), "archive", id+".md")

	after, err := os.ReadFile(archivePath)
	if err != nil {
		t.Fatalf("archived file missing: %v", err)
	}

	if string(after) != before {
		t.Error("archive changed file content")
	}

	// Still addressable while archived.
	cli.AssertContains(t, c.MustRun("show", id), "id: "+id)

	c.MustRun("unarchive", id)
	cli.AssertContains(t, c.MustRun("ls"), id)
}

func Test_Archive_Refuses_Open_Ticket(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.MustRun("init")

	id := c.MustRun("create", "Still open")

	stderr := c.MustFail("archive", id)
	cli.AssertContains(t, stderr, "refusing to archive")

	c.MustRun("archive", id, "--force")
}

func Test_Archive_Warns_About_Dependents(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.MustRun("init")

	base := c.MustRun("create", "Base")
	dependent := c.MustRun("create", "Dependent", "--dep", base)
	c.MustRun("close", base)

	stdout, stderr, code := c.Run("archive", base)
	if code != 1 {
		t.Errorf("archiving a depended-on ticket should warn with exit 1, got %d", code)
	}

	cli.AssertContains(t, stdout, "archived "+base)
	cli.AssertContains(t, stderr, dependent)

	// The closed-but-archived dependency still satisfies readiness.
	cli.AssertContains(t, c.MustRun("ready"), dependent)
}

func Test_Unarchive_Requires_Archived_Ticket(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.MustRun("init")

	id := c.MustRun("create", "Never archived")

	stderr := c.MustFail("unarchive", id)
	cli.AssertContains(t, stderr, "not archived")
}

func Test_Delete_Refuses_With_Dependents(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.MustRun("init")

	base := c.MustRun("create", "Base")
	dependent := c.MustRun("create", "Dependent", "--dep", base)

	stderr := c.MustFail("delete", base)
	cli.AssertContains(t, stderr, dependent)
	cli.AssertContains(t, stderr, "--force")
}

func Test_Delete_Without_Dependents(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.MustRun("init")

	id := c.MustRun("create", "Disposable")
	c.MustRun("delete", id)

	stderr := c.MustFail("show", id)
	cli.AssertContains(t, stderr, "ticket not found")
}
