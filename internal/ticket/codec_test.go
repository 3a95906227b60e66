package ticket_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tk/internal/ticket"
)

func sampleTicket() *ticket.Ticket {
	return &ticket.Ticket{
		ID:       "tk-a1b2",
		Title:    "Fix the flaky login test",
		Body:     "It fails roughly once in twenty runs.",
		Status:   ticket.StatusOpen,
		Type:     ticket.TypeBug,
		Priority: 1,
		Created:  time.Date(2024, 3, 1, 14, 2, 5, 0, time.UTC),
		Deps:     []string{"tk-ffee"},
		Tags:     []string{"auth", "ci"},
	}
}

func Test_Encode_Produces_Canonical_Document(t *testing.T) {
	t.Parallel()

	got := string(ticket.Encode(sampleTicket()))

	want := `---
id: tk-a1b2
status: open
type: bug
priority: 1
created: 2024-03-01T14:02:05Z
deps:
  - tk-ffee
tags:
  - auth
  - ci
---

# Fix the flaky login test

It fails roughly once in twenty runs.
`

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("encoded document mismatch (-want +got):\n%s", diff)
	}
}

func Test_Encode_Is_Deterministic(t *testing.T) {
	t.Parallel()

	first := ticket.Encode(sampleTicket())
	second := ticket.Encode(sampleTicket())

	assert.Equal(t, string(first), string(second))
}

func Test_Encode_Omits_Empty_Deps_And_Tags(t *testing.T) {
	t.Parallel()

	tkt := sampleTicket()
	tkt.Deps = nil
	tkt.Tags = nil
	tkt.Body = ""

	got := string(ticket.Encode(tkt))

	assert.NotContains(t, got, "deps:")
	assert.NotContains(t, got, "tags:")
	assert.True(t, strings.HasSuffix(got, "# Fix the flaky login test\n"))
}

func Test_Decode_Round_Trips_Encode(t *testing.T) {
	t.Parallel()

	original := sampleTicket()

	decoded, err := ticket.Decode(ticket.Encode(original))
	require.NoError(t, err)

	if diff := cmp.Diff(original, decoded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func Test_Decode_Resave_Is_Byte_Identical(t *testing.T) {
	t.Parallel()

	first := ticket.Encode(sampleTicket())

	decoded, err := ticket.Decode(first)
	require.NoError(t, err)

	second := ticket.Encode(decoded)

	assert.Equal(t, string(first), string(second))
}

func Test_Decode_Defaults_Missing_Priority(t *testing.T) {
	t.Parallel()

	doc := `---
id: tk-a1b2
status: open
type: task
created: 2024-03-01T14:02:05Z
---

# Something
`

	decoded, err := ticket.Decode([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, ticket.DefaultPriority, decoded.Priority)
	assert.Nil(t, decoded.Deps)
	assert.Nil(t, decoded.Tags)
}

func Test_Decode_Rejects_Broken_Documents(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name    string
		doc     string
		wantErr error
	}{
		{
			name:    "missing opening delimiter",
			doc:     "id: tk-a1b2\n",
			wantErr: ticket.ErrMalformedDocument,
		},
		{
			name:    "unclosed frontmatter",
			doc:     "---\nid: tk-a1b2\n",
			wantErr: ticket.ErrMalformedDocument,
		},
		{
			name:    "unknown key",
			doc:     "---\nid: tk-a1b2\nstatus: open\ntype: task\ncreated: 2024-03-01T14:02:05Z\nassignee: bob\n---\n\n# T\n",
			wantErr: ticket.ErrMalformedDocument,
		},
		{
			name:    "missing id",
			doc:     "---\nstatus: open\ntype: task\ncreated: 2024-03-01T14:02:05Z\n---\n\n# T\n",
			wantErr: ticket.ErrMalformedDocument,
		},
		{
			name:    "missing created",
			doc:     "---\nid: tk-a1b2\nstatus: open\ntype: task\n---\n\n# T\n",
			wantErr: ticket.ErrMalformedDocument,
		},
		{
			name:    "empty frontmatter",
			doc:     "---\n---\n\n# T\n",
			wantErr: ticket.ErrMalformedDocument,
		},
		{
			name:    "missing title heading",
			doc:     "---\nid: tk-a1b2\nstatus: open\ntype: task\ncreated: 2024-03-01T14:02:05Z\n---\n\nplain text\n",
			wantErr: ticket.ErrMalformedDocument,
		},
		{
			name:    "unknown status",
			doc:     "---\nid: tk-a1b2\nstatus: in-progress\ntype: task\ncreated: 2024-03-01T14:02:05Z\n---\n\n# T\n",
			wantErr: ticket.ErrInvalidEnum,
		},
		{
			name:    "unknown type",
			doc:     "---\nid: tk-a1b2\nstatus: open\ntype: story\ncreated: 2024-03-01T14:02:05Z\n---\n\n# T\n",
			wantErr: ticket.ErrInvalidEnum,
		},
		{
			name:    "alias type not accepted on disk",
			doc:     "---\nid: tk-a1b2\nstatus: open\ntype: feat\ncreated: 2024-03-01T14:02:05Z\n---\n\n# T\n",
			wantErr: ticket.ErrInvalidEnum,
		},
		{
			name:    "priority out of range",
			doc:     "---\nid: tk-a1b2\nstatus: open\ntype: task\npriority: 4\ncreated: 2024-03-01T14:02:05Z\n---\n\n# T\n",
			wantErr: ticket.ErrInvalidEnum,
		},
		{
			name:    "priority zero",
			doc:     "---\nid: tk-a1b2\nstatus: open\ntype: task\npriority: 0\ncreated: 2024-03-01T14:02:05Z\n---\n\n# T\n",
			wantErr: ticket.ErrInvalidEnum,
		},
	} {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ticket.Decode([]byte(tt.doc))
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func Test_Decode_Accepts_CRLF_Line_Endings(t *testing.T) {
	t.Parallel()

	doc := "---\r\nid: tk-a1b2\r\nstatus: open\r\ntype: task\r\ncreated: 2024-03-01T14:02:05Z\r\n---\r\n\r\n# Windows file\r\n"

	decoded, err := ticket.Decode([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, "Windows file", decoded.Title)
}

func Test_Decode_Caps_Frontmatter_Size(t *testing.T) {
	t.Parallel()

	doc := "---\n" + strings.Repeat("# filler\n", ticket.MaxFrontmatterLines+1) + "---\n\n# T\n"

	_, err := ticket.Decode([]byte(doc))
	require.ErrorIs(t, err, ticket.ErrMalformedDocument)
}

func Test_ExtractTitle_Handles_Leading_Blank_Lines(t *testing.T) {
	t.Parallel()

	title, body, err := ticket.ExtractTitle("\n\n# A title\n\nbody text\n")
	require.NoError(t, err)

	assert.Equal(t, "A title", title)
	assert.Equal(t, "body text", body)
}
