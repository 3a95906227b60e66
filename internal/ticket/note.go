package ticket

import "time"

// noteTimeLayout is the timestamp format inside note lines.
const noteTimeLayout = "2006-01-02 15:04"

// Note is a timestamped, attributed line appended to a ticket body.
type Note struct {
	Timestamp time.Time
	Author    string
	Content   string
}

// NewNote builds a note stamped with the current time. The author comes
// from $USER in env; "anonymous" when unset.
func NewNote(content string, env map[string]string) Note {
	author := env["USER"]
	if author == "" {
		author = "anonymous"
	}

	return Note{
		Timestamp: time.Now().UTC(),
		Author:    author,
		Content:   content,
	}
}

// Format renders the note as a single body line:
//
//	[2024-03-01 14:02 alice] text
func (n Note) Format() string {
	return "[" + n.Timestamp.UTC().Format(noteTimeLayout) + " " + n.Author + "] " + n.Content
}

// AppendNote grows the ticket body with a formatted note line. Existing
// body lines are never rewritten; notes are append-only.
func (t *Ticket) AppendNote(n Note) {
	line := n.Format()

	if t.Body == "" {
		t.Body = line

		return
	}

	t.Body = t.Body + "\n\n" + line
}
