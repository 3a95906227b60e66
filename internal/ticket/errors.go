package ticket

import "errors"

// Status constants. "in progress" is intentionally not a stored state;
// collaborator tooling represents it externally.
const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Type constants.
const (
	TypeTask     = "task"
	TypeBug      = "bug"
	TypeFeature  = "feature"
	TypeEpic     = "epic"
	TypeChore    = "chore"
	TypeDocs     = "docs"
	TypeRefactor = "refactor"
	TypeTest     = "test"
)

// Frontmatter delimiter.
const frontmatterDelimiter = "---"

// Decode error taxonomy. Wrapped errors carry detail; callers match with
// errors.Is.
var (
	// ErrMalformedDocument marks structural failures: missing or unclosed
	// delimiters, unknown frontmatter keys, missing required keys, absent
	// title heading.
	ErrMalformedDocument = errors.New("malformed ticket document")

	// ErrInvalidEnum marks values outside their closed sets: status, type,
	// priority range.
	ErrInvalidEnum = errors.New("invalid enum value")
)

// Error variables for ticket mutation and config handling.
var (
	ErrSelfDependency     = errors.New("ticket cannot depend on itself")
	ErrDuplicateDep       = errors.New("dependency already exists")
	ErrDepNotFound        = errors.New("dependency not found")
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigInvalid      = errors.New("invalid config file")
	ErrTicketDirEmpty     = errors.New("ticket_dir cannot be empty")
	ErrFlagRequiresArg    = errors.New("flag requires an argument")
	ErrUnknownFlag        = errors.New("unknown flag")
	ErrNoEditorFound      = errors.New("no editor found (set config.editor, $EDITOR, or install vi/nano)")
	ErrEditorFailed       = errors.New("editor failed")
	ErrEmptyNote          = errors.New("empty note")
)
