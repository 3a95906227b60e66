// Package ticket defines the ticket data model, the identifier generator,
// and the frontmatter codec for the on-disk ticket format.
package ticket

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Ticket represents a single unit of trackable work.
type Ticket struct {
	ID       string
	Title    string
	Body     string
	Status   string
	Type     string
	Priority int
	Created  time.Time
	Deps     []string
	Tags     []string

	// Archived reflects storage location (archive subdirectory), not file
	// contents. It is never serialized.
	Archived bool
}

// Collection maps ticket IDs to tickets. It is loaded fresh per invocation;
// nothing caches it across processes.
type Collection map[string]*Ticket

// IDs returns all ticket IDs in sorted order.
func (c Collection) IDs() []string {
	ids := make([]string, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}

	slices.Sort(ids)

	return ids
}

// validTypes are the allowed ticket types.
var validTypes = []string{
	TypeTask, TypeBug, TypeFeature, TypeEpic, TypeChore,
	TypeDocs, TypeRefactor, TypeTest,
}

// typeAliases maps accepted input spellings to canonical types.
// Aliases are normalized on input and never stored.
var typeAliases = map[string]string{
	"feat": TypeFeature,
	"fix":  TypeBug,
}

// Priority bounds. 1 is the most urgent.
const (
	MinPriority     = 1
	MaxPriority     = 3
	DefaultPriority = 2
)

// IsValidStatus checks if the status is in the closed set.
func IsValidStatus(status string) bool {
	return status == StatusOpen || status == StatusClosed
}

// IsValidType checks if the type is a canonical ticket type.
func IsValidType(ticketType string) bool {
	return slices.Contains(validTypes, ticketType)
}

// NormalizeType resolves aliases (feat, fix) to canonical types.
// Returns ("", false) if the input is not a valid type or alias.
func NormalizeType(input string) (string, bool) {
	lowered := strings.ToLower(input)

	if canonical, ok := typeAliases[lowered]; ok {
		return canonical, true
	}

	if IsValidType(lowered) {
		return lowered, true
	}

	return "", false
}

// IsValidPriority checks if priority is in valid range.
func IsValidPriority(p int) bool {
	return p >= MinPriority && p <= MaxPriority
}

// Open reports whether the ticket is open.
func (t *Ticket) Open() bool {
	return t.Status == StatusOpen
}

// Closed reports whether the ticket is closed.
func (t *Ticket) Closed() bool {
	return t.Status == StatusClosed
}

// HasTag reports whether the ticket carries the given tag.
func (t *Ticket) HasTag(tag string) bool {
	return slices.Contains(t.Tags, tag)
}

// AddDep adds a blocking dependency edge to dep.
// Rejects self-dependencies and duplicates.
func (t *Ticket) AddDep(dep string) error {
	if dep == t.ID {
		return fmt.Errorf("%w: %s", ErrSelfDependency, dep)
	}

	if slices.Contains(t.Deps, dep) {
		return fmt.Errorf("%w: %s", ErrDuplicateDep, dep)
	}

	t.Deps = append(t.Deps, dep)

	return nil
}

// RemoveDep removes a blocking dependency edge to dep.
func (t *Ticket) RemoveDep(dep string) error {
	idx := slices.Index(t.Deps, dep)
	if idx == -1 {
		return fmt.Errorf("%w: %s", ErrDepNotFound, dep)
	}

	t.Deps = slices.Delete(t.Deps, idx, idx+1)
	if len(t.Deps) == 0 {
		t.Deps = nil
	}

	return nil
}

// IDPrefix is the fixed prefix of every generated ticket ID.
const IDPrefix = "tk-"

// DefaultIDWidth is the number of hex characters after the prefix.
// The repository widens this on repeated collisions.
const DefaultIDWidth = 4

// randomBytes is how much entropy is drawn per generated ID.
const randomBytes = 8

// GenerateID creates a random ticket ID like "tk-a1b2".
// Each call draws fresh entropy from crypto/rand, hashes it, and truncates
// the hex digest to width characters. The generator never checks for
// collisions; that is the repository's job.
func GenerateID(width int) string {
	if width < DefaultIDWidth {
		width = DefaultIDWidth
	}

	buf := make([]byte, randomBytes)
	_, _ = rand.Read(buf) // never fails per crypto/rand docs

	sum := sha256.Sum256(buf)

	return IDPrefix + hex.EncodeToString(sum[:])[:width]
}

// New builds an open ticket with a stamped creation time.
// The ID is left empty; the repository assigns one on create.
func New(title, ticketType string, priority int, tags []string) *Ticket {
	return &Ticket{
		Title:    title,
		Status:   StatusOpen,
		Type:     ticketType,
		Priority: priority,
		Created:  time.Now().UTC().Truncate(time.Second),
		Tags:     tags,
	}
}
