// Package store persists tickets as markdown files in a flat directory.
//
// Every ticket is one file named <id>.md. Archived tickets live in an
// archive/ subdirectory with byte-identical content; archival is purely
// a move. Writes go through a temp-file rename so a crash never leaves
// a half-written ticket behind. There is no locking and no index: the
// directory is the database, and concurrent writers race with
// last-write-wins semantics.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/natefinch/atomic"

	"tk/internal/ticket"
)

const (
	ticketExt  = ".md"
	ticketPerm = 0o600
	idAttempts = 100
	maxIDWidth = 8
	widthStep  = 2
)

// Store is a ticket repository rooted at a single directory.
type Store struct {
	dir string
}

// New returns a Store for the given ticket directory. The directory
// does not have to exist yet; Init creates it.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the active ticket directory.
func (s *Store) Dir() string {
	return s.dir
}

// ArchiveDir returns the archive subdirectory.
func (s *Store) ArchiveDir() string {
	return filepath.Join(s.dir, ticket.ArchiveDirName)
}

// Init creates the ticket directory and its archive subdirectory.
// It is idempotent.
func (s *Store) Init() error {
	if err := os.MkdirAll(s.ArchiveDir(), 0o755); err != nil {
		return fmt.Errorf("creating ticket directory: %w", err)
	}

	return nil
}

// Initialized reports whether the ticket directory exists.
func (s *Store) Initialized() bool {
	info, err := os.Stat(s.dir)

	return err == nil && info.IsDir()
}

// Path returns the file path of an active ticket.
func (s *Store) Path(id string) string {
	return filepath.Join(s.dir, id+ticketExt)
}

// ArchivePath returns the file path of an archived ticket.
func (s *Store) ArchivePath(id string) string {
	return filepath.Join(s.ArchiveDir(), id+ticketExt)
}

// Exists reports whether an identifier is taken, in either the active
// directory or the archive. The two share one namespace.
func (s *Store) Exists(id string) bool {
	if _, err := os.Stat(s.Path(id)); err == nil {
		return true
	}

	if _, err := os.Stat(s.ArchivePath(id)); err == nil {
		return true
	}

	return false
}

// LoadAll reads every ticket in the active directory, plus the archive
// when includeArchived is set. A single malformed file fails the whole
// load, but all failures are collected into one *LoadError so the
// operator sees the complete damage report.
func (s *Store) LoadAll(includeArchived bool) (ticket.Collection, error) {
	if !s.Initialized() {
		return nil, ErrNotInitialized
	}

	tickets := make(ticket.Collection)

	var loadErr LoadError

	s.loadDir(s.dir, false, tickets, &loadErr)

	if includeArchived {
		s.loadDir(s.ArchiveDir(), true, tickets, &loadErr)
	}

	if len(loadErr.Files) > 0 {
		return nil, &loadErr
	}

	return tickets, nil
}

func (s *Store) loadDir(dir string, archived bool, tickets ticket.Collection, loadErr *LoadError) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return
		}

		loadErr.Files = append(loadErr.Files, FileError{Path: dir, Err: err})

		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ticketExt) {
			continue
		}

		path := filepath.Join(dir, entry.Name())

		t, err := s.loadFile(path, archived)
		if err != nil {
			loadErr.Files = append(loadErr.Files, FileError{Path: path, Err: err})

			continue
		}

		tickets[t.ID] = t
	}
}

func (s *Store) loadFile(path string, archived bool) (*ticket.Ticket, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	t, err := ticket.Decode(data)
	if err != nil {
		return nil, err
	}

	want := strings.TrimSuffix(filepath.Base(path), ticketExt)
	if t.ID != want {
		return nil, fmt.Errorf("filename says %s but frontmatter says %s", want, t.ID)
	}

	t.Archived = archived

	return t, nil
}

// Load reads one ticket by exact identifier, checking the active
// directory first and then the archive.
func (s *Store) Load(id string) (*ticket.Ticket, error) {
	t, err := s.loadFile(s.Path(id), false)
	if err == nil {
		return t, nil
	}

	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	t, err = s.loadFile(s.ArchivePath(id), true)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Prefix: id}
		}

		return nil, err
	}

	return t, nil
}

// Save writes a ticket back to disk atomically. Archived tickets are
// written into the archive subdirectory.
func (s *Store) Save(t *ticket.Ticket) error {
	path := s.Path(t.ID)
	if t.Archived {
		path = s.ArchivePath(t.ID)
	}

	data := ticket.Encode(t)

	if err := atomic.WriteFile(path, strings.NewReader(string(data))); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	if err := os.Chmod(path, ticketPerm); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", path, err)
	}

	return nil
}

// Create assigns a fresh identifier to the ticket and writes it to
// disk. Identifier generation is blind so the repository owns the
// collision policy: it retries at the starting width, then widens the
// suffix and retries again until the ladder is exhausted.
func (s *Store) Create(t *ticket.Ticket) error {
	if !s.Initialized() {
		return ErrNotInitialized
	}

	for width := ticket.DefaultIDWidth; width <= maxIDWidth; width += widthStep {
		for attempt := 0; attempt < idAttempts; attempt++ {
			id := ticket.GenerateID(width)
			if s.Exists(id) {
				continue
			}

			t.ID = id

			return s.Save(t)
		}
	}

	return ErrCollisionExhausted
}

// Archive moves a ticket into the archive subdirectory. The file bytes
// do not change; archived-ness lives in the location, not the content.
func (s *Store) Archive(id string) error {
	if _, err := os.Stat(s.ArchivePath(id)); err == nil {
		return ErrAlreadyArchived
	}

	if _, err := os.Stat(s.Path(id)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &NotFoundError{Prefix: id}
		}

		return err
	}

	if err := os.MkdirAll(s.ArchiveDir(), 0o755); err != nil {
		return fmt.Errorf("creating archive directory: %w", err)
	}

	if err := os.Rename(s.Path(id), s.ArchivePath(id)); err != nil {
		return fmt.Errorf("archiving %s: %w", id, err)
	}

	return nil
}

// Unarchive moves a ticket back into the active directory.
func (s *Store) Unarchive(id string) error {
	if _, err := os.Stat(s.ArchivePath(id)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if _, statErr := os.Stat(s.Path(id)); statErr == nil {
				return ErrNotArchived
			}

			return &NotFoundError{Prefix: id}
		}

		return err
	}

	if err := os.Rename(s.ArchivePath(id), s.Path(id)); err != nil {
		return fmt.Errorf("unarchiving %s: %w", id, err)
	}

	return nil
}

// Delete removes a ticket file permanently, wherever it lives.
func (s *Store) Delete(id string) error {
	err := os.Remove(s.Path(id))
	if err == nil {
		return nil
	}

	if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	err = os.Remove(s.ArchivePath(id))
	if err == nil {
		return nil
	}

	if errors.Is(err, fs.ErrNotExist) {
		return &NotFoundError{Prefix: id}
	}

	return err
}

// Dependents returns the IDs of tickets that list id in their deps,
// sorted. Used to warn before deleting a ticket others depend on.
func Dependents(tickets ticket.Collection, id string) []string {
	var out []string

	for _, t := range tickets {
		for _, dep := range t.Deps {
			if dep == id {
				out = append(out, t.ID)

				break
			}
		}
	}

	sort.Strings(out)

	return out
}
