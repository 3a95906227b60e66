package store

import (
	"errors"
	"io/fs"
	"os"
	"sort"
	"strings"

	"tk/internal/ticket"
)

// Resolve expands a user-supplied identifier prefix to a full ticket
// ID. The "tk-" prefix is optional on input. An exact match wins even
// when longer identifiers share the prefix; otherwise a unique prefix
// match resolves, multiple matches are ambiguous, and zero matches is
// not found. The search spans both the active directory and the
// archive since they share one identifier namespace.
func (s *Store) Resolve(prefix string) (string, error) {
	normalized := prefix
	if !strings.HasPrefix(normalized, ticket.IDPrefix) {
		normalized = ticket.IDPrefix + normalized
	}

	ids, err := s.listIDs()
	if err != nil {
		return "", err
	}

	var matches []string

	for _, id := range ids {
		if id == normalized {
			return id, nil
		}

		if strings.HasPrefix(id, normalized) {
			matches = append(matches, id)
		}
	}

	switch len(matches) {
	case 0:
		return "", &NotFoundError{Prefix: prefix}
	case 1:
		return matches[0], nil
	default:
		sort.Strings(matches)

		return "", &AmbiguousPrefixError{Prefix: prefix, Matches: matches}
	}
}

func (s *Store) listIDs() ([]string, error) {
	if !s.Initialized() {
		return nil, ErrNotInitialized
	}

	var ids []string

	for _, dir := range []string{s.dir, s.ArchiveDir()} {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}

			return nil, err
		}

		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ticketExt) {
				continue
			}

			ids = append(ids, strings.TrimSuffix(entry.Name(), ticketExt))
		}
	}

	return ids, nil
}
