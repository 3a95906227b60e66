package store

import (
	"errors"
	"fmt"
	"strings"
)

// Error variables for repository operations.
var (
	// ErrCollisionExhausted means no free identifier was found after the
	// widening ladder (4, 6, 8 hex characters) ran out of attempts.
	ErrCollisionExhausted = errors.New("no free ticket ID after widening retries")

	ErrNotInitialized  = errors.New("ticket directory does not exist (run tk init)")
	ErrNotArchived     = errors.New("ticket is not archived")
	ErrAlreadyArchived = errors.New("ticket is already archived")
)

// FileError is one malformed or unreadable ticket file.
type FileError struct {
	Path string
	Err  error
}

// LoadError aggregates every per-file failure from a single LoadAll pass.
// The whole load fails, but every bad file is reported at once.
type LoadError struct {
	Files []FileError
}

func (e *LoadError) Error() string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "%d ticket file(s) failed to load:", len(e.Files))

	for _, fe := range e.Files {
		fmt.Fprintf(&builder, "\n  %s: %v", fe.Path, fe.Err)
	}

	return builder.String()
}

// NotFoundError means no identifier starts with the given prefix.
type NotFoundError struct {
	Prefix string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("ticket not found: %s", e.Prefix)
}

// AmbiguousPrefixError means more than one identifier starts with the
// given prefix. Matches is sorted so the caller can disambiguate.
type AmbiguousPrefixError struct {
	Prefix  string
	Matches []string
}

func (e *AmbiguousPrefixError) Error() string {
	return fmt.Sprintf("ambiguous prefix %q matches: %s", e.Prefix, strings.Join(e.Matches, ", "))
}
