package ticket

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// MaxFrontmatterLines is the maximum number of lines allowed in frontmatter.
// If the closing delimiter is not found within this limit, decoding fails.
const MaxFrontmatterLines = 100

// frontmatter is the wire form of a ticket's metadata block. Field order
// here is the canonical on-disk key order; the YAML encoder follows it,
// which is what makes Encode deterministic.
type frontmatter struct {
	ID       string    `yaml:"id"`
	Status   string    `yaml:"status"`
	Type     string    `yaml:"type"`
	Priority int       `yaml:"priority"`
	Created  time.Time `yaml:"created"`
	Deps     []string  `yaml:"deps,omitempty"`
	Tags     []string  `yaml:"tags,omitempty"`
}

// Encode serializes a ticket to its on-disk document form.
// Output is byte-identical across calls for the same ticket value, so
// no-op load-and-resave cycles never produce spurious diffs.
func Encode(t *Ticket) []byte {
	fm := frontmatter{
		ID:       t.ID,
		Status:   t.Status,
		Type:     t.Type,
		Priority: t.Priority,
		Created:  t.Created.UTC().Truncate(time.Second),
		Deps:     t.Deps,
		Tags:     t.Tags,
	}

	var buf bytes.Buffer

	buf.WriteString(frontmatterDelimiter + "\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	_ = enc.Encode(&fm) // plain struct of scalars and string lists cannot fail
	_ = enc.Close()

	buf.WriteString(frontmatterDelimiter + "\n")
	buf.WriteString("\n# " + t.Title + "\n")

	if t.Body != "" {
		buf.WriteString("\n")
		buf.WriteString(t.Body)
		buf.WriteString("\n")
	}

	return buf.Bytes()
}

// Decode parses an on-disk ticket document.
// The schema is strict: unknown frontmatter keys, missing required keys,
// and a missing title heading all fail with ErrMalformedDocument; values
// outside the status/type/priority closed sets fail with ErrInvalidEnum.
// Missing optional keys take defaults (priority 2, deps/tags empty).
func Decode(data []byte) (*Ticket, error) {
	block, body, err := splitFrontmatter(data)
	if err != nil {
		return nil, err
	}

	fm := frontmatter{Priority: DefaultPriority}

	dec := yaml.NewDecoder(bytes.NewReader(block))
	dec.KnownFields(true)

	decodeErr := dec.Decode(&fm)
	if decodeErr != nil && !errors.Is(decodeErr, io.EOF) {
		return nil, fmt.Errorf("%w: %s", ErrMalformedDocument, yamlErrDetail(decodeErr))
	}

	validateErr := validateFrontmatter(&fm)
	if validateErr != nil {
		return nil, validateErr
	}

	title, rest, titleErr := ExtractTitle(string(body))
	if titleErr != nil {
		return nil, titleErr
	}

	return &Ticket{
		ID:       fm.ID,
		Title:    title,
		Body:     rest,
		Status:   fm.Status,
		Type:     fm.Type,
		Priority: fm.Priority,
		Created:  fm.Created.UTC(),
		Deps:     fm.Deps,
		Tags:     fm.Tags,
	}, nil
}

// splitFrontmatter separates the delimited metadata block from the body.
func splitFrontmatter(data []byte) (block, body []byte, err error) {
	delim := []byte(frontmatterDelimiter)

	line, rest, _ := bytes.Cut(data, []byte("\n"))
	if !bytes.Equal(trimCR(line), delim) {
		return nil, nil, fmt.Errorf("%w: missing opening delimiter", ErrMalformedDocument)
	}

	start := rest
	lineCount := 0

	for len(rest) > 0 {
		line, next, found := bytes.Cut(rest, []byte("\n"))

		if bytes.Equal(trimCR(line), delim) {
			return start[:len(start)-len(rest)], next, nil
		}

		lineCount++
		if lineCount > MaxFrontmatterLines {
			return nil, nil, fmt.Errorf("%w: frontmatter exceeds %d lines", ErrMalformedDocument, MaxFrontmatterLines)
		}

		if !found {
			break
		}

		rest = next
	}

	return nil, nil, fmt.Errorf("%w: missing closing delimiter", ErrMalformedDocument)
}

func validateFrontmatter(fm *frontmatter) error {
	if fm.ID == "" {
		return fmt.Errorf("%w: missing key: id", ErrMalformedDocument)
	}

	if fm.Status == "" {
		return fmt.Errorf("%w: missing key: status", ErrMalformedDocument)
	}

	if fm.Type == "" {
		return fmt.Errorf("%w: missing key: type", ErrMalformedDocument)
	}

	if fm.Created.IsZero() {
		return fmt.Errorf("%w: missing key: created", ErrMalformedDocument)
	}

	if !IsValidStatus(fm.Status) {
		return fmt.Errorf("%w: status %q", ErrInvalidEnum, fm.Status)
	}

	if !IsValidType(fm.Type) {
		return fmt.Errorf("%w: type %q", ErrInvalidEnum, fm.Type)
	}

	if !IsValidPriority(fm.Priority) {
		return fmt.Errorf("%w: priority %d", ErrInvalidEnum, fm.Priority)
	}

	return nil
}

// ExtractTitle splits a document body into the title from its leading
// "# ..." heading and the remaining body text. Fails with
// ErrMalformedDocument if the first non-blank line is not a heading.
func ExtractTitle(input string) (title, body string, err error) {
	rest := input

	for rest != "" {
		line, next, _ := strings.Cut(rest, "\n")
		trimmed := strings.TrimRight(line, "\r")

		if strings.TrimSpace(trimmed) == "" {
			rest = next

			continue
		}

		after, ok := strings.CutPrefix(trimmed, "# ")
		if !ok {
			return "", "", fmt.Errorf("%w: first body line must be a title heading", ErrMalformedDocument)
		}

		title = strings.TrimSpace(after)
		if title == "" {
			return "", "", fmt.Errorf("%w: empty title heading", ErrMalformedDocument)
		}

		return title, normalizeBody(next), nil
	}

	return "", "", fmt.Errorf("%w: no title heading", ErrMalformedDocument)
}

// normalizeBody strips the blank separator after the title and trailing
// newlines so encode/decode round-trips are stable.
func normalizeBody(body string) string {
	body = strings.TrimLeft(body, "\n")

	return strings.TrimRight(body, "\n")
}

func trimCR(line []byte) []byte {
	return bytes.TrimSuffix(line, []byte("\r"))
}

// yamlErrDetail flattens yaml.v3 error text to a single line.
func yamlErrDetail(err error) string {
	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) {
		return strings.Join(typeErr.Errors, "; ")
	}

	return strings.ReplaceAll(err.Error(), "\n", "; ")
}
