package node

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// uuidV7FilenameRE matches lowercase UUIDv7 filenames with a .md extension.
var uuidV7FilenameRE = regexp.MustCompile(
	`^[0-9a-f]{8}-[0-9a-f]{4}-7[0-9a-f]{3}-[0-9a-f]{4}-[0-9a-f]{12}\.md$`,
)

// IsUUIDFilename reports whether filename is a lowercase UUIDv7 .md filename.
func IsUUIDFilename(filename string) bool {
	return uuidV7FilenameRE.MatchString(filename)
}

// frontmatterRE matches a complete YAML frontmatter block at the start of a
// file. The closing "---" must be unindented; "---" inside YAML block
// scalars is always indented.
var frontmatterRE = regexp.MustCompile(`(?s)^---\r?\n(.*?)\r?\n---\r?\n`)

// ErrNoFrontmatter is returned when a file does not start with a
// frontmatter block.
var ErrNoFrontmatter = errors.New("no valid frontmatter block found")

// ParseFrontmatter splits a node file's content into its Frontmatter and
// body.
func ParseFrontmatter(content []byte) (Frontmatter, []byte, error) {
	loc := frontmatterRE.FindSubmatchIndex(content)
	if loc == nil {
		return Frontmatter{}, nil, ErrNoFrontmatter
	}

	var fm Frontmatter
	if err := yaml.Unmarshal(content[loc[2]:loc[3]], &fm); err != nil {
		return Frontmatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	return fm, append([]byte(nil), content[loc[1]:]...), nil
}

// SerializeFrontmatter renders fm as a "---" delimited block with yaml.v3,
// in field order id, title, slug, byline, synopsis, created, updated.
// Empty optional fields are omitted.
func SerializeFrontmatter(fm Frontmatter) ([]byte, error) {
	data, err := yaml.Marshal(fm)
	if err != nil {
		return nil, fmt.Errorf("serialize frontmatter: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(data)
	buf.WriteString("---\n")
	return buf.Bytes(), nil
}

// NowUTC returns the current UTC time formatted as RFC3339 with second-level
// precision and a "Z" suffix, e.g. "2006-01-02T15:04:05Z".
func NowUTC() string {
	return time.Now().UTC().Truncate(time.Second).Format(time.RFC3339)
}

// New returns the filename and content of a fresh node file with a UUIDv7
// identity and the given title and body.
func New(title, body string) (string, []byte, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", nil, fmt.Errorf("generating node id: %w", err)
	}
	now := NowUTC()
	fm, err := SerializeFrontmatter(Frontmatter{
		ID:      id.String(),
		Title:   title,
		Created: now,
		Updated: now,
	})
	if err != nil {
		return "", nil, err
	}
	return id.String() + ".md", append(fm, body...), nil
}
