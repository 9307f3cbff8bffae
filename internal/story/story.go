// Package story loads the articles of a book from a prosemark project and
// feeds them to a package builder.
package story

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/eykd/epubgen/internal/binder"
	"github.com/eykd/epubgen/internal/node"
)

// Story is one article record.
type Story struct {
	Headline string
	Slug     string
	Byline   string
	// Body is markdown.
	Body string
}

// Author returns the byline without a leading "by".
func (s Story) Author() string {
	b := strings.TrimSpace(s.Byline)
	if len(b) > 3 && strings.EqualFold(b[:3], "by ") {
		b = strings.TrimSpace(b[3:])
	}
	return b
}

// Source is a read-only ordered collection of stories.
type Source interface {
	Stories(ctx context.Context) ([]Story, error)
}

// Stories is an in-memory Source.
type Stories []Story

// Stories returns a copy of s.
func (s Stories) Stories(context.Context) ([]Story, error) {
	return append([]Story(nil), s...), nil
}

// ProjectSource reads stories from the node files listed in a binder.
type ProjectSource struct {
	fs         afero.Fs
	binderPath string
}

// NewProjectSource returns a Source for the binder at binderPath. Node
// paths are resolved against the binder's directory.
func NewProjectSource(fs afero.Fs, binderPath string) *ProjectSource {
	return &ProjectSource{fs: fs, binderPath: binderPath}
}

// Stories parses the binder and loads every referenced node in order. Any
// binder error, missing node or malformed frontmatter aborts the load.
func (p *ProjectSource) Stories(ctx context.Context) ([]Story, error) {
	src, err := afero.ReadFile(p.fs, p.binderPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("binder %s not found: run 'epubgen init' first", p.binderPath)
		}
		return nil, fmt.Errorf("reading binder: %w", err)
	}

	result, diags, err := binder.Parse(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("parsing binder: %w", err)
	}
	if binder.HasErrors(diags) {
		var msgs []string
		for _, d := range diags {
			if d.Severity == "error" {
				msgs = append(msgs, fmt.Sprintf("line %d: %s (%s)", d.Line, d.Message, d.Code))
			}
		}
		return nil, fmt.Errorf("binder %s has errors: %s", p.binderPath, strings.Join(msgs, "; "))
	}

	dir := filepath.Dir(p.binderPath)
	stories := make([]Story, 0, len(result.Entries))
	for _, e := range result.Entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s, err := p.load(filepath.Join(dir, filepath.FromSlash(e.Target)), e)
		if err != nil {
			return nil, err
		}
		stories = append(stories, s)
	}
	return stories, nil
}

func (p *ProjectSource) load(path string, e binder.Entry) (Story, error) {
	content, err := afero.ReadFile(p.fs, path)
	if err != nil {
		return Story{}, fmt.Errorf("reading node %s: %w", e.Target, err)
	}

	fm, body, err := node.ParseFrontmatter(content)
	switch {
	case errors.Is(err, node.ErrNoFrontmatter):
		body = content
	case err != nil:
		return Story{}, fmt.Errorf("node %s: %w", e.Target, err)
	}

	headline := fm.Title
	if headline == "" {
		headline = e.Title
	}
	return Story{
		Headline: headline,
		Slug:     fm.Slug,
		Byline:   fm.Byline,
		Body:     string(body),
	}, nil
}
