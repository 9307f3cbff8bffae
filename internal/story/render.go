package story

import (
	"bytes"
	"context"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// BodyRenderer converts story markdown into a sanitized XHTML fragment.
type BodyRenderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewBodyRenderer returns a renderer with GitHub-flavoured markdown and
// typographic punctuation.
func NewBodyRenderer() *BodyRenderer {
	return &BodyRenderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Typographer),
			goldmark.WithRendererOptions(html.WithXHTML()),
		),
		policy: bluemonday.UGCPolicy(),
	}
}

// Render converts body to XHTML.
func (r *BodyRenderer) Render(body string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(body), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return string(r.policy.SanitizeBytes(buf.Bytes())), nil
}

// ArticleAdder receives rendered stories.
type ArticleAdder interface {
	AddArticle(title, content, filename, author string) error
}

// Populate renders every story of src and adds it to dst in order. It
// returns the number of stories added.
func Populate(ctx context.Context, src Source, dst ArticleAdder, r *BodyRenderer) (int, error) {
	stories, err := src.Stories(ctx)
	if err != nil {
		return 0, err
	}
	for i, s := range stories {
		content, err := r.Render(s.Body)
		if err != nil {
			return i, fmt.Errorf("story %q: %w", s.Headline, err)
		}
		filename := ""
		if s.Slug != "" {
			filename = s.Slug + ".html"
		}
		if err := dst.AddArticle(s.Headline, content, filename, s.Author()); err != nil {
			return i, err
		}
	}
	return len(stories), nil
}
