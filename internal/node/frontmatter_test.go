package node_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/eykd/epubgen/internal/node"
)

func TestIsUUIDFilename(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     bool
	}{
		{name: "valid UUIDv7 .md filename", filename: "0192f0c1-3e7a-7000-8000-5a4b3c2d1e0f.md", want: true},
		{name: "uppercase UUID is rejected", filename: "0192F0C1-3E7A-7000-8000-5A4B3C2D1E0F.md", want: false},
		{name: "prose filename is rejected", filename: "chapter-one.md", want: false},
		{name: "UUID v4 is rejected", filename: "550e8400-e29b-41d4-a716-446655440000.md", want: false},
		{name: "empty string is rejected", filename: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := node.IsUUIDFilename(tt.filename); got != tt.want {
				t.Errorf("IsUUIDFilename(%q) = %v, want %v", tt.filename, got, tt.want)
			}
		})
	}
}

func TestParseFrontmatter(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantFM   node.Frontmatter
		wantBody string
		wantErr  bool
	}{
		{
			name: "story fields",
			content: "---\n" +
				"id: 0192f0c1-3e7a-7000-8000-5a4b3c2d1e0f\n" +
				"title: A Good Day\n" +
				"slug: good-day\n" +
				"byline: by Corey J Oordt\n" +
				"created: 2026-02-28T15:04:05Z\n" +
				"updated: 2026-02-28T15:04:05Z\n" +
				"---\n" +
				"\nBody content begins here.\n",
			wantFM: node.Frontmatter{
				ID:      "0192f0c1-3e7a-7000-8000-5a4b3c2d1e0f",
				Title:   "A Good Day",
				Slug:    "good-day",
				Byline:  "by Corey J Oordt",
				Created: "2026-02-28T15:04:05Z",
				Updated: "2026-02-28T15:04:05Z",
			},
			wantBody: "\nBody content begins here.\n",
		},
		{
			name:     "crlf line endings",
			content:  "---\r\ntitle: Windows\r\n---\r\nBody\r\n",
			wantFM:   node.Frontmatter{Title: "Windows"},
			wantBody: "Body\r\n",
		},
		{
			name: "triple-dash inside block scalar synopsis must not split naively",
			content: "---\n" +
				"synopsis: |\n" +
				"  first line\n" +
				"  ---\n" +
				"  second line\n" +
				"---\n" +
				"\nBody here.\n",
			wantFM:   node.Frontmatter{Synopsis: "first line\n---\nsecond line\n"},
			wantBody: "\nBody here.\n",
		},
		{
			name:    "unparseable YAML returns error",
			content: "---\nid: [unclosed bracket\n---\n\nBody.\n",
			wantErr: true,
		},
		{
			name:    "no frontmatter delimiter returns error",
			content: "just plain content\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm, body, err := node.ParseFrontmatter([]byte(tt.content))
			if tt.wantErr {
				if err == nil {
					t.Fatal("ParseFrontmatter() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFrontmatter() error = %v", err)
			}
			if fm != tt.wantFM {
				t.Errorf("Frontmatter = %+v, want %+v", fm, tt.wantFM)
			}
			if string(body) != tt.wantBody {
				t.Errorf("body = %q, want %q", body, tt.wantBody)
			}
		})
	}
}

func TestParseFrontmatter_NoBlockIsSentinel(t *testing.T) {
	_, _, err := node.ParseFrontmatter([]byte("# Title\n"))
	if !errors.Is(err, node.ErrNoFrontmatter) {
		t.Errorf("error = %v, want ErrNoFrontmatter", err)
	}
}

func TestSerializeFrontmatter_RoundTrip(t *testing.T) {
	fm := node.Frontmatter{
		ID:      "0192f0c1-3e7a-7000-8000-5a4b3c2d1e0f",
		Title:   "Chapter: One",
		Byline:  "by Ada King",
		Created: "2026-02-28T15:04:05Z",
		Updated: "2026-02-28T15:04:05Z",
	}
	data, err := node.SerializeFrontmatter(fm)
	if err != nil {
		t.Fatalf("SerializeFrontmatter error = %v", err)
	}
	s := string(data)
	if !strings.HasPrefix(s, "---\nid: ") || !strings.HasSuffix(s, "---\n") {
		t.Errorf("unexpected framing:\n%s", s)
	}
	if strings.Contains(s, "synopsis") || strings.Contains(s, "slug") {
		t.Errorf("empty fields serialized:\n%s", s)
	}

	got, body, err := node.ParseFrontmatter(append(data, "text"...))
	if err != nil {
		t.Fatalf("ParseFrontmatter error = %v", err)
	}
	if got != fm {
		t.Errorf("round trip = %+v, want %+v", got, fm)
	}
	if string(body) != "text" {
		t.Errorf("body = %q", body)
	}
}

func TestNew(t *testing.T) {
	filename, content, err := node.New("Chapter One", "Once upon a time.\n")
	if err != nil {
		t.Fatalf("New error = %v", err)
	}
	if !node.IsUUIDFilename(filename) {
		t.Errorf("filename %q is not a UUIDv7 .md name", filename)
	}
	fm, body, err := node.ParseFrontmatter(content)
	if err != nil {
		t.Fatalf("ParseFrontmatter error = %v", err)
	}
	if fm.ID+".md" != filename || fm.Title != "Chapter One" {
		t.Errorf("Frontmatter = %+v for %s", fm, filename)
	}
	if _, err := time.Parse(time.RFC3339, fm.Created); err != nil {
		t.Errorf("Created %q is not RFC3339: %v", fm.Created, err)
	}
	if string(body) != "Once upon a time.\n" {
		t.Errorf("body = %q", body)
	}
}
