package epub_test

import (
	"testing"

	"github.com/eykd/epubgen/internal/epub"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "A Good Day to Enjoy", want: "a-good-day-to-enjoy"},
		{in: "  Zombies -- the Return!  ", want: "zombies-the-return"},
		{in: "Crème Brûlée", want: "creme-brulee"},
		{in: "snake_case stays", want: "snake_case-stays"},
		{in: "2009: a year", want: "2009-a-year"},
		{in: "日本", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := epub.Slugify(tt.in); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestGuessMediaType(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "logo.svg", want: "image/svg+xml"},
		{in: "photo.jpeg", want: "image/jpeg"},
		{in: "PHOTO.PNG", want: "image/png"},
		{in: "style.css", want: "text/css"},
		{in: "chapter.xhtml", want: "application/xhtml+xml"},
		{in: "noext", want: "application/octet-stream"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := epub.GuessMediaType(tt.in); got != tt.want {
				t.Errorf("GuessMediaType(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTemplateRenderer_UnknownTemplate(t *testing.T) {
	r, err := epub.NewTemplateRenderer()
	if err != nil {
		t.Fatalf("NewTemplateRenderer error = %v", err)
	}
	if _, err := r.Render("missing.html", map[string]any{}); err == nil {
		t.Error("Render of unknown template succeeded")
	}
	if _, err := r.Render(epub.TemplateContents, map[string]any{}); err == nil {
		t.Error("Render with missing context key succeeded")
	}
}
