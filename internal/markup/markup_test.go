package markup_test

import (
	"testing"

	"github.com/eykd/epubgen/internal/markup"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain ascii", in: "A Good Day", want: "A Good Day"},
		{name: "reserved characters", in: `Tom & "Jerry" <cat's>`, want: "Tom &amp; &quot;Jerry&quot; &lt;cat&#39;s&gt;"},
		{name: "latin accent", in: "Café", want: "Caf&#233;"},
		{name: "astral rune", in: "😀", want: "&#128512;"},
		{name: "empty", in: "", want: ""},
		{name: "control character", in: "a\x01b", want: "a&#65533;b"},
		{name: "whitespace controls kept", in: "a\tb\nc\rd", want: "a\tb\nc\rd"},
		{name: "noncharacter", in: "a\uFFFEb", want: "a&#65533;b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := markup.Escape(tt.in); got != tt.want {
				t.Errorf("Escape(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestASCII_KeepsMarkup(t *testing.T) {
	in := `<p class="x">Naïve &amp; done</p>`
	want := `<p class="x">Na&#239;ve &amp; done</p>`
	if got := markup.ASCII(in); got != want {
		t.Errorf("ASCII(%q) = %q, want %q", in, got, want)
	}
}

func TestASCII_ReplacesControlCharacters(t *testing.T) {
	if got := markup.ASCII("<p>a\x00b\x1f</p>"); got != "<p>a&#65533;b&#65533;</p>" {
		t.Errorf("ASCII = %q", got)
	}
}
