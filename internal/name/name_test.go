package name_test

import (
	"errors"
	"testing"

	"github.com/eykd/epubgen/internal/name"
)

func TestFormatName(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "first last", raw: "Corey Oordt", want: "Oordt, Corey"},
		{name: "middle name", raw: "Charles Henry Pearson", want: "Pearson, Charles Henry"},
		{name: "middle initial with period", raw: "Charles H. Pearson", want: "Pearson, Charles H"},
		{name: "suffix after comma", raw: "Charles H. Pearson, Jr.", want: "Pearson Jr, Charles H"},
		{name: "two-word particle and suffix", raw: "Charles H. St. James, Jr.", want: "St James Jr, Charles H"},
		{name: "compound first name and particle", raw: "Mary Kate L Van Hinder, Jr.", want: "Van Hinder Jr, Mary Kate L"},
		{name: "three-word surname", raw: "Ludwig Van Der Berg", want: "Van Der Berg, Ludwig"},
		{name: "three-word surname with middle", raw: "Anna Maria de la Cruz", want: "de la Cruz, Anna Maria"},
		{name: "suffix case insensitive", raw: "John Smith III", want: "Smith III, John"},
		{name: "doctorate suffix", raw: "Jane Q Public PhD", want: "Public PhD, Jane Q"},
		{name: "extra whitespace", raw: "  Ada   King  ", want: "King, Ada"},
		{name: "single two-word particle", raw: "Leonardo da Vinci", want: "da Vinci, Leonardo"},
		{name: "apostrophe particle", raw: "Sean o' Casey", want: "o' Casey, Sean"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := name.FormatName(tt.raw)
			if err != nil {
				t.Fatalf("FormatName(%q) error = %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("FormatName(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

// TestFormatName_ThreeWordParticlesAreNarrow documents that only "van" and
// "de" start a three-word surname, and "der" is not a two-word particle, so
// "von der" ends up among the given names.
func TestFormatName_ThreeWordParticlesAreNarrow(t *testing.T) {
	got, err := name.FormatName("Ursula von der Leyen")
	if err != nil {
		t.Fatalf("FormatName error = %v", err)
	}
	if want := "Leyen, Ursula von der"; got != want {
		t.Errorf("FormatName = %q, want %q", got, want)
	}
}

func TestFormatName_Errors(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{name: "empty", raw: "", wantErr: name.ErrEmptyName},
		{name: "whitespace only", raw: "  \t ", wantErr: name.ErrEmptyName},
		{name: "punctuation only", raw: ".,", wantErr: name.ErrEmptyName},
		{name: "single token", raw: "Cher", wantErr: name.ErrSingleToken},
		{name: "single token with suffix", raw: "Smith Jr.", wantErr: name.ErrSingleToken},
		{name: "suffix alone", raw: "Jr", wantErr: name.ErrSingleToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := name.FormatName(tt.raw)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("FormatName(%q) error = %v, want %v", tt.raw, err, tt.wantErr)
			}
		})
	}
}
