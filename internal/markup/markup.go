// Package markup escapes text for XML and XHTML documents whose bytes must
// stay within ASCII.
package markup

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Escape escapes the XML reserved characters and replaces every non-ASCII
// rune with a numeric character reference. It never fails.
func Escape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		case '\'':
			b.WriteString("&#39;")
		default:
			writeRune(&b, r)
		}
	}
	return b.String()
}

// ASCII replaces non-ASCII runes with numeric character references and
// leaves markup untouched. Use it on already-rendered documents.
func ASCII(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		writeRune(&b, r)
	}
	return b.String()
}

// writeRune writes r as ASCII. Runes XML 1.0 cannot carry, such as C0
// controls other than tab, newline and carriage return, become U+FFFD.
func writeRune(b *strings.Builder, r rune) {
	if !xmlChar(r) {
		r = utf8.RuneError
	}
	if r < 0x80 {
		b.WriteRune(r)
		return
	}
	b.WriteString("&#")
	b.WriteString(strconv.Itoa(int(r)))
	b.WriteByte(';')
}

func xmlChar(r rune) bool {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return true
	case r < 0x20:
		return false
	case r == 0xFFFE || r == 0xFFFF:
		return false
	}
	return true
}
