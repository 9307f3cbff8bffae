// Package name converts free-text personal names into library sort form.
package name

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyName is returned when the input has no name tokens.
	ErrEmptyName = errors.New("name is empty")
	// ErrSingleToken is returned when the input cannot be split into a
	// given name and a surname.
	ErrSingleToken = errors.New("name has a single token")
)

// suffixes are generational and honorific suffixes folded into the surname.
var suffixes = wordSet("jr", "sr", "ii", "iii", "iv", "md", "phd")

// twoWordParticles start a two-word surname ("St James", "Van Hinder").
var twoWordParticles = wordSet(
	"al", "da", "de", "del", "dela", "della", "di", "du", "el", "la", "le",
	"mc", "o'", "san", "st", "sta", "van", "vande", "vanden", "vander", "von",
)

// threeWordParticles start a three-word surname ("Van Der Berg").
// Only two entries; names like "de la Cruz" fall through to the
// two-word rule.
var threeWordParticles = wordSet("van", "de")

func wordSet(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

// FormatName turns "First [Middle] Last [Suffix]" into
// "Last [Suffix], First [Middle]".
//
// The rules run in a fixed order and never revisit a token an earlier
// rule consumed:
//  1. drop commas and periods and split on whitespace
//  2. merge a trailing suffix into the token before it
//  3. take the last token as surname and the first as given name
//  4. prepend a three-word particle pair to the surname, or else a
//     single two-word particle
//  5. whatever remains is middle names, appended to the given name
func FormatName(raw string) (string, error) {
	cleaned := strings.NewReplacer(",", "", ".", "").Replace(raw)
	pieces := strings.Fields(cleaned)
	if len(pieces) == 0 {
		return "", ErrEmptyName
	}

	if n := len(pieces); n > 1 && suffixes[strings.ToLower(pieces[n-1])] {
		suffix := pieces[n-1]
		pieces = pieces[:n-1]
		pieces[n-2] = pieces[n-2] + " " + suffix
	}
	if len(pieces) < 2 {
		return "", fmt.Errorf("%w: %q", ErrSingleToken, raw)
	}

	last := pieces[len(pieces)-1]
	first := pieces[0]
	pieces = pieces[1 : len(pieces)-1]

	if len(pieces) == 0 {
		return last + ", " + first, nil
	}

	n := len(pieces)
	switch {
	case n >= 2 && threeWordParticles[strings.ToLower(pieces[n-2])]:
		last = strings.Join([]string{pieces[n-2], pieces[n-1], last}, " ")
		pieces = pieces[:n-2]
	case twoWordParticles[strings.ToLower(pieces[n-1])]:
		last = pieces[n-1] + " " + last
		pieces = pieces[:n-1]
	}

	if len(pieces) > 0 {
		first = first + " " + strings.Join(pieces, " ")
	}
	return last + ", " + first, nil
}
