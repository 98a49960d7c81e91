package intent

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Matcher reports whether keyword occurs in the normalized input.
type Matcher func(normalized, keyword string) bool

// Substring matches a keyword anywhere in the input, so "craftsman"
// matches "craft".
func Substring(normalized, keyword string) bool {
	return strings.Contains(normalized, keyword)
}

// WordBoundary only matches a keyword that is not glued to other letters
// or digits on either side.
func WordBoundary(normalized, keyword string) bool {
	if keyword == "" {
		return false
	}
	offset := 0
	for {
		idx := strings.Index(normalized[offset:], keyword)
		if idx < 0 {
			return false
		}
		start := offset + idx
		end := start + len(keyword)
		if boundaryBefore(normalized, start) && boundaryAfter(normalized, end) {
			return true
		}
		_, size := utf8.DecodeRuneInString(normalized[start:])
		offset = start + size
	}
}

func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !isWordRune(r)
}

func boundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// ParseMatcher resolves a configured match mode. An empty name selects
// Substring.
func ParseMatcher(name string) (Matcher, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "substring":
		return Substring, nil
	case "word", "word-boundary", "wordboundary":
		return WordBoundary, nil
	default:
		return nil, fmt.Errorf("unknown match mode %q: want substring or word", name)
	}
}
