// Package pattern implements compiled single-component path matchers used as
// the edge labels of a pattern trie.
//
// A Pattern is one of two variants: a Plain literal, matched by byte
// equality, or a Glob, matched by github.com/bmatcuk/doublestar's shell-style
// glob engine. Two construction modes are provided: SimplePattern, which
// only treats an unescaped '*' as a wildcard, and GlobPattern, which compiles
// the text as a full glob with no pre-processing. A single Pattern type
// hides this distinction from downstream consumers (the trie and matcher
// packages) while keeping equality cheap for the Plain case, which dominates
// in practice.
package pattern

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// kind distinguishes the two Pattern variants.
type kind uint8

const (
	kindPlain kind = iota
	kindGlob
)

// Pattern is a compiled matcher for a single path component. It is
// immutable once constructed and comparable with ==, which makes it usable
// directly as a map key (the role it plays as a patterntrie edge label).
type Pattern struct {
	k kind
	// text is the literal value for a Plain pattern, or the (possibly
	// transformed) glob source for a Glob pattern. It is also what backs
	// equality: two Globs compare equal iff their source text is equal,
	// matching the behavior of a hand-rolled Hash/Eq implementation keyed on
	// the original pattern string.
	text string
}

// SimplePattern compiles text using "simple" syntax: only an unescaped '*'
// acts as a wildcard. A backslash escapes a following '*' or backslash;
// any other character (including a dangling trailing backslash) passes
// through unescaped-backslash removal. If no unescaped '*' is present, the
// result is a Plain pattern equivalent to the unescaped text. Otherwise the
// result is a Glob pattern in which every glob metacharacter other than the
// retained unescaped '*' has been neutralized.
func SimplePattern(text string) Pattern {
	if !containsUnescapedStar(text) {
		return Pattern{k: kindPlain, text: stripSimpleEscapes(text)}
	}
	return Pattern{k: kindGlob, text: escapeAllButStar(text)}
}

// GlobPattern compiles text as a full glob pattern, with no pre-processing.
func GlobPattern(text string) Pattern {
	return Pattern{k: kindGlob, text: text}
}

// Matches reports whether the pattern matches the given path component.
func (p Pattern) Matches(component string) bool {
	switch p.k {
	case kindPlain:
		return p.text == component
	case kindGlob:
		ok, err := doublestar.Match(p.text, component)
		return err == nil && ok
	default:
		return false
	}
}

// IsGlob reports whether the pattern is a compiled glob rather than a plain
// literal.
func (p Pattern) IsGlob() bool {
	return p.k == kindGlob
}

// Validate ensures the pattern compiles, surfacing a glob syntax error that
// would otherwise only appear (silently swallowed) the first time Matches is
// called. It is intended for use at parse time, immediately after
// construction.
func (p Pattern) Validate() error {
	if p.k != kindGlob {
		return nil
	}
	_, err := doublestar.Match(p.text, "a")
	return err
}

// containsUnescapedStar scans text for a '*' not preceded by an odd number
// of backslashes.
func containsUnescapedStar(text string) bool {
	escaped := false
	for _, c := range text {
		switch c {
		case '\\':
			escaped = !escaped
		case '*':
			if !escaped {
				return true
			}
			escaped = false
		default:
			escaped = false
		}
	}
	return false
}

// stripSimpleEscapes removes backslash escapes from text that is known to
// contain no unescaped '*'. A backslash followed by '*' or '\\' collapses to
// the escaped character; a backslash followed by anything else, or a
// trailing dangling backslash, is simply dropped.
func stripSimpleEscapes(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	escaped := false
	for _, c := range text {
		if escaped {
			b.WriteRune(c)
			escaped = false
			continue
		}
		if c == '\\' {
			escaped = true
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

// escapeAllButStar transforms text so that every glob metacharacter other
// than an unescaped '*' is neutralized: '?' and '[' are wrapped in a
// single-character bracket expression, ']', '{' and '}' are backslash-escaped,
// an escaped '*' becomes a literal bracket-escaped '*', and a retained
// unescaped '*' is kept as a wildcard. Backslash-backslash collapses to an
// escaped backslash, which matches a single literal backslash.
func escapeAllButStar(text string) string {
	var b strings.Builder
	b.Grow(len(text) + 8)
	escaped := false
	for _, c := range text {
		switch c {
		case '?', '[':
			b.WriteByte('[')
			b.WriteRune(c)
			b.WriteByte(']')
			escaped = false
		case ']', '{', '}':
			// doublestar rejects "[]]" as an empty bracket expression, so
			// these are neutralized with a backslash escape instead.
			b.WriteByte('\\')
			b.WriteRune(c)
			escaped = false
		case '*':
			if escaped {
				b.WriteString("[*]")
			} else {
				b.WriteByte('*')
			}
			escaped = false
		case '\\':
			if escaped {
				b.WriteString(`\\`)
				escaped = false
			} else {
				escaped = true
			}
		default:
			b.WriteRune(c)
			escaped = false
		}
	}
	return b.String()
}
