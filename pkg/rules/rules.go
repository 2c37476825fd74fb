// Package rules implements the include-file parser: it reads a rule
// document line by line, classifies each line's rule kind via its prelude
// token, splits the remaining path on '/', compiles each segment with the
// selected pattern factory, and inserts the resulting segment sequence into
// either the include or exclude pattern trie.
//
// See the documentation comment on Parse for the line
// grammar, and pkg/classify for the Matcher that consumes the resulting
// tries.
package rules

import (
	"fmt"
	"strings"

	"github.com/pathsync/pathsync/pkg/pattern"
	"github.com/pathsync/pathsync/pkg/patterntrie"
)

// ErrorKind identifies the category of a ParseError.
type ErrorKind uint8

const (
	// InvalidLine indicates a non-comment, non-blank line that does not
	// conform to the RULE grammar (e.g. an empty path, a path starting
	// with '/', or a prelude token with no trailing space).
	InvalidLine ErrorKind = iota
	// InvalidPrelude indicates a line whose prefix has the shape of a
	// prelude token (a '/'-delimited segment followed by a space) but
	// whose contents are not one of the five recognized tokens.
	InvalidPrelude
	// TrivialInput indicates that the file contained zero non-comment,
	// non-blank lines.
	TrivialInput
)

// String renders an ErrorKind for diagnostics.
func (k ErrorKind) String() string {
	switch k {
	case InvalidLine:
		return "invalid line"
	case InvalidPrelude:
		return "invalid prelude"
	case TrivialInput:
		return "trivial input"
	default:
		return "unknown parse error"
	}
}

// ParseError describes a failure to parse an include file. Line is the
// 1-based line number that triggered the error (0 for TrivialInput, which
// applies to the file as a whole). Text is the raw offending line, empty for
// TrivialInput.
type ParseError struct {
	Kind ErrorKind
	Line int
	Text string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Kind == TrivialInput {
		return "include file contains no rules"
	}
	return fmt.Sprintf("%s at line %d: %q", e.Kind, e.Line, e.Text)
}

// Is allows errors.Is(err, rules.ErrInvalidLine) and similar comparisons
// against the sentinel *ParseError values below, which wrap the ErrorKind
// constants with no line/text, matching the common Go idiom for categorized
// sentinel errors.
func (e *ParseError) Is(target error) bool {
	other, ok := target.(*ParseError)
	return ok && other.Line == 0 && other.Text == "" && other.Kind == e.Kind
}

// Sentinels usable with errors.Is to test the kind of a parse failure,
// e.g. errors.Is(err, rules.ErrTrivialInput).
var (
	ErrInvalidLine    = &ParseError{Kind: InvalidLine}
	ErrInvalidPrelude = &ParseError{Kind: InvalidPrelude}
	ErrTrivialInput   = &ParseError{Kind: TrivialInput}
)

// preludeMapping associates a recognized prelude token with the trie it
// populates and the pattern factory it selects.
type preludeMapping struct {
	exclude bool
	glob    bool
}

var knownPreludes = map[string]preludeMapping{
	"//":   {exclude: false, glob: false},
	"/*/":  {exclude: false, glob: true},
	"/!/":  {exclude: true, glob: false},
	"/!*/": {exclude: true, glob: true},
	"/*!/": {exclude: true, glob: true},
}

// Tries holds the pair of pattern tries produced by a successful Parse.
type Tries struct {
	Include *patterntrie.Node
	Exclude *patterntrie.Node
}

// Parse reads an include-file document and compiles it into a pair of
// pattern tries.
//
// Each non-comment, non-blank line is one RULE:
//
//	LINE    := COMMENT | RULE
//	COMMENT := "/#/ " <anything>
//	RULE    := [PRELUDE " "] PATH
//	PRELUDE := "//" | "/*/" | "/!/" | "/!*/" | "/*!/"
//	PATH    := <component> ("/" <component>)*   ; PATH must not start with '/'
//
// A blank line (exactly empty after trimming a trailing carriage return) is
// skipped, same as a comment, and does not count toward TrivialInput. Empty
// PATH components (from a doubled '/' or a trailing '/') are rejected as
// InvalidLine rather than silently coalesced or dropped.
func Parse(document string) (*Tries, error) {
	includeTrie := patterntrie.New()
	excludeTrie := patterntrie.New()

	var ruleCount int
	for i, rawLine := range strings.Split(document, "\n") {
		lineNo := i + 1
		line := strings.TrimSuffix(rawLine, "\r")

		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "/#/ ") {
			continue
		}

		segments, exclude, err := parseRuleLine(line, lineNo)
		if err != nil {
			return nil, err
		}

		ruleCount++
		if exclude {
			excludeTrie.Insert(segments)
		} else {
			includeTrie.Insert(segments)
		}
	}

	if ruleCount == 0 {
		return nil, &ParseError{Kind: TrivialInput}
	}

	return &Tries{Include: includeTrie, Exclude: excludeTrie}, nil
}

// parseRuleLine parses a single non-comment, non-blank line into a segment
// sequence and the trie (include/exclude) it belongs to.
func parseRuleLine(line string, lineNo int) ([]pattern.Pattern, bool, error) {
	preludeToken, rest, shaped := splitPreludeToken(line)

	var mapping preludeMapping
	if preludeToken != "" {
		var known bool
		mapping, known = knownPreludes[preludeToken]
		if !known {
			return nil, false, &ParseError{Kind: InvalidPrelude, Line: lineNo, Text: line}
		}
	} else if shaped {
		// The line had the shape of a prelude token (a leading '/'), but no
		// trailing space followed the closing '/', or no closing '/' was
		// found at all. This is a structurally invalid line, not merely an
		// unrecognized prelude.
		return nil, false, &ParseError{Kind: InvalidLine, Line: lineNo, Text: line}
	}

	if rest == "" || rest[0] == '/' {
		return nil, false, &ParseError{Kind: InvalidLine, Line: lineNo, Text: line}
	}

	components := strings.Split(rest, "/")
	segments := make([]pattern.Pattern, len(components))
	for i, component := range components {
		if component == "" {
			return nil, false, &ParseError{Kind: InvalidLine, Line: lineNo, Text: line}
		}
		if mapping.glob {
			segments[i] = pattern.GlobPattern(component)
		} else {
			segments[i] = pattern.SimplePattern(component)
		}
		if err := segments[i].Validate(); err != nil {
			return nil, false, &ParseError{Kind: InvalidLine, Line: lineNo, Text: line}
		}
	}

	return segments, mapping.exclude, nil
}

// splitPreludeToken inspects the start of line for a prelude token shape:
// a '/', followed by zero or more non-'/' non-space characters, followed by
// a closing '/' and a single space. If found, it returns the token
// (including both slashes), the remainder of the line after the space, and
// shaped=true. If line does not start with '/' at all, there is no prelude
// and shaped is false. If line starts with '/' but the shape above is not
// found (no closing slash+space pair), shaped is true with an empty token,
// signaling a structurally malformed line to the caller.
func splitPreludeToken(line string) (token string, rest string, shaped bool) {
	if len(line) == 0 || line[0] != '/' {
		return "", line, false
	}

	for i := 1; i < len(line); i++ {
		switch line[i] {
		case ' ':
			// A space before any closing slash means this isn't a
			// prelude-shaped prefix.
			return "", "", true
		case '/':
			if i+1 < len(line) && line[i+1] == ' ' {
				return line[:i+1], line[i+2:], true
			}
			return "", "", true
		}
	}

	return "", "", true
}
