package sqlscript

import "strings"

// LineKind classifies a raw source line.
type LineKind int

// LineKind constants.
const (
	LineBlank    LineKind = iota // empty or whitespace only
	LineComment                  // starts with -- or \ after trimming
	LineFragment                 // part of a statement
)

func (k LineKind) String() string {
	switch k {
	case LineBlank:
		return "blank"
	case LineComment:
		return "comment"
	case LineFragment:
		return "fragment"
	default:
		return "unknown"
	}
}

// commentMarkers are the prefixes that mark a whole line as a comment.
// Backslash lines are client meta-commands (\set, \echo, ...).
var commentMarkers = []string{"--", `\`}

// ClassifyLine reports whether text is blank, a comment or a statement fragment.
func ClassifyLine(text string) LineKind {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return LineBlank
	}
	for _, m := range commentMarkers {
		if strings.HasPrefix(trimmed, m) {
			return LineComment
		}
	}
	return LineFragment
}
