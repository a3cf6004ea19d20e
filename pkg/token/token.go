// Package token defines placeholder tokens found in templated SQL scripts.
//
// A placeholder is a name wrapped in dialect-specific delimiters that the
// executing system resolves at run time: ${NAME} for Hive scripts and :NAME
// for Redshift scripts.
package token

import "fmt"

// Grammar identifies a placeholder delimiter grammar.
type Grammar int

// Grammar constants.
const (
	GrammarBrace Grammar = iota // ${NAME}
	GrammarColon                // :NAME
)

func (g Grammar) String() string {
	switch g {
	case GrammarBrace:
		return "brace"
	case GrammarColon:
		return "colon"
	default:
		return "unknown"
	}
}

// Opener returns the character that opens a placeholder in this grammar.
func (g Grammar) Opener() rune {
	if g == GrammarColon {
		return ':'
	}
	return '$'
}

// Placeholder is a variable reference found in a single line.
type Placeholder struct {
	Name string
	Span Span // covers the delimiters, e.g. all of "${NAME}"
}

func (p Placeholder) String() string {
	return fmt.Sprintf("%s@%d:%d", p.Name, p.Span.Start.Line, p.Span.Start.Column)
}
