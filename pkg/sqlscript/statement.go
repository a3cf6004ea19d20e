package sqlscript

import (
	"strings"

	"github.com/leapstack-labs/leapmigrate/pkg/token"
)

// Line is one stored line of a statement.
type Line struct {
	Number       int // 1-based line number in the source script
	Text         string
	Placeholders []token.Placeholder
}

// Statement is the run of lines between two statement boundaries.
// Kind and Target are set by a Classifier once the statement is closed.
type Statement struct {
	Lines  []Line
	Vars   []string // referenced names, unique, in order of first reference
	Kind   Kind
	Target *TableMapping

	headerEnd int // end offset of the target header in the first line
}

// StartLine returns the source line number of the first stored line, or 0.
func (s *Statement) StartLine() int {
	if len(s.Lines) == 0 {
		return 0
	}
	return s.Lines[0].Number
}

// Header returns the text of the first stored line.
func (s *Statement) Header() string {
	if len(s.Lines) == 0 {
		return ""
	}
	return s.Lines[0].Text
}

// Text rejoins the stored lines.
func (s *Statement) Text() string {
	parts := make([]string, len(s.Lines))
	for i, l := range s.Lines {
		parts[i] = l.Text
	}
	return strings.Join(parts, "\n")
}

// Suppressed reports whether the statement produces no generated code.
func (s *Statement) Suppressed() bool {
	return s.Kind == KindSchemaMirror || s.Kind == KindDrop
}

// QueryLines returns the lines that form the embedded query. For a target
// statement the INSERT OVERWRITE header line is left out, since the target
// becomes a temp view instead; when the header is the only line, the text
// after the table name is kept.
func (s *Statement) QueryLines() []Line {
	if s.Kind != KindTarget || len(s.Lines) == 0 {
		return s.Lines
	}
	if len(s.Lines) > 1 {
		return s.Lines[1:]
	}

	first := s.Lines[0]
	rest := first.Text[s.headerEnd:]
	trimmed := strings.TrimLeft(rest, " \t")
	shift := s.headerEnd + len(rest) - len(trimmed)

	var phs []token.Placeholder
	for _, p := range first.Placeholders {
		if p.Span.Start.Offset < shift {
			continue
		}
		phs = append(phs, token.Placeholder{
			Name: p.Name,
			Span: token.NewSpan(first.Number, p.Span.Start.Offset-shift, p.Span.End.Offset-shift),
		})
	}
	return []Line{{Number: first.Number, Text: trimmed, Placeholders: phs}}
}
