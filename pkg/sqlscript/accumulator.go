package sqlscript

import (
	"strings"

	"github.com/leapstack-labs/leapmigrate/pkg/token"
)

// Accumulator groups statement fragments into statements.
// At most one statement is open at a time.
type Accumulator struct {
	cur  *Statement
	seen map[string]struct{}
}

// NewAccumulator creates an accumulator with no open statement.
func NewAccumulator() *Accumulator {
	return &Accumulator{}
}

// Open reports whether a statement is currently open.
func (a *Accumulator) Open() bool {
	return a.cur != nil
}

// Add appends a fragment line to the open statement, opening one if needed.
// When the trimmed text ends with a semicolon the statement is closed and
// returned with ok set; only the text before that semicolon is kept.
func (a *Accumulator) Add(lineNo int, text string, placeholders []token.Placeholder) (stmt *Statement, ok bool) {
	if a.cur == nil {
		a.cur = &Statement{}
		a.seen = make(map[string]struct{})
	}

	for _, p := range placeholders {
		if _, dup := a.seen[p.Name]; dup {
			continue
		}
		a.seen[p.Name] = struct{}{}
		a.cur.Vars = append(a.cur.Vars, p.Name)
	}

	if !strings.HasSuffix(strings.TrimSpace(text), ";") {
		a.cur.Lines = append(a.cur.Lines, Line{Number: lineNo, Text: text, Placeholders: placeholders})
		return nil, false
	}

	cut := strings.LastIndexByte(text, ';')
	kept := make([]token.Placeholder, 0, len(placeholders))
	for _, p := range placeholders {
		if p.Span.End.Offset <= cut {
			kept = append(kept, p)
		}
	}
	a.cur.Lines = append(a.cur.Lines, Line{Number: lineNo, Text: text[:cut], Placeholders: kept})

	stmt = a.cur
	a.cur = nil
	a.seen = nil
	return stmt, true
}

// Pending returns the open, unterminated statement, or nil.
func (a *Accumulator) Pending() *Statement {
	return a.cur
}
