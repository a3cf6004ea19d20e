package token

// Position represents a location in a script.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
	Offset int // 0-based byte offset within the line
}

// Span represents a byte range within one line.
type Span struct {
	Start Position
	End   Position // exclusive
}

// NewSpan builds a span for the byte range [start, end) on the given line.
func NewSpan(line, start, end int) Span {
	return Span{
		Start: Position{Line: line, Column: start + 1, Offset: start},
		End:   Position{Line: line, Column: end + 1, Offset: end},
	}
}
