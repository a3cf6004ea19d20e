package sqlscript

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/leapstack-labs/leapmigrate/pkg/token"
)

type scanState int

const (
	stateOutside scanState = iota
	stateInToken
)

// Scanner extracts placeholder tokens from single lines of a script.
// It holds no state between lines: a token left open at the end of a line is
// closed there.
//
// In the colon grammar a double colon is a cast and opens no token, so
// amount::int references nothing. Older line-based converters read the same
// text as a variable named int; scripts ported from them may declare fewer
// variables here.
type Scanner struct {
	grammar token.Grammar
}

// NewScanner creates a scanner for the given placeholder grammar.
func NewScanner(g token.Grammar) *Scanner {
	return &Scanner{grammar: g}
}

// Scan returns the placeholders referenced in line, in order of appearance.
// lineNo is only used to stamp the returned spans.
func (s *Scanner) Scan(lineNo int, line string) []token.Placeholder {
	ls := &lineScan{
		grammar: s.grammar,
		opener:  s.grammar.Opener(),
		line:    line,
		lineNo:  lineNo,
	}
	for i, r := range line {
		ls.step(i, r)
	}
	if ls.state == stateInToken {
		ls.emit(len(line))
	}
	return ls.out
}

// lineScan is the per-line state of the two-state machine.
type lineScan struct {
	grammar token.Grammar
	opener  rune
	line    string
	lineNo  int

	state scanState
	start int  // offset of the opener of the open token
	skip  bool // swallow the next rune (second colon of a :: cast)
	out   []token.Placeholder
}

func (ls *lineScan) step(i int, r rune) {
	if ls.skip {
		ls.skip = false
		return
	}

	if r == ls.opener {
		if ls.state == stateInToken {
			ls.emit(i)
		}
		if ls.grammar == token.GrammarColon && ls.peek(i+utf8.RuneLen(r)) == ':' {
			ls.skip = true
			return
		}
		ls.state = stateInToken
		ls.start = i
		return
	}

	if ls.state == stateInToken && !ls.continues(r) {
		ls.emit(i)
	}
}

func (ls *lineScan) peek(offset int) byte {
	if offset >= len(ls.line) {
		return 0
	}
	return ls.line[offset]
}

// continues reports whether r extends the name run of an open token.
func (ls *lineScan) continues(r rune) bool {
	if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
		return true
	}
	return ls.grammar == token.GrammarBrace && (r == '{' || r == '}')
}

// emit closes the open token whose run ends at offset end.
func (ls *lineScan) emit(end int) {
	ls.state = stateOutside

	nameStart := ls.start + 1
	spanEnd := end
	run := ls.line[nameStart:end]

	if ls.grammar == token.GrammarBrace {
		if strings.HasPrefix(run, "{") {
			run = run[1:]
			nameStart++
		}
		if idx := strings.IndexByte(run, '}'); idx >= 0 {
			run = run[:idx]
			spanEnd = nameStart + idx + 1
		}
	}

	if run == "" {
		return
	}
	ls.out = append(ls.out, token.Placeholder{
		Name: run,
		Span: token.NewSpan(ls.lineNo, ls.start, spanEnd),
	})
}
