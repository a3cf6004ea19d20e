package migrate

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/leapstack-labs/leapmigrate/pkg/dialect"
	"github.com/leapstack-labs/leapmigrate/pkg/sqlscript"
)

// Session holds the state of a single-pass conversion. It is not safe for
// concurrent use; each conversion owns its own session.
type Session struct {
	dialect    *dialect.Dialect
	scanner    *sqlscript.Scanner
	acc        *sqlscript.Accumulator
	classifier *sqlscript.Classifier
	logger     *slog.Logger

	lineNo     int
	vars       map[string]struct{}
	body       []string
	mappings   []sqlscript.TableMapping
	statements []*sqlscript.Statement
	emitted    int
}

// NewSession creates a session for the given dialect.
// A nil logger discards log output.
func NewSession(d *dialect.Dialect, logger *slog.Logger) (*Session, error) {
	if d == nil {
		return nil, fmt.Errorf("dialect is required")
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	classifier, err := sqlscript.NewClassifier(d.Patterns)
	if err != nil {
		return nil, fmt.Errorf("dialect %q: %w", d.Name, err)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Session{
		dialect:    d,
		scanner:    sqlscript.NewScanner(d.Grammar),
		acc:        sqlscript.NewAccumulator(),
		classifier: classifier,
		logger:     logger.With("dialect", d.Name),
		vars:       make(map[string]struct{}),
	}, nil
}

// Feed consumes the next source line, without its line terminator.
func (s *Session) Feed(text string) {
	s.lineNo++

	switch sqlscript.ClassifyLine(text) {
	case sqlscript.LineBlank:
		s.body = append(s.body, "")
	case sqlscript.LineComment:
		if s.acc.Open() {
			s.logger.Debug("dropping comment inside statement", "line", s.lineNo)
			return
		}
		s.body = append(s.body, s.dialect.Comment(text))
	case sqlscript.LineFragment:
		placeholders := s.scanner.Scan(s.lineNo, text)
		for _, p := range placeholders {
			s.vars[p.Name] = struct{}{}
		}
		if stmt, ok := s.acc.Add(s.lineNo, text, placeholders); ok {
			s.close(stmt)
		}
	}
}

func (s *Session) close(stmt *sqlscript.Statement) {
	kind := s.classifier.Classify(stmt)
	s.statements = append(s.statements, stmt)

	if stmt.Target != nil {
		s.mappings = append(s.mappings, *stmt.Target)
	}

	if stmt.Suppressed() {
		s.logger.Debug("suppressing statement", "line", stmt.StartLine(), "kind", kind.String())
		return
	}

	s.emitted++
	s.body = append(s.body, s.dialect.Emitter.EmitStatement(stmt, s.emitted)...)
	s.logger.Debug("emitted statement", "line", stmt.StartLine(), "kind", kind.String(), "ordinal", s.emitted)
}

// Finish ends the pass and returns the result. A statement still open at
// this point has no terminating semicolon; it is reported in
// Result.Discarded and never emitted.
func (s *Session) Finish() *Result {
	names := make([]string, 0, len(s.vars))
	for n := range s.vars {
		names = append(names, n)
	}
	sort.Strings(names)

	discarded := s.acc.Pending()
	if discarded != nil {
		s.logger.Warn("discarding unterminated statement at end of input",
			"line", discarded.StartLine(), "lines", len(discarded.Lines))
	}

	return &Result{
		Dialect:    s.dialect,
		Variables:  names,
		Body:       s.body,
		Mappings:   s.mappings,
		Statements: s.statements,
		Discarded:  discarded,
		Lines:      s.lineNo,
	}
}
