package sqlscript

import (
	"fmt"
	"regexp"
)

// Kind is the shape of a closed statement, decided once by a Classifier.
type Kind int

// Kind constants.
const (
	KindGeneric      Kind = iota // anything unrecognized
	KindTarget                   // INSERT OVERWRITE TABLE <placeholder>.<name>
	KindSchemaMirror             // CREATE TABLE IF NOT EXISTS <temp db> ... LIKE
	KindDrop                     // DROP TABLE IF EXISTS
)

func (k Kind) String() string {
	switch k {
	case KindGeneric:
		return "generic"
	case KindTarget:
		return "target"
	case KindSchemaMirror:
		return "schema-mirror"
	case KindDrop:
		return "drop"
	default:
		return "unknown"
	}
}

// Patterns holds the dialect-specific pieces of the classification patterns.
type Patterns struct {
	// TempDB is the literal placeholder naming the scratch database,
	// e.g. "${TEMP_DB}".
	TempDB string
	// TablePlaceholder is a regular expression matching the placeholder that
	// qualifies a target table, e.g. `\$\{\w*\}`.
	TablePlaceholder string
}

// Classifier assigns a Kind to closed statements.
type Classifier struct {
	schemaMirror *regexp.Regexp
	drop         *regexp.Regexp
	target       *regexp.Regexp
}

// NewClassifier compiles the classification patterns for a dialect.
func NewClassifier(p Patterns) (*Classifier, error) {
	if p.TempDB == "" {
		return nil, fmt.Errorf("temp database placeholder is required")
	}
	if p.TablePlaceholder == "" {
		return nil, fmt.Errorf("table placeholder pattern is required")
	}

	target, err := regexp.Compile(`INSERT OVERWRITE TABLE (` + p.TablePlaceholder + `\.\w*)`)
	if err != nil {
		return nil, fmt.Errorf("invalid table placeholder pattern %q: %w", p.TablePlaceholder, err)
	}

	return &Classifier{
		schemaMirror: regexp.MustCompile(`CREATE TABLE IF NOT EXISTS ` + regexp.QuoteMeta(p.TempDB) + `.*LIKE`),
		drop:         regexp.MustCompile(`DROP TABLE IF EXISTS`),
		target:       target,
	}, nil
}

// Classify inspects the first line of stmt and sets its Kind, and its Target
// when the line is a target-table header. A header that also matches the
// schema-mirror or drop pattern still yields a mapping but keeps the
// suppressing kind.
func (c *Classifier) Classify(stmt *Statement) Kind {
	header := stmt.Header()

	stmt.Kind = KindGeneric
	if m := c.target.FindStringSubmatchIndex(header); m != nil {
		mapping := NewTableMapping(header[m[2]:m[3]])
		stmt.Target = &mapping
		stmt.Kind = KindTarget
		stmt.headerEnd = m[1]
	}

	switch {
	case c.schemaMirror.MatchString(header):
		stmt.Kind = KindSchemaMirror
	case c.drop.MatchString(header):
		stmt.Kind = KindDrop
	}
	return stmt.Kind
}
