package migrate

import (
	"bufio"
	"fmt"
	"io"

	"github.com/leapstack-labs/leapmigrate/pkg/dialect"
	"github.com/leapstack-labs/leapmigrate/pkg/sqlscript"
)

// Result is the outcome of a conversion pass.
type Result struct {
	Dialect    *dialect.Dialect
	Variables  []string                 // sorted, unique
	Body       []string                 // generated lines in source order
	Mappings   []sqlscript.TableMapping // one per target header, in source order
	Statements []*sqlscript.Statement   // every closed statement, including suppressed ones
	Discarded  *sqlscript.Statement     // unterminated trailing statement, if any
	Lines      int                      // source lines read
}

// Emitted returns the number of statements that produced code.
func (r *Result) Emitted() int {
	n := 0
	for _, s := range r.Statements {
		if !s.Suppressed() {
			n++
		}
	}
	return n
}

// WriteTo writes the declarations followed by the body.
func (r *Result) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	if err := r.Dialect.Emitter.WriteDeclarations(cw, r.Variables); err != nil {
		return cw.n, fmt.Errorf("writing declarations: %w", err)
	}

	bw := bufio.NewWriter(cw)
	for _, line := range r.Body {
		_, _ = bw.WriteString(line)
		_ = bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return cw.n, fmt.Errorf("writing body: %w", err)
	}
	return cw.n, nil
}

// WriteMappings writes one "original -> sanitized" line per mapping.
func (r *Result) WriteMappings(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, m := range r.Mappings {
		_, _ = fmt.Fprintln(bw, m.String())
	}
	return bw.Flush()
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
