package redshift

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/leapstack-labs/leapmigrate/pkg/dialect"
	"github.com/leapstack-labs/leapmigrate/pkg/sqlscript"
)

const (
	comment   = "#"
	queryOpen = `spark.sql("""`
)

// Emitter generates PySpark notebook source.
type Emitter struct{}

// EmitStatement implements dialect.Emitter.
func (Emitter) EmitStatement(stmt *sqlscript.Statement, ordinal int) []string {
	switch stmt.Kind {
	case sqlscript.KindSchemaMirror, sqlscript.KindDrop:
		return nil
	case sqlscript.KindTarget, sqlscript.KindGeneric:
	default:
		panic(fmt.Sprintf("redshift: unhandled statement kind %v", stmt.Kind))
	}

	query := make([]string, 0, len(stmt.Lines))
	for _, l := range stmt.QueryLines() {
		query = append(query, Substitute(l))
	}
	query, dropRank := dialect.RewriteRank(query)

	closing := `"""` + formatCall(stmt.Vars) + ")"
	if dropRank {
		closing += dialect.DropRankDirective
	}

	out := dialect.Banner(comment, stmt, ordinal)
	view := dialect.ViewName(stmt)
	if view == "" {
		return append(out, dialect.Embed(queryOpen, query, closing)...)
	}

	df := view + "_df"
	out = append(out, dialect.Embed(df+" = "+queryOpen, query, closing+dialect.CacheDirective)...)
	return append(out, fmt.Sprintf("%s.createOrReplaceTempView(%q)", df, view))
}

// Substitute rewrites every :name placeholder of l to a {name} format field.
func Substitute(l sqlscript.Line) string {
	if len(l.Placeholders) == 0 {
		return l.Text
	}
	var b strings.Builder
	last := 0
	for _, p := range l.Placeholders {
		b.WriteString(l.Text[last:p.Span.Start.Offset])
		b.WriteString("{" + p.Name + "}")
		last = p.Span.End.Offset
	}
	b.WriteString(l.Text[last:])
	return b.String()
}

func formatCall(vars []string) string {
	args := make([]string, len(vars))
	for i, v := range vars {
		args[i] = v + "=" + v
	}
	return ".format(" + strings.Join(args, ", ") + ")"
}

// WriteDeclarations implements dialect.Emitter.
func (Emitter) WriteDeclarations(w io.Writer, names []string) error {
	bw := bufio.NewWriter(w)
	_, _ = fmt.Fprintln(bw, "## Variables used throughout SQL statements")
	for _, n := range names {
		_, _ = fmt.Fprintf(bw, "%s='%s'\n", n, n)
	}
	_, _ = fmt.Fprintln(bw, "## Variables END")
	_, _ = fmt.Fprintln(bw)
	return bw.Flush()
}
