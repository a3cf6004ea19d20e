package hive

import (
	"bufio"
	"fmt"
	"io"

	"github.com/leapstack-labs/leapmigrate/pkg/dialect"
	"github.com/leapstack-labs/leapmigrate/pkg/sqlscript"
)

const (
	comment    = "//"
	queryOpen  = `spark.sql(s"""`
	queryClose = `""")`
)

// Emitter generates Scala Spark notebook source.
type Emitter struct{}

// EmitStatement implements dialect.Emitter.
func (Emitter) EmitStatement(stmt *sqlscript.Statement, ordinal int) []string {
	switch stmt.Kind {
	case sqlscript.KindSchemaMirror, sqlscript.KindDrop:
		return nil
	case sqlscript.KindTarget, sqlscript.KindGeneric:
	default:
		panic(fmt.Sprintf("hive: unhandled statement kind %v", stmt.Kind))
	}

	query := make([]string, 0, len(stmt.Lines))
	for _, l := range stmt.QueryLines() {
		query = append(query, l.Text)
	}
	query, dropRank := dialect.RewriteRank(query)

	closing := queryClose
	if dropRank {
		closing += dialect.DropRankDirective
	}

	out := dialect.Banner(comment, stmt, ordinal)
	view := dialect.ViewName(stmt)
	if view == "" {
		return append(out, dialect.Embed(queryOpen, query, closing)...)
	}

	df := view + "_df"
	out = append(out, dialect.Embed("val "+df+" = "+queryOpen, query, closing+dialect.CacheDirective)...)
	return append(out, fmt.Sprintf("%s.createOrReplaceTempView(%q)", df, view))
}

// WriteDeclarations implements dialect.Emitter. Each variable becomes a val
// holding its own name; the notebook runner substitutes the real value.
func (Emitter) WriteDeclarations(w io.Writer, names []string) error {
	bw := bufio.NewWriter(w)
	_, _ = fmt.Fprintln(bw, comment+" DBTITLE 1,Defining variables")
	_, _ = fmt.Fprintln(bw, comment+" Variables used throughout SQL statements")
	for _, n := range names {
		_, _ = fmt.Fprintf(bw, "val %s=%q\n", n, n)
	}
	_, _ = fmt.Fprintln(bw, comment+" Variables END")
	_, _ = fmt.Fprintln(bw)
	return bw.Flush()
}
