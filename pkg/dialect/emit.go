package dialect

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapmigrate/pkg/sqlscript"
)

// RankMarker is the Hive regex column specification that selects every
// column except rank. Spark has no equivalent; it is rewritten to SELECT *
// followed by dropping the rank column.
const RankMarker = "SELECT Y.`(rank)?+.+`"

// DropRankDirective drops the rank column after a rank marker rewrite.
const DropRankDirective = `.drop("rank")`

// CacheDirective caches a target statement's result.
const CacheDirective = ".cache()"

// RewriteRank replaces every rank marker in lines and reports whether one
// was found.
func RewriteRank(lines []string) ([]string, bool) {
	found := false
	out := make([]string, len(lines))
	for i, l := range lines {
		if strings.Contains(l, RankMarker) {
			l = strings.ReplaceAll(l, RankMarker, "SELECT *")
			found = true
		}
		out[i] = l
	}
	return out, found
}

// Banner returns the notebook cell banner for a statement.
func Banner(marker string, stmt *sqlscript.Statement, ordinal int) []string {
	lines := []string{"", marker + " COMMAND ----------"}
	if stmt.Kind == sqlscript.KindTarget && stmt.Target != nil {
		return append(lines,
			fmt.Sprintf("%s DBTITLE 1,Defining %s", marker, stmt.Target.Original),
			fmt.Sprintf("%s Temp table: %s", marker, stmt.Target.Original),
		)
	}
	return append(lines, fmt.Sprintf("%s DBTITLE 1,Statement %d", marker, ordinal))
}

// Embed wraps query lines in an embedded-query call. open is glued to the
// first line and closing to the last, so a one-line query stays on one line.
func Embed(open string, query []string, closing string) []string {
	if len(query) == 0 {
		return []string{open + closing}
	}
	out := make([]string, len(query))
	copy(out, query)
	out[0] = open + out[0]
	out[len(out)-1] += closing
	return out
}

// ViewName returns the name a statement is registered under, or "" for
// statements that produce no named view.
func ViewName(stmt *sqlscript.Statement) string {
	if stmt.Kind != sqlscript.KindTarget || stmt.Target == nil {
		return ""
	}
	return stmt.Target.Sanitized
}
