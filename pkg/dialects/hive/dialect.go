// Package hive provides the HiveQL to Scala Spark migration dialect.
//
// Hive scripts reference ${NAME} placeholders. The generated Scala embeds each
// statement in an s-interpolated string, so the placeholders resolve against
// vals declared at the top of the notebook and are not rewritten inline.
package hive

import (
	"github.com/leapstack-labs/leapmigrate/pkg/dialect"
	"github.com/leapstack-labs/leapmigrate/pkg/sqlscript"
	"github.com/leapstack-labs/leapmigrate/pkg/token"
)

func init() {
	dialect.Register(Hive)
}

// Hive is the HiveQL to Scala Spark dialect.
var Hive = &dialect.Dialect{
	Name:             "hive",
	Source:           "HiveQL",
	Target:           "Databricks (Scala Spark)",
	Grammar:          token.GrammarBrace,
	CommentMarker:    comment,
	Extension:        ".scala",
	MappingExtension: ".searchreplace",
	SourceExtensions: []string{".hql", ".sql", ".q"},
	Patterns: sqlscript.Patterns{
		TempDB:           "${TEMP_DB}",
		TablePlaceholder: `\$\{\w*\}`,
	},
	Emitter: Emitter{},
}
