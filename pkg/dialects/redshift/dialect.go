// Package redshift provides the Redshift SQL to PySpark migration dialect.
//
// Redshift scripts reference :name placeholders. Every placeholder is
// rewritten to a {name} format field and each statement ends with a
// .format(...) call over the names it references.
package redshift

import (
	"github.com/leapstack-labs/leapmigrate/pkg/dialect"
	"github.com/leapstack-labs/leapmigrate/pkg/sqlscript"
	"github.com/leapstack-labs/leapmigrate/pkg/token"
)

func init() {
	dialect.Register(Redshift)
}

// Redshift is the Redshift SQL to PySpark dialect.
var Redshift = &dialect.Dialect{
	Name:             "redshift",
	Source:           "Redshift SQL",
	Target:           "Databricks (PySpark)",
	Grammar:          token.GrammarColon,
	CommentMarker:    comment,
	Extension:        ".py",
	SourceExtensions: []string{".sql", ".rsql"},
	Patterns: sqlscript.Patterns{
		TempDB:           ":TEMP_DB",
		TablePlaceholder: `:\w+`,
	},
	Emitter: Emitter{},
}
