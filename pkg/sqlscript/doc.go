// Package sqlscript implements the line-oriented machinery shared by every
// migration dialect: placeholder scanning, statement accumulation and
// statement classification.
//
// It is deliberately not a SQL parser. A script is consumed one line at a
// time; a statement is the run of non-comment lines up to and including the
// first line whose trimmed text ends in a semicolon, and only the first line
// of a statement is inspected to decide how it is rewritten.
package sqlscript
