// Package dialect defines the contract between the migration pipeline and a
// concrete source/target dialect pair.
//
// A Dialect bundles everything that differs between migrations: the
// placeholder grammar, the comment marker of the generated language, the
// classification patterns, file extensions and the Emitter producing target
// source. Concrete dialects are registered from pkg/dialects/*/ packages.
package dialect

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/leapstack-labs/leapmigrate/pkg/sqlscript"
	"github.com/leapstack-labs/leapmigrate/pkg/token"
)

// Emitter turns classified statements into target source.
type Emitter interface {
	// EmitStatement returns the generated lines for stmt. ordinal is the
	// 1-based position of stmt among the statements emitted so far.
	// Suppressed statements yield no lines.
	EmitStatement(stmt *sqlscript.Statement, ordinal int) []string

	// WriteDeclarations writes the variable preamble. names are unique and
	// sorted ascending.
	WriteDeclarations(w io.Writer, names []string) error
}

// Dialect describes one migration: a templated SQL source and the generated
// target language.
type Dialect struct {
	Name   string // registry key, e.g. "hive"
	Source string // human name of the source dialect, e.g. "HiveQL"
	Target string // human name of the target runtime, e.g. "Scala Spark"

	Grammar       token.Grammar
	CommentMarker string // prefix for passthrough comment lines

	Extension        string   // extension of the generated file, with dot
	MappingExtension string   // extension of the table mapping side file; empty for none
	SourceExtensions []string // extensions picked up by batch conversion

	Patterns sqlscript.Patterns
	Emitter  Emitter
}

// Overrides holds user-configurable dialect settings.
type Overrides struct {
	TempDB    string
	Extension string
}

// Comment turns a source comment line into a comment of the target language.
func (d *Dialect) Comment(line string) string {
	return d.CommentMarker + line
}

// HasMappingFile reports whether the dialect writes a table mapping side file.
func (d *Dialect) HasMappingFile() bool {
	return d.MappingExtension != ""
}

// With returns a copy of d with the non-empty overrides applied.
func (d *Dialect) With(o Overrides) *Dialect {
	c := *d
	c.SourceExtensions = append([]string(nil), d.SourceExtensions...)
	if o.TempDB != "" {
		c.Patterns.TempDB = o.TempDB
	}
	if o.Extension != "" {
		c.Extension = normalizeExt(o.Extension)
	}
	return &c
}

// Validate checks that the dialect is usable by the pipeline.
func (d *Dialect) Validate() error {
	var errs []error
	if d.Name == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if d.Emitter == nil {
		errs = append(errs, errors.New("emitter is required"))
	}
	if d.CommentMarker == "" {
		errs = append(errs, errors.New("comment marker is required"))
	}
	if d.Extension == "" {
		errs = append(errs, errors.New("extension is required"))
	}
	if d.MappingExtension != "" && d.MappingExtension == d.Extension {
		errs = append(errs, fmt.Errorf("mapping extension %q collides with output extension", d.MappingExtension))
	}
	if len(errs) > 0 {
		return fmt.Errorf("dialect %q: %w", d.Name, errors.Join(errs...))
	}
	return nil
}

func normalizeExt(ext string) string {
	if ext == "" || strings.HasPrefix(ext, ".") {
		return ext
	}
	return "." + ext
}
