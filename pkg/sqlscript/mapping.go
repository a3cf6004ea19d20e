package sqlscript

import (
	"fmt"
	"strings"
)

// TableMapping pairs a templated table name with its sanitized identifier.
type TableMapping struct {
	Original  string
	Sanitized string
}

func (m TableMapping) String() string {
	return fmt.Sprintf("%s -> %s", m.Original, m.Sanitized)
}

// NewTableMapping builds the mapping for a templated table name.
func NewTableMapping(original string) TableMapping {
	return TableMapping{Original: original, Sanitized: Sanitize(original)}
}

var sanitizer = strings.NewReplacer("{", "", "}", "", "$", "", ":", "", ".", "_")

// Sanitize turns a templated table name such as ${TEMP_DB}.my_tbl into a
// plain identifier (temp_db_my_tbl). Sanitize(Sanitize(s)) == Sanitize(s).
func Sanitize(name string) string {
	return strings.ToLower(sanitizer.Replace(name))
}
