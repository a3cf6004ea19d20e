package output

// ConvertOutput describes one converted script.
type ConvertOutput struct {
	Input       string `json:"input" yaml:"input"`
	Output      string `json:"output" yaml:"output"`
	MappingFile string `json:"mapping_file,omitempty" yaml:"mapping_file,omitempty"`
	Dialect     string `json:"dialect" yaml:"dialect"`
	Lines       int    `json:"lines" yaml:"lines"`
	Statements  int    `json:"statements" yaml:"statements"`
	Emitted     int    `json:"emitted" yaml:"emitted"`
	Variables   int    `json:"variables" yaml:"variables"`
	Mappings    int    `json:"mappings" yaml:"mappings"`
	// DiscardedLine is the first line of an unterminated trailing statement.
	DiscardedLine int `json:"discarded_line,omitempty" yaml:"discarded_line,omitempty"`
}

// BatchOutput describes a directory conversion.
type BatchOutput struct {
	Root    string          `json:"root" yaml:"root"`
	Files   []ConvertOutput `json:"files" yaml:"files"`
	Summary BatchSummary    `json:"summary" yaml:"summary"`
}

// BatchSummary totals a directory conversion.
type BatchSummary struct {
	Files      int `json:"files" yaml:"files"`
	Statements int `json:"statements" yaml:"statements"`
	Emitted    int `json:"emitted" yaml:"emitted"`
	Mappings   int `json:"mappings" yaml:"mappings"`
	Discarded  int `json:"discarded" yaml:"discarded"`
}

// PlanOutput is the dry-run view of a script.
type PlanOutput struct {
	Input      string          `json:"input" yaml:"input"`
	Dialect    string          `json:"dialect" yaml:"dialect"`
	Lines      int             `json:"lines" yaml:"lines"`
	Variables  []string        `json:"variables" yaml:"variables"`
	Statements []StatementInfo `json:"statements" yaml:"statements"`
	Mappings   []MappingInfo   `json:"mappings" yaml:"mappings"`
	Discarded  *StatementInfo  `json:"discarded,omitempty" yaml:"discarded,omitempty"`
}

// StatementInfo describes one statement of a plan.
type StatementInfo struct {
	Line      int      `json:"line" yaml:"line"`
	Kind      string   `json:"kind" yaml:"kind"`
	Emitted   bool     `json:"emitted" yaml:"emitted"`
	Target    string   `json:"target,omitempty" yaml:"target,omitempty"`
	Variables []string `json:"variables" yaml:"variables"`
}

// MappingInfo is a table name mapping.
type MappingInfo struct {
	Original  string `json:"original" yaml:"original"`
	Sanitized string `json:"sanitized" yaml:"sanitized"`
}

// DialectInfo describes a registered dialect.
type DialectInfo struct {
	Name             string   `json:"name" yaml:"name"`
	Source           string   `json:"source" yaml:"source"`
	Target           string   `json:"target" yaml:"target"`
	Placeholder      string   `json:"placeholder" yaml:"placeholder"`
	Extension        string   `json:"extension" yaml:"extension"`
	MappingExtension string   `json:"mapping_extension,omitempty" yaml:"mapping_extension,omitempty"`
	SourceExtensions []string `json:"source_extensions" yaml:"source_extensions"`
}
