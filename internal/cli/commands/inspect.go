package commands

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/leapstack-labs/leapmigrate/internal/cli/output"
	"github.com/leapstack-labs/leapmigrate/internal/migrate"
	"github.com/leapstack-labs/leapmigrate/pkg/dialect"
	"github.com/leapstack-labs/leapmigrate/pkg/sqlscript"
	"github.com/spf13/cobra"
)

// InspectOptions holds options for the inspect command.
type InspectOptions struct {
	dialectFlags
	ShowCode bool
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	opts := &InspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect <input-file>",
		Short: "Show how a script would be converted without writing files",
		Long: `Run the conversion in memory and show the statement plan: where each
statement starts, how it was classified, which placeholders it uses and
whether it produces code.

Output adapts to environment:
  - Terminal: Table
  - Piped/Scripted: Markdown table
  - JSON/YAML: Machine-readable plan`,
		Example: `  # Show the plan for a Hive script
  leapmigrate inspect -d hive jobs/daily.hql

  # Include the generated code
  leapmigrate inspect -d redshift --code jobs/users.sql

  # Machine-readable plan
  leapmigrate inspect -d hive jobs/daily.hql --output json`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, opts, args[0])
		},
	}

	opts.register(cmd, true)
	cmd.Flags().BoolVar(&opts.ShowCode, "code", false, "Print the generated code after the plan")
	return cmd
}

func runInspect(cmd *cobra.Command, opts *InspectOptions, input string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	d, err := cmdCtx.Dialect(&opts.dialectFlags)
	if err != nil {
		return err
	}

	f, err := os.Open(input)
	if err != nil {
		return &migrate.FileAccessError{Op: "open input", Path: input, Err: err}
	}
	defer func() { _ = f.Close() }()

	res, err := migrate.Run(cmd.Context(), f, d, cmdCtx.Logger)
	if err != nil {
		return fmt.Errorf("inspect %s: %w", input, err)
	}

	plan := buildPlan(input, res)
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(plan)
	case output.ModeYAML:
		return r.YAML(plan)
	}

	renderPlan(r, d, plan)
	if opts.ShowCode {
		var buf bytes.Buffer
		if _, err := res.WriteTo(&buf); err != nil {
			return err
		}
		r.Println("")
		if r.EffectiveMode() == output.ModeMarkdown {
			r.Println(output.FormatCodeBlock(strings.TrimPrefix(d.Extension, "."), buf.String()))
		} else {
			r.Printf("%s", buf.String())
		}
	}
	return nil
}

func buildPlan(input string, res *migrate.Result) output.PlanOutput {
	plan := output.PlanOutput{
		Input:      input,
		Dialect:    res.Dialect.Name,
		Lines:      res.Lines,
		Variables:  res.Variables,
		Statements: make([]output.StatementInfo, 0, len(res.Statements)),
		Mappings:   make([]output.MappingInfo, 0, len(res.Mappings)),
	}
	if plan.Variables == nil {
		plan.Variables = []string{}
	}
	for _, s := range res.Statements {
		plan.Statements = append(plan.Statements, statementInfo(s))
	}
	for _, m := range res.Mappings {
		plan.Mappings = append(plan.Mappings, output.MappingInfo{Original: m.Original, Sanitized: m.Sanitized})
	}
	if res.Discarded != nil {
		info := statementInfo(res.Discarded)
		info.Kind = "unterminated"
		info.Emitted = false
		plan.Discarded = &info
	}
	return plan
}

func statementInfo(s *sqlscript.Statement) output.StatementInfo {
	info := output.StatementInfo{
		Line:      s.StartLine(),
		Kind:      s.Kind.String(),
		Emitted:   !s.Suppressed(),
		Variables: s.Vars,
	}
	if info.Variables == nil {
		info.Variables = []string{}
	}
	if s.Target != nil {
		info.Target = s.Target.Original
	}
	return info
}

func renderPlan(r *output.Renderer, d *dialect.Dialect, plan output.PlanOutput) {
	r.Header(1, fmt.Sprintf("%s (%s to %s)", plan.Input, d.Source, d.Target))

	rows := make([][]string, 0, len(plan.Statements)+1)
	for _, s := range plan.Statements {
		rows = append(rows, planRow(s))
	}
	if plan.Discarded != nil {
		rows = append(rows, planRow(*plan.Discarded))
	}
	r.Table([]string{"Line", "Kind", "Emitted", "Target", "Variables"}, rows)
	r.Println("")

	if len(plan.Mappings) > 0 {
		r.Header(2, "Table mappings")
		mappings := make([][]string, len(plan.Mappings))
		for i, m := range plan.Mappings {
			mappings[i] = []string{m.Original, m.Sanitized}
		}
		r.Table([]string{"Original", "View"}, mappings)
		r.Println("")
	}

	r.Printf("%d lines, %d statements, %d variables\n", plan.Lines, len(plan.Statements), len(plan.Variables))
}

func planRow(s output.StatementInfo) []string {
	emitted := "no"
	if s.Emitted {
		emitted = "yes"
	}
	return []string{
		strconv.Itoa(s.Line),
		titleCaser.String(s.Kind),
		emitted,
		s.Target,
		strings.Join(s.Variables, ", "),
	}
}
