package commands

import (
	"fmt"
	"strconv"

	"github.com/leapstack-labs/leapmigrate/internal/cli/output"
	"github.com/leapstack-labs/leapmigrate/internal/migrate"
	"github.com/leapstack-labs/leapmigrate/pkg/dialect"
	"github.com/spf13/cobra"
)

// NewConvertCommand creates the convert command.
func NewConvertCommand() *cobra.Command {
	flags := &dialectFlags{}
	cmd := &cobra.Command{
		Use:   "convert <input-file>",
		Short: "Convert a templated SQL script to Spark notebook source",
		Long: `Convert a legacy templated SQL batch script into Spark notebook source.

The generated file is written next to the input (or into --output-dir) with
the input's extension replaced by the dialect's: .scala for hive, .py for
redshift. Hive conversions also write a .searchreplace file listing every
temp table name mapping.

Statements are split on semicolons at the end of a line. A trailing
statement without a semicolon is reported and left out.`,
		Example: `  # Convert a HiveQL script to Scala
  leapmigrate convert --dialect hive jobs/daily.hql

  # Convert a Redshift script to PySpark into a separate directory
  leapmigrate convert -d redshift --output-dir notebooks jobs/users.sql

  # Use a different scratch database placeholder
  leapmigrate convert -d hive --temp-db '${STAGE_DB}' jobs/daily.hql`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, flags, args[0])
		},
	}

	flags.register(cmd, true)
	return cmd
}

// NewDialectCommand creates a conversion command bound to one dialect.
func NewDialectCommand(name string) *cobra.Command {
	flags := &dialectFlags{Name: name}

	short := "Convert a " + name + " script"
	if d, ok := dialect.Get(name); ok {
		short = fmt.Sprintf("Convert a %s script to %s", d.Source, d.Target)
	}

	cmd := &cobra.Command{
		Use:   name + " <input-file>",
		Short: short,
		Long:  short + ".\n\nShorthand for: leapmigrate convert --dialect " + name + " <input-file>",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, flags, args[0])
		},
	}

	flags.register(cmd, false)
	return cmd
}

func runConvert(cmd *cobra.Command, flags *dialectFlags, input string) error {
	cmdCtx := NewCommandContext(cmd)

	d, err := cmdCtx.Dialect(flags)
	if err != nil {
		return err
	}

	out, err := migrate.Convert(cmd.Context(), input, cmdCtx.MigrateOptions(d))
	if err != nil {
		return err
	}

	return renderConversion(cmdCtx.Renderer, out)
}

func renderConversion(r *output.Renderer, out *migrate.Outcome) error {
	co := convertOutput(out)
	if co.DiscardedLine > 0 {
		r.Warning(fmt.Sprintf("%s: statement starting at line %d has no terminating semicolon and was left out", co.Input, co.DiscardedLine))
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(co)
	case output.ModeYAML:
		return r.YAML(co)
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, "Converted "+co.Input))
		r.Println("")
		r.Println(output.FormatKeyValue("Dialect", co.Dialect))
		r.Println(output.FormatKeyValue("Output", co.Output))
		if co.MappingFile != "" {
			r.Println(output.FormatKeyValue("Mapping file", co.MappingFile))
		}
		r.Println(output.FormatKeyValue("Statements", strconv.Itoa(co.Statements)))
		r.Println(output.FormatKeyValue("Emitted", strconv.Itoa(co.Emitted)))
		r.Println(output.FormatKeyValue("Variables", strconv.Itoa(co.Variables)))
		r.Println(output.FormatKeyValue("Mappings", strconv.Itoa(co.Mappings)))
	default:
		r.Success(fmt.Sprintf("%s -> %s (%d statements, %d emitted, %d variables)",
			co.Input, co.Output, co.Statements, co.Emitted, co.Variables))
		if co.MappingFile != "" {
			r.Println(r.Styles().Muted.Render(fmt.Sprintf("  %d table mappings -> %s", co.Mappings, co.MappingFile)))
		}
	}
	return nil
}
