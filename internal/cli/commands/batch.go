package commands

import (
	"fmt"
	"strconv"

	"github.com/leapstack-labs/leapmigrate/internal/cli/output"
	"github.com/leapstack-labs/leapmigrate/internal/migrate"
	"github.com/spf13/cobra"
)

// NewBatchCommand creates the batch command.
func NewBatchCommand() *cobra.Command {
	flags := &dialectFlags{}
	cmd := &cobra.Command{
		Use:   "batch <directory>",
		Short: "Convert every script under a directory",
		Long: `Convert every script under a directory in parallel.

Scripts are selected by extension (the dialect's source extensions unless
--ext or batch.extensions is set); hidden directories are skipped. Each file
is converted independently and the first failure stops the batch. With
--output-dir the directory structure is mirrored under the output directory.`,
		Example: `  # Convert all Hive scripts under jobs/
  leapmigrate batch -d hive jobs

  # Only .hql files, 8 at a time, into notebooks/
  leapmigrate batch -d hive --ext .hql --concurrency 8 --output-dir notebooks jobs`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, flags, args[0])
		},
	}

	flags.register(cmd, true)
	cmd.Flags().Int("concurrency", 0, "Number of files converted in parallel (default from config)")
	cmd.Flags().StringSlice("ext", nil, "Script extensions to convert, e.g. .hql,.sql")
	return cmd
}

func runBatch(cmd *cobra.Command, flags *dialectFlags, root string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	d, err := cmdCtx.Dialect(flags)
	if err != nil {
		return err
	}

	outcomes, err := migrate.Batch(cmd.Context(), root, migrate.BatchOptions{
		Options:     cmdCtx.MigrateOptions(d),
		Concurrency: cmdCtx.Cfg.Batch.Concurrency,
		Extensions:  cmdCtx.Cfg.Batch.Extensions,
	})
	if err != nil {
		return err
	}

	batch := output.BatchOutput{Root: root, Files: make([]output.ConvertOutput, 0, len(outcomes))}
	for _, out := range outcomes {
		co := convertOutput(out)
		batch.Files = append(batch.Files, co)
		batch.Summary.Statements += co.Statements
		batch.Summary.Emitted += co.Emitted
		batch.Summary.Mappings += co.Mappings
		if co.DiscardedLine > 0 {
			batch.Summary.Discarded++
			r.Warning(fmt.Sprintf("%s: statement starting at line %d has no terminating semicolon and was left out", co.Input, co.DiscardedLine))
		}
	}
	batch.Summary.Files = len(batch.Files)

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(batch)
	case output.ModeYAML:
		return r.YAML(batch)
	}

	if len(batch.Files) == 0 {
		r.Warning(fmt.Sprintf("no %s scripts found under %s", d.Name, root))
		return nil
	}

	r.Header(1, fmt.Sprintf("Converted %d scripts under %s", batch.Summary.Files, root))
	rows := make([][]string, len(batch.Files))
	for i, f := range batch.Files {
		rows[i] = []string{f.Input, f.Output, strconv.Itoa(f.Statements), strconv.Itoa(f.Emitted), strconv.Itoa(f.Mappings)}
	}
	r.Table([]string{"Input", "Output", "Statements", "Emitted", "Mappings"}, rows)
	r.Printf("%d statements, %d emitted, %d mappings\n", batch.Summary.Statements, batch.Summary.Emitted, batch.Summary.Mappings)
	return nil
}
