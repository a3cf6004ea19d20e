package commands

import (
	"strings"

	"github.com/leapstack-labs/leapmigrate/internal/cli/output"
	"github.com/leapstack-labs/leapmigrate/pkg/dialect"
	"github.com/spf13/cobra"
)

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List the supported source dialects",
		Long: `List the registered source dialects with their placeholder syntax,
generated file extension and the extensions picked up by batch conversion.
Configured overrides (dialects.<name> in leapmigrate.yaml) are applied.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDialects(cmd)
		},
	}
}

func runDialects(cmd *cobra.Command) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	infos := make([]output.DialectInfo, 0)
	for _, name := range dialect.List() {
		d, err := cmdCtx.Cfg.Dialect(name)
		if err != nil {
			return err
		}
		infos = append(infos, output.DialectInfo{
			Name:             d.Name,
			Source:           d.Source,
			Target:           d.Target,
			Placeholder:      placeholderExample(d),
			Extension:        d.Extension,
			MappingExtension: d.MappingExtension,
			SourceExtensions: d.SourceExtensions,
		})
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(infos)
	case output.ModeYAML:
		return r.YAML(infos)
	}

	rows := make([][]string, len(infos))
	for i, info := range infos {
		rows[i] = []string{
			titleCaser.String(info.Name),
			info.Source + " -> " + info.Target,
			info.Placeholder,
			info.Extension,
			info.MappingExtension,
			strings.Join(info.SourceExtensions, " "),
		}
	}
	r.Table([]string{"Dialect", "Conversion", "Placeholder", "Output", "Mapping File", "Sources"}, rows)
	return nil
}

func placeholderExample(d *dialect.Dialect) string {
	if d.Grammar.Opener() == '$' {
		return "${NAME}"
	}
	return string(d.Grammar.Opener()) + "NAME"
}
