package commands

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/leapstack-labs/leapmigrate/internal/cli/config"
	"github.com/leapstack-labs/leapmigrate/internal/cli/output"
	"github.com/leapstack-labs/leapmigrate/internal/migrate"
	"github.com/leapstack-labs/leapmigrate/pkg/dialect"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the loaded configuration.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode, err := output.ParseMode(cfg.OutputFormat)
	if err != nil {
		mode = output.ModeAuto
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode),
	}
}

// Dialect resolves the dialect selected on the command line.
func (c *CommandContext) Dialect(f *dialectFlags) (*dialect.Dialect, error) {
	d, err := c.Cfg.Dialect(f.Name)
	if err != nil {
		return nil, err
	}
	if f.TempDB != "" {
		d = d.With(dialect.Overrides{TempDB: f.TempDB})
	}
	return d, nil
}

// MigrateOptions returns conversion options for d.
func (c *CommandContext) MigrateOptions(d *dialect.Dialect) migrate.Options {
	return migrate.Options{
		Dialect:      d,
		OutputDir:    c.Cfg.OutputDir,
		SkipMappings: !c.Cfg.WriteMappings,
		Logger:       c.Logger,
	}
}

// dialectFlags are the dialect selection flags shared by the conversion commands.
type dialectFlags struct {
	Name   string
	TempDB string
}

func (f *dialectFlags) register(cmd *cobra.Command, selectable bool) {
	if selectable {
		cmd.Flags().StringVarP(&f.Name, "dialect", "d", "", "Source dialect ("+strings.Join(dialect.List(), "|")+")")
		_ = cmd.MarkFlagRequired("dialect")
		_ = cmd.RegisterFlagCompletionFunc("dialect", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			return dialect.List(), cobra.ShellCompDirectiveNoFileComp
		})
	}
	cmd.Flags().StringVar(&f.TempDB, "temp-db", "", "Placeholder naming the scratch database (overrides config)")
}

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	outputFormat := getEnvOrDefault(config.EnvPrefix+"OUTPUT", config.DefaultOutput)
	concurrency, err := strconv.Atoi(os.Getenv(config.EnvPrefix + "BATCH__CONCURRENCY"))
	if err != nil || concurrency <= 0 {
		concurrency = config.DefaultConcurrency
	}

	return &config.Config{
		OutputDir:     os.Getenv(config.EnvPrefix + "OUTPUT_DIR"),
		Verbose:       os.Getenv(config.EnvPrefix+"VERBOSE") == "true",
		OutputFormat:  outputFormat,
		WriteMappings: os.Getenv(config.EnvPrefix+"WRITE_MAPPINGS") != "false",
		Batch:         config.BatchConfig{Concurrency: concurrency},
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func convertOutput(out *migrate.Outcome) output.ConvertOutput {
	res := out.Result
	co := output.ConvertOutput{
		Input:       out.Input,
		Output:      out.Output,
		MappingFile: out.MappingFile,
		Dialect:     res.Dialect.Name,
		Lines:       res.Lines,
		Statements:  len(res.Statements),
		Emitted:     res.Emitted(),
		Variables:   len(res.Variables),
		Mappings:    len(res.Mappings),
	}
	if res.Discarded != nil {
		co.DiscardedLine = res.Discarded.StartLine()
	}
	return co
}
