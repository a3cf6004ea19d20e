// Package cli provides the command-line interface for leapmigrate.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/leapstack-labs/leapmigrate/internal/cli/commands"
	"github.com/leapstack-labs/leapmigrate/internal/cli/config"
	"github.com/leapstack-labs/leapmigrate/internal/cli/output"
	"github.com/spf13/cobra"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "leapmigrate",
		Short: "leapmigrate - templated SQL to Spark notebook migration",
		Long: `leapmigrate converts legacy templated SQL batch scripts into Spark
notebook source for Databricks.

HiveQL scripts with ${NAME} placeholders become Scala notebooks; Redshift
scripts with :NAME placeholders become PySpark notebooks. Each statement
becomes a notebook cell, INSERT OVERWRITE targets become cached temp views
and every placeholder is declared once at the top of the notebook.`,
		Version:           Version,
		PersistentPreRunE: loadConfig,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	// Set version template
	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
Templated SQL to Spark notebook migration
`)

	addPersistentFlags(rootCmd)

	// Add subcommands
	rootCmd.AddCommand(commands.NewVersionCommand(commands.BuildInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
	}))
	rootCmd.AddCommand(commands.NewConvertCommand())
	rootCmd.AddCommand(commands.NewDialectCommand("hive"))
	rootCmd.AddCommand(commands.NewDialectCommand("redshift"))
	rootCmd.AddCommand(commands.NewInspectCommand())
	rootCmd.AddCommand(commands.NewBatchCommand())
	rootCmd.AddCommand(commands.NewWatchCommand())
	rootCmd.AddCommand(commands.NewDialectsCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// NewToolCmd creates the root command of a single-dialect tool such as
// migrate-hive: one positional argument, no subcommands.
func NewToolCmd(dialectName string) *cobra.Command {
	cmd := commands.NewDialectCommand(dialectName)
	cmd.Use = "migrate-" + dialectName + " <input-file>"
	cmd.Version = Version
	cmd.PersistentPreRunE = loadConfig
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	addPersistentFlags(cmd)
	return cmd
}

func addPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("config", "", "config file (default: ./leapmigrate.yaml)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().StringP("output", "o", "", "Output format (auto|text|markdown|json|yaml)")
	cmd.PersistentFlags().String("output-dir", "", "Directory for generated files (default: next to the input)")
	cmd.PersistentFlags().Bool("no-mappings", false, "Do not write table mapping side files")

	// Register completion for output flag
	_ = cmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return output.Modes(), cobra.ShellCompDirectiveNoFileComp
	})
}

// loadConfig loads the layered configuration and stores the logger in the
// command context.
func loadConfig(cmd *cobra.Command, _ []string) error {
	// Skip config loading for help and completion commands
	if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
		return nil
	}

	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadConfig(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger := config.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)
	cmd.SetContext(context.WithValue(cmd.Context(), config.LoggerKey(), logger))

	if configFile := config.GetConfigFileUsed(); configFile != "" {
		logger.Info("using config file", "path", configFile)
	}
	if unknown := cfg.UnknownDialects(); len(unknown) > 0 {
		logger.Warn("ignoring settings for unknown dialects", "dialects", unknown)
	}
	return nil
}

// Execute runs the leapmigrate root command.
func Execute() error {
	return execute(NewRootCmd())
}

// ExecuteTool runs the single-dialect tool for dialectName.
func ExecuteTool(dialectName string) error {
	return execute(NewToolCmd(dialectName))
}

// execute runs root and reports errors on its error writer. Argument count
// errors are followed by the usage of the command that failed.
func execute(root *cobra.Command) error {
	cmd, err := root.ExecuteC()
	if err != nil {
		_, _ = fmt.Fprintf(root.ErrOrStderr(), "Error: %v\n", err)
		var argErr *commands.ArgumentCountError
		if errors.As(err, &argErr) && cmd != nil {
			_, _ = fmt.Fprint(root.ErrOrStderr(), cmd.UsageString())
		}
		return err
	}
	return nil
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for leapmigrate.

To load completions:

Bash:
  $ source <(leapmigrate completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ leapmigrate completion bash > /etc/bash_completion.d/leapmigrate
  # macOS:
  $ leapmigrate completion bash > $(brew --prefix)/etc/bash_completion.d/leapmigrate

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. Execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ leapmigrate completion zsh > "${fpath[1]}/_leapmigrate"

Fish:
  $ leapmigrate completion fish | source

PowerShell:
  PS> leapmigrate completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
	return cmd
}
