package commands

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapmigrate/pkg/dialect"
	"github.com/spf13/cobra"
)

// BuildInfo identifies a leapmigrate build.
type BuildInfo struct {
	Version   string
	GitCommit string
	BuildDate string
}

// NewVersionCommand creates the version command.
func NewVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display leapmigrate version, build metadata and the registered dialects.`,
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "leapmigrate v%s\n", info.Version)
			_, _ = fmt.Fprintln(w, "Templated SQL to Spark notebook migration")
			_, _ = fmt.Fprintf(w, "  commit:   %s\n", orUnknown(info.GitCommit))
			_, _ = fmt.Fprintf(w, "  built:    %s\n", orUnknown(info.BuildDate))
			_, _ = fmt.Fprintf(w, "  dialects: %s\n", orUnknown(strings.Join(dialect.List(), ", ")))
		},
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
