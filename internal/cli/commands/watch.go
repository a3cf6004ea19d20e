package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/leapstack-labs/leapmigrate/internal/migrate"
	"github.com/spf13/cobra"
)

// WatchOptions holds options for the watch command.
type WatchOptions struct {
	dialectFlags
	Debounce time.Duration
}

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	opts := &WatchOptions{}
	cmd := &cobra.Command{
		Use:   "watch <input-file>",
		Short: "Reconvert a script whenever it changes",
		Long: `Convert a script, then convert it again every time it is saved, until
interrupted. Conversion errors are reported and watching continues.`,
		Example: `  # Keep daily.scala in sync with daily.hql
  leapmigrate watch -d hive jobs/daily.hql`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, opts, args[0])
		},
	}

	opts.register(cmd, true)
	cmd.Flags().DurationVar(&opts.Debounce, "debounce", migrate.DefaultDebounce, "Quiet period after a change before reconverting")
	return cmd
}

func runWatch(cmd *cobra.Command, opts *WatchOptions, input string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	d, err := cmdCtx.Dialect(&opts.dialectFlags)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r.Println(r.Styles().Muted.Render(fmt.Sprintf("Watching %s (Ctrl+C to stop)", input)))

	return migrate.Watch(ctx, input, migrate.WatchOptions{
		Options:  cmdCtx.MigrateOptions(d),
		Debounce: opts.Debounce,
		OnConvert: func(out *migrate.Outcome, err error) {
			if err != nil {
				if ctx.Err() == nil {
					r.Error(err.Error())
				}
				return
			}
			_ = renderConversion(r, out)
		},
	})
}
