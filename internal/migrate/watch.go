package migrate

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after a change before reconverting.
const DefaultDebounce = 100 * time.Millisecond

// WatchOptions configures watch mode.
type WatchOptions struct {
	Options
	Debounce time.Duration
	// OnConvert is called after every conversion attempt.
	OnConvert func(*Outcome, error)
}

// Watch converts input once and then again after every change to it, until
// ctx is cancelled. Conversion errors are reported through OnConvert and do
// not stop the watch; errors setting up the watcher do.
func Watch(ctx context.Context, input string, opts WatchOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	report := opts.OnConvert
	if report == nil {
		report = func(*Outcome, error) {}
	}

	abs, err := filepath.Abs(input)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", input, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory: editors often replace a file instead of writing it.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fileError("watch", filepath.Dir(abs), err)
	}

	report(Convert(ctx, input, opts.Options))

	trigger := make(chan struct{}, 1)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case trigger <- struct{}{}:
				default:
				}
			})
		case <-trigger:
			logger.Info("change detected", slog.String("input", input))
			report(Convert(ctx, input, opts.Options))
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", slog.Any("error", err))
		}
	}
}
