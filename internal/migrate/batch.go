package migrate

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of files converted in parallel by Batch.
const DefaultConcurrency = 4

// BatchOptions configures a directory conversion.
type BatchOptions struct {
	Options
	// Concurrency bounds parallel conversions; <= 0 uses DefaultConcurrency.
	Concurrency int
	// Extensions selects the scripts to convert; empty uses the dialect's
	// source extensions.
	Extensions []string
}

// Discover returns the scripts under root whose extension is in exts,
// sorted. Hidden directories are skipped.
func Discover(root string, exts []string) ([]string, error) {
	want := make([]string, len(exts))
	for i, e := range exts {
		want[i] = strings.ToLower(e)
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if slices.Contains(want, strings.ToLower(filepath.Ext(path))) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fileError("scan directory", root, err)
	}

	sort.Strings(files)
	return files, nil
}

// Batch converts every script under root. Each file gets its own session;
// the first failure cancels the conversions still pending. Outcomes are
// returned in the order of Discover.
func Batch(ctx context.Context, root string, opts BatchOptions) ([]*Outcome, error) {
	if opts.Dialect == nil {
		return nil, fmt.Errorf("dialect is required")
	}

	exts := opts.Extensions
	if len(exts) == 0 {
		exts = opts.Dialect.SourceExtensions
	}
	files, err := Discover(root, exts)
	if err != nil {
		return nil, err
	}

	plans, err := planOutputs(root, files, opts.Options)
	if err != nil {
		return nil, err
	}

	limit := opts.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	outcomes := make([]*Outcome, len(files))
	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)

	for i, file := range files {
		eg.Go(func() error {
			if err := egctx.Err(); err != nil {
				return err
			}
			out, err := Convert(egctx, file, plans[i])
			if err != nil {
				return err
			}
			outcomes[i] = out
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// planOutputs derives the per-file options of a batch and rejects inputs
// whose generated files would land on the same path, such as daily.hql and
// daily.sql next to each other.
func planOutputs(root string, files []string, base Options) ([]Options, error) {
	plans := make([]Options, len(files))
	claimed := make(map[string]string, len(files))

	for i, file := range files {
		fileOpts := base
		if fileOpts.OutputDir != "" {
			rel, err := filepath.Rel(root, filepath.Dir(file))
			if err != nil {
				return nil, fmt.Errorf("%s: %w", file, err)
			}
			fileOpts.OutputDir = filepath.Join(fileOpts.OutputDir, rel)
		}
		plans[i] = fileOpts

		output, mapping := OutputPaths(file, fileOpts.Dialect, fileOpts.OutputDir)
		paths := []string{output}
		if mapping != "" && !fileOpts.SkipMappings {
			paths = append(paths, mapping)
		}
		for _, p := range paths {
			p = filepath.Clean(p)
			if prev, ok := claimed[p]; ok {
				return nil, fileError("plan output", p,
					fmt.Errorf("%w: %s and %s", ErrOutputCollision, prev, file))
			}
			claimed[p] = file
		}
	}
	return plans, nil
}
