package migrate

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/leapmigrate/pkg/dialect"
)

// Options configures a file conversion.
type Options struct {
	Dialect *dialect.Dialect
	// OutputDir places generated files in this directory instead of next to
	// the input.
	OutputDir string
	// SkipMappings suppresses the table mapping side file.
	SkipMappings bool
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// Outcome describes a finished file conversion.
type Outcome struct {
	Input       string
	Output      string
	MappingFile string // empty when no side file was written
	Result      *Result
}

// OutputPaths derives the generated file and mapping side file paths for
// input: the input's extension is replaced by the dialect's. mapping is empty
// when the dialect writes no side file.
func OutputPaths(input string, d *dialect.Dialect, outputDir string) (output, mapping string) {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	if outputDir != "" {
		base = filepath.Join(outputDir, filepath.Base(base))
	}
	output = base + d.Extension
	if d.HasMappingFile() {
		mapping = base + d.MappingExtension
	}
	return output, mapping
}

// Convert converts the script at input and writes the generated source, and
// the mapping side file when the dialect has one. Outputs are created before
// the input is read, so an unwritable destination fails fast; on any failure
// the partially written outputs are removed.
func Convert(ctx context.Context, input string, opts Options) (out *Outcome, err error) {
	d := opts.Dialect
	if d == nil {
		return nil, fmt.Errorf("dialect is required")
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	outputPath, mappingPath := OutputPaths(input, d, opts.OutputDir)
	if opts.SkipMappings {
		mappingPath = ""
	}
	if sameFile(input, outputPath) || sameFile(input, mappingPath) {
		return nil, fileError("create output", outputPath, ErrSameFile)
	}

	in, err := os.Open(input)
	if err != nil {
		return nil, fileError("open input", input, err)
	}
	defer func() { _ = in.Close() }()

	if opts.OutputDir != "" {
		if err := os.MkdirAll(opts.OutputDir, 0750); err != nil {
			return nil, fileError("create output directory", opts.OutputDir, err)
		}
	}

	var created []*os.File
	defer func() {
		for _, f := range created {
			_ = f.Close()
			if err != nil {
				_ = os.Remove(f.Name())
			}
		}
	}()

	outFile, err := os.Create(outputPath)
	if err != nil {
		return nil, fileError("create output", outputPath, err)
	}
	created = append(created, outFile)

	var mapFile *os.File
	if mappingPath != "" {
		mapFile, err = os.Create(mappingPath)
		if err != nil {
			return nil, fileError("create mapping file", mappingPath, err)
		}
		created = append(created, mapFile)
	}

	logger.Info("converting script",
		slog.String("input", input),
		slog.String("output", outputPath),
		slog.String("mapping", mappingPath))

	res, err := Run(ctx, in, d, logger)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		return nil, fileError("read input", input, err)
	}

	bw := bufio.NewWriter(outFile)
	if _, err = res.WriteTo(bw); err == nil {
		err = bw.Flush()
	}
	if err == nil {
		err = outFile.Close()
	}
	if err != nil {
		return nil, fileError("write output", outputPath, err)
	}

	if mapFile != nil {
		if err = res.WriteMappings(mapFile); err == nil {
			err = mapFile.Close()
		}
		if err != nil {
			return nil, fileError("write mapping file", mappingPath, err)
		}
	}

	logger.Info("converted script",
		slog.String("input", input),
		slog.Int("statements", len(res.Statements)),
		slog.Int("emitted", res.Emitted()),
		slog.Int("variables", len(res.Variables)),
		slog.Int("mappings", len(res.Mappings)))

	return &Outcome{
		Input:       input,
		Output:      outputPath,
		MappingFile: mappingPath,
		Result:      res,
	}, nil
}

func sameFile(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
