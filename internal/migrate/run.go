package migrate

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/leapmigrate/pkg/dialect"
)

// maxLineSize bounds a single source line.
const maxLineSize = 4 * 1024 * 1024

const bom = "\ufeff"

// Run converts the script read from r in a single pass.
func Run(ctx context.Context, r io.Reader, d *dialect.Dialect, logger *slog.Logger) (*Result, error) {
	s, err := NewSession(d, logger)
	if err != nil {
		return nil, err
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	first := true
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := sc.Text()
		if first {
			line = strings.TrimPrefix(line, bom)
			first = false
		}
		s.Feed(line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}

	return s.Finish(), nil
}
