package migrate

import (
	"errors"
	"fmt"
)

// ErrSameFile is returned when the derived output path equals the input path.
var ErrSameFile = errors.New("output path equals input path")

// ErrOutputCollision is returned by Batch when two inputs derive the same
// output path.
var ErrOutputCollision = errors.New("inputs share an output path")

// FileAccessError reports an input that cannot be read or an output that
// cannot be written. Conversions never retry on it.
type FileAccessError struct {
	Op   string // e.g. "open input", "create output"
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error { return e.Err }

func fileError(op, path string, err error) error {
	return &FileAccessError{Op: op, Path: path, Err: err}
}
