// Package file implements a local filesystem-backed data source.
package file

import (
	"context"
	"io"
	"os"

	"github.com/aarguelles2/nTOU/internal/errs"
)

// Local is a filesystem data source that opens files from the local disk.
type Local struct{ path string }

// NewLocal returns a Local data source bound to path.
func NewLocal(path string) *Local { return &Local{path: path} }

// Location returns the configured path.
func (l *Local) Location() string { return l.path }

// Open opens the configured path for reading.
//
// Behavior:
//   - If ctx is already done, Open returns the context error without touching
//     the filesystem.
//   - Filesystem failures are returned as *errs.IOError wrapping the
//     underlying error, so errors.Is(err, os.ErrNotExist) still works.
func (l *Local) Open(ctx context.Context) (io.ReadCloser, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	f, err := os.Open(l.path)
	if err != nil {
		return nil, &errs.IOError{Op: "open", Path: l.path, Err: err}
	}
	return f, nil
}
