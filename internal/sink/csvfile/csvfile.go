// Package csvfile writes a table to a CSV file atomically: rows go to a temp
// file in the destination directory which is renamed over the destination
// only after every row was written and synced. A failed run never leaves a
// truncated output behind.
package csvfile

import (
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/aarguelles2/nTOU/internal/errs"
)

// DefaultPerm is applied to the output file.
const DefaultPerm os.FileMode = 0o644

// Options tunes the writer. Zero values select defaults.
type Options struct {
	Comma rune        // defaults to ','
	Perm  os.FileMode // defaults to DefaultPerm
}

// Write writes header and rows to path. Any failure is returned as
// *errs.IOError and the destination is left untouched.
func Write(path string, header []string, rows [][]string, opt Options) (err error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	perm := opt.Perm
	if perm == 0 {
		perm = DefaultPerm
	}

	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return &errs.IOError{Op: "create", Path: path, Err: err}
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	w := csv.NewWriter(tmp)
	if opt.Comma != 0 {
		w.Comma = opt.Comma
	}
	if err := w.Write(header); err != nil {
		return &errs.IOError{Op: "write", Path: tmpName, Err: err}
	}
	if err := w.WriteAll(rows); err != nil {
		return &errs.IOError{Op: "write", Path: tmpName, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		return &errs.IOError{Op: "sync", Path: tmpName, Err: err}
	}
	if err := tmp.Chmod(perm); err != nil {
		return &errs.IOError{Op: "chmod", Path: tmpName, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &errs.IOError{Op: "close", Path: tmpName, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		return &errs.IOError{Op: "rename", Path: path, Err: err}
	}
	return nil
}
