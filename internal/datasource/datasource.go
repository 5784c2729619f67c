// Package datasource abstracts where raw tariff input bytes come from.
package datasource

import (
	"context"
	"io"
)

// Source opens a stream of raw input. Location names the source in logs and
// error messages.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	Location() string
}
