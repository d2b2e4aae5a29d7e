// Package storage holds attachment bytes. The rest of the application only
// sees opaque references and never inspects file contents.
package storage

import (
	"context"
	"io"
)

type Store interface {
	// Save writes the stream and returns an opaque reference plus the
	// number of bytes stored.
	Save(ctx context.Context, r io.Reader, filename string) (ref string, size int64, err error)

	// Open returns a reader for a previously saved reference.
	Open(ctx context.Context, ref string) (io.ReadCloser, error)

	// Remove deletes the stored bytes for a reference.
	Remove(ctx context.Context, ref string) error
}
