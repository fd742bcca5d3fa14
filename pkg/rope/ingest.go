package rope

import (
	"context"
	"fmt"
	"io"

	"github.com/textrope/textrope/pkg/pool"
)

// Ingest reads r to EOF, appending each filled block into a rope as it
// is produced. It is the Go rendition of the reference implementation's
// cooperative-async file loader: rather than an async fn with one
// .await per read, Ingest takes a context.Context and checks it before
// every pool read, so a caller loading a large file on a worker
// goroutine can cancel the load without waiting for it to run to
// completion.
func Ingest(ctx context.Context, a *pool.Allocator, r io.Reader) (*Rope, error) {
	out := Empty()
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		slice, n, err := a.ReadFrom(r)
		if err != nil {
			return nil, fmt.Errorf("rope: ingest: %w", err)
		}
		if n == 0 {
			return out, nil
		}
		out = out.appendSlab(slice)
	}
}
