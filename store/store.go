// Package store defines a cache for rendered icons and table images.
// Rendering an icon means scaling and re-encoding it as a GIF, which is slow
// enough to be worth caching; a persistent cache (redis) also survives bot
// restarts, so the table doesn't need refetching on every boot.
package store

import (
	"context"

	"emperror.dev/errors"
)

const ErrNotFound = errors.Sentinel("value not found in store")

type Store interface {
	// Icon returns the rendered GIF for an element at the given scale.
	Icon(ctx context.Context, name string, scale int) ([]byte, error)
	SetIcon(ctx context.Context, name string, scale int, data []byte) error

	// Table returns the encoded image bytes for a table.
	Table(ctx context.Context, name string) ([]byte, error)
	SetTable(ctx context.Context, name string, data []byte) error

	// Clear drops all cached renders, used after a sync.
	Clear(ctx context.Context) error
}
