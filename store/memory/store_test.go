package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balt-dev/titanium/store"
)

func TestStore(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.Icon(ctx, "Catbon", 4)
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.SetIcon(ctx, "Catbon", 4, []byte("gif")))
	b, err := s.Icon(ctx, "Catbon", 4)
	require.NoError(t, err)
	assert.Equal(t, []byte("gif"), b)

	// same element at a different scale is a different entry
	_, err = s.Icon(ctx, "Catbon", 2)
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.SetTable(ctx, "normal", []byte("png")))
	b, err = s.Table(ctx, "normal")
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), b)

	require.NoError(t, s.Clear(ctx))
	_, err = s.Icon(ctx, "Catbon", 4)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.Table(ctx, "normal")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
