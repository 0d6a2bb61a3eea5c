package bot

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balt-dev/titanium/store/memory"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func testBot(t *testing.T) *Bot {
	t.Helper()

	b := &Bot{
		Cache:   memory.New(),
		Renders: memory.New(),
	}
	b.Config.Bot.ElementsDir = t.TempDir()
	return b
}

func TestLoadTableImagePrefersDisk(t *testing.T) {
	ctx := context.Background()
	b := testBot(t)

	// a stale cached copy with a different size than the file on disk
	require.NoError(t, b.Cache.SetTable(ctx, "normal", encodePNG(t, 20, 20)))
	require.NoError(t, os.WriteFile(
		filepath.Join(b.Config.Bot.ElementsDir, "table.png"), encodePNG(t, 10, 10), 0o644))

	im, err := b.loadTableImage(ctx, "normal", "table.png")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 10, 10), im.Bounds())

	// the cache is refreshed with the disk copy
	cached, err := b.Cache.Table(ctx, "normal")
	require.NoError(t, err)
	cachedIm, _, err := image.Decode(bytes.NewReader(cached))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 10, 10), cachedIm.Bounds())
}

func TestLoadTableImageCacheFallback(t *testing.T) {
	ctx := context.Background()
	b := testBot(t)

	require.NoError(t, b.Cache.SetTable(ctx, "normal", encodePNG(t, 20, 20)))

	// no file on disk, so the cached copy is used
	im, err := b.loadTableImage(ctx, "normal", "table.png")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 20, 20), im.Bounds())
}

func TestLoadTableImageMissingEverywhere(t *testing.T) {
	b := testBot(t)

	_, err := b.loadTableImage(context.Background(), "normal", "table.png")
	assert.Error(t, err)
}
