package elements

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTable() *image.RGBA {
	im := image.NewRGBA(image.Rect(0, 0, 100, 100))
	for x := 0; x < 100; x++ {
		for y := 0; y < 100; y++ {
			im.SetRGBA(x, y, color.RGBA{R: uint8(x), G: uint8(y), A: 255})
		}
	}
	return im
}

func TestSliceIcon(t *testing.T) {
	table := testTable()

	icon := SliceIcon(table, Point{X: 10, Y: 20}, image.Pt(48, 48))

	// one pixel of border on every side
	assert.Equal(t, image.Rect(0, 0, 50, 50), icon.Bounds())

	// top-left pixel of the slice is (9, 19) on the table
	r, g, _, _ := icon.At(0, 0).RGBA()
	assert.Equal(t, uint32(9), r>>8)
	assert.Equal(t, uint32(19), g>>8)
}

func TestRenderGIFScales(t *testing.T) {
	icon := &Icon{
		Frames: []image.Image{SliceIcon(testTable(), Point{X: 1, Y: 1}, image.Pt(48, 48))},
		Delays: []int{0},
	}

	b, err := icon.RenderGIF(4)
	require.NoError(t, err)

	g, err := gif.DecodeAll(bytes.NewReader(b))
	require.NoError(t, err)
	require.Len(t, g.Image, 1)
	assert.Equal(t, image.Rect(0, 0, 200, 200), g.Image[0].Bounds())
}

func TestRenderGIFKeepsFrames(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 8, 8))
	icon := &Icon{
		Frames: []image.Image{frame, frame, frame},
		Delays: []int{10, 20, 30},
	}

	b, err := icon.RenderGIF(2)
	require.NoError(t, err)

	g, err := gif.DecodeAll(bytes.NewReader(b))
	require.NoError(t, err)
	assert.Len(t, g.Image, 3)
	assert.Equal(t, []int{10, 20, 30}, g.Delay)
}

func TestSliceAndLoadIcons(t *testing.T) {
	dir := t.TempDir()

	// icon with no coordinates, loaded from disk as-is
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 50, 50))))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "voidium.png"), buf.Bytes(), 0o644))

	r, err := Decode([]byte(sampleTOML))
	require.NoError(t, err)

	icons, err := SliceAndLoadIcons(r, LoadOptions{
		Dir:         dir,
		ElementSize: image.Pt(48, 48),
		Tables:      map[string]image.Image{"normal": testTable()},
	})
	require.NoError(t, err)

	require.Contains(t, icons, "Catbon")
	require.Contains(t, icons, "Voidium")

	// the sliced icon was saved next to the others
	_, err = os.Stat(filepath.Join(dir, "catbon.png"))
	assert.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 50, 50), icons["Catbon"].Frames[0].Bounds())
}

func TestSliceAndLoadIconsMissingFile(t *testing.T) {
	r, err := Decode([]byte(sampleTOML))
	require.NoError(t, err)

	_, err = SliceAndLoadIcons(r, LoadOptions{
		Dir:         t.TempDir(),
		ElementSize: image.Pt(48, 48),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading icon")
}
