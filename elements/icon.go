package elements

import (
	"bytes"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"

	"emperror.dev/errors"
	xdraw "golang.org/x/image/draw"

	// decoders for icons stored on disk
	_ "image/jpeg"
)

// Icon is an element's icon, possibly animated.
type Icon struct {
	Frames []image.Image
	// Delays is the per-frame delay in 100ths of a second.
	// Static icons have a single zero delay.
	Delays []int
}

// SliceIcon crops an element's icon out of a table image, with a 1px border
// around the element cell.
func SliceIcon(table image.Image, at Point, size image.Point) image.Image {
	w, h := size.X+2, size.Y+2
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), table, image.Pt(at.X-1, at.Y-1), draw.Src)
	return dst
}

// LoadIcon reads an icon from disk. GIFs keep all their frames and delays.
func LoadIcon(path string) (*Icon, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading icon")
	}

	if g, err := gif.DecodeAll(bytes.NewReader(b)); err == nil && len(g.Image) > 1 {
		icon := &Icon{}
		for i, frame := range g.Image {
			icon.Frames = append(icon.Frames, frame)
			icon.Delays = append(icon.Delays, g.Delay[i])
		}
		return icon, nil
	}

	im, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, errors.Wrap(err, "decoding icon")
	}
	return &Icon{Frames: []image.Image{im}, Delays: []int{0}}, nil
}

// RenderGIF scales the icon by nearest-neighbour to scale times its size and
// encodes it as a GIF, keeping the frame delays.
func (i *Icon) RenderGIF(scale int) ([]byte, error) {
	if len(i.Frames) == 0 {
		return nil, errors.New("icon has no frames")
	}
	if scale < 1 {
		scale = 1
	}

	out := &gif.GIF{}
	for n, frame := range i.Frames {
		b := frame.Bounds()
		rect := image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale)

		scaled := image.NewRGBA(rect)
		xdraw.NearestNeighbor.Scale(scaled, rect, frame, b, xdraw.Src, nil)

		// no dithering: icons are pixel art
		paletted := image.NewPaletted(rect, palette.Plan9)
		draw.Draw(paletted, rect, scaled, image.Point{}, draw.Src)

		out.Image = append(out.Image, paletted)
		out.Delay = append(out.Delay, i.Delays[n])
	}

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, out); err != nil {
		return nil, errors.Wrap(err, "encoding gif")
	}
	return buf.Bytes(), nil
}

// LoadOptions configures SliceAndLoadIcons.
type LoadOptions struct {
	// Dir is the directory icon files live in.
	Dir string
	// ElementSize is the size of one element cell on a table image.
	ElementSize image.Point
	// Tables maps table names to their images. Elements with coordinates on
	// a missing table fall back to the file already at their path.
	Tables map[string]image.Image
}

// SliceAndLoadIcons loads every element's icon. Elements with coordinates are
// first sliced from their table image and saved to their path, so the on-disk
// icon always matches the table.
func SliceAndLoadIcons(r *Registry, opts LoadOptions) (map[string]*Icon, error) {
	icons := make(map[string]*Icon, r.Len())

	for _, e := range r.Elements() {
		path := filepath.Join(opts.Dir, e.Path)

		if e.Coordinates != nil {
			if table, ok := opts.Tables[e.TableName()]; ok {
				im := SliceIcon(table, *e.Coordinates, opts.ElementSize)

				var buf bytes.Buffer
				if err := png.Encode(&buf, im); err != nil {
					return nil, errors.Wrapf(err, "encoding icon for %q", e.Name)
				}
				if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
					return nil, errors.Wrapf(err, "saving icon for %q", e.Name)
				}
			}
		}

		icon, err := LoadIcon(path)
		if err != nil {
			return nil, errors.Wrapf(err, "loading icon for %q", e.Name)
		}
		icons[e.Name] = icon
	}

	return icons, nil
}
