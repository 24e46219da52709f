// Package snapshot turns captured indexed screens into images for tooling and
// automated checks.
package snapshot

import (
	"fmt"
	"image"
	"image/color"

	"doom-video/internal/palette"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
)

// Image wraps a width x height capture as a paletted image. The capture is
// referenced, not copied.
func Image(capture []byte, width, height int, pal *palette.Palette) (*image.Paletted, error) {
	if len(capture) < width*height {
		return nil, fmt.Errorf("snapshot: capture has %d bytes, need %d", len(capture), width*height)
	}
	cp := make(color.Palette, palette.Size)
	for i, c := range pal {
		cp[i] = color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
	}
	return &image.Paletted{
		Pix:     capture[:width*height],
		Stride:  width,
		Rect:    image.Rect(0, 0, width, height),
		Palette: cp,
	}, nil
}

// Scale blows img up by an integer factor with nearest-neighbour sampling, so
// each source pixel becomes a factor x factor block.
func Scale(img image.Image, factor int) *image.RGBA {
	b := img.Bounds()
	if factor < 1 {
		factor = 1
	}
	return transform.Resize(img, b.Dx()*factor, b.Dy()*factor, transform.NearestNeighbor)
}

// WritePNG encodes img to path.
func WritePNG(path string, img image.Image) error {
	return imgio.Save(path, img, imgio.PNGEncoder())
}
