package video

import "doom-video/internal/palette"

// Pack returns c as 0x00RRGGBB.
func Pack(c palette.RGB) uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Composite converts an indexed buffer to packed truecolor, pixel for pixel.
func Composite(indexed []byte, pal *palette.Palette) []uint32 {
	out := make([]uint32, len(indexed))
	for i, v := range indexed {
		out[i] = Pack(pal[v])
	}
	return out
}

// Fill writes the width x height indexed buffer into a locked backing store,
// one row at a time so that padded strides are respected.
func Fill(dst Pixels, indexed []byte, width, height int, pal *palette.Palette) {
	var lut [palette.Size]uint32
	for i := range pal {
		lut[i] = Pack(pal[i])
	}
	for y := 0; y < height; y++ {
		src := indexed[y*width : (y+1)*width]
		row := dst.Pix[y*dst.Stride : y*dst.Stride+width]
		for x, v := range src {
			row[x] = lut[v]
		}
	}
}
