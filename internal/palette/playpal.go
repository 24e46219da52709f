package palette

import (
	"fmt"
	"io"
)

// LoadPlaypal reads a PLAYPAL-style lump: one or more raw palettes stored back
// to back. Each returned slice is RawSize bytes.
func LoadPlaypal(r io.Reader) ([][]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 || len(data)%RawSize != 0 {
		return nil, fmt.Errorf("%w: lump of %d bytes is not a multiple of %d", ErrShortPalette, len(data), RawSize)
	}
	pals := make([][]byte, 0, len(data)/RawSize)
	for off := 0; off < len(data); off += RawSize {
		pals = append(pals, data[off:off+RawSize:off+RawSize])
	}
	return pals, nil
}
