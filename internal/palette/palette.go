// Package palette holds the 256-colour table used to turn indexed pixels into
// truecolor.
package palette

import (
	"errors"
	"fmt"
)

// Size is the number of palette entries; it matches the byte value range of an
// indexed pixel.
const Size = 256

// RawSize is the length of a packed r,g,b palette.
const RawSize = Size * 3

var (
	// ErrShortPalette is returned for raw palettes shorter than RawSize.
	ErrShortPalette = errors.New("palette: short palette")
	// ErrGammaLevel is returned for gamma levels outside 0..GammaLevels-1.
	ErrGammaLevel = errors.New("palette: gamma level out of range")
)

// RGB is one palette entry.
type RGB struct {
	R, G, B uint8
}

// Palette is a full colour table, indexed by pixel value.
type Palette [Size]RGB

// Decode fills p from raw r,g,b triples in index order. Bytes past RawSize
// are ignored. On error p is left unchanged.
func (p *Palette) Decode(raw []byte) error {
	if len(raw) < RawSize {
		return fmt.Errorf("%w: got %d bytes, need %d", ErrShortPalette, len(raw), RawSize)
	}
	for i := range p {
		p[i] = RGB{R: raw[3*i], G: raw[3*i+1], B: raw[3*i+2]}
	}
	return nil
}

// Encode returns p as RawSize packed bytes.
func (p *Palette) Encode() []byte {
	raw := make([]byte, RawSize)
	for i, c := range p {
		raw[3*i], raw[3*i+1], raw[3*i+2] = c.R, c.G, c.B
	}
	return raw
}

// Store is the current palette of a display. The table is only ever replaced
// as a whole.
type Store struct {
	raw   Palette
	gamma int
	cur   Palette
}

// Set replaces the palette with raw, applying the current gamma level.
func (s *Store) Set(raw []byte) error {
	var p Palette
	if err := p.Decode(raw); err != nil {
		return err
	}
	s.raw = p
	s.cur = applyGamma(p, s.gamma)
	return nil
}

// SetGamma selects a gamma correction level and re-derives the palette from
// the last one set.
func (s *Store) SetGamma(level int) error {
	if level < 0 || level >= GammaLevels {
		return fmt.Errorf("%w: %d", ErrGammaLevel, level)
	}
	s.gamma = level
	s.cur = applyGamma(s.raw, level)
	return nil
}

// Gamma returns the current gamma level.
func (s *Store) Gamma() int {
	return s.gamma
}

// Palette returns the live table. Callers must not modify it.
func (s *Store) Palette() *Palette {
	return &s.cur
}

// Grayscale returns a raw palette with entry i set to (i, i, i).
func Grayscale() []byte {
	raw := make([]byte, RawSize)
	for i := 0; i < Size; i++ {
		raw[3*i], raw[3*i+1], raw[3*i+2] = byte(i), byte(i), byte(i)
	}
	return raw
}
