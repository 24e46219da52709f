package palette

import (
	"bytes"
	"errors"
	"image/color"
	"testing"
)

func TestStoreSet(t *testing.T) {
	var s Store
	raw := make([]byte, RawSize)
	for i := range raw {
		raw[i] = byte(i * 7)
	}
	if err := s.Set(raw); err != nil {
		t.Fatalf("Set: %v", err)
	}
	p := s.Palette()
	for i := 0; i < Size; i++ {
		want := RGB{R: raw[3*i], G: raw[3*i+1], B: raw[3*i+2]}
		if p[i] != want {
			t.Fatalf("entry %d = %v, want %v", i, p[i], want)
		}
	}
}

func TestStoreSetShort(t *testing.T) {
	var s Store
	if err := s.Set(Grayscale()); err != nil {
		t.Fatal(err)
	}
	before := *s.Palette()

	err := s.Set(make([]byte, RawSize-1))
	if !errors.Is(err, ErrShortPalette) {
		t.Fatalf("Set(767 bytes) error = %v, want ErrShortPalette", err)
	}
	if *s.Palette() != before {
		t.Error("failed Set modified the palette")
	}
	if err := s.Set(nil); !errors.Is(err, ErrShortPalette) {
		t.Errorf("Set(nil) error = %v", err)
	}
}

func TestStoreSetIgnoresTrailingBytes(t *testing.T) {
	var s Store
	raw := append(Grayscale(), 1, 2, 3, 4)
	if err := s.Set(raw); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := s.Palette()[255]; got != (RGB{255, 255, 255}) {
		t.Errorf("entry 255 = %v", got)
	}
}

func TestEncodeDecode(t *testing.T) {
	var p Palette
	raw := Grayscale()
	if err := p.Decode(raw); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(p.Encode(), raw) {
		t.Error("Encode does not reproduce the decoded bytes")
	}
}

func TestGammaIdentityAtZero(t *testing.T) {
	for v := 0; v < 256; v++ {
		if gammaTable[0][v] != uint8(v) {
			t.Fatalf("level 0 maps %d to %d", v, gammaTable[0][v])
		}
	}
}

func TestGammaMonotonic(t *testing.T) {
	for level := 1; level < GammaLevels; level++ {
		tab := gammaTable[level]
		if tab[0] != 0 || tab[255] != 255 {
			t.Errorf("level %d endpoints = %d, %d", level, tab[0], tab[255])
		}
		for v := 1; v < 256; v++ {
			if tab[v] < tab[v-1] {
				t.Fatalf("level %d not monotonic at %d", level, v)
			}
			if tab[v] < uint8(v) {
				t.Fatalf("level %d darkens %d to %d", level, v, tab[v])
			}
		}
	}
}

func TestNearest(t *testing.T) {
	var gray Palette
	if err := gray.Decode(Grayscale()); err != nil {
		t.Fatal(err)
	}
	if got := gray.Nearest(color.White); got != 255 {
		t.Errorf("Nearest(white) in grayscale = %d, want 255", got)
	}
	if got := gray.Nearest(color.Black); got != 0 {
		t.Errorf("Nearest(black) in grayscale = %d, want 0", got)
	}
	if got := gray.Nearest(color.Gray{Y: 128}); got != 128 {
		t.Errorf("Nearest(gray 128) = %d, want 128", got)
	}

	var p Palette
	p[7] = RGB{R: 0xff}
	p[9] = RGB{B: 0xff}
	if got := p.Nearest(color.RGBA{R: 250, G: 10, B: 10, A: 255}); got != 7 {
		t.Errorf("Nearest(red) = %d, want 7", got)
	}
	if got := p.Nearest(color.RGBA{B: 200, A: 255}); got != 9 {
		t.Errorf("Nearest(blue) = %d, want 9", got)
	}
	if got := p.Nearest(color.Black); got != 0 {
		t.Errorf("Nearest(black) = %d, want lowest black index 0", got)
	}
}

func TestStoreSetGamma(t *testing.T) {
	var s Store
	if err := s.Set(Grayscale()); err != nil {
		t.Fatal(err)
	}
	if err := s.SetGamma(2); err != nil {
		t.Fatal(err)
	}
	if got, want := s.Palette()[100].R, gammaTable[2][100]; got != want {
		t.Errorf("gamma 2 entry 100 = %d, want %d", got, want)
	}

	// New palettes pick up the active level.
	raw := make([]byte, RawSize)
	raw[3*7] = 50
	if err := s.Set(raw); err != nil {
		t.Fatal(err)
	}
	if got, want := s.Palette()[7].R, gammaTable[2][50]; got != want {
		t.Errorf("entry 7 = %d, want %d", got, want)
	}

	if err := s.SetGamma(0); err != nil {
		t.Fatal(err)
	}
	if got := s.Palette()[7].R; got != 50 {
		t.Errorf("gamma 0 entry 7 = %d, want 50", got)
	}

	for _, bad := range []int{-1, GammaLevels} {
		if err := s.SetGamma(bad); !errors.Is(err, ErrGammaLevel) {
			t.Errorf("SetGamma(%d) error = %v", bad, err)
		}
	}
	if s.Gamma() != 0 {
		t.Errorf("Gamma() = %d after rejected levels", s.Gamma())
	}
}

func TestLoadPlaypal(t *testing.T) {
	lump := append(Grayscale(), make([]byte, RawSize)...)
	pals, err := LoadPlaypal(bytes.NewReader(lump))
	if err != nil {
		t.Fatal(err)
	}
	if len(pals) != 2 {
		t.Fatalf("got %d palettes, want 2", len(pals))
	}
	if !bytes.Equal(pals[0], Grayscale()) {
		t.Error("first palette mismatch")
	}
	for _, n := range []int{0, 10, RawSize + 1} {
		if _, err := LoadPlaypal(bytes.NewReader(make([]byte, n))); !errors.Is(err, ErrShortPalette) {
			t.Errorf("LoadPlaypal(%d bytes) error = %v", n, err)
		}
	}
}
