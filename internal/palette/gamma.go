package palette

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// GammaLevels is the number of selectable gamma correction levels. Level 0
// leaves colours untouched.
const GammaLevels = 5

var gammaExponents = [GammaLevels]float64{1, 0.87, 0.76, 0.66, 0.57}

// gammaTable[level][v] is the corrected value of channel intensity v.
var gammaTable = buildGammaTables()

func buildGammaTables() (t [GammaLevels][256]uint8) {
	for level, exp := range gammaExponents {
		for v := 0; v < 256; v++ {
			if level == 0 {
				t[level][v] = uint8(v)
				continue
			}
			f := math.Pow(float64(v)/255, exp)
			c := colorful.Color{R: f, G: f, B: f}.Clamped()
			t[level][v], _, _ = c.RGB255()
		}
	}
	return t
}

// Nearest returns the index of the entry perceptually closest to c, measured
// in CIE L*a*b*. Ties go to the lower index.
func (p *Palette) Nearest(c color.Color) byte {
	want, _ := colorful.MakeColor(c)
	best, bestDist := 0, math.Inf(1)
	for i, e := range p {
		d := want.DistanceLab(e.toColorful())
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return byte(best)
}

func (c RGB) toColorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func applyGamma(p Palette, level int) Palette {
	if level == 0 {
		return p
	}
	tab := &gammaTable[level]
	for i, c := range p {
		p[i] = RGB{R: tab[c.R], G: tab[c.G], B: tab[c.B]}
	}
	return p
}
