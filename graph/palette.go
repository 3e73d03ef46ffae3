package graph

import (
	"image/color"
	"math"
)

// Oklch is a colour in the OKLCH space. H is in degrees.
type Oklch struct {
	L, C, H, A float32
}

// NRGBA converts c to 8-bit sRGB, clipping out-of-gamut channels.
func (c Oklch) NRGBA() color.NRGBA {
	h := float64(c.H) * math.Pi / 180
	L := float64(c.L)
	a := float64(c.C) * math.Cos(h)
	b := float64(c.C) * math.Sin(h)

	l := cube(L + 0.3963377774*a + 0.2158037573*b)
	m := cube(L - 0.1055613458*a - 0.0638541728*b)
	s := cube(L - 0.0894841775*a - 1.2914855480*b)

	return color.NRGBA{
		R: srgb8(+4.0767416621*l - 3.3077115913*m + 0.2309699292*s),
		G: srgb8(-1.2684380046*l + 2.6097574011*m - 0.3413193965*s),
		B: srgb8(-0.0041960863*l - 0.7034186147*m + 1.7076147010*s),
		A: uint8(clamp(math.Round(float64(c.A)*255), 0, 255)),
	}
}

func cube(v float64) float64 { return v * v * v }

func srgb8(linear float64) uint8 {
	linear = clamp(linear, 0, 1)
	var v float64
	if linear <= 0.0031308 {
		v = 12.92 * linear
	} else {
		v = 1.055*math.Pow(linear, 1/2.4) - 0.055
	}
	return uint8(math.Round(clamp(v, 0, 1) * 255))
}

// Palette returns n colours of equal lightness and chroma whose hues are
// spread by the golden angle, so neighbours stay distinguishable.
func Palette(n int) []color.NRGBA {
	out := make([]color.NRGBA, 0, max(n, 0))
	for i := 0; i < n; i++ {
		c := Oklch{
			L: .5,
			C: .2,
			H: float32(math.Mod(float64(i+1)*math.Phi*2*math.Pi, 1)) * 360,
			A: 1,
		}
		out = append(out, c.NRGBA())
	}
	return out
}

// DefaultPalette colours data sets that do not name a colour.
var DefaultPalette = Palette(20)

// PaletteColor returns the i'th colour of DefaultPalette, wrapping around.
func PaletteColor(i int) color.NRGBA {
	if i < 0 {
		i = -i
	}
	return DefaultPalette[i%len(DefaultPalette)]
}
