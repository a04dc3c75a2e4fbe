// Package colortemp maps colour temperatures to approximate black-body RGB colours.
package colortemp

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Temperature bounds and step, in Kelvin.
const (
	Min     = 1500
	Max     = 6600
	Step    = 100
	Default = 3000
)

// Color is an 8-bit RGB triple.
type Color struct {
	R uint8
	G uint8
	B uint8
}

// Pixel returns the colour as a 24-bit TrueColor pixel value (0xRRGGBB).
func (c Color) Pixel() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Hex returns the colour as "#rrggbb".
func (c Color) Hex() string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}

// Clamp limits k to [Min, Max].
func Clamp(k int) int {
	if k < Min {
		return Min
	}
	if k > Max {
		return Max
	}
	return k
}

// Convert returns the colour of a black body at temperature k.
//
// This is Tanner Helland's curve fit. It is only accurate between 1000K and
// 40000K, and callers are expected to stay within [Min, Max].
func Convert(k int) Color {
	t := float64(k) / 100

	var r, g, b float64

	if t <= 66 {
		r = 255
		g = 99.4708025861*math.Log(t) - 161.1195681661
	} else {
		r = 329.698727446 * math.Pow(t-60, -0.1332047592)
		g = 288.1221695283 * math.Pow(t-60, -0.0755148492)
	}

	switch {
	case t >= 66:
		b = 255
	case t <= 19:
		b = 0
	default:
		b = 138.5177312231*math.Log(t-10) - 305.0447927307
	}

	return Color{R: channel(r), G: channel(g), B: channel(b)}
}

func channel(v float64) uint8 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
