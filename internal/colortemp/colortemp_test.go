package colortemp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_KnownValues(t *testing.T) {
	tests := []struct {
		name string
		k    int
		want Color
	}{
		{"lower bound", Min, Color{R: 255, G: 108, B: 0}},
		{"blue threshold", 1900, Color{R: 255, G: 131, B: 0}},
		{"default", Default, Color{R: 255, G: 177, B: 109}},
		{"upper bound", Max, Color{R: 255, G: 255, B: 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Convert(tt.k))
		})
	}
}

func TestConvert_MonotonicAcrossDomain(t *testing.T) {
	prev := Convert(Min)
	for k := Min + Step; k <= Max; k += Step {
		cur := Convert(k)
		require.Equal(t, uint8(255), cur.R, "red at %dK", k)
		require.GreaterOrEqual(t, cur.G, prev.G, "green dropped at %dK", k)
		require.GreaterOrEqual(t, cur.B, prev.B, "blue dropped at %dK", k)
		prev = cur
	}
}

func TestConvert_NoJarringStep(t *testing.T) {
	const maxDelta = 20
	prev := Convert(Min)
	for k := Min + Step; k <= Max; k += Step {
		cur := Convert(k)
		assert.LessOrEqual(t, absDiff(cur.R, prev.R), maxDelta, "red jump at %dK", k)
		assert.LessOrEqual(t, absDiff(cur.G, prev.G), maxDelta, "green jump at %dK", k)
		assert.LessOrEqual(t, absDiff(cur.B, prev.B), maxDelta, "blue jump at %dK", k)
		prev = cur
	}
}

func TestConvert_ClampsOutsideDomain(t *testing.T) {
	// Channels are uint8, so the interesting part is that the fit's
	// overshoot and negative lobes saturate instead of wrapping.
	assert.Equal(t, uint8(0), Convert(1000).B)
	assert.Equal(t, uint8(255), Convert(40000).B)
	assert.Equal(t, Color{R: 255}, Convert(0))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, Min, Clamp(0))
	assert.Equal(t, Min, Clamp(Min))
	assert.Equal(t, 4200, Clamp(4200))
	assert.Equal(t, Max, Clamp(Max+1))
}

func TestColor_PixelAndHex(t *testing.T) {
	c := Color{R: 0xff, G: 0xb1, B: 0x6d}
	assert.Equal(t, uint32(0xffb16d), c.Pixel())
	assert.Equal(t, "#ffb16d", c.Hex())
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
