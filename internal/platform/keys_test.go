package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyFromKeysym(t *testing.T) {
	tests := []struct {
		keysym uint32
		want   Key
	}{
		{0xff1b, KeyEscape},
		{'w', KeyW},
		{'W', KeyW},
		{'q', KeyQ},
		{'Q', KeyQ},
		{'f', KeyF},
		{'F', KeyF},
		{'a', KeyUnknown},
		{0xff0d, KeyUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, KeyFromKeysym(tt.keysym), "keysym %#x", tt.keysym)
	}
}

func TestModifiersFromState(t *testing.T) {
	tests := []struct {
		name  string
		state uint16
		want  Modifiers
	}{
		{"none", 0, 0},
		{"super", 1 << 6, ModLogo},
		{"super with numlock and capslock", 1<<6 | 1<<4 | 1<<1, ModLogo},
		{"shift ctrl", 1 | 1<<2, ModShift | ModControl},
		{"alt super", 1<<3 | 1<<6, ModAlt | ModLogo},
		{"numlock only", 1 << 4, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ModifiersFromState(tt.state))
		})
	}
}

func TestModifiersString(t *testing.T) {
	assert.Equal(t, "none", Modifiers(0).String())
	assert.Equal(t, "logo", ModLogo.String())
	assert.Equal(t, "shift+ctrl+logo", (ModShift | ModControl | ModLogo).String())
}

func TestRuneFromKeysym(t *testing.T) {
	tests := []struct {
		keysym uint32
		want   rune
		ok     bool
	}{
		{'+', '+', true},
		{'=', '=', true},
		{'-', '-', true},
		{'a', 'a', true},
		{0xffab, '+', true},
		{0xffad, '-', true},
		{0xffbd, '=', true},
		{0xff1b, 0, false},
		{0x1f, 0, false},
	}

	for _, tt := range tests {
		got, ok := RuneFromKeysym(tt.keysym)
		assert.Equal(t, tt.ok, ok, "keysym %#x", tt.keysym)
		assert.Equal(t, tt.want, got, "keysym %#x", tt.keysym)
	}
}
