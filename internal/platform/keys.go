package platform

// X11 keysyms for the keys in Key. Lookups use column 0, so letters arrive
// lower-case, but upper-case is accepted too.
const (
	keysymEscape = 0xff1b
	keysymF      = 0x0046
	keysymf      = 0x0066
	keysymQ      = 0x0051
	keysymq      = 0x0071
	keysymW      = 0x0057
	keysymw      = 0x0077
)

// Core X11 modifier masks (xproto.ModMask*).
const (
	x11ModShift   = 1 << 0
	x11ModLock    = 1 << 1
	x11ModControl = 1 << 2
	x11Mod1       = 1 << 3
	x11Mod2       = 1 << 4
	x11Mod4       = 1 << 6
)

// KeyFromKeysym maps an X11 keysym to a Key.
func KeyFromKeysym(keysym uint32) Key {
	switch keysym {
	case keysymEscape:
		return KeyEscape
	case keysymW, keysymw:
		return KeyW
	case keysymQ, keysymq:
		return KeyQ
	case keysymF, keysymf:
		return KeyF
	default:
		return KeyUnknown
	}
}

// ModifiersFromState converts an X11 key event state mask. CapsLock (Lock) and
// NumLock (Mod2) are dropped so they never interfere with shortcut matching.
func ModifiersFromState(state uint16) Modifiers {
	state &^= x11ModLock | x11Mod2

	var mods Modifiers
	if state&x11ModShift != 0 {
		mods |= ModShift
	}
	if state&x11ModControl != 0 {
		mods |= ModControl
	}
	if state&x11Mod1 != 0 {
		mods |= ModAlt
	}
	if state&x11Mod4 != 0 {
		mods |= ModLogo
	}
	return mods
}

// Keypad keysyms that type characters the overlay understands.
const (
	keysymKPAdd      = 0xffab
	keysymKPSubtract = 0xffad
	keysymKPEqual    = 0xffbd
)

// RuneFromKeysym returns the printable character a keysym types. Latin-1
// printable keysyms equal their code point.
func RuneFromKeysym(keysym uint32) (rune, bool) {
	switch keysym {
	case keysymKPAdd:
		return '+', true
	case keysymKPSubtract:
		return '-', true
	case keysymKPEqual:
		return '=', true
	}
	if keysym >= 0x20 && keysym <= 0x7e {
		return rune(keysym), true
	}
	return 0, false
}
