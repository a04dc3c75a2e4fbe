//go:build linux

package platform

import (
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// translator turns raw X events into platform events. It remembers the last
// modifier state so changes can be reported as their own event.
type translator struct {
	keysym       func(keycode xproto.Keycode, state uint16) uint32
	protocols    xproto.Atom
	deleteWindow xproto.Atom
	mods         Modifiers
}

func (t *translator) translate(ev xgb.Event) []Event {
	switch e := ev.(type) {
	case xproto.KeyPressEvent:
		return t.key(WindowID(e.Event), e.Detail, e.State, Pressed)
	case xproto.KeyReleaseEvent:
		return t.key(WindowID(e.Event), e.Detail, e.State, Released)
	case xproto.ClientMessageEvent:
		if t.isDeleteWindow(e) {
			return []Event{CloseRequest(WindowID(e.Window))}
		}
	case xproto.DestroyNotifyEvent:
		return []Event{{Kind: EventDestroyed, Window: WindowID(e.Window)}}
	}
	return nil
}

func (t *translator) key(win WindowID, keycode xproto.Keycode, state uint16, ks KeyState) []Event {
	var out []Event

	if mods := ModifiersFromState(state); mods != t.mods {
		t.mods = mods
		out = append(out, ModifiersChange(win, mods))
	}

	sym := t.keysym(keycode, state)
	out = append(out, KeyInput(win, KeyFromKeysym(sym), ks))

	if ks == Pressed {
		if r, ok := RuneFromKeysym(sym); ok {
			out = append(out, Character(win, r))
		}
	}
	return out
}

func (t *translator) isDeleteWindow(e xproto.ClientMessageEvent) bool {
	if e.Type != t.protocols || e.Format != 32 {
		return false
	}
	data := e.Data.Data32
	return len(data) > 0 && xproto.Atom(data[0]) == t.deleteWindow
}
