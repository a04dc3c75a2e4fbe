package platform

import "strings"

// EventKind identifies what an Event carries.
type EventKind int

const (
	// EventCloseRequested is sent when the user asks the window manager to close a window.
	EventCloseRequested EventKind = iota
	// EventDestroyed is sent when a window disappeared without a close request.
	EventDestroyed
	// EventModifiersChanged carries the new modifier state.
	EventModifiersChanged
	// EventCharacter carries a typed character.
	EventCharacter
	// EventKey carries a virtual key and its pressed/released state.
	EventKey
)

// String returns the string representation of the event kind
func (k EventKind) String() string {
	switch k {
	case EventCloseRequested:
		return "close-requested"
	case EventDestroyed:
		return "destroyed"
	case EventModifiersChanged:
		return "modifiers-changed"
	case EventCharacter:
		return "character"
	case EventKey:
		return "key"
	default:
		return "unknown"
	}
}

// Key is a virtual key code. Only the keys the overlay reacts to are named.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyW
	KeyQ
	KeyF
)

func (k Key) String() string {
	switch k {
	case KeyEscape:
		return "escape"
	case KeyW:
		return "w"
	case KeyQ:
		return "q"
	case KeyF:
		return "f"
	default:
		return "unknown"
	}
}

// KeyState is the pressed/released state of a key event.
type KeyState int

const (
	Pressed KeyState = iota
	Released
)

func (s KeyState) String() string {
	if s == Released {
		return "released"
	}
	return "pressed"
}

// Modifiers is a bitset of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModControl
	ModAlt
	ModLogo
)

func (m Modifiers) String() string {
	if m == 0 {
		return "none"
	}
	var parts []string
	if m&ModShift != 0 {
		parts = append(parts, "shift")
	}
	if m&ModControl != 0 {
		parts = append(parts, "ctrl")
	}
	if m&ModAlt != 0 {
		parts = append(parts, "alt")
	}
	if m&ModLogo != 0 {
		parts = append(parts, "logo")
	}
	return strings.Join(parts, "+")
}

// Event is a single input or window lifecycle notification, tagged with the
// window it originated from.
type Event struct {
	Kind      EventKind
	Window    WindowID
	Modifiers Modifiers // EventModifiersChanged
	Char      rune      // EventCharacter
	Key       Key       // EventKey
	State     KeyState  // EventKey
}

// CloseRequest returns an EventCloseRequested for id.
func CloseRequest(id WindowID) Event {
	return Event{Kind: EventCloseRequested, Window: id}
}

// ModifiersChange returns an EventModifiersChanged carrying mods.
func ModifiersChange(id WindowID, mods Modifiers) Event {
	return Event{Kind: EventModifiersChanged, Window: id, Modifiers: mods}
}

// Character returns an EventCharacter for r.
func Character(id WindowID, r rune) Event {
	return Event{Kind: EventCharacter, Window: id, Char: r}
}

// KeyInput returns an EventKey.
func KeyInput(id WindowID, key Key, state KeyState) Event {
	return Event{Kind: EventKey, Window: id, Key: key, State: state}
}
