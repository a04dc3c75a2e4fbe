package x11

import (
	"fmt"
	"log/slog"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xkb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xprop"
)

// Connection manages the X11 connection and core X resources
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window

	// DetectableAutoRepeat is true when the server sends only presses for a
	// held key, without the synthetic release before each repeat.
	DetectableAutoRepeat bool
}

// NewConnection connects to the given X display ("" means $DISPLAY) and
// loads the keyboard mapping.
func NewConnection(display string) (*Connection, error) {
	var (
		xu  *xgbutil.XUtil
		err error
	)
	if display == "" {
		xu, err = xgbutil.NewConn()
	} else {
		xu, err = xgbutil.NewConnDisplay(display)
	}
	if err != nil {
		return nil, err
	}

	// Keysym lookups need the keyboard mapping.
	keybind.Initialize(xu)

	c := &Connection{
		XUtil: xu,
		Root:  xu.RootWin(),
	}
	if err := c.enableDetectableAutoRepeat(); err != nil {
		slog.Warn("detectable auto-repeat unavailable, held keys may repeat shortcuts", "error", err)
	} else {
		c.DetectableAutoRepeat = true
	}
	return c, nil
}

// enableDetectableAutoRepeat asks XKB to stop sending a release before each
// auto-repeated press, so a held key reads as one press followed by repeats.
func (c *Connection) enableDetectableAutoRepeat() error {
	conn := c.XUtil.Conn()
	if err := xkb.Init(conn); err != nil {
		return fmt.Errorf("xkb init failed: %w", err)
	}

	ext, err := xkb.UseExtension(conn, 1, 0).Reply()
	if err != nil {
		return fmt.Errorf("xkb use extension failed: %w", err)
	}
	if !ext.Supported {
		return fmt.Errorf("xkb %d.%d not supported by server", 1, 0)
	}

	flags, err := xkb.PerClientFlags(
		conn,
		xkb.DeviceSpec(xkb.IdUseCoreKbd),
		xkb.PerClientFlagDetectableAutoRepeat,
		xkb.PerClientFlagDetectableAutoRepeat,
		0, 0, 0,
	).Reply()
	if err != nil {
		return fmt.Errorf("xkb per-client flags failed: %w", err)
	}
	if flags.Value&xkb.PerClientFlagDetectableAutoRepeat == 0 {
		return fmt.Errorf("server refused detectable auto-repeat")
	}
	return nil
}

// Atom interns name.
func (c *Connection) Atom(name string) (xproto.Atom, error) {
	atom, err := xprop.Atm(c.XUtil, name)
	if err != nil {
		return 0, fmt.Errorf("failed to intern %s: %w", name, err)
	}
	return atom, nil
}

// WaitForEvent blocks for the next X event. A nil event and nil error mean
// the connection was closed.
func (c *Connection) WaitForEvent() (xgb.Event, error) {
	ev, xerr := c.XUtil.Conn().WaitForEvent()
	if xerr != nil {
		return nil, xerr
	}
	return ev, nil
}

// KeysymFor resolves a keycode using the shift level implied by state.
func (c *Connection) KeysymFor(keycode xproto.Keycode, state uint16) uint32 {
	if state&xproto.ModMaskShift != 0 {
		if sym := keybind.KeysymGet(c.XUtil, keycode, 1); sym != 0 {
			return uint32(sym)
		}
	}
	return uint32(keybind.KeysymGet(c.XUtil, keycode, 0))
}

// Close cleanly disconnects from the X11 server
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}
