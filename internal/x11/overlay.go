package x11

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
)

// _NET_WM_STATE client message actions.
const (
	netWMStateRemove = 0
	netWMStateAdd    = 1
)

const stateFullscreen = "_NET_WM_STATE_FULLSCREEN"

const overlayEventMask = xproto.EventMaskKeyPress |
	xproto.EventMaskKeyRelease |
	xproto.EventMaskStructureNotify |
	xproto.EventMaskFocusChange

// Overlay is a top-level window that shows nothing but its background colour.
type Overlay struct {
	Window     xproto.Window
	Monitor    Monitor
	Fullscreen bool
}

// CreateOverlay creates and maps a window covering mon, asking the window
// manager to show it fullscreen without decorations.
func (c *Connection) CreateOverlay(mon Monitor, title string, pixel uint32) (*Overlay, error) {
	conn := c.XUtil.Conn()
	screen := c.XUtil.Screen()

	wid, err := xproto.NewWindowId(conn)
	if err != nil {
		return nil, err
	}

	// Value list order follows the bit positions of the mask (low → high):
	// CwBackPixel before CwEventMask.
	err = xproto.CreateWindowChecked(
		conn,
		screen.RootDepth,
		wid,
		c.Root,
		int16(mon.X), int16(mon.Y),
		uint16(mon.Width), uint16(mon.Height),
		0, // border_width
		xproto.WindowClassInputOutput,
		screen.RootVisual,
		xproto.CwBackPixel|xproto.CwEventMask,
		[]uint32{pixel, overlayEventMask},
	).Check()
	if err != nil {
		return nil, fmt.Errorf("failed to create overlay on %s: %w", mon.Name, err)
	}

	if err := c.setOverlayHints(wid, mon, title); err != nil {
		xproto.DestroyWindow(conn, wid)
		return nil, err
	}

	if err := xproto.MapWindowChecked(conn, wid).Check(); err != nil {
		xproto.DestroyWindow(conn, wid)
		return nil, fmt.Errorf("failed to map overlay on %s: %w", mon.Name, err)
	}

	return &Overlay{Window: wid, Monitor: mon, Fullscreen: true}, nil
}

// hint sets one window property.
type hint struct {
	name string
	set  func() error
}

// applyHints sets hints in order and stops at the first failure.
func applyHints(hints []hint) error {
	for _, h := range hints {
		if err := h.set(); err != nil {
			return fmt.Errorf("failed to set %s: %w", h.name, err)
		}
	}
	return nil
}

// setOverlayHints sets the properties the window manager reads at map time.
func (c *Connection) setOverlayHints(wid xproto.Window, mon Monitor, title string) error {
	xu := c.XUtil

	return applyHints([]hint{
		{"WM_PROTOCOLS", func() error {
			return icccm.WmProtocolsSet(xu, wid, []string{"WM_DELETE_WINDOW"})
		}},
		{"_NET_WM_STATE", func() error {
			return ewmh.WmStateSet(xu, wid, []string{stateFullscreen})
		}},
		// Without a user-specified position most window managers place the
		// window on the focused monitor, and fullscreen follows the placement.
		{"WM_NORMAL_HINTS", func() error {
			return icccm.WmNormalHintsSet(xu, wid, &icccm.NormalHints{
				Flags:  icccm.SizeHintUSPosition | icccm.SizeHintUSSize,
				X:      mon.X,
				Y:      mon.Y,
				Width:  uint(mon.Width),
				Height: uint(mon.Height),
			})
		}},
		{"WM_CLASS", func() error {
			return icccm.WmClassSet(xu, wid, &icccm.WmClass{Instance: "warmscreen", Class: "Warmscreen"})
		}},
		{"_NET_WM_WINDOW_TYPE", func() error {
			return ewmh.WmWindowTypeSet(xu, wid, []string{"_NET_WM_WINDOW_TYPE_NORMAL"})
		}},
		{"_NET_WM_NAME", func() error { return ewmh.WmNameSet(xu, wid, title) }},
		{"WM_NAME", func() error { return icccm.WmNameSet(xu, wid, title) }},
	})
}

// SetBackground repaints the overlay with pixel.
func (c *Connection) SetBackground(o *Overlay, pixel uint32) error {
	conn := c.XUtil.Conn()

	if err := xproto.ChangeWindowAttributesChecked(
		conn,
		o.Window,
		xproto.CwBackPixel,
		[]uint32{pixel},
	).Check(); err != nil {
		return err
	}

	// Clear window to show new color
	return xproto.ClearAreaChecked(conn, false, o.Window, 0, 0, 0, 0).Check()
}

// SetFullscreen adds or removes _NET_WM_STATE_FULLSCREEN and moves the
// window to FullscreenGeometry. Entering moves first so that a session with
// no window manager still covers the monitor; leaving drops the state first
// so the window manager does not restore its saved geometry over the move.
func (c *Connection) SetFullscreen(o *Overlay, fullscreen bool) error {
	x, y, width, height := FullscreenGeometry(o.Monitor, fullscreen)

	if fullscreen {
		if err := c.MoveResizeWindow(o.Window, x, y, width, height); err != nil {
			return err
		}
		if err := c.setFullscreenState(o.Window, true); err != nil {
			return err
		}
	} else {
		if err := c.setFullscreenState(o.Window, false); err != nil {
			return err
		}
		if err := c.MoveResizeWindow(o.Window, x, y, width, height); err != nil {
			return err
		}
	}

	o.Fullscreen = fullscreen
	return nil
}

// setFullscreenState asks the window manager to change the state. Without an
// EWMH window manager nobody answers the request, so the property is written
// directly to keep IsFullscreen truthful.
func (c *Connection) setFullscreenState(wid xproto.Window, fullscreen bool) error {
	if c.hasWindowManager() {
		action := netWMStateRemove
		if fullscreen {
			action = netWMStateAdd
		}
		if err := ewmh.WmStateReq(c.XUtil, wid, action, stateFullscreen); err != nil {
			return fmt.Errorf("failed to request fullscreen=%t: %w", fullscreen, err)
		}
		return nil
	}

	states, _ := ewmh.WmStateGet(c.XUtil, wid)
	if err := ewmh.WmStateSet(c.XUtil, wid, withState(states, stateFullscreen, fullscreen)); err != nil {
		return fmt.Errorf("failed to set _NET_WM_STATE: %w", err)
	}
	return nil
}

// IsFullscreen reads _NET_WM_STATE from the server. The window manager may
// change it on its own, so the last requested state is only a fallback.
func (c *Connection) IsFullscreen(o *Overlay) (bool, error) {
	states, err := ewmh.WmStateGet(c.XUtil, o.Window)
	if err != nil {
		return o.Fullscreen, fmt.Errorf("failed to read _NET_WM_STATE: %w", err)
	}
	return hasState(states, stateFullscreen), nil
}

// hasWindowManager reports whether an EWMH compliant window manager is running.
func (c *Connection) hasWindowManager() bool {
	_, err := ewmh.SupportingWmCheckGet(c.XUtil, c.Root)
	return err == nil
}

// MoveResizeWindow moves and resizes a window to the specified geometry
func (c *Connection) MoveResizeWindow(windowID xproto.Window, x, y, width, height int) error {
	// Use EWMH MoveResize for better WM compatibility
	err := ewmh.MoveresizeWindow(c.XUtil, windowID, x, y, width, height)
	if err == nil {
		return nil
	}

	// Fallback to direct window manipulation
	if cerr := xproto.ConfigureWindowChecked(
		c.XUtil.Conn(),
		windowID,
		xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		configureValues(x, y, width, height),
	).Check(); cerr != nil {
		return fmt.Errorf("failed to move window %d: %w", windowID, errors.Join(err, cerr))
	}
	return nil
}

// configureValues encodes a geometry for ConfigureWindow. Coordinates are
// INT16 on the wire and travel sign-extended in the 32-bit value list.
func configureValues(x, y, width, height int) []uint32 {
	return []uint32{
		uint32(int32(x)),
		uint32(int32(y)),
		uint32(width),
		uint32(height),
	}
}

// Destroy destroys the overlay window.
func (c *Connection) Destroy(o *Overlay) error {
	return xproto.DestroyWindowChecked(c.XUtil.Conn(), o.Window).Check()
}

// FullscreenGeometry is where an overlay belongs in the given state: the whole
// monitor, or RestoreGeometry when windowed.
func FullscreenGeometry(mon Monitor, fullscreen bool) (x, y, width, height int) {
	if fullscreen {
		return mon.X, mon.Y, mon.Width, mon.Height
	}
	return RestoreGeometry(mon)
}

func hasState(states []string, name string) bool {
	for _, s := range states {
		if s == name {
			return true
		}
	}
	return false
}

// withState returns states with name present or absent, keeping the order
// of everything else.
func withState(states []string, name string, present bool) []string {
	out := make([]string, 0, len(states)+1)
	for _, s := range states {
		if s != name {
			out = append(out, s)
		}
	}
	if present {
		out = append(out, name)
	}
	return out
}

// RestoreGeometry is the windowed rectangle for an overlay that left
// fullscreen: two thirds of the monitor, centred.
func RestoreGeometry(mon Monitor) (x, y, width, height int) {
	width = mon.Width * 2 / 3
	height = mon.Height * 2 / 3
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	x = mon.X + (mon.Width-width)/2
	y = mon.Y + (mon.Height-height)/2
	return x, y, width, height
}
