//go:build linux

package platform

import (
	"fmt"
	"sort"
	"sync"

	"github.com/1broseidon/warmscreen/internal/colortemp"
	"github.com/1broseidon/warmscreen/internal/x11"
	"github.com/BurntSushi/xgb"
)

const eventBuffer = 64

// LinuxBackend implements Backend on an X11 connection.
type LinuxBackend struct {
	conn     *x11.Connection
	overlays map[WindowID]*x11.Overlay

	source eventSource
	tr     *translator
	events chan Event
	stop   chan struct{}

	startOnce sync.Once
	stopOnce  sync.Once
}

var _ Backend = (*LinuxBackend)(nil)

// eventSource is the blocking half of the X connection the reader uses.
type eventSource interface {
	WaitForEvent() (xgb.Event, error)
}

// Open connects to the X display ("" means $DISPLAY).
func Open(display string) (Backend, error) {
	return NewLinuxBackendFromDisplay(display)
}

// NewLinuxBackendFromDisplay creates a new Linux backend by opening a fresh X11 connection.
func NewLinuxBackendFromDisplay(display string) (*LinuxBackend, error) {
	conn, err := x11.NewConnection(display)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	b, err := NewLinuxBackend(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return b, nil
}

// NewLinuxBackend wraps an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection) (*LinuxBackend, error) {
	protocols, err := conn.Atom("WM_PROTOCOLS")
	if err != nil {
		return nil, err
	}
	deleteWindow, err := conn.Atom("WM_DELETE_WINDOW")
	if err != nil {
		return nil, err
	}

	return &LinuxBackend{
		conn:     conn,
		overlays: make(map[WindowID]*x11.Overlay),
		source:   conn,
		tr: &translator{
			keysym:       conn.KeysymFor,
			protocols:    protocols,
			deleteWindow: deleteWindow,
		},
		events: make(chan Event, eventBuffer),
		stop:   make(chan struct{}),
	}, nil
}

// Disconnect closes the underlying X11 connection, which also ends the
// event stream.
func (b *LinuxBackend) Disconnect() {
	b.stopOnce.Do(func() {
		close(b.stop)
		b.conn.Close()
	})
}

// Displays returns all active displays.
func (b *LinuxBackend) Displays() ([]Display, error) {
	monitors, err := b.conn.GetMonitors()
	if err != nil {
		return nil, err
	}

	displays := make([]Display, 0, len(monitors))
	for _, m := range monitors {
		displays = append(displays, displayFromMonitor(m))
	}

	sort.Slice(displays, func(i, j int) bool {
		return displays[i].ID < displays[j].ID
	})

	return displays, nil
}

// CreateOverlay creates a fullscreen overlay on display.
func (b *LinuxBackend) CreateOverlay(display Display, title string, color colortemp.Color) (WindowID, error) {
	o, err := b.conn.CreateOverlay(monitorFromDisplay(display), title, color.Pixel())
	if err != nil {
		return 0, err
	}
	id := WindowID(o.Window)
	b.overlays[id] = o
	return id, nil
}

// SetBackground repaints an overlay.
func (b *LinuxBackend) SetBackground(windowID WindowID, color colortemp.Color) error {
	o, err := b.overlay(windowID)
	if err != nil {
		return err
	}
	return b.conn.SetBackground(o, color.Pixel())
}

// SetFullscreen enters or leaves fullscreen.
func (b *LinuxBackend) SetFullscreen(windowID WindowID, fullscreen bool) error {
	o, err := b.overlay(windowID)
	if err != nil {
		return err
	}
	return b.conn.SetFullscreen(o, fullscreen)
}

// IsFullscreen reports the overlay's _NET_WM_STATE as the server has it,
// falling back to the last requested state when the property can't be read.
func (b *LinuxBackend) IsFullscreen(windowID WindowID) bool {
	o, ok := b.overlays[windowID]
	if !ok {
		return false
	}
	fullscreen, err := b.conn.IsFullscreen(o)
	if err != nil {
		return o.Fullscreen
	}
	return fullscreen
}

// Close destroys an overlay.
func (b *LinuxBackend) Close(windowID WindowID) error {
	o, err := b.overlay(windowID)
	if err != nil {
		return err
	}
	delete(b.overlays, windowID)
	return b.conn.Destroy(o)
}

// Events starts the reader on first use.
func (b *LinuxBackend) Events() <-chan Event {
	b.startOnce.Do(func() {
		go b.readLoop()
	})
	return b.events
}

// readLoop owns the translator and is the only goroutine reading the X
// connection. Held keys arrive as repeated presses with no release in
// between (see x11.Connection.DetectableAutoRepeat), so events are forwarded
// in order without any pairing.
func (b *LinuxBackend) readLoop() {
	defer close(b.events)

	for {
		ev, err := b.source.WaitForEvent()
		if err != nil {
			// X errors (BadWindow after a destroy, for example) are
			// reported here and are not fatal to the stream.
			select {
			case <-b.stop:
				return
			default:
				continue
			}
		}
		if ev == nil {
			return
		}

		for _, out := range b.tr.translate(ev) {
			select {
			case b.events <- out:
			case <-b.stop:
				return
			}
		}
	}
}

func (b *LinuxBackend) overlay(windowID WindowID) (*x11.Overlay, error) {
	o, ok := b.overlays[windowID]
	if !ok {
		return nil, fmt.Errorf("unknown overlay window %d", windowID)
	}
	return o, nil
}

func displayFromMonitor(m x11.Monitor) Display {
	return Display{
		ID:   m.ID,
		Name: m.Name,
		Bounds: Rect{
			X:      m.X,
			Y:      m.Y,
			Width:  m.Width,
			Height: m.Height,
		},
	}
}

func monitorFromDisplay(d Display) x11.Monitor {
	return x11.Monitor{
		ID:     d.ID,
		Name:   d.Name,
		X:      d.Bounds.X,
		Y:      d.Bounds.Y,
		Width:  d.Bounds.Width,
		Height: d.Bounds.Height,
	}
}
