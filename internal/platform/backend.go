package platform

import (
	"errors"

	"github.com/1broseidon/warmscreen/internal/colortemp"
)

// ErrUnsupported is returned by Open on platforms without a windowing backend.
var ErrUnsupported = errors.New("no windowing backend for this platform")

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Display describes a physical display.
type Display struct {
	ID     int
	Name   string
	Bounds Rect
}

// Backend abstracts the window-system operations the overlay controller needs.
//
// All methods except Events are called from the controller's goroutine only.
type Backend interface {
	// Displays lists the displays connected right now.
	Displays() ([]Display, error)
	// CreateOverlay creates a borderless fullscreen window covering display,
	// painted with color, and maps it.
	CreateOverlay(display Display, title string, color colortemp.Color) (WindowID, error)
	SetBackground(windowID WindowID, color colortemp.Color) error
	SetFullscreen(windowID WindowID, fullscreen bool) error
	IsFullscreen(windowID WindowID) bool
	// Close destroys a window created by CreateOverlay.
	Close(windowID WindowID) error
	// Events delivers input and window lifecycle events in arrival order.
	// The channel is closed when the connection goes away.
	Events() <-chan Event
	Disconnect()
}
