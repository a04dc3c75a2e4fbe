// Package overlay drives the per-display overlay windows: colour temperature
// changes, window closing, fullscreen toggling and shutdown.
package overlay

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/1broseidon/warmscreen/internal/colortemp"
	"github.com/1broseidon/warmscreen/internal/platform"
)

var (
	// ErrNoDisplays is returned by New when there is nothing to cover.
	ErrNoDisplays = errors.New("no displays found")
	// ErrForcedExit is returned by Tick when exit was requested with no
	// windows left and no graceful hand-off. It is not recoverable.
	ErrForcedExit = errors.New("force exit: exit requested with no windows and no graceful hand-off")
)

// shortcutModifiers must be held, exactly, for the close and quit shortcuts.
const shortcutModifiers = platform.ModLogo

// DefaultTitle is the window title used when Options.Title is empty.
const DefaultTitle = "warmscreen"

// Options configures a Controller.
type Options struct {
	// Temperature is the starting temperature; 0 means colortemp.Default.
	// Out-of-range values are clamped.
	Temperature int
	Title       string
	Logger      *slog.Logger
}

// Controller owns the overlay windows and all state the event handlers touch.
// It is not safe for concurrent use; Run calls it from a single goroutine.
type Controller struct {
	backend platform.Backend
	logger  *slog.Logger

	temperature int
	color       colortemp.Color

	windows   map[platform.WindowID]*WindowRecord
	modifiers platform.Modifiers
	latchW    Latch
	latchQ    Latch

	phase ShutdownPhase
	flow  ControlFlow
}

// New enumerates displays once and opens one overlay per display, painted
// with the starting colour. Any failure closes what was already opened.
func New(backend platform.Backend, opts Options) (*Controller, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	title := opts.Title
	if title == "" {
		title = DefaultTitle
	}
	temperature := colortemp.Default
	if opts.Temperature != 0 {
		temperature = colortemp.Clamp(opts.Temperature)
	}

	c := &Controller{
		backend:     backend,
		logger:      logger,
		temperature: temperature,
		color:       colortemp.Convert(temperature),
		windows:     make(map[platform.WindowID]*WindowRecord),
		phase:       PhaseRunning,
		flow:        FlowWait,
	}

	displays, err := backend.Displays()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate displays: %w", err)
	}
	if len(displays) == 0 {
		return nil, ErrNoDisplays
	}

	for _, d := range displays {
		id, err := backend.CreateOverlay(d, title, c.color)
		if err != nil {
			c.closeAll()
			return nil, fmt.Errorf("failed to create overlay for display %q: %w", d.Name, err)
		}
		c.windows[id] = &WindowRecord{ID: id, Display: d, Fullscreen: true}
		logger.Debug("overlay created", "window", id, "display", d.Name,
			"width", d.Bounds.Width, "height", d.Bounds.Height)
	}

	logger.Info("overlays ready", "windows", len(c.windows),
		"temperature", c.temperature, "color", c.color.Hex())
	return c, nil
}

// Temperature returns the current temperature.
func (c *Controller) Temperature() int { return c.temperature }

// Color returns the colour every window is painted with.
func (c *Controller) Color() colortemp.Color { return c.color }

// Phase returns the shutdown phase.
func (c *Controller) Phase() ShutdownPhase { return c.phase }

// Flow returns the control signal for the event loop.
func (c *Controller) Flow() ControlFlow { return c.flow }

// Len returns the number of open windows.
func (c *Controller) Len() int { return len(c.windows) }

// Windows returns the open window ids in ascending order.
func (c *Controller) Windows() []platform.WindowID {
	ids := make([]platform.WindowID, 0, len(c.windows))
	for id := range c.windows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Window returns the record for id.
func (c *Controller) Window(id platform.WindowID) (WindowRecord, bool) {
	rec, ok := c.windows[id]
	if !ok {
		return WindowRecord{}, false
	}
	return *rec, true
}

// Handle processes one event to completion.
func (c *Controller) Handle(ev platform.Event) {
	switch ev.Kind {
	case platform.EventCloseRequested, platform.EventDestroyed:
		c.closeWindow(ev.Window)
	case platform.EventModifiersChanged:
		c.modifiers = ev.Modifiers
	case platform.EventCharacter:
		c.handleCharacter(ev.Char)
	case platform.EventKey:
		c.handleKey(ev)
	}
}

func (c *Controller) handleCharacter(r rune) {
	switch r {
	case '+', '=':
		if c.temperature < colortemp.Max {
			c.setTemperature(c.temperature + colortemp.Step)
		}
	case '-':
		if c.temperature > colortemp.Min {
			c.setTemperature(c.temperature - colortemp.Step)
		}
	}
}

func (c *Controller) handleKey(ev platform.Event) {
	switch ev.Key {
	case platform.KeyEscape:
		if ev.State == platform.Released {
			c.closeWindow(ev.Window)
		}
	case platform.KeyW:
		switch ev.State {
		case platform.Released:
			c.latchW.Arm()
		case platform.Pressed:
			if c.modifiers == shortcutModifiers && c.latchW.Consume() {
				c.closeWindow(ev.Window)
			}
		}
	case platform.KeyQ:
		switch ev.State {
		case platform.Released:
			c.latchQ.Arm()
		case platform.Pressed:
			if c.modifiers == shortcutModifiers && c.latchQ.Consume() {
				c.logger.Info("quit requested", "windows", len(c.windows))
				c.QuitAll()
			}
		}
	case platform.KeyF:
		if ev.State == platform.Released {
			c.toggleFullscreen(ev.Window)
		}
	}
}

// setTemperature updates the temperature and repaints every window before
// returning.
func (c *Controller) setTemperature(k int) {
	c.temperature = k
	c.color = colortemp.Convert(k)

	for _, id := range c.Windows() {
		if err := c.backend.SetBackground(id, c.color); err != nil {
			c.logger.Warn("failed to repaint overlay", "window", id, "error", err)
		}
	}
	c.logger.Debug("temperature changed", "temperature", k, "color", c.color.Hex())
}

func (c *Controller) toggleFullscreen(id platform.WindowID) {
	rec, ok := c.windows[id]
	if !ok {
		return
	}

	fullscreen := !c.backend.IsFullscreen(id)
	if err := c.backend.SetFullscreen(id, fullscreen); err != nil {
		c.logger.Warn("failed to toggle fullscreen", "window", id, "error", err)
		return
	}
	rec.Fullscreen = fullscreen
	c.logger.Debug("fullscreen toggled", "window", id, "fullscreen", fullscreen)
}

// closeWindow removes and destroys one window. Removing the last one starts a
// graceful shutdown.
func (c *Controller) closeWindow(id platform.WindowID) {
	if _, ok := c.windows[id]; !ok {
		return
	}

	c.destroy(id)

	if len(c.windows) == 0 && c.phase == PhaseRunning {
		c.logger.Info("last overlay closed")
		c.phase = PhaseGraceful
		c.flow = FlowExit
	}
}

// QuitAll requests an exit without the graceful hand-off; the next idle tick
// closes whatever is still open.
func (c *Controller) QuitAll() {
	c.flow = FlowExit
}

// Tick runs one idle pass while an exit is pending and reports whether the
// loop may stop.
func (c *Controller) Tick() (bool, error) {
	if c.flow != FlowExit {
		return false, nil
	}

	if len(c.windows) > 0 {
		c.logger.Info("closing remaining overlays", "windows", len(c.windows))
		c.closeAll()
		c.phase = PhaseTerminal
		return false, nil
	}

	switch c.phase {
	case PhaseGraceful:
		c.phase = PhaseTerminal
		return true, nil
	case PhaseTerminal:
		return true, nil
	default:
		return false, ErrForcedExit
	}
}

func (c *Controller) closeAll() {
	for _, id := range c.Windows() {
		c.destroy(id)
	}
}

func (c *Controller) destroy(id platform.WindowID) {
	delete(c.windows, id)
	if err := c.backend.Close(id); err != nil {
		c.logger.Warn("failed to destroy overlay", "window", id, "error", err)
	}
}
