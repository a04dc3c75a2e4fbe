package overlay

import (
	"errors"
	"io"
	"log/slog"

	"github.com/1broseidon/warmscreen/internal/colortemp"
	"github.com/1broseidon/warmscreen/internal/platform"
)

// fakeBackend is an in-memory platform.Backend.
type fakeBackend struct {
	displays   []platform.Display
	displayErr error
	failAfter  int // CreateOverlay fails once this many windows exist; 0 = never

	nextID     platform.WindowID
	background map[platform.WindowID]colortemp.Color
	fullscreen map[platform.WindowID]bool
	closed     []platform.WindowID
	events     chan platform.Event
}

func newFakeBackend(n int) *fakeBackend {
	f := &fakeBackend{
		nextID:     100,
		background: make(map[platform.WindowID]colortemp.Color),
		fullscreen: make(map[platform.WindowID]bool),
		events:     make(chan platform.Event, 16),
	}
	for i := 0; i < n; i++ {
		f.displays = append(f.displays, platform.Display{
			ID:     i,
			Name:   "DP-" + string(rune('1'+i)),
			Bounds: platform.Rect{X: i * 1920, Width: 1920, Height: 1080},
		})
	}
	return f
}

func (f *fakeBackend) Displays() ([]platform.Display, error) {
	return f.displays, f.displayErr
}

func (f *fakeBackend) CreateOverlay(_ platform.Display, _ string, color colortemp.Color) (platform.WindowID, error) {
	if f.failAfter > 0 && len(f.background) >= f.failAfter {
		return 0, errors.New("create window: bad match")
	}
	f.nextID++
	f.background[f.nextID] = color
	f.fullscreen[f.nextID] = true
	return f.nextID, nil
}

func (f *fakeBackend) SetBackground(id platform.WindowID, color colortemp.Color) error {
	if _, ok := f.background[id]; !ok {
		return errors.New("unknown window")
	}
	f.background[id] = color
	return nil
}

func (f *fakeBackend) SetFullscreen(id platform.WindowID, fullscreen bool) error {
	if _, ok := f.fullscreen[id]; !ok {
		return errors.New("unknown window")
	}
	f.fullscreen[id] = fullscreen
	return nil
}

func (f *fakeBackend) IsFullscreen(id platform.WindowID) bool {
	return f.fullscreen[id]
}

func (f *fakeBackend) Close(id platform.WindowID) error {
	if _, ok := f.background[id]; !ok {
		return errors.New("unknown window")
	}
	delete(f.background, id)
	delete(f.fullscreen, id)
	f.closed = append(f.closed, id)
	return nil
}

func (f *fakeBackend) Events() <-chan platform.Event { return f.events }

func (f *fakeBackend) Disconnect() {}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
