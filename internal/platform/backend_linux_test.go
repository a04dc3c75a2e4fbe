//go:build linux

package platform

import (
	"errors"
	"testing"
	"time"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sourceStep struct {
	delay time.Duration
	ev    xgb.Event
	err   error
}

// scriptedSource replays steps, then reports a closed connection.
type scriptedSource struct {
	steps []sourceStep
}

func (s *scriptedSource) WaitForEvent() (xgb.Event, error) {
	if len(s.steps) == 0 {
		return nil, nil
	}
	step := s.steps[0]
	s.steps = s.steps[1:]
	time.Sleep(step.delay)
	return step.ev, step.err
}

func newScriptedBackend(steps ...sourceStep) *LinuxBackend {
	return &LinuxBackend{
		source: &scriptedSource{steps: steps},
		tr:     newTestTranslator(),
		events: make(chan Event, eventBuffer),
		stop:   make(chan struct{}),
	}
}

func drain(t *testing.T, events <-chan Event) []Event {
	t.Helper()
	var got []Event
	timeout := time.After(2 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return got
			}
			got = append(got, ev)
		case <-timeout:
			t.Fatal("event stream was not closed")
			return got
		}
	}
}

func pressW(state uint16) xgb.Event {
	return xproto.KeyPressEvent{Event: 7, Detail: keycodeW, State: state}
}

func releaseW(state uint16) xgb.Event {
	return xproto.KeyReleaseEvent{Event: 7, Detail: keycodeW, State: state}
}

func TestReadLoopHeldKeyHasNoReleaseUntilKeyUp(t *testing.T) {
	b := newScriptedBackend(
		sourceStep{ev: pressW(xproto.ModMask4)},
		sourceStep{delay: 20 * time.Millisecond, ev: pressW(xproto.ModMask4)},
		sourceStep{delay: 20 * time.Millisecond, ev: pressW(xproto.ModMask4)},
		sourceStep{delay: 20 * time.Millisecond, ev: releaseW(xproto.ModMask4)},
	)

	got := drain(t, b.Events())
	want := []Event{
		ModifiersChange(7, ModLogo),
		KeyInput(7, KeyW, Pressed),
		Character(7, 'w'),
		KeyInput(7, KeyW, Pressed),
		Character(7, 'w'),
		KeyInput(7, KeyW, Pressed),
		Character(7, 'w'),
		KeyInput(7, KeyW, Released),
	}
	assert.Equal(t, want, got)
}

func TestReadLoopReleaseWithDelayedPressKeepsOrder(t *testing.T) {
	b := newScriptedBackend(
		sourceStep{ev: releaseW(0)},
		sourceStep{delay: 50 * time.Millisecond, ev: pressW(0)},
	)

	got := drain(t, b.Events())
	want := []Event{
		KeyInput(7, KeyW, Released),
		KeyInput(7, KeyW, Pressed),
		Character(7, 'w'),
	}
	assert.Equal(t, want, got)
}

func TestReadLoopSkipsErrorsAndClosesOnDisconnect(t *testing.T) {
	b := newScriptedBackend(
		sourceStep{err: errors.New("BadWindow")},
		sourceStep{ev: xproto.DestroyNotifyEvent{Window: 9}},
	)

	got := drain(t, b.Events())
	require.Len(t, got, 1)
	assert.Equal(t, EventDestroyed, got[0].Kind)
	assert.Equal(t, WindowID(9), got[0].Window)
}
