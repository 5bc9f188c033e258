// Package playback binds a live playback position to the timeline views.
//
// The dashboard has no media element; Transport is the position source,
// a virtual playback clock over the artifact's known duration. Poller
// samples whatever position source it is given on a fixed interval, so
// the charts stay eventually consistent with playback within one tick.
package playback

import (
	"sync"
	"time"
)

// PositionSource is anything that can report and move a playback position.
type PositionSource interface {
	Position() float64
	Seek(seconds float64) error
}

// Transport is a play/pause/seek clock over a fixed duration. The position
// advances with wall time while playing and clamps at the end.
//
// The clock is injectable so tests advance time deterministically.
type Transport struct {
	mu       sync.Mutex
	now      func() time.Time
	duration float64
	playing  bool
	base     float64   // position when play state last changed
	mark     time.Time // wall time of that change
}

// NewTransport creates a paused transport at position zero.
func NewTransport(durationSeconds float64) *Transport {
	return NewTransportWithClock(durationSeconds, time.Now)
}

// NewTransportWithClock injects the time source.
func NewTransportWithClock(durationSeconds float64, now func() time.Time) *Transport {
	if durationSeconds < 0 {
		durationSeconds = 0
	}
	return &Transport{now: now, duration: durationSeconds, mark: now()}
}

// Duration returns the timeline length in seconds.
func (t *Transport) Duration() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.duration
}

// SetDuration replaces the timeline length, clamping the position into the
// new range. Called when a different artifact loads.
func (t *Transport) SetDuration(seconds float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if seconds < 0 {
		seconds = 0
	}
	t.base = t.positionLocked()
	t.mark = t.now()
	t.duration = seconds
	if t.base > seconds {
		t.base = seconds
	}
}

// Playing reports whether the transport is advancing.
func (t *Transport) Playing() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.playing
}

// Play starts advancing the position.
func (t *Transport) Play() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.playing {
		return
	}
	t.mark = t.now()
	t.playing = true
}

// Pause freezes the position.
func (t *Transport) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.playing {
		return
	}
	t.base = t.positionLocked()
	t.mark = t.now()
	t.playing = false
}

// Toggle flips between playing and paused.
func (t *Transport) Toggle() {
	if t.Playing() {
		t.Pause()
	} else {
		t.Play()
	}
}

// Position returns the current playback offset in seconds.
func (t *Transport) Position() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.positionLocked()
}

func (t *Transport) positionLocked() float64 {
	pos := t.base
	if t.playing {
		pos += t.now().Sub(t.mark).Seconds()
	}
	if pos > t.duration {
		pos = t.duration
	}
	if pos < 0 {
		pos = 0
	}
	return pos
}

// Seek jumps to an absolute position, clamped into [0, duration].
func (t *Transport) Seek(seconds float64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if seconds < 0 {
		seconds = 0
	}
	if seconds > t.duration {
		seconds = t.duration
	}
	t.base = seconds
	t.mark = t.now()
	return nil
}
