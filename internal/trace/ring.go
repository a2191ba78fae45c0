package trace

import (
	"io"
	"sync"
)

// RingTracer keeps the last N events. With DumpOnClose it writes them out
// when closed, which is how LevelError reports what led up to a failure.
type RingTracer struct {
	mu     sync.Mutex
	buf    []Event
	next   int
	filled bool
	level  Level

	sink   io.Writer
	format Format
}

// NewRingTracer creates a ring of the given capacity (default 4096).
func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = defaultRingSize
	}
	return &RingTracer{buf: make([]Event, capacity), level: level}
}

// DumpOnClose makes Close write the retained events to w.
func (t *RingTracer) DumpOnClose(w io.Writer, format Format) {
	t.mu.Lock()
	t.sink, t.format = w, format
	t.mu.Unlock()
}

func (t *RingTracer) Emit(ev *Event) {
	if ev.Kind != KindHeartbeat && !t.level.ShouldEmit(ev.Scope) {
		return
	}
	t.mu.Lock()
	t.buf[t.next] = *ev
	t.next++
	if t.next == len(t.buf) {
		t.next, t.filled = 0, true
	}
	t.mu.Unlock()
}

// Snapshot returns the retained events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.filled {
		return append([]Event(nil), t.buf[:t.next]...)
	}
	out := make([]Event, 0, len(t.buf))
	out = append(out, t.buf[t.next:]...)
	return append(out, t.buf[:t.next]...)
}

// Dump writes the retained events to w.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	for _, ev := range t.Snapshot() {
		if _, err := w.Write(FormatEvent(&ev, format)); err != nil {
			return err
		}
	}
	return nil
}

func (t *RingTracer) Flush() error { return nil }

func (t *RingTracer) Close() error {
	t.mu.Lock()
	sink, format := t.sink, t.format
	t.sink = nil
	t.mu.Unlock()
	if sink == nil {
		return nil
	}
	return t.Dump(sink, format)
}

func (t *RingTracer) Level() Level  { return t.level }
func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
