package trace

import (
	"bufio"
	"io"
	"sync"
)

// StreamTracer writes events as they arrive through a buffered writer.
type StreamTracer struct {
	mu     sync.Mutex
	out    io.Writer
	w      *bufio.Writer
	level  Level
	format Format
}

// NewStreamTracer creates a StreamTracer writing to w.
func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	if format == FormatAuto {
		format = FormatText
	}
	return &StreamTracer{out: w, w: bufio.NewWriter(w), level: level, format: format}
}

func (t *StreamTracer) Emit(ev *Event) {
	if ev.Kind != KindHeartbeat && !t.level.ShouldEmit(ev.Scope) {
		return
	}
	data := FormatEvent(ev, t.format)
	t.mu.Lock()
	defer t.mu.Unlock()
	// ошибки записи трейса не должны ронять компиляцию
	_, _ = t.w.Write(data) //nolint:errcheck
	// heartbeats exist to be seen while the compiler is stuck
	if ev.Kind == KindHeartbeat {
		_ = t.w.Flush() //nolint:errcheck
	}
}

func (t *StreamTracer) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.w.Flush()
}

// Close flushes and closes the underlying writer unless it is stderr/stdout.
func (t *StreamTracer) Close() error {
	if err := t.Flush(); err != nil {
		return err
	}
	if c, ok := t.out.(io.Closer); ok && !isStdStream(t.out) {
		return c.Close()
	}
	return nil
}

func (t *StreamTracer) Level() Level  { return t.level }
func (t *StreamTracer) Enabled() bool { return t.level > LevelOff }
