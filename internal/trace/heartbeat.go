package trace

import (
	"fmt"
	"sync"
	"time"
)

// Heartbeat periodically reports the longest running open span. A
// heartbeat that keeps naming the same span points at a hang, typically
// a runaway instantiation.
type Heartbeat struct {
	tracer Tracer
	stop   chan struct{}
	once   sync.Once
	done   sync.WaitGroup
}

// StartHeartbeat emits a heartbeat every interval until Stop. It returns
// nil when tracing is off or interval is not positive.
func StartHeartbeat(t Tracer, interval time.Duration) *Heartbeat {
	if t == nil || !t.Enabled() || interval <= 0 {
		return nil
	}
	h := &Heartbeat{tracer: t, stop: make(chan struct{})}
	h.done.Add(1)
	go h.run(interval)
	return h
}

func (h *Heartbeat) run(interval time.Duration) {
	defer h.done.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for beat := 1; ; beat++ {
		select {
		case now := <-ticker.C:
			h.tracer.Emit(&Event{
				Time:   now,
				Seq:    NextSeq(),
				Kind:   KindHeartbeat,
				Scope:  ScopeDriver,
				Name:   "heartbeat",
				Detail: describeOpen(beat, now),
			})
		case <-h.stop:
			return
		}
	}
}

func describeOpen(beat int, now time.Time) string {
	name, age, count := oldestOpen(now)
	if count == 0 {
		return fmt.Sprintf("#%d idle", beat)
	}
	return fmt.Sprintf("#%d %d open, oldest %s for %s", beat, count, name, age.Round(time.Millisecond))
}

// Stop ends the heartbeat and waits for its goroutine. Safe on nil and
// safe to call twice.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.once.Do(func() { close(h.stop) })
	h.done.Wait()
}
