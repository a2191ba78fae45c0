package trace

import (
	"sync"
	"sync/atomic"
	"time"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

// NextSeq returns a monotonically increasing sequence number.
func NextSeq() uint64 { return seqCounter.Add(1) }

func nextSpanID() uint64 { return spanCounter.Add(1) }

// open tracks live spans so heartbeats can name what is still running
// and children can inherit their parent's depth.
var open = struct {
	sync.Mutex
	spans map[uint64]*Span
}{spans: make(map[uint64]*Span)}

func register(s *Span) {
	open.Lock()
	if p, ok := open.spans[s.parent]; ok {
		s.depth = p.depth + 1
	}
	open.spans[s.id] = s
	open.Unlock()
}

func unregister(id uint64) {
	open.Lock()
	delete(open.spans, id)
	open.Unlock()
}

func depthOf(parent uint64) int {
	if parent == 0 {
		return 0
	}
	open.Lock()
	defer open.Unlock()
	if p, ok := open.spans[parent]; ok {
		return p.depth + 1
	}
	return 1
}

// oldestOpen returns the name and age of the longest running span.
func oldestOpen(now time.Time) (name string, age time.Duration, count int) {
	open.Lock()
	defer open.Unlock()
	for _, s := range open.spans {
		count++
		if d := now.Sub(s.started); d > age {
			name, age = s.name, d
		}
	}
	return name, age, count
}

// Span is one open logical operation. A disabled span is safe to use and
// records nothing.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  uint64
	depth   int
	scope   Scope
	name    string
	started time.Time
	attrs   []Attr
}

var disabled = &Span{}

// Begin opens a span under parent (0 for a root span) and emits its begin
// event.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return disabled
	}
	s := &Span{
		tracer:  t,
		id:      nextSpanID(),
		parent:  parent,
		scope:   scope,
		name:    name,
		started: time.Now(),
	}
	register(s)
	t.Emit(&Event{
		Time:     s.started,
		Seq:      NextSeq(),
		Kind:     KindSpanBegin,
		Scope:    scope,
		SpanID:   s.id,
		ParentID: parent,
		Depth:    s.depth,
		Name:     name,
	})
	return s
}

// With attaches an attribute reported by End. Later values for the same key win.
func (s *Span) With(key, value string) *Span {
	if s == nil || s.tracer == nil {
		return s
	}
	for i := range s.attrs {
		if s.attrs[i].Key == key {
			s.attrs[i].Value = value
			return s
		}
	}
	s.attrs = append(s.attrs, Attr{Key: key, Value: value})
	return s
}

// End closes the span and returns its duration.
func (s *Span) End(detail string) time.Duration {
	if s == nil || s.tracer == nil {
		return 0
	}
	unregister(s.id)
	now := time.Now()
	s.tracer.Emit(&Event{
		Time:     now,
		Seq:      NextSeq(),
		Kind:     KindSpanEnd,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parent,
		Depth:    s.depth,
		Name:     s.name,
		Detail:   detail,
		Attrs:    s.attrs,
	})
	return now.Sub(s.started)
}

// ID returns the span id, 0 for a disabled span.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// Point emits an instant event under parent.
func Point(t Tracer, scope Scope, name, detail string, parent uint64) {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return
	}
	t.Emit(&Event{
		Time:     time.Now(),
		Seq:      NextSeq(),
		Kind:     KindPoint,
		Scope:    scope,
		ParentID: parent,
		Depth:    depthOf(parent),
		Name:     name,
		Detail:   detail,
	})
}
