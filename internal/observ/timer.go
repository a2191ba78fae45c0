package observ

import (
	"fmt"
	"strings"
	"time"

	"ember/internal/trace"
)

// Phase records the duration and metadata of a compilation phase.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string

	span *trace.Span
}

// Timer tracks the execution time of the phases of one compilation and
// mirrors every phase as a pass-level trace span.
type Timer struct {
	tracer trace.Tracer
	parent uint64
	phases []Phase
}

// NewTimer creates a Timer whose phases become children of span parent.
// A nil tracer disables the trace mirror.
func NewTimer(tracer trace.Tracer, parent uint64) *Timer {
	return &Timer{tracer: tracer, parent: parent, phases: make([]Phase, 0, 4)}
}

// Begin starts a new phase and returns its index.
func (t *Timer) Begin(name string) int {
	t.phases = append(t.phases, Phase{
		Name:  name,
		Start: time.Now(),
		span:  trace.Begin(t.tracer, trace.ScopePass, name, t.parent),
	})
	return len(t.phases) - 1
}

// SpanID returns the trace span of phase idx, for nesting node-level events.
func (t *Timer) SpanID(idx int) uint64 {
	if idx < 0 || idx >= len(t.phases) {
		return t.parent
	}
	return t.phases[idx].span.ID()
}

// End finishes a phase by its index.
func (t *Timer) End(idx int, note string) time.Duration {
	if idx < 0 || idx >= len(t.phases) {
		return 0
	}
	p := &t.phases[idx]
	p.Dur = time.Since(p.Start)
	p.Note = note
	p.span.End(note)
	return p.Dur
}

// Summary returns a human-readable string summarizing all tracked phases.
func (t *Timer) Summary() string {
	report := t.Report()
	var b strings.Builder
	b.WriteString("timings:\n")
	for _, p := range report.Phases {
		fmt.Fprintf(&b, "  %-12s %7.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			b.WriteString("  // " + p.Note)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "  %-12s %7.2f ms\n", "total", report.TotalMS)
	return b.String()
}

// PhaseReport представляет сжатую информацию о фазе таймера для сериализации.
type PhaseReport struct {
	Name       string  `json:"name" yaml:"name"`
	DurationMS float64 `json:"duration_ms" yaml:"duration_ms"`
	Note       string  `json:"note,omitempty" yaml:"note,omitempty"`
}

// Report описывает агрегированные данные таймера.
type Report struct {
	TotalMS float64       `json:"total_ms" yaml:"total_ms"`
	Phases  []PhaseReport `json:"phases" yaml:"phases"`
}

// Report формирует срез фаз и общую длительность в миллисекундах.
func (t *Timer) Report() Report {
	if t == nil || len(t.phases) == 0 {
		return Report{}
	}
	report := Report{Phases: make([]PhaseReport, len(t.phases))}
	var total time.Duration
	for i, phase := range t.phases {
		total += phase.Dur
		report.Phases[i] = PhaseReport{
			Name:       phase.Name,
			DurationMS: durationToMillis(phase.Dur),
			Note:       phase.Note,
		}
	}
	report.TotalMS = durationToMillis(total)
	return report
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
