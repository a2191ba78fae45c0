package driver

import "time"

// Phase names reported through PhaseObserver and recorded by the timer.
const (
	PhaseLex       = "lex"
	PhaseParse     = "parse"
	PhaseTranslate = "translate"
)

// PhaseStatus reports whether a phase started or finished.
type PhaseStatus int

const (
	// PhaseStart indicates that a compilation phase has begun.
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

// PhaseEvent describes a phase boundary of one file.
type PhaseEvent struct {
	File    string
	Name    string
	Status  PhaseStatus
	Elapsed time.Duration
	Failed  bool // set on PhaseEnd when the file has errors so far
}

// PhaseObserver receives phase events emitted during compilation.
// It may be called from several goroutines when files compile in parallel.
type PhaseObserver func(PhaseEvent)
