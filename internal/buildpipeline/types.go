package buildpipeline

import "time"

// Stage is one step a file goes through. The first three mirror the
// driver phases, so a driver phase name converts directly.
type Stage string

const (
	StageLex       Stage = "lex"
	StageParse     Stage = "parse" // parsing, type checking and instantiation
	StageTranslate Stage = "translate"
	StageWrite     Stage = "write" // script plus exports cache entry
)

type stageInfo struct {
	stage    Stage
	working  string  // progress label while running
	done     string  // verb in timing reports
	fraction float64 // share of a file's work finished when the stage starts
}

var stageTable = [...]stageInfo{
	{StageLex, "lexing", "lexed", 0.1},
	{StageParse, "checking", "checked", 0.3},
	{StageTranslate, "emitting", "emitted", 0.7},
	{StageWrite, "writing", "wrote", 0.9},
}

func (s Stage) info() (stageInfo, int) {
	for i, info := range stageTable {
		if info.stage == s {
			return info, i
		}
	}
	return stageInfo{}, -1
}

// Stages lists the known stages in pipeline order.
func Stages() []Stage {
	out := make([]Stage, len(stageTable))
	for i, info := range stageTable {
		out[i] = info.stage
	}
	return out
}

// Label is the progress text shown while the stage runs.
func (s Stage) Label() string {
	info, _ := s.info()
	return info.working
}

// Verb is the past-tense word used in timing reports.
func (s Stage) Verb() string {
	info, _ := s.info()
	return info.done
}

// Fraction is how much of a file is done once it enters the stage.
func (s Stage) Fraction() float64 {
	info, _ := s.info()
	return info.fraction
}

// Status captures progress state within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event reports progress for a file, or for the whole build when File is
// empty. File is the display name.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Build calls it from several
// goroutines.
type ProgressSink interface {
	OnEvent(Event)
}

// Timings sums stage durations across all files of a build.
type Timings struct {
	dur [len(stageTable)]time.Duration
	set [len(stageTable)]bool
}

// Add accumulates dur into stage. Unknown stages are ignored.
func (t *Timings) Add(stage Stage, dur time.Duration) {
	if _, i := stage.info(); t != nil && i >= 0 {
		t.dur[i] += dur
		t.set[i] = true
	}
}

// Has reports whether a duration for stage is recorded.
func (t Timings) Has(stage Stage) bool {
	_, i := stage.info()
	return i >= 0 && t.set[i]
}

// Duration returns the recorded duration for stage.
func (t Timings) Duration(stage Stage) time.Duration {
	if _, i := stage.info(); i >= 0 {
		return t.dur[i]
	}
	return 0
}

// Sum returns the total over stages, or over every stage when none are given.
func (t Timings) Sum(stages ...Stage) time.Duration {
	if len(stages) == 0 {
		stages = Stages()
	}
	var total time.Duration
	for _, stage := range stages {
		total += t.Duration(stage)
	}
	return total
}
