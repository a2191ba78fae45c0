package buildpipeline

import (
	"path/filepath"
	"strings"
	"time"

	"ember/internal/driver"
)

func emitQueued(sink ProgressSink, files []string) {
	if sink == nil {
		return
	}
	for _, file := range files {
		sink.OnEvent(Event{File: file, Stage: StageLex, Status: StatusQueued})
	}
}

func emitStage(sink ProgressSink, file string, stage Stage, status Status, err error, elapsed time.Duration) {
	if sink == nil {
		return
	}
	sink.OnEvent(Event{File: file, Stage: stage, Status: status, Err: err, Elapsed: elapsed})
}

// phaseProgress turns driver phase starts into per-file progress events.
func phaseProgress(sink ProgressSink, baseDir string) driver.PhaseObserver {
	if sink == nil {
		return nil
	}
	return func(ev driver.PhaseEvent) {
		if ev.Status != driver.PhaseStart {
			return
		}
		emitStage(sink, DisplayName(ev.File, baseDir), Stage(ev.Name), StatusWorking, nil, 0)
	}
}

func chainObservers(observers ...driver.PhaseObserver) driver.PhaseObserver {
	var live []driver.PhaseObserver
	for _, o := range observers {
		if o != nil {
			live = append(live, o)
		}
	}
	if len(live) == 0 {
		return nil
	}
	return func(ev driver.PhaseEvent) {
		for _, o := range live {
			o(ev)
		}
	}
}

// DisplayName renders file relative to baseDir when it lies under it.
func DisplayName(file, baseDir string) string {
	path := filepath.Clean(file)
	base := strings.TrimSpace(baseDir)
	if base != "" {
		if abs, err := filepath.Abs(base); err == nil {
			base = abs
		}
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		if rel, err := filepath.Rel(base, path); err == nil && rel != "." && !strings.HasPrefix(rel, "..") {
			path = rel
		}
	}
	return filepath.ToSlash(path)
}
