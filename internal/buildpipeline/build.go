// Package buildpipeline orchestrates the compilation of many files into
// Bash scripts and reports progress while doing so.
package buildpipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ember/internal/driver"
	"ember/internal/source"
	"ember/internal/trace"
)

// ScriptExt is the extension of generated scripts.
const ScriptExt = ".sh"

// BuildRequest configures one build.
type BuildRequest struct {
	Files   []string // source files, already expanded
	BaseDir string   // display names and OutDir layout are relative to it
	// OutPath is the exact output of a single-file build.
	OutPath string
	// OutDir receives one script per source file, mirroring the layout
	// under BaseDir. Empty means next to each source file.
	OutDir   string
	Options  driver.Options
	Jobs     int
	Progress ProgressSink
	// Exports, when set, receives the exports of every file that compiled.
	Exports *driver.ExportsCache
	// NoWrite compiles and checks without writing scripts.
	NoWrite bool
}

// FileOutput is the outcome of one source file.
type FileOutput struct {
	Source  string
	Output  string // empty when nothing was written
	Display string
	Result  *driver.Result
}

// BuildResult captures build artefacts and timings.
type BuildResult struct {
	FileSet *source.FileSet
	Outputs []FileOutput
	Timings Timings
	Failed  int
}

// Build compiles req.Files in parallel and writes a script for each file
// that compiled cleanly. Compile errors are counted in Failed; the returned
// error reports cancellation and I/O problems.
func Build(ctx context.Context, req *BuildRequest) (BuildResult, error) {
	var result BuildResult
	if req == nil {
		return result, fmt.Errorf("missing build request")
	}
	if req.OutPath != "" && len(req.Files) != 1 {
		return result, fmt.Errorf("an explicit output path needs exactly one source file, got %d", len(req.Files))
	}

	displays := make([]string, len(req.Files))
	for i, file := range req.Files {
		displays[i] = DisplayName(file, req.BaseDir)
	}
	emitQueued(req.Progress, displays)

	opts := req.Options
	opts.PhaseObserver = chainObservers(opts.PhaseObserver, phaseProgress(req.Progress, req.BaseDir))

	span := trace.Begin(trace.FromContext(ctx), trace.ScopeDriver, "build", 0).
		With("files", fmt.Sprint(len(req.Files)))
	ctx = trace.WithSpan(ctx, span)
	defer func() { span.End(fmt.Sprintf("%d failed", result.Failed)) }()

	start := time.Now()
	fileSet, results, err := driver.CompileAll(ctx, req.Files, opts, req.Jobs)
	result.FileSet = fileSet
	if err != nil {
		emitStage(req.Progress, "", StageParse, StatusError, err, time.Since(start))
		return result, err
	}

	var writeErrs []error
	for i, res := range results {
		out := FileOutput{Source: req.Files[i], Display: displays[i], Result: res}
		for _, phase := range res.Timer.Report().Phases {
			result.Timings.Add(Stage(phase.Name), durationFromMillis(phase.DurationMS))
		}
		if res.Failed() {
			result.Failed++
			emitStage(req.Progress, displays[i], StageParse, StatusError, nil, 0)
			result.Outputs = append(result.Outputs, out)
			continue
		}
		if !req.NoWrite {
			writeStart := time.Now()
			emitStage(req.Progress, displays[i], StageWrite, StatusWorking, nil, 0)
			out.Output = outputPath(req, req.Files[i])
			if err := writeScript(out.Output, res.Script); err != nil {
				writeErrs = append(writeErrs, err)
				out.Output = ""
				emitStage(req.Progress, displays[i], StageWrite, StatusError, err, 0)
				result.Outputs = append(result.Outputs, out)
				continue
			}
			if req.Exports != nil {
				if _, err := req.Exports.StoreExports(res); err != nil {
					writeErrs = append(writeErrs, fmt.Errorf("%s: exports cache: %w", displays[i], err))
				}
			}
			result.Timings.Add(StageWrite, time.Since(writeStart))
		}
		emitStage(req.Progress, displays[i], StageWrite, StatusDone, nil, 0)
		result.Outputs = append(result.Outputs, out)
	}
	status := StatusDone
	if result.Failed > 0 || len(writeErrs) > 0 {
		status = StatusError
	}
	emitStage(req.Progress, "", StageWrite, status, nil, time.Since(start))
	return result, errors.Join(writeErrs...)
}

// outputPath picks where the script of src goes.
func outputPath(req *BuildRequest, src string) string {
	if req.OutPath != "" {
		return req.OutPath
	}
	name := strings.TrimSuffix(src, filepath.Ext(src)) + ScriptExt
	if req.OutDir == "" {
		return name
	}
	rel := filepath.Base(name)
	if req.BaseDir != "" {
		if r, err := filepath.Rel(req.BaseDir, name); err == nil && !strings.HasPrefix(r, "..") {
			rel = r
		}
	}
	return filepath.Join(req.OutDir, rel)
}

// writeScript atomically replaces path with an executable script.
func writeScript(path, script string) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	f, err := os.CreateTemp(dir, ".ember-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()
	if _, err = f.WriteString(script); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err = f.Chmod(0o755); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func durationFromMillis(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}
