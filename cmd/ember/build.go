package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"ember/internal/buildpipeline"
	"ember/internal/diag"
	"ember/internal/driver"
	"ember/internal/project"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] [file.em|directory ...]",
	Short: "Compile ember sources into Bash scripts",
	Long: `Build compiles each .em file into an executable Bash script next to it,
or into --out-dir. Without arguments it builds [build].main from ember.toml.`,
	RunE: runBuild,
}

var checkCmd = &cobra.Command{
	Use:   "check [flags] [file.em|directory ...]",
	Short: "Type-check ember sources without writing scripts",
	RunE:  runCheck,
}

func init() {
	for _, cmd := range []*cobra.Command{buildCmd, checkCmd} {
		addDiagFlags(cmd)
		cmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
		cmd.Flags().Bool("timings", false, "report per-phase timings")
		cmd.Flags().Bool("stop-at-first-error", false, "stop each file at its first error")
	}
	buildCmd.Flags().StringP("out", "o", "", "output script path (single input only)")
	buildCmd.Flags().String("out-dir", "", "directory for generated scripts")
	buildCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	buildCmd.Flags().Bool("export-cache", false, "record exported functions in the exports cache")
	buildCmd.Flags().String("cache-dir", "", "exports cache directory (default: user cache dir)")
}

// buildSettings is the merged view of flags and ember.toml.
type buildSettings struct {
	files            []string
	baseDir          string
	outPath          string
	jobs             int
	maxDiagnostics   int
	stopAtFirstError bool
	progress         progressSetting
}

// progressSetting is the --ui flag or [build].ui; auto shows the progress UI
// only when stdout is a terminal.
type progressSetting uint8

const (
	progressAuto progressSetting = iota
	progressOn
	progressOff
)

var progressSettings = map[string]progressSetting{
	"":     progressAuto,
	"auto": progressAuto,
	"on":   progressOn,
	"off":  progressOff,
}

func parseProgressSetting(value string) (progressSetting, error) {
	p, ok := progressSettings[strings.ToLower(strings.TrimSpace(value))]
	if !ok {
		return progressAuto, fmt.Errorf("invalid ui value %q (expected auto|on|off)", value)
	}
	return p, nil
}

func (p progressSetting) enabled(stdout *os.File) bool {
	if p == progressAuto {
		return isTerminal(stdout)
	}
	return p == progressOn
}

// resolveBuildSettings expands targets, falling back to the manifest found
// from the working directory when none are given. Explicit flags win over
// manifest values.
func resolveBuildSettings(cmd *cobra.Command, args []string, workDir string) (buildSettings, error) {
	var s buildSettings
	var err error
	if s.maxDiagnostics, err = cmd.Root().PersistentFlags().GetInt("max-diagnostics"); err != nil {
		return s, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if s.jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return s, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if s.stopAtFirstError, err = cmd.Flags().GetBool("stop-at-first-error"); err != nil {
		return s, fmt.Errorf("failed to get stop-at-first-error flag: %w", err)
	}
	// check has no progress UI.
	uiValue := "off"
	if cmd.Flags().Lookup("ui") != nil {
		if uiValue, err = cmd.Flags().GetString("ui"); err != nil {
			return s, fmt.Errorf("failed to get ui flag: %w", err)
		}
	}
	if s.progress, err = parseProgressSetting(uiValue); err != nil {
		return s, fmt.Errorf("--ui: %w", err)
	}

	if len(args) > 0 {
		s.files, err = driver.ExpandTargets(args)
		if err != nil {
			return s, err
		}
		s.baseDir = workDir
		if len(s.files) == 0 {
			return s, fmt.Errorf("no %s files found", driver.SourceExt)
		}
		return s, nil
	}

	manifest, ok, err := project.LoadManifest(workDir)
	if err != nil {
		return s, err
	}
	if !ok {
		return s, fmt.Errorf("no input files and no %s found", project.ManifestName)
	}
	s.files = []string{manifest.MainPath()}
	s.baseDir = manifest.Root
	s.outPath = manifest.OutPath()
	b := manifest.Config.Build
	if !cmd.Root().PersistentFlags().Changed("max-diagnostics") && b.MaxDiagnostics > 0 {
		s.maxDiagnostics = b.MaxDiagnostics
	}
	if !cmd.Flags().Changed("jobs") && b.Jobs > 0 {
		s.jobs = b.Jobs
	}
	if !cmd.Flags().Changed("stop-at-first-error") && b.StopAtFirstError {
		s.stopAtFirstError = true
	}
	if cmd.Flags().Lookup("ui") != nil && !cmd.Flags().Changed("ui") && b.UI != "" {
		if s.progress, err = parseProgressSetting(b.UI); err != nil {
			return s, fmt.Errorf("%s: [build].ui: %w", manifest.Path, err)
		}
	}
	return s, nil
}

func runBuild(cmd *cobra.Command, args []string) error {
	return runPipeline(cmd, args, true)
}

func runCheck(cmd *cobra.Command, args []string) error {
	return runPipeline(cmd, args, false)
}

func runPipeline(cmd *cobra.Command, args []string, write bool) error {
	workDir, err := os.Getwd()
	if err != nil {
		return err
	}
	settings, err := resolveBuildSettings(cmd, args, workDir)
	if err != nil {
		return err
	}
	out, err := readDiagOutput(cmd)
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	showTimings, err := cmd.Flags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	req := &buildpipeline.BuildRequest{
		Files:   settings.files,
		BaseDir: settings.baseDir,
		OutPath: settings.outPath,
		Jobs:    settings.jobs,
		NoWrite: !write,
		Options: driver.Options{
			MaxDiagnostics:   settings.maxDiagnostics,
			StopAtFirstError: settings.stopAtFirstError,
			EnableTimings:    showTimings,
		},
	}

	useUI := false
	if write {
		if err := applyBuildFlags(cmd, req); err != nil {
			return err
		}
		useUI = !quiet && out.format == "pretty" && settings.progress.enabled(os.Stdout)
	}

	start := time.Now()
	var result buildpipeline.BuildResult
	if useUI {
		displays := make([]string, len(req.Files))
		for i, f := range req.Files {
			displays[i] = buildpipeline.DisplayName(f, req.BaseDir)
		}
		result, err = runBuildWithUI(cmd.Context(), "ember build", displays, req)
	} else {
		result, err = buildpipeline.Build(cmd.Context(), req)
	}
	elapsed := time.Since(start)

	bags := make([]*diag.Bag, 0, len(result.Outputs))
	for _, o := range result.Outputs {
		if o.Result != nil {
			bags = append(bags, o.Result.Bag)
		}
	}
	if result.FileSet != nil {
		if emitErr := out.emit(cmd.ErrOrStderr(), mergeBags(bags...), result.FileSet); emitErr != nil {
			return emitErr
		}
	}
	if err != nil {
		return err
	}

	if !quiet && out.format == "pretty" {
		for _, o := range result.Outputs {
			if o.Output != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", o.Output)
			}
		}
		if showTimings {
			printTimings(cmd.OutOrStdout(), result.Timings, elapsed)
		}
	}
	if result.Failed > 0 {
		return errCompileFailed
	}
	return nil
}

func applyBuildFlags(cmd *cobra.Command, req *buildpipeline.BuildRequest) error {
	outPath, err := cmd.Flags().GetString("out")
	if err != nil {
		return fmt.Errorf("failed to get out flag: %w", err)
	}
	if outPath != "" {
		req.OutPath = outPath
	}
	outDir, err := cmd.Flags().GetString("out-dir")
	if err != nil {
		return fmt.Errorf("failed to get out-dir flag: %w", err)
	}
	if outDir != "" {
		if req.OutPath != "" && outPath != "" {
			return fmt.Errorf("--out and --out-dir cannot be used together")
		}
		req.OutDir = outDir
		req.OutPath = ""
	}
	if req.OutPath != "" && len(req.Files) != 1 {
		return fmt.Errorf("--out needs exactly one input file, got %d", len(req.Files))
	}

	exportCache, err := cmd.Flags().GetBool("export-cache")
	if err != nil {
		return fmt.Errorf("failed to get export-cache flag: %w", err)
	}
	if exportCache {
		cache, err := openCache(cmd)
		if err != nil {
			return err
		}
		req.Exports = cache
	}
	return nil
}

func openCache(cmd *cobra.Command) (*driver.ExportsCache, error) {
	dir, err := cmd.Flags().GetString("cache-dir")
	if err != nil {
		return nil, fmt.Errorf("failed to get cache-dir flag: %w", err)
	}
	if dir != "" {
		dir = filepath.Clean(dir)
	}
	cache, err := driver.OpenExportsCache(dir, "ember")
	if err != nil {
		return nil, fmt.Errorf("failed to open exports cache: %w", err)
	}
	return cache, nil
}
