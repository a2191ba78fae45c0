package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"ember/internal/prof"
	"ember/internal/version"
)

var (
	traceCleanup func(failed bool)
	profSession  *prof.Session
)

var rootCmd = &cobra.Command{
	Use:           "ember",
	Short:         "Ember to Bash compiler",
	Long:          `Ember compiles .em programs into standalone Bash scripts`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupColor(cmd); err != nil {
			return err
		}
		cleanup, err := setupTracing(cmd)
		if err != nil {
			return err
		}
		traceCleanup = cleanup
		return startProfiling(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		stopDiagnostics(cmd, false)
	},
}

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(exportsCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to collect per file")
	rootCmd.PersistentFlags().String("path-mode", "auto", "how diagnostics print paths (auto|absolute|relative|basename)")
	rootCmd.PersistentFlags().String("trace", "", "trace output file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "stream", "trace storage mode (stream|ring|both)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "ring buffer capacity for --trace-mode ring|both")
	rootCmd.PersistentFlags().Duration("trace-heartbeat", 0, "emit heartbeat events at this interval (0 disables)")
	rootCmd.PersistentFlags().String("cpuprofile", "", "write a CPU profile of the compiler to file")
	rootCmd.PersistentFlags().String("memprofile", "", "write a heap profile of the compiler to file")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace of the compiler to file")
}

// main executes the root command and exits with status 1 on any error.
// Compile errors are reported by the commands themselves and surface here as
// errCompileFailed, which prints nothing extra.
func main() {
	if err := rootCmd.Execute(); err != nil {
		// PersistentPostRun не вызывается при ошибке
		stopDiagnostics(rootCmd, true)
		if err != errCompileFailed {
			fmt.Fprintf(os.Stderr, "ember: %v\n", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func setupColor(cmd *cobra.Command) error {
	value, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	enabled, err := colorEnabled(value, isTerminal(os.Stderr))
	if err != nil {
		return err
	}
	color.NoColor = !enabled
	return nil
}

func colorEnabled(value string, tty bool) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "auto":
		return tty, nil
	case "on":
		return true, nil
	case "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
	}
}

func startProfiling(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	var opts prof.Options
	var err error
	if opts.CPU, err = flags.GetString("cpuprofile"); err != nil {
		return fmt.Errorf("failed to get cpuprofile flag: %w", err)
	}
	if opts.Mem, err = flags.GetString("memprofile"); err != nil {
		return fmt.Errorf("failed to get memprofile flag: %w", err)
	}
	if opts.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if opts == (prof.Options{}) {
		return nil
	}
	profSession, err = prof.Start(opts)
	if err != nil {
		return fmt.Errorf("failed to start profiling: %w", err)
	}
	return nil
}

// stopDiagnostics flushes the tracer and finishes profiles. Safe to call twice.
func stopDiagnostics(cmd *cobra.Command, failed bool) {
	if traceCleanup != nil {
		traceCleanup(failed)
		traceCleanup = nil
	}
	if profSession != nil {
		if err := profSession.Stop(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "prof: %v\n", err)
		}
		profSession = nil
	}
}
