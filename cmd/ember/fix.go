package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ember/internal/diag"
	"ember/internal/driver"
	"ember/internal/fix"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] [file.em|directory ...]",
	Short: "Apply suggested fixes to ember sources",
	Long: `Fix compiles the targets and applies the first suggested edit of every
diagnostic that has one, such as renaming a misspelled variable.`,
	RunE: runFix,
}

func init() {
	fixCmd.Flags().Bool("dry-run", false, "print the fixed sources instead of writing them")
	fixCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	fixCmd.Flags().Bool("stop-at-first-error", false, "stop each file at its first error")
}

func runFix(cmd *cobra.Command, args []string) error {
	workDir, err := os.Getwd()
	if err != nil {
		return err
	}
	settings, err := resolveBuildSettings(cmd, args, workDir)
	if err != nil {
		return err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return fmt.Errorf("failed to get dry-run flag: %w", err)
	}

	fileSet, results, err := driver.CompileAll(cmd.Context(), settings.files, driver.Options{
		MaxDiagnostics:   settings.maxDiagnostics,
		StopAtFirstError: settings.stopAtFirstError,
	}, settings.jobs)
	if err != nil {
		return err
	}
	var diagnostics []diag.Diagnostic
	for _, res := range results {
		diagnostics = append(diagnostics, res.Bag.Items()...)
	}

	res, err := fix.Apply(fileSet, diagnostics, fix.ApplyOptions{DryRun: dryRun})
	out := cmd.OutOrStdout()
	for _, s := range res.Skipped {
		fmt.Fprintf(cmd.ErrOrStderr(), "skipped %q: %s\n", s.Title, s.Reason)
	}
	if errors.Is(err, fix.ErrNoFixes) {
		fmt.Fprintln(out, "no fixes to apply")
		return nil
	}
	if err != nil {
		return err
	}
	for _, a := range res.Applied {
		fmt.Fprintf(out, "%s: %s (%s)\n", a.PrimaryPath, a.Title, a.Code.ID())
	}
	for _, change := range res.FileChanges {
		if dryRun {
			fmt.Fprintf(out, "--- %s\n%s", change.Path, change.Content)
			continue
		}
		fmt.Fprintf(out, "fixed %s (%d edit(s))\n", change.Path, change.EditCount)
	}
	return nil
}
