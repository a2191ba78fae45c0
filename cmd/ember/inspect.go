package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ember/internal/driver"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [flags] file.em",
	Short: "Dump scopes, functions and instances of an ember source file",
	Long: `Inspect compiles a file and prints what the compiler knows about it:
global scope variables, declared functions with their instances, and exports.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().String("format", "yaml", "output format (yaml|instances)")
	inspectCmd.Flags().Bool("headers", false, "with --format instances, print only function headers")
	inspectCmd.Flags().Bool("timings", false, "include per-phase timings")
}

func runInspect(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	headers, err := cmd.Flags().GetBool("headers")
	if err != nil {
		return fmt.Errorf("failed to get headers flag: %w", err)
	}
	timings, err := cmd.Flags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	res, err := driver.Compile(cmd.Context(), args[0], driver.Options{
		MaxDiagnostics: maxDiagnostics,
		EnableTimings:  timings,
	})
	if err != nil {
		return err
	}

	switch format {
	case "yaml":
		report, err := driver.Inspect(res)
		if err != nil {
			return err
		}
		return driver.WriteInspectYAML(cmd.OutOrStdout(), report)
	case "instances":
		return driver.WriteInstances(cmd.OutOrStdout(), res, headers)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
