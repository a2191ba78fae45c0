package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ember/internal/diagfmt"
	"ember/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.em",
	Short: "Print the token stream of an ember source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokenizeCmd.Flags().Bool("with-notes", true, "include diagnostic notes in output")
	tokenizeCmd.Flags().Bool("suggest", false, "include fix suggestions in output")
	tokenizeCmd.Flags().Bool("preview", false, "show a preview of each fix")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	out, err := readDiagOutput(cmd)
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	result, err := driver.Tokenize(args[0], maxDiagnostics)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// диагностика в stderr, токены в stdout
	if result.Bag.Len() > 0 && out.format == "pretty" {
		if err := out.emit(cmd.ErrOrStderr(), result.Bag, result.FileSet); err != nil {
			return err
		}
	}

	switch out.format {
	case "json":
		return diagfmt.FormatTokensJSON(cmd.OutOrStdout(), result.Tokens, result.FileSet)
	default:
		return diagfmt.FormatTokensPretty(cmd.OutOrStdout(), result.Tokens, result.FileSet)
	}
}
