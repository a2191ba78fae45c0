package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ember/internal/diag"
	"ember/internal/diagfmt"
	"ember/internal/source"
)

// errCompileFailed signals that diagnostics were already printed.
var errCompileFailed = errors.New("compilation failed")

type diagOutput struct {
	format    string
	pathMode  diagfmt.PathMode
	withNotes bool
	withFixes bool
	preview   bool
}

func addDiagFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", "pretty", "diagnostic output format (pretty|json)")
	cmd.Flags().Bool("with-notes", true, "include diagnostic notes in output")
	cmd.Flags().Bool("suggest", false, "include fix suggestions in output")
	cmd.Flags().Bool("preview", false, "show a preview of each fix")
}

func readDiagOutput(cmd *cobra.Command) (diagOutput, error) {
	var out diagOutput
	var err error
	if out.format, err = cmd.Flags().GetString("format"); err != nil {
		return out, fmt.Errorf("failed to get format flag: %w", err)
	}
	if out.format != "pretty" && out.format != "json" {
		return out, fmt.Errorf("unknown format: %s", out.format)
	}
	if out.withNotes, err = cmd.Flags().GetBool("with-notes"); err != nil {
		return out, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	if out.withFixes, err = cmd.Flags().GetBool("suggest"); err != nil {
		return out, fmt.Errorf("failed to get suggest flag: %w", err)
	}
	if out.preview, err = cmd.Flags().GetBool("preview"); err != nil {
		return out, fmt.Errorf("failed to get preview flag: %w", err)
	}
	modeStr, err := cmd.Root().PersistentFlags().GetString("path-mode")
	if err != nil {
		return out, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	mode, ok := diagfmt.ParsePathMode(modeStr)
	if !ok {
		return out, fmt.Errorf("invalid --path-mode value %q", modeStr)
	}
	out.pathMode = mode
	return out, nil
}

// emit writes the diagnostics of bag. Pretty output goes to w only when
// the bag is not empty; JSON is always written so tools can parse it.
func (o diagOutput) emit(w io.Writer, bag *diag.Bag, fs *source.FileSet) error {
	if o.format == "json" {
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         o.pathMode,
			IncludeNotes:     o.withNotes,
			IncludeFixes:     o.withFixes,
			IncludePreviews:  o.preview,
		})
	}
	if bag.Len() == 0 {
		return nil
	}
	diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
		Color:       !color.NoColor,
		Context:     1,
		PathMode:    o.pathMode,
		ShowNotes:   o.withNotes,
		ShowFixes:   o.withFixes,
		ShowPreview: o.preview,
	})
	return nil
}

// mergeBags collects the diagnostics of several files into one bag.
func mergeBags(bags ...*diag.Bag) *diag.Bag {
	total := 0
	for _, b := range bags {
		if b != nil {
			total += b.Len()
		}
	}
	merged := diag.NewBag(total)
	for _, b := range bags {
		if b != nil {
			merged.Merge(b)
		}
	}
	merged.Sort()
	return merged
}
