package fix

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"

	"ember/internal/diag"
	"ember/internal/source"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// ApplyOptions configures how fixes are applied.
type ApplyOptions struct {
	// DryRun computes the new contents without writing files.
	DryRun bool
}

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	Title       string
	Code        diag.Code
	Message     string
	PrimaryPath string
	EditCount   int
}

// SkippedFix captures a fix that was not applied, with a reason.
type SkippedFix struct {
	Title  string
	Reason string
}

// FileChange holds the new content of one modified file.
type FileChange struct {
	Path      string
	EditCount int
	Content   []byte
}

// ApplyResult aggregates applied fixes, skipped ones, and file changes.
type ApplyResult struct {
	Applied     []AppliedFix
	Skipped     []SkippedFix
	FileChanges []FileChange
}

type candidate struct {
	diag  diag.Diagnostic
	fix   diag.Fix
	order int
}

// Apply takes the first fix of every diagnostic and applies the ones that do
// not overlap an earlier fix. Files are rewritten unless opts.DryRun is set.
func Apply(fs *source.FileSet, diagnostics []diag.Diagnostic, opts ApplyOptions) (*ApplyResult, error) {
	result := &ApplyResult{}
	if fs == nil {
		return result, fmt.Errorf("fix: FileSet is nil")
	}

	candidates := make([]candidate, 0)
	for _, d := range diagnostics {
		if len(d.Fixes) == 0 {
			continue
		}
		if len(d.Fixes[0].Edits) == 0 {
			result.Skipped = append(result.Skipped, SkippedFix{Title: d.Fixes[0].Title, Reason: "fix has no edits"})
			continue
		}
		candidates = append(candidates, candidate{diag: d, fix: d.Fixes[0], order: len(candidates)})
	}
	if len(candidates) == 0 {
		return result, ErrNoFixes
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i].diag.Primary, candidates[j].diag.Primary
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return candidates[i].order < candidates[j].order
	})

	applied := make(map[source.FileID][]diag.FixEdit)
	for _, cand := range candidates {
		if reason := checkCandidate(fs, applied, cand.fix); reason != "" {
			if reason != reasonDuplicate {
				result.Skipped = append(result.Skipped, SkippedFix{Title: cand.fix.Title, Reason: reason})
			}
			continue
		}
		for _, edit := range cand.fix.Edits {
			applied[edit.Span.File] = append(applied[edit.Span.File], edit)
		}
		result.Applied = append(result.Applied, AppliedFix{
			Title:       cand.fix.Title,
			Code:        cand.diag.Code,
			Message:     cand.diag.Message,
			PrimaryPath: fs.Get(cand.diag.Primary.File).FormatPath("auto", fs.BaseDir()),
			EditCount:   len(cand.fix.Edits),
		})
	}
	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}

	ids := make([]source.FileID, 0, len(applied))
	for id := range applied {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		file := fs.Get(id)
		change := FileChange{
			Path:      file.Path,
			EditCount: len(applied[id]),
			Content:   restoreEncoding(file, applyEdits(file.Content, applied[id])),
		}
		if !opts.DryRun {
			if err := writeFile(file.Path, change.Content); err != nil {
				return result, err
			}
		}
		result.FileChanges = append(result.FileChanges, change)
	}
	return result, nil
}

const reasonDuplicate = "duplicate"

// checkCandidate returns why fix cannot be applied on top of applied, or "".
func checkCandidate(fs *source.FileSet, applied map[source.FileID][]diag.FixEdit, fix diag.Fix) string {
	duplicates := 0
	for _, edit := range fix.Edits {
		file := fs.Get(edit.Span.File)
		if file == nil {
			return "unknown file"
		}
		if file.Has(source.FileVirtual) {
			return "target file is virtual"
		}
		if edit.Span.End < edit.Span.Start || int(edit.Span.End) > len(file.Content) {
			return "edit span out of range"
		}
		for _, prev := range applied[edit.Span.File] {
			if prev == edit {
				duplicates++
				break
			}
			if spansConflict(prev.Span, edit.Span) {
				return "conflicts with a previously applied fix"
			}
		}
	}
	if duplicates == len(fix.Edits) {
		return reasonDuplicate
	}
	return ""
}

// spansConflict reports overlap. Two insertions at one point conflict too,
// since their order would be ambiguous.
func spansConflict(a, b source.Span) bool {
	if a.Start == a.End && b.Start == b.End {
		return a.Start == b.Start
	}
	return a.Start < b.End && b.Start < a.End
}

// applyEdits rewrites content back to front so earlier offsets stay valid.
func applyEdits(content []byte, edits []diag.FixEdit) []byte {
	sorted := append([]diag.FixEdit(nil), edits...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Span.Start > sorted[j].Span.Start })
	out := append([]byte(nil), content...)
	for _, edit := range sorted {
		tail := append([]byte(nil), out[edit.Span.End:]...)
		out = append(append(out[:edit.Span.Start], edit.NewText...), tail...)
	}
	return out
}

// restoreEncoding undoes the CRLF and BOM normalization done on load.
func restoreEncoding(file *source.File, content []byte) []byte {
	if file.Has(source.FileNormalizedCRLF) {
		content = bytes.ReplaceAll(content, []byte("\n"), []byte("\r\n"))
	}
	if file.Has(source.FileHadBOM) {
		content = append([]byte("\xEF\xBB\xBF"), content...)
	}
	return content
}

func writeFile(path string, content []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	if err := os.WriteFile(path, content, mode); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
