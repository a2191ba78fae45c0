package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"ember/internal/diag"
	"ember/internal/source"
)

// palette holds the colors of one Pretty call. Colors are switched per
// palette so concurrent callers do not touch color.NoColor.
type palette struct {
	err, warn, info *color.Color
	path, gutter    *color.Color
	caret, note     *color.Color
	add, del        *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		path:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
		note:   color.New(color.FgCyan),
		add:    color.New(color.FgGreen),
		del:    color.New(color.FgRed),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.path, p.gutter, p.caret, p.note, p.add, p.del} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes и Fixes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, d, fs, opts, p)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	fmt.Fprintf(w, "%s: %s %s: %s\n",
		p.path.Sprint(location(fs, d.Primary, opts.PathMode)),
		p.severity(d.Severity).Sprint(d.Severity.String()),
		p.severity(d.Severity).Sprint(d.Code.ID()),
		d.Message)
	excerpt(w, fs, d.Primary, opts, p)

	if opts.ShowNotes {
		for _, note := range d.Notes {
			fmt.Fprintf(w, "  %s %s: %s\n", p.note.Sprint("note:"), location(fs, note.Span, opts.PathMode), note.Msg)
		}
	}
	if !opts.ShowFixes {
		return
	}
	for i, fix := range d.Fixes {
		fmt.Fprintf(w, "  %s %s\n", p.note.Sprintf("fix #%d:", i+1), fix.Title)
		for _, edit := range fix.Edits {
			start, end := fs.Resolve(edit.Span)
			fmt.Fprintf(w, "    edit %d:%d-%d:%d apply=%s\n",
				start.Line, start.Col, end.Line, end.Col, strconv.Quote(edit.NewText))
			if !opts.ShowPreview {
				continue
			}
			preview, err := buildFixEditPreview(fs, edit)
			if err != nil {
				continue
			}
			fmt.Fprintln(w, "    preview:")
			for _, line := range preview.before {
				fmt.Fprintf(w, "      %s\n", p.del.Sprint("- "+line))
			}
			for _, line := range preview.after {
				fmt.Fprintf(w, "      %s\n", p.add.Sprint("+ "+line))
			}
		}
	}
}

func location(fs *source.FileSet, sp source.Span, mode PathMode) string {
	f := fs.Get(sp.File)
	if f == nil {
		return "<unknown>"
	}
	start, _ := fs.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", f.FormatPath(mode.mode(), fs.BaseDir()), start.Line, start.Col)
}

// excerpt prints the primary line with opts.Context lines around it and a
// caret line under the span.
func excerpt(w io.Writer, fs *source.FileSet, sp source.Span, opts PrettyOpts, p palette) {
	f := fs.Get(sp.File)
	if f == nil {
		return
	}
	start, end := fs.Resolve(sp)
	ctx := uint32(max(opts.Context, 0))
	first := uint32(1)
	if start.Line > ctx {
		first = start.Line - ctx
	}
	last := start.Line + ctx
	lineCount := uint32(len(f.LineIdx)) + 1
	last = min(last, lineCount)
	gutterWidth := len(strconv.FormatUint(uint64(last), 10))

	for ln := first; ln <= last; ln++ {
		text := f.GetLine(ln)
		if ln != start.Line && text == "" && ln == lineCount {
			continue
		}
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", gutterWidth, ln), clip(text, opts.Width))
		if ln != start.Line {
			continue
		}
		endCol := end.Col
		if end.Line != start.Line {
			endCol = uint32(len(text)) + 1
		}
		pad, width := caretGeometry(text, start.Col, endCol)
		fmt.Fprintf(w, "%s %s%s\n",
			p.gutter.Sprint(strings.Repeat(" ", gutterWidth)+" |"),
			pad,
			p.caret.Sprint("^"+strings.Repeat("~", max(width-1, 0))))
	}
}

// caretGeometry returns the whitespace that aligns the caret with column
// startCol and the display width of the underlined text. Tabs are kept so
// the terminal expands them the same way as in the source line.
func caretGeometry(line string, startCol, endCol uint32) (string, int) {
	startCol = min(max(startCol, 1), uint32(len(line))+1)
	endCol = min(max(endCol, startCol), uint32(len(line))+1)
	var pad strings.Builder
	for _, r := range line[:startCol-1] {
		if r == '\t' {
			pad.WriteByte('\t')
			continue
		}
		pad.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	width := runewidth.StringWidth(line[startCol-1 : endCol-1])
	return pad.String(), max(width, 1)
}

func clip(text string, width uint8) string {
	if width == 0 || runewidth.StringWidth(text) <= int(width) {
		return text
	}
	return runewidth.Truncate(text, int(width), "...")
}
