package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"rblint/internal/diag"
	"rblint/internal/source"
)

// Pretty renders every diagnostic in the bag, one block per finding:
//
//	<path>:<line>:<col>: <severity> <code>: <message>
//	    <source line>
//	    <underline>
//
// followed by notes in the same shape and, when enabled, fix suggestions.
// The bag is expected to be sorted already.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := prettyPrinter{w: w, fs: fs, opts: opts}
	for _, d := range bag.Items() {
		p.printDiagnostic(d)
	}
}

type prettyPrinter struct {
	w    io.Writer
	fs   *source.FileSet
	opts PrettyOpts
}

func (p *prettyPrinter) printDiagnostic(d diag.Diagnostic) {
	p.printHeading(d.Severity, d.Code, d.Message, d.Primary)
	p.printContext(d.Primary)

	if p.opts.ShowNotes {
		for _, n := range d.Notes {
			p.printNoteHeading(n)
			p.printContext(n.Span)
		}
	}
	if p.opts.ShowFixes {
		for _, f := range d.Fixes {
			p.printFix(f)
		}
	}
}

func (p *prettyPrinter) printHeading(sev diag.Severity, code diag.Code, msg string, sp source.Span) {
	pos := p.position(sp)
	sevText := sev.String()
	codeText := code.ID()
	if p.opts.Color {
		sevText = severityColor(sev).Sprint(sevText)
		codeText = color.New(color.Bold).Sprint(codeText)
	}
	fmt.Fprintf(p.w, "%s: %s %s: %s\n", pos, sevText, codeText, msg)
}

func (p *prettyPrinter) printNoteHeading(n diag.Note) {
	pos := p.position(n.Span)
	label := "note"
	if p.opts.Color {
		label = color.New(color.FgCyan).Sprint(label)
	}
	fmt.Fprintf(p.w, "%s: %s: %s\n", pos, label, n.Msg)
}

// printContext shows the first line the span touches with an underline.
// Multi-line spans are underlined to the end of the first line.
func (p *prettyPrinter) printContext(sp source.Span) {
	file := p.fs.Get(sp.File)
	if file == nil {
		return
	}
	start, _ := p.fs.Resolve(sp)
	line := file.GetLine(start.Line)
	if line == "" {
		return
	}

	prefixCols := runewidth.StringWidth(expandTabs(line[:min(int(start.Col)-1, len(line))]))
	covered := int(sp.Len())
	if remain := len(line) - int(start.Col) + 1; covered > remain {
		covered = remain
	}
	underCols := 1
	if covered > 0 {
		from := int(start.Col) - 1
		underCols = runewidth.StringWidth(line[from : from+covered])
	}

	underline := "^" + strings.Repeat("~", max(underCols-1, 0))
	if p.opts.Color {
		underline = color.New(color.FgGreen, color.Bold).Sprint(underline)
	}
	fmt.Fprintf(p.w, "    %s\n", expandTabs(line))
	fmt.Fprintf(p.w, "    %s%s\n", strings.Repeat(" ", prefixCols), underline)
}

func (p *prettyPrinter) printFix(f diag.Fix) {
	label := "fix"
	if p.opts.Color {
		label = color.New(color.FgGreen).Sprint(label)
	}
	title := f.Title
	if title == "" {
		title = "apply suggested edit"
	}
	fmt.Fprintf(p.w, "  %s: %s [%s]\n", label, title, f.Applicability)
	for _, edit := range f.Edits {
		preview, err := buildFixEditPreview(p.fs, edit)
		if err != nil {
			continue
		}
		for _, l := range preview.before {
			fmt.Fprintf(p.w, "    - %s\n", l)
		}
		for _, l := range preview.after {
			fmt.Fprintf(p.w, "    + %s\n", l)
		}
	}
}

func (p *prettyPrinter) position(sp source.Span) string {
	file := p.fs.Get(sp.File)
	if file == nil {
		return "?"
	}
	start, _ := p.fs.Resolve(sp)
	path := file.FormatPath(p.opts.PathMode.formatArg(), p.fs.BaseDir())
	pos := fmt.Sprintf("%s:%d:%d", path, start.Line, start.Col)
	if p.opts.Color {
		return color.New(color.Bold).Sprint(pos)
	}
	return pos
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold)
	case diag.SevWarning:
		return color.New(color.FgYellow, color.Bold)
	}
	return color.New(color.FgCyan)
}

// expandTabs keeps underline columns aligned with what terminals render.
func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
