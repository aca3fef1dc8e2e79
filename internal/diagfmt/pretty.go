// Package diagfmt renders diagnostics and token dumps for the CLI.
package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/endingly/clice/internal/diag"
	"github.com/endingly/clice/internal/source"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgCyan, color.Bold)
	noteColor = color.New(color.FgBlue)
)

// Render prints one block per diagnostic:
//
//	<path>:<line>:<col>: <severity> <CODE>: <message>
//	    <source line>
//	    ^~~~
//
// followed by notes in the same shape. Diagnostics without a location
// print the header line only. Expects a sorted slice.
func Render(w io.Writer, fs *source.FileSet, items []diag.Diagnostic, colorize bool) {
	for _, d := range items {
		renderOne(w, fs, d, colorize)
	}
}

func renderOne(w io.Writer, fs *source.FileSet, d diag.Diagnostic, colorize bool) {
	head := severityLabel(d.Severity)
	if colorize {
		head = severityColor(d.Severity).Sprint(head)
	}
	if loc, line, ok := locate(fs, d.Primary); ok {
		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", loc.Path, loc.Line, loc.Col, head, d.Code.ID(), d.Message)
		underline(w, line, loc.Col, d.Primary.Len(), colorize)
	} else {
		fmt.Fprintf(w, "%s %s: %s\n", head, d.Code.ID(), d.Message)
	}
	for _, n := range d.Notes {
		if loc, line, ok := locate(fs, n.Span); ok {
			fmt.Fprintf(w, "%s:%d:%d: note: %s\n", loc.Path, loc.Line, loc.Col, n.Msg)
			underline(w, line, loc.Col, n.Span.Len(), colorize)
		} else {
			fmt.Fprintf(w, "note: %s\n", n.Msg)
		}
	}
}

// Short prints the stable one-line-per-entry form used by scripts and
// tests: <severity> <CODE> <path>:<line>:<col> <message>.
func Short(w io.Writer, fs *source.FileSet, items []diag.Diagnostic) {
	for _, d := range items {
		if loc, _, ok := locate(fs, d.Primary); ok {
			fmt.Fprintf(w, "%s %s %s:%d:%d %s\n", severityLabel(d.Severity), d.Code.ID(), loc.Path, loc.Line, loc.Col, d.Message)
		} else {
			fmt.Fprintf(w, "%s %s %s\n", severityLabel(d.Severity), d.Code.ID(), d.Message)
		}
	}
}

type location struct {
	Path string
	Line uint32
	Col  uint32
}

func locate(fs *source.FileSet, sp source.Span) (location, string, bool) {
	if fs == nil || sp == (source.Span{}) {
		return location{}, "", false
	}
	if int(sp.File) >= fs.Len() {
		return location{}, "", false
	}
	f := fs.Get(sp.File)
	start, _ := fs.Resolve(sp)
	return location{Path: f.Path, Line: start.Line, Col: start.Col}, f.GetLine(start.Line), true
}

func underline(w io.Writer, line string, col, width uint32, colorize bool) {
	if line == "" {
		return
	}
	fmt.Fprintf(w, "    %s\n", strings.TrimRight(line, "\n"))
	if col == 0 {
		col = 1
	}
	marker := "^"
	if width > 1 {
		marker += strings.Repeat("~", int(width-1))
	}
	if colorize {
		marker = color.New(color.FgGreen, color.Bold).Sprint(marker)
	}
	fmt.Fprintf(w, "    %s%s\n", strings.Repeat(" ", int(col-1)), marker)
}

func severityLabel(s diag.Severity) string {
	switch s {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	default:
		return "info"
	}
}

func severityColor(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return errColor
	case diag.SevWarning:
		return warnColor
	case diag.SevInfo:
		return infoColor
	default:
		return noteColor
	}
}
