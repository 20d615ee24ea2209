// Package pretty renders diag.Error values as human-readable, optionally
// colored terminal output with a source snippet and a caret, the way
// cmd/csstool reports parse diagnostics. This is CLI-only: internal/diag
// itself stays free of any terminal concern, matching the teacher's split
// between internal/logger (Msg/MsgData, no terminal knowledge) and its
// per-platform TerminalInfo detection (logger_darwin.go/logger_other.go).
package pretty

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/csstreelang/csscore/internal/diag"
	"github.com/csstreelang/csscore/internal/source"
)

// Colors holds the ANSI escapes used to highlight one rendered message.
// Zero value is "no color", used whenever the destination isn't a color
// capable TTY.
type Colors struct {
	Reset, Bold, Dim, Red, Yellow, Cyan string
}

var PlainColors = Colors{}

var TerminalColors = Colors{
	Reset:  "\033[0m",
	Bold:   "\033[1m",
	Dim:    "\033[37m",
	Red:    "\033[31m",
	Yellow: "\033[33m",
	Cyan:   "\033[36m",
}

// TerminalInfo mirrors the teacher's logger.TerminalInfo: whether the
// destination file descriptor is an interactive terminal, whether it
// supports color, and its width (used to decide how much of a long
// source line to show around the caret).
type TerminalInfo struct {
	IsTTY           bool
	UseColorEscapes bool
	Width           int
}

// GetTerminalInfo is implemented per
// platform (pretty_darwin.go, pretty_linux.go, pretty_other.go), exactly
// like the teacher splits GetTerminalInfo across logger_darwin.go /
// logger_other.go / logger_windows.go.

// Colors picks TerminalColors or PlainColors for info.
func (info TerminalInfo) Colors() Colors {
	if info.UseColorEscapes {
		return TerminalColors
	}
	return PlainColors
}

// Format renders one diag.Error against buf as a single multi-line
// string: "path:line:col: error: text", then an optional source snippet
// with a caret under the offending span, clipped to info.Width when the
// destination is a narrower terminal.
func Format(buf *source.Buffer, e diag.Error, info TerminalInfo) string {
	colors := info.Colors()
	line, col := buf.LineColumn(e.Span.Start)

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s%s:%d:%d:%s %serror:%s %s\n",
		colors.Bold, path(buf), line, col, colors.Reset,
		colors.Red, colors.Reset, e.Text)

	lineText, lineStart := lineAround(buf, int(e.Span.Start))
	width := info.Width
	if width <= 0 {
		width = 120
	}
	displayLine, caretCol := clip(lineText, col, width)

	margin := strings.Repeat(" ", len(strconv.Itoa(line)))
	fmt.Fprintf(&sb, "%s %s|%s\n", margin, colors.Dim, colors.Reset)
	fmt.Fprintf(&sb, "%d %s|%s %s\n", line, colors.Dim, colors.Reset, displayLine)

	caretLen := e.Span.Len()
	if caretLen < 1 {
		caretLen = 1
	}
	if caretCol+caretLen > len(displayLine) {
		caretLen = len(displayLine) - caretCol
		if caretLen < 1 {
			caretLen = 1
		}
	}
	fmt.Fprintf(&sb, "%s %s|%s %s%s%s%s\n",
		margin, colors.Dim, colors.Reset,
		strings.Repeat(" ", caretCol), colors.Cyan, strings.Repeat("^", caretLen), colors.Reset)

	_ = lineStart
	return sb.String()
}

func path(buf *source.Buffer) string {
	if buf.Path == "" {
		return "<input>"
	}
	return buf.Path
}

// lineAround returns the full line of text containing byte offset o, and
// that line's starting offset.
func lineAround(buf *source.Buffer, o int) (string, int) {
	content := buf.Contents
	if o > len(content) {
		o = len(content)
	}
	start := strings.LastIndexByte(content[:o], '\n') + 1
	end := strings.IndexByte(content[o:], '\n')
	if end == -1 {
		end = len(content)
	} else {
		end += o
	}
	return content[start:end], start
}

// clip truncates line to width columns around caretCol (0-based byte
// column within line), returning the truncated line and the caret's
// column within it.
func clip(line string, caretCol, width int) (string, int) {
	if len(line) <= width {
		return line, caretCol
	}
	half := width / 2
	start := caretCol - half
	if start < 0 {
		start = 0
	}
	end := start + width
	if end > len(line) {
		end = len(line)
		start = end - width
		if start < 0 {
			start = 0
		}
	}
	return line[start:end], caretCol - start
}

// FormatAll renders every error in errs, separated by blank lines.
func FormatAll(buf *source.Buffer, errs []diag.Error, info TerminalInfo) string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = Format(buf, e, info)
	}
	return strings.Join(parts, "\n")
}

// AutoTerminalInfo detects f's terminal capabilities, honoring NO_COLOR
// the way the teacher's hasNoColorEnvironmentVariable does.
func AutoTerminalInfo(f *os.File) TerminalInfo {
	info := GetTerminalInfo(f)
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		info.UseColorEscapes = false
	}
	return info
}
