package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"prism/internal/diag"
	"prism/internal/source"
)

const (
	// maxSpanWidth is the widest highlighted span shown in full; longer
	// spans are reduced to their edges around a gap marker.
	maxSpanWidth = 150
	// maxLineWidth is the longest line shown in full; longer lines are
	// reduced to the highlighted span between gap markers.
	maxLineWidth = 150
	// edgeKeep is how many characters of each span edge survive span
	// reduction.
	edgeKeep = 35
	// reducedSpanWidth is the display width of a reduced span:
	// edgeKeep + len(gapMarker) + edgeKeep.
	reducedSpanWidth = 75

	gapMarker = " ... "

	multiLineMarker = "^ (Relevant source part starts here and spans across multiple lines)."
)

// ScannerView is the slice of scanner behaviour the renderer needs:
// byte offset to zero-based line/column translation and raw line text.
// *source.File satisfies it.
type ScannerView interface {
	LineColAt(offset uint32) source.Pos
	LineAt(offset uint32) string
}

// ResolveScanner resolves a source name to its scanner. The renderer calls
// it any number of times per diagnostic and expects idempotent, side-effect
// free lookups. Passing a span whose name the capability cannot resolve is
// a caller error the renderer does not guard against.
type ResolveScanner func(name string) ScannerView

// Formatter renders diagnostics as human-readable terminal text: a
// file:line:col header, a colored severity label, the offending source
// line with the span highlighted, and a caret row underneath. It assumes
// sole ownership of the output sink for the duration of one
// WriteDiagnostic call.
type Formatter struct {
	out     io.Writer
	resolve ResolveScanner
	styler  Styler
}

// NewFormatter builds a Formatter over the given sink and scanner
// capability. A nil styler defaults to TermStyler.
func NewFormatter(out io.Writer, resolve ResolveScanner, styler Styler) *Formatter {
	if styler == nil {
		styler = TermStyler{}
	}
	return &Formatter{out: out, resolve: resolve, styler: styler}
}

// WriteSourceName writes the "<name>:<line>:<col>: " header for the start
// of the span, one-based, trailing space, no newline. A nil span or a span
// without a source name writes nothing.
func (f *Formatter) WriteSourceName(span *source.Span) {
	if span == nil || span.Name == "" {
		return // nothing we can print here
	}
	sc := f.resolve(span.Name)
	pos := sc.LineColAt(span.Start)
	fmt.Fprintf(f.out, "%s:%d:%d: ", span.Name, pos.Line+1, pos.Col+1)
}

// WriteSourceLocation writes the source excerpt for the span: for
// single-line spans the line itself with the span colored, then a caret
// row; for multi-line spans the first line and a fixed marker. A nil span
// or a span without a source name writes nothing.
func (f *Formatter) WriteSourceLocation(span *source.Span, sev diag.Severity) {
	if span == nil || span.Name == "" {
		return // nothing we can print here
	}
	sc := f.resolve(span.Name)
	start := sc.LineColAt(span.Start)
	end := sc.LineColAt(span.End)

	st, emph := styleFor(sev)

	if start.Line != end.Line {
		// Only the first line is shown; the rest of the span is
		// deliberately summarized by the marker.
		f.writeString(sc.LineAt(span.Start))
		f.writeString("\n")
		f.writeString(strings.Repeat(" ", int(start.Col)))
		f.writeString(multiLineMarker)
		f.writeString("\n")
		return
	}

	line := sc.LineAt(span.Start)
	startCol := int(start.Col)
	endCol := int(end.Col)
	locLen := endCol - startCol

	// Two independent reductions keep pathological input readable: first
	// an overlong span is cut down to its edges, then an overlong line is
	// cut down to the (possibly already reduced) span.
	if locLen > maxSpanWidth {
		line = line[:min(startCol+edgeKeep, len(line))] + gapMarker + line[endCol-edgeKeep:]
		endCol = startCol + reducedSpanWidth
		locLen = reducedSpanWidth
	}
	if len(line) > maxLineWidth {
		line = gapMarker + line[startCol:startCol+locLen] + gapMarker
		startCol = len(gapMarker)
		endCol = startCol + locLen
	}

	f.writeString(line[:startCol])
	f.writeStyled(st, line[startCol:startCol+locLen])
	f.writeString(line[endCol:])
	f.writeString("\n")

	// Caret alignment: tabs in the prefix stay tabs so the carets line up
	// under tab-indented code.
	var marker strings.Builder
	for i := 0; i < startCol; i++ {
		if line[i] == '\t' {
			marker.WriteByte('\t')
		} else {
			marker.WriteByte(' ')
		}
	}
	f.writeString(marker.String())
	f.writeStyled(emph, strings.Repeat("^", locLen))
	f.writeString("\n")
}

// WriteDiagnostic writes the full block for one diagnostic: header,
// severity label, optional message, primary excerpt, then one
// header/label/excerpt block per secondary info followed by a blank line.
// The severity argument controls label text and color, which lets callers
// promote or demote a diagnostic (e.g. warnings-as-errors) at render time.
func (f *Formatter) WriteDiagnostic(d diag.Diagnostic, sev diag.Severity) {
	f.WriteSourceName(d.Primary)

	_, emph := styleFor(sev)
	f.writeStyled(emph, sev.String())
	if d.Message != "" {
		f.writeString(": ")
		f.writeString(d.Message)
	}
	f.writeString("\n")

	f.WriteSourceLocation(d.Primary, sev)

	if len(d.Secondary) > 0 {
		for _, info := range d.Secondary {
			f.WriteSourceName(info.Span)
			f.writeString(info.Label)
			f.writeString("\n")
			f.WriteSourceLocation(info.Span, sev)
		}
		f.writeString("\n")
	}
}

func styleFor(sev diag.Severity) (plain, emph Style) {
	if sev.IsWarning() {
		return StyleWarning, StyleWarningEmph
	}
	return StyleError, StyleErrorEmph
}

func (f *Formatter) writeString(s string) {
	io.WriteString(f.out, s) //nolint:errcheck // sink errors are not actionable here
}

func (f *Formatter) writeStyled(st Style, s string) {
	io.WriteString(f.out, f.styler.Styled(st, s)) //nolint:errcheck
}
