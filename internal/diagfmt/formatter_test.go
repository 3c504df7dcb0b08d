package diagfmt

import (
	"strings"
	"testing"

	"prism/internal/diag"
	"prism/internal/source"
)

// tagStyler wraps styled text in readable markers so tests can check where
// styles start and end without depending on ANSI escapes.
type tagStyler struct{}

func (tagStyler) Styled(st Style, text string) string {
	switch st {
	case StyleWarning:
		return "[w]" + text + "[/w]"
	case StyleError:
		return "[e]" + text + "[/e]"
	case StyleWarningEmph:
		return "[W]" + text + "[/W]"
	case StyleErrorEmph:
		return "[E]" + text + "[/E]"
	}
	return text
}

func newTestFormatter(content string, styler Styler) (*Formatter, *strings.Builder) {
	fs := source.NewFileSet()
	fs.AddVirtual("main.src", []byte(content))
	resolve := func(name string) ScannerView {
		f, _ := fs.GetByName(name)
		return f
	}
	var out strings.Builder
	return NewFormatter(&out, resolve, styler), &out
}

func TestWriteSourceNameHeader(t *testing.T) {
	f, out := newTestFormatter("ab\ncdef\n", PlainStyler{})

	f.WriteSourceName(source.NewSpan("main.src", 4, 6))

	if got, want := out.String(), "main.src:2:2: "; got != want {
		t.Fatalf("header = %q, want %q", got, want)
	}
}

func TestWriteSourceNameAbsent(t *testing.T) {
	f, out := newTestFormatter("ab\n", PlainStyler{})

	f.WriteSourceName(nil)
	f.WriteSourceName(&source.Span{Start: 0, End: 1})

	if out.Len() != 0 {
		t.Fatalf("expected no output for absent span, got %q", out.String())
	}
}

func TestSingleLineExcerpt(t *testing.T) {
	// Span on line 3 (0-based line 2), columns 4-10.
	content := "a\nb\n    value += 1;\n"
	f, out := newTestFormatter(content, PlainStyler{})

	f.WriteSourceLocation(source.NewSpan("main.src", 8, 14), diag.SevError)

	want := "    value += 1;\n    ^^^^^^\n"
	if got := out.String(); got != want {
		t.Fatalf("excerpt =\n%q\nwant\n%q", got, want)
	}
}

func TestSingleLineExcerptStyling(t *testing.T) {
	content := "a\nb\n    value += 1;\n"
	f, out := newTestFormatter(content, tagStyler{})

	f.WriteSourceLocation(source.NewSpan("main.src", 8, 14), diag.SevError)

	want := "    [e]value [/e]+= 1;\n    [E]^^^^^^[/E]\n"
	if got := out.String(); got != want {
		t.Fatalf("styled excerpt =\n%q\nwant\n%q", got, want)
	}
}

func TestSingleLineReproducesSourceExactly(t *testing.T) {
	line := "x := compute(alpha, beta) + gamma"
	f, out := newTestFormatter(line+"\n", PlainStyler{})

	f.WriteSourceLocation(source.NewSpan("main.src", 5, 25), diag.SevError)

	rows := strings.Split(out.String(), "\n")
	if rows[0] != line {
		t.Errorf("short line must be reproduced exactly: got %q", rows[0])
	}
	if want := strings.Repeat(" ", 5) + strings.Repeat("^", 20); rows[1] != want {
		t.Errorf("caret row = %q, want %q", rows[1], want)
	}
}

func TestSpanTruncation(t *testing.T) {
	// Highlighted span of 200 characters: only 35 from each edge survive,
	// joined by the gap marker, for a fixed 75-wide highlight.
	line := strings.Repeat("x", 10) + strings.Repeat("a", 200) + "tail"
	f, out := newTestFormatter(line, tagStyler{})

	f.WriteSourceLocation(source.NewSpan("main.src", 10, 210), diag.SevError)

	got := out.String()
	_, rest, ok := strings.Cut(got, "[e]")
	if !ok {
		t.Fatalf("no highlighted region in %q", got)
	}
	highlight, _, ok := strings.Cut(rest, "[/e]")
	if !ok {
		t.Fatalf("unterminated highlight in %q", got)
	}

	if len(highlight) != 75 {
		t.Errorf("highlight width = %d, want 75", len(highlight))
	}
	if n := strings.Count(highlight, " ... "); n != 1 {
		t.Errorf("gap marker appears %d times in highlight, want 1", n)
	}
	wantHighlight := strings.Repeat("a", 35) + " ... " + strings.Repeat("a", 35)
	if highlight != wantHighlight {
		t.Errorf("highlight = %q, want %q", highlight, wantHighlight)
	}

	rows := strings.Split(got, "\n")
	if want := "xxxxxxxxxx[e]" + wantHighlight + "[/e]tail"; rows[0] != want {
		t.Errorf("line row = %q, want %q", rows[0], want)
	}
	if want := strings.Repeat(" ", 10) + "[E]" + strings.Repeat("^", 75) + "[/E]"; rows[1] != want {
		t.Errorf("caret row = %q, want %q", rows[1], want)
	}
}

func TestLineTruncation(t *testing.T) {
	// Line of 200 characters, span of 10: the display collapses to the
	// span between gap markers.
	line := strings.Repeat("b", 200)
	f, out := newTestFormatter(line, PlainStyler{})

	f.WriteSourceLocation(source.NewSpan("main.src", 60, 70), diag.SevError)

	rows := strings.Split(out.String(), "\n")
	if want := " ... " + strings.Repeat("b", 10) + " ... "; rows[0] != want {
		t.Errorf("line row = %q, want %q", rows[0], want)
	}
	if !strings.HasPrefix(rows[0], " ... ") || !strings.HasSuffix(rows[0], " ... ") {
		t.Errorf("truncated line must start and end with the gap marker: %q", rows[0])
	}
	if want := strings.Repeat(" ", 5) + strings.Repeat("^", 10); rows[1] != want {
		t.Errorf("caret row = %q, want %q", rows[1], want)
	}
}

func TestSpanThenLineTruncation(t *testing.T) {
	// Both reductions fire: the span is cut to 75, then the surrounding
	// line is cut away too.
	line := strings.Repeat("p", 100) + strings.Repeat("a", 200) + strings.Repeat("s", 100)
	f, out := newTestFormatter(line, PlainStyler{})

	f.WriteSourceLocation(source.NewSpan("main.src", 100, 300), diag.SevError)

	rows := strings.Split(out.String(), "\n")
	wantSpan := strings.Repeat("a", 35) + " ... " + strings.Repeat("a", 35)
	if want := " ... " + wantSpan + " ... "; rows[0] != want {
		t.Errorf("line row = %q, want %q", rows[0], want)
	}
	if want := strings.Repeat(" ", 5) + strings.Repeat("^", 75); rows[1] != want {
		t.Errorf("caret row = %q, want %q", rows[1], want)
	}
}

func TestTabsPreservedInCaretAlignment(t *testing.T) {
	content := "\t\tcall();"
	f, out := newTestFormatter(content, PlainStyler{})

	f.WriteSourceLocation(source.NewSpan("main.src", 2, 6), diag.SevError)

	rows := strings.Split(out.String(), "\n")
	if rows[0] != content {
		t.Errorf("line row = %q, want %q", rows[0], content)
	}
	if want := "\t\t" + strings.Repeat("^", 4); rows[1] != want {
		t.Errorf("caret row = %q, want %q", rows[1], want)
	}
}

func TestTabsInsideMixedPrefix(t *testing.T) {
	content := "\tif x\t{ y(); }"
	f, out := newTestFormatter(content, PlainStyler{})

	// Highlight "y()" at columns 8-11; prefix holds a tab, letters, and
	// another tab, which must map to tab/space/space/space/space/tab/space.
	f.WriteSourceLocation(source.NewSpan("main.src", 8, 11), diag.SevError)

	rows := strings.Split(out.String(), "\n")
	if want := "\t    \t  " + "^^^"; rows[1] != want {
		t.Errorf("caret row = %q, want %q", rows[1], want)
	}
}

func TestMultiLineSpan(t *testing.T) {
	content := "foo(bar,\n    baz)\n"
	f, out := newTestFormatter(content, tagStyler{})

	f.WriteSourceLocation(source.NewSpan("main.src", 4, 16), diag.SevError)

	want := "foo(bar,\n" +
		strings.Repeat(" ", 4) +
		"^ (Relevant source part starts here and spans across multiple lines).\n"
	if got := out.String(); got != want {
		t.Fatalf("multi-line output =\n%q\nwant\n%q", got, want)
	}
	if strings.Contains(out.String(), "[") {
		t.Fatalf("multi-line output must not be styled: %q", out.String())
	}
}

func TestWriteSourceLocationAbsent(t *testing.T) {
	f, out := newTestFormatter("ab\n", PlainStyler{})

	f.WriteSourceLocation(nil, diag.SevError)
	f.WriteSourceLocation(&source.Span{Start: 0, End: 1}, diag.SevError)

	if out.Len() != 0 {
		t.Fatalf("expected no output for absent span, got %q", out.String())
	}
}

func TestWarningUsesWarningColor(t *testing.T) {
	content := "let x = 1;\n"
	f, out := newTestFormatter(content, tagStyler{})

	f.WriteSourceLocation(source.NewSpan("main.src", 4, 5), diag.SevWarning)

	got := out.String()
	if !strings.Contains(got, "[w]x[/w]") {
		t.Errorf("warning highlight not in warning color: %q", got)
	}
	if !strings.Contains(got, "[W]^[/W]") {
		t.Errorf("warning caret not bold warning: %q", got)
	}
}

func TestInfoSharesErrorColor(t *testing.T) {
	// The severity-to-color mapping is binary: everything that is not a
	// warning renders in the error color.
	content := "let x = 1;\n"
	f, out := newTestFormatter(content, tagStyler{})

	f.WriteSourceLocation(source.NewSpan("main.src", 4, 5), diag.SevInfo)

	if got := out.String(); !strings.Contains(got, "[e]x[/e]") {
		t.Errorf("info highlight should use the error color: %q", got)
	}
}

func TestWriteDiagnosticFull(t *testing.T) {
	content := "let a = 1;\nlet a = 2;\n"
	f, out := newTestFormatter(content, PlainStyler{})

	d := diag.NewError(source.NewSpan("main.src", 15, 16), "redeclaration of 'a'").
		WithSecondary("previous declaration here", source.NewSpan("main.src", 4, 5))

	f.WriteDiagnostic(d, d.Severity)

	want := "main.src:2:5: Error: redeclaration of 'a'\n" +
		"let a = 2;\n" +
		"    ^\n" +
		"main.src:1:5: previous declaration here\n" +
		"let a = 1;\n" +
		"    ^\n" +
		"\n"
	if got := out.String(); got != want {
		t.Fatalf("diagnostic =\n%q\nwant\n%q", got, want)
	}
}

func TestWriteDiagnosticSecondaryOrder(t *testing.T) {
	content := "a\nb\nc\n"
	f, out := newTestFormatter(content, PlainStyler{})

	d := diag.NewError(nil, "conflict").
		WithSecondary("first mention here", source.NewSpan("main.src", 0, 1)).
		WithSecondary("second mention here", source.NewSpan("main.src", 2, 3))

	f.WriteDiagnostic(d, d.Severity)

	got := out.String()
	first := strings.Index(got, "first mention here")
	second := strings.Index(got, "second mention here")
	if first < 0 || second < 0 || second < first {
		t.Fatalf("secondary blocks out of order:\n%q", got)
	}
	if !strings.HasSuffix(got, "^\n\n") {
		t.Fatalf("expected one trailing blank line after secondaries:\n%q", got)
	}
}

func TestWriteDiagnosticAbsentPrimary(t *testing.T) {
	f, out := newTestFormatter("irrelevant\n", PlainStyler{})

	f.WriteDiagnostic(diag.NewError(nil, "linker input missing"), diag.SevError)

	if got, want := out.String(), "Error: linker input missing\n"; got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestWriteDiagnosticNoMessage(t *testing.T) {
	f, out := newTestFormatter("x\n", PlainStyler{})

	f.WriteDiagnostic(diag.New(diag.SevWarning, nil, ""), diag.SevWarning)

	if got, want := out.String(), "Warning\n"; got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestWriteDiagnosticSeverityLabelStyled(t *testing.T) {
	f, out := newTestFormatter("x\n", tagStyler{})

	f.WriteDiagnostic(diag.NewWarning(nil, "shadowed"), diag.SevWarning)

	if got, want := out.String(), "[W]Warning[/W]: shadowed\n"; got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestWriteDiagnosticSeverityOverride(t *testing.T) {
	// A warning promoted at render time (warnings-as-errors) takes the
	// error label and color.
	f, out := newTestFormatter("let x = 1;\n", tagStyler{})

	d := diag.NewWarning(source.NewSpan("main.src", 4, 5), "unused variable")
	f.WriteDiagnostic(d, diag.SevError)

	got := out.String()
	if !strings.Contains(got, "[E]Error[/E]: unused variable") {
		t.Errorf("promoted label missing: %q", got)
	}
	if !strings.Contains(got, "[e]x[/e]") {
		t.Errorf("promoted highlight should use the error color: %q", got)
	}
}
