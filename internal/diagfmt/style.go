package diagfmt

import "github.com/fatih/color"

// Style identifies one of the fixed styling ops the renderer emits. The
// renderer never composes styles dynamically: warnings are yellow, every
// other severity is red, and the severity label plus the caret row are
// additionally bold.
type Style uint8

const (
	StylePlain Style = iota
	// StyleWarning is the plain warning color (yellow).
	StyleWarning
	// StyleError is the plain error color (red), shared by all
	// non-warning severities.
	StyleError
	// StyleWarningEmph is the warning color plus bold.
	StyleWarningEmph
	// StyleErrorEmph is the error color plus bold.
	StyleErrorEmph
)

// Styler turns (style, text) into the bytes written to the sink. Keeping
// it behind an interface lets the same rendering logic target a real
// terminal, a plain sink for tests, or a structured sink without branching
// inside the truncation logic.
type Styler interface {
	Styled(st Style, text string) string
}

var (
	warnColor     = color.New(color.FgYellow)
	errColor      = color.New(color.FgRed)
	warnEmphColor = color.New(color.FgYellow, color.Bold)
	errEmphColor  = color.New(color.FgRed, color.Bold)
)

// TermStyler renders styles as ANSI escape sequences. It honors the
// global color.NoColor switch, so forcing colors off upstream still works.
type TermStyler struct{}

func (TermStyler) Styled(st Style, text string) string {
	switch st {
	case StyleWarning:
		return warnColor.Sprint(text)
	case StyleError:
		return errColor.Sprint(text)
	case StyleWarningEmph:
		return warnEmphColor.Sprint(text)
	case StyleErrorEmph:
		return errEmphColor.Sprint(text)
	}
	return text
}

// PlainStyler passes text through unchanged. Used for tests and
// non-terminal sinks.
type PlainStyler struct{}

func (PlainStyler) Styled(_ Style, text string) string {
	return text
}
