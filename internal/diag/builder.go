package diag

import "prism/internal/source"

func New(sev Severity, primary *source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity:  sev,
		Primary:   primary,
		Message:   msg,
		Secondary: nil,
	}
}

func NewError(primary *source.Span, msg string) Diagnostic {
	return New(SevError, primary, msg)
}

func NewWarning(primary *source.Span, msg string) Diagnostic {
	return New(SevWarning, primary, msg)
}

// WithSecondary appends a labeled auxiliary span. Append order is the
// order the renderer prints the secondary blocks in.
func (d Diagnostic) WithSecondary(label string, sp *source.Span) Diagnostic {
	d.Secondary = append(d.Secondary, SecondaryInfo{Label: label, Span: sp})
	return d
}
