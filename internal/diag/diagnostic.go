package diag

import (
	"prism/internal/source"
)

// SecondaryInfo ties an explanatory label to an auxiliary source span
// ("previous declaration here"). Slice order is display order.
type SecondaryInfo struct {
	Label string
	Span  *source.Span
}

// Diagnostic is the central record handed to the renderer. Every field is
// individually optional: a nil Primary span, an empty Message, or an empty
// Secondary list each simply mean "nothing to print" for that part.
type Diagnostic struct {
	Severity  Severity
	Message   string
	Primary   *source.Span
	Secondary []SecondaryInfo
}
