package diag

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevInfo is for informational diagnostics.
	SevInfo Severity = iota
	// SevWarning is for warning diagnostics.
	SevWarning
	SevError
)

// String returns the display label written in front of the diagnostic
// message ("Error: something went wrong").
func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "Info"
	case SevWarning:
		return "Warning"
	case SevError:
		return "Error"
	}
	return "Unknown"
}

// IsWarning reports whether the severity renders in the warning color.
// Every other severity shares the error color; the mapping is binary.
func (s Severity) IsWarning() bool {
	return s == SevWarning
}
