// Package diag defines the diagnostic model consumed by the renderer.
//
// # Purpose
//
//   - Provide the data structures that capture a finding: severity, an
//     optional free-text message, an optional primary span, and an ordered
//     list of labeled secondary spans.
//   - Offer light-weight value builders so producers can construct
//     diagnostics without coupling to formatting layers.
//
// # Scope
//
// Package diag does not perform any formatting, IO, or CLI integration.
// Rendering responsibilities live in internal/diagfmt. The package also
// deliberately carries no collection or aggregation machinery: deciding
// whether a diagnostic is fatal, deduplicating, or sorting findings is the
// caller's business.
//
// # Data model
//
// Diagnostic is the central record. Every field is individually optional;
// the renderer treats absent fields as "nothing to print" rather than
// errors, so a Diagnostic with only a Severity is still valid input.
//
// Secondary infos should be used sparingly: each one must add new context
// (e.g. "value declared here") rather than repeating the message.
package diag
