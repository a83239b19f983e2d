// Package engineerr defines the small error taxonomy the engine surfaces to
// callers, per spec §7. Parsing failures are fatal (InvalidFormat,
// EmptyCorpus); a metric module's unmet precondition (InsufficientData) is
// never returned as an error to the top-level caller — it is absorbed
// locally into an absent result field by the owning module.
package engineerr

import "errors"

// Sentinel errors. Wrap with fmt.Errorf("...: %w", ErrX) to attach context
// while staying errors.Is-comparable, matching the teacher's
// pkg/eventstream/errors.go convention.
var (
	// ErrInvalidFormat means structural validation failed: missing
	// participants list, no parseable lines, unknown date format on every
	// sample line. Fatal for the whole run.
	ErrInvalidFormat = errors.New("engineerr: invalid format")

	// ErrEmptyCorpus means the structure parsed but no non-system messages
	// remain. Fatal.
	ErrEmptyCorpus = errors.New("engineerr: empty corpus")

	// ErrInsufficientData means a specific module's preconditions were not
	// met. Handled locally by the owning module; never propagated past it.
	ErrInsufficientData = errors.New("engineerr: insufficient data")
)

// Warning is a non-fatal condition surfaced alongside a successful parse:
// Truncation (a message exceeded the length cap) or AmbiguousDate (a
// DD/MM-vs-MM/DD call had to be made).
type Warning struct {
	Kind    WarningKind
	Message string
}

// WarningKind enumerates the non-fatal warning kinds from §7.
type WarningKind string

const (
	WarningTruncation    WarningKind = "truncation"
	WarningAmbiguousDate WarningKind = "ambiguous_date"
)

func (w Warning) Error() string {
	return string(w.Kind) + ": " + w.Message
}
