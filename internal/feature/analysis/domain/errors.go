// Package domain defines domain-level errors for the analysis feature.
package domain

import "errors"

// Error taxonomy for the analysis pipeline. Every computation in the
// feature is isolated per indicator: one of these surfacing for one
// indicator omits that section of the report and never aborts the rest.
var (
	// ErrDataUnavailable indicates the upstream data provider failed
	// after its bounded retries. The dependent section is omitted.
	ErrDataUnavailable = errors.New("market data unavailable")

	// ErrParseFailure indicates a value expected to be numeric was not
	// (providers return "-" and similar placeholders). The dependent
	// sub-analysis is omitted rather than classified with a default.
	ErrParseFailure = errors.New("metric value is not numeric")

	// ErrInsufficientHistory indicates a series is shorter than an
	// indicator's minimum window. The indicator is reported as
	// undefined, never computed over a silently truncated window.
	ErrInsufficientHistory = errors.New("insufficient price history")
)
