package pricing

import "errors"

var (
	// ErrMarginOutOfRange is returned when a margin of 100% or more would
	// require a zero or negative denominator.
	ErrMarginOutOfRange = errors.New("margin % must be < 100")

	// ErrUnknownMode is returned for a pricing mode other than markup or margin.
	ErrUnknownMode = errors.New("unknown pricing mode")

	// ErrUnknownTarget is returned when Solve is asked for an unsupported value.
	ErrUnknownTarget = errors.New("unknown solve target")
)
