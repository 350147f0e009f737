package fixedpoint

import "errors"

var (
	// ErrInvalidDecimal indicates a decimal string that cannot be parsed.
	ErrInvalidDecimal = errors.New("invalid decimal value")
	// ErrInvalidScale indicates a negative scale.
	ErrInvalidScale = errors.New("scale must not be negative")
	// ErrZeroReferenceRate indicates a conversion against a zero reference rate.
	ErrZeroReferenceRate = errors.New("reference rate is zero")
)
