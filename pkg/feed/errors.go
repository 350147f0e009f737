// Package feed defines the price feed plugin contract and registry.
package feed

import "errors"

var (
	// ErrUnexpectedStatus indicates an unexpected HTTP status code.
	ErrUnexpectedStatus = errors.New("unexpected HTTP status code")
	// ErrInvalidResponse indicates a response the plugin could not interpret.
	ErrInvalidResponse = errors.New("invalid response")
	// ErrInvalidPrice indicates a price value that does not parse as a decimal.
	ErrInvalidPrice = errors.New("invalid price value")
	// ErrNonPositivePrice indicates a zero or negative price value.
	ErrNonPositivePrice = errors.New("price must be positive")
	// ErrQuoteFailed indicates a quote endpoint reported an unsuccessful status.
	ErrQuoteFailed = errors.New("quote request did not succeed")
)
