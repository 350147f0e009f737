package oracle

import "errors"

var (
	// ErrNoReferenceRate indicates that no feed could establish the
	// USD price of the base currency, or that it resolved to zero.
	// Without it every USD-denominated price is meaningless.
	ErrNoReferenceRate = errors.New("reference rate could not be established")
	// ErrNoPrices indicates a run that resolved zero assets.
	ErrNoPrices = errors.New("no prices were successfully resolved")
)
