package catalog

import "errors"

var (
	// ErrMissingSymbol indicates an asset without a display symbol.
	ErrMissingSymbol = errors.New("asset symbol is required")
	// ErrMissingID indicates an asset without a stable identifier.
	ErrMissingID = errors.New("asset id is required")
	// ErrNoFeeds indicates an asset with neither a fixed price nor feeds.
	ErrNoFeeds = errors.New("asset has no fixed price and no feeds")
	// ErrInvalidFixedPrice indicates a fixed price that does not parse.
	ErrInvalidFixedPrice = errors.New("invalid fixed price")
	// ErrUnknownFeedPlugin indicates a feed referencing an unregistered plugin.
	ErrUnknownFeedPlugin = errors.New("feed references unknown plugin")
	// ErrDuplicateAssetID indicates two assets sharing an identifier.
	ErrDuplicateAssetID = errors.New("duplicate asset id")
	// ErrMissingReference indicates a catalog without a reference entry.
	ErrMissingReference = errors.New("reference entry is required")
	// ErrFixedReference indicates a reference entry with a fixed price.
	ErrFixedReference = errors.New("reference entry must resolve through feeds")
)
