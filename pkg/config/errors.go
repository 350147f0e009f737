package config

import "errors"

var (
	// ErrMissingManifestValue indicates a required manifest address is not set.
	ErrMissingManifestValue = errors.New("required manifest value missing")
	// ErrInvalidTimeout indicates a non-positive fetch timeout.
	ErrInvalidTimeout = errors.New("fetch timeout must be positive")
	// ErrUnknownPriorityPlugin indicates a priority entry naming no known plugin.
	ErrUnknownPriorityPlugin = errors.New("priority entry references unknown plugin")
	// ErrEmptyPriority indicates an empty plugin priority list.
	ErrEmptyPriority = errors.New("priority list must not be empty")
	// ErrNoAssets indicates a catalog with no assets to price.
	ErrNoAssets = errors.New("at least one asset must be configured")
)
