package config

import (
	"fmt"
)

// Validate checks configuration for errors. Configuration problems are fatal
// at load time, before any network call is made.
func Validate(cfg *Config) error {
	if cfg.Fetch.Timeout.ToDuration() <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidTimeout, cfg.Fetch.Timeout.ToDuration())
	}

	if len(cfg.Priority) == 0 {
		return fmt.Errorf("%w", ErrEmptyPriority)
	}
	for _, name := range cfg.Priority {
		if !isKnownPlugin(name) {
			return fmt.Errorf("%w: %q", ErrUnknownPriorityPlugin, name)
		}
	}

	if len(cfg.Catalog.Assets) == 0 {
		return fmt.Errorf("%w", ErrNoAssets)
	}
	if err := cfg.Catalog.Validate(isKnownPlugin); err != nil {
		return fmt.Errorf("catalog: %w", err)
	}

	if err := validateManifestConfig(&cfg.Manifest); err != nil {
		return fmt.Errorf("manifest config: %w", err)
	}

	return nil
}

func validateManifestConfig(cfg *ManifestConfig) error {
	if cfg.AccountAddress == "" {
		return fmt.Errorf("%w: account_address", ErrMissingManifestValue)
	}
	if cfg.BadgeResource == "" {
		return fmt.Errorf("%w: badge_resource", ErrMissingManifestValue)
	}
	if cfg.ComponentAddress == "" {
		return fmt.Errorf("%w: component_address", ErrMissingManifestValue)
	}
	return nil
}

func isKnownPlugin(name string) bool {
	for _, known := range KnownPlugins {
		if name == known {
			return true
		}
	}
	return false
}
