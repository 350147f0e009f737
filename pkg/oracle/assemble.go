package oracle

import (
	"fmt"
	"strings"
)

// ManifestParams configure the transaction manifest the assembler renders.
// Signing and submission of the manifest belong to the transaction layer,
// not to this engine.
type ManifestParams struct {
	AccountAddress   string
	BadgeResource    string
	BadgeID          string
	ComponentAddress string
}

// Assemble turns the resolved prices into the run result handed to the
// transaction layer. Prices arrive exactly once per resolved asset, in
// catalog order. An empty price list fails the run.
func Assemble(runID, referenceRate, referenceSource string, prices []ResolvedPrice, params ManifestParams) (*Result, error) {
	if len(prices) == 0 {
		return nil, fmt.Errorf("%w", ErrNoPrices)
	}

	return &Result{
		RunID:           runID,
		ReferenceRate:   referenceRate,
		ReferenceSource: referenceSource,
		Prices:          prices,
		Manifest:        buildManifest(params, prices),
	}, nil
}

// buildManifest renders the update_prices transaction manifest text: a badge
// proof followed by one Address => Decimal entry per resolved asset.
func buildManifest(params ManifestParams, prices []ResolvedPrice) string {
	entries := make([]string, 0, len(prices))
	for _, price := range prices {
		entries = append(entries,
			fmt.Sprintf("    Address(%q) => Decimal(%q)", price.ID, price.Price))
	}

	lines := []string{
		"CALL_METHOD",
		fmt.Sprintf("    Address(%q)", params.AccountAddress),
		`    "create_proof_of_non_fungibles"`,
		fmt.Sprintf("    Address(%q)", params.BadgeResource),
		"    Array<NonFungibleLocalId>(",
		fmt.Sprintf("        NonFungibleLocalId(%q)", params.BadgeID),
		"    )",
		";",
		"",
		"CALL_METHOD",
		fmt.Sprintf("  Address(%q)", params.ComponentAddress),
		`  "update_prices"`,
		"  Map<Address, Decimal>(",
		strings.Join(entries, ",\n"),
		"  )",
		";",
	}
	return strings.Join(lines, "\n")
}
