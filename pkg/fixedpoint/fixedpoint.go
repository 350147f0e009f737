// Package fixedpoint implements exact base-10 scaled-integer arithmetic for
// price values. All math runs on big.Int scaled by a fixed number of
// fractional digits; binary floating point is never involved, so values
// survive the round trip to on-chain decimals without representation error.
//
// Excess precision is truncated toward zero, both when parsing and when
// converting between currencies. Rounding to nearest would change results at
// the last digit and silently alter submitted prices.
package fixedpoint

import (
	"fmt"
	"math/big"
	"strings"
)

// Scale is the number of fractional digits used for price normalization.
const Scale = 18

// Parse converts a decimal string into an integer scaled by 10^scale.
// The fractional part is right-padded with zeros or truncated to exactly
// scale digits. Anything but an optional sign, digits and a single decimal
// point is rejected.
func Parse(value string, scale int) (*big.Int, error) {
	if scale < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidScale, scale)
	}

	raw := strings.TrimSpace(value)
	negative := strings.HasPrefix(raw, "-")
	if negative || strings.HasPrefix(raw, "+") {
		raw = raw[1:]
	}

	whole, fraction, _ := strings.Cut(raw, ".")
	if whole == "" {
		whole = "0"
	}
	if !isDigits(whole) || (fraction != "" && !isDigits(fraction)) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDecimal, value)
	}

	if len(fraction) > scale {
		fraction = fraction[:scale]
	} else {
		fraction += strings.Repeat("0", scale-len(fraction))
	}

	n, ok := new(big.Int).SetString(whole+fraction, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDecimal, value)
	}
	if negative {
		n.Neg(n)
	}
	return n, nil
}

// Format is the inverse of Parse: it renders a scaled integer as a decimal
// string with the point inserted scale digits from the right. For scale 0 it
// emits a plain integer string.
func Format(value *big.Int, scale int) string {
	negative := value.Sign() < 0
	raw := new(big.Int).Abs(value).String()
	sign := ""
	if negative {
		sign = "-"
	}

	if scale == 0 {
		return sign + raw
	}

	if len(raw) <= scale {
		raw = strings.Repeat("0", scale-len(raw)+1) + raw
	}
	split := len(raw) - scale
	return sign + raw[:split] + "." + raw[split:]
}

// TrimTrailingZeros removes trailing zeros from the fractional part and a
// dangling decimal point, collapsing "0.000" to "0".
func TrimTrailingZeros(value string) string {
	if !strings.Contains(value, ".") {
		return value
	}
	trimmed := strings.TrimRight(value, "0")
	trimmed = strings.TrimSuffix(trimmed, ".")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}

// FormatScaled decodes a price reported as mantissa*10^exponent into a
// canonical decimal string. The mantissa must be an optionally signed integer
// string; the exponent is typically negative.
func FormatScaled(mantissa string, exponent int) (string, error) {
	negative := strings.HasPrefix(mantissa, "-")
	digits := mantissa
	if negative {
		digits = digits[1:]
	}
	if digits == "" || !isDigits(digits) {
		return "", fmt.Errorf("%w: mantissa %q", ErrInvalidDecimal, mantissa)
	}

	sign := ""
	if negative {
		sign = "-"
	}

	decimals := -exponent
	switch {
	case decimals <= 0:
		return sign + digits + strings.Repeat("0", -decimals), nil
	case len(digits) > decimals:
		split := len(digits) - decimals
		return sign + digits[:split] + "." + digits[split:], nil
	default:
		return sign + "0." + strings.Repeat("0", decimals-len(digits)) + digits, nil
	}
}

// Convert divides a USD-denominated price by the reference rate (the USD
// price of one base-currency unit), truncating toward zero at the given
// scale. A zero reference rate is an error, never a silent zero result.
func Convert(usdPrice, referenceRate string, scale int) (string, error) {
	numerator, err := Parse(usdPrice, scale)
	if err != nil {
		return "", fmt.Errorf("usd price: %w", err)
	}
	denominator, err := Parse(referenceRate, scale)
	if err != nil {
		return "", fmt.Errorf("reference rate: %w", err)
	}
	if denominator.Sign() == 0 {
		return "", fmt.Errorf("%w", ErrZeroReferenceRate)
	}

	factor := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(scale)), nil)
	quotient := new(big.Int).Quo(new(big.Int).Mul(numerator, factor), denominator)
	return TrimTrailingZeros(Format(quotient, scale)), nil
}

func isDigits(s string) bool {
	if s == "" {
		return true
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
