package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/budget_tracker/internal/apperrors"
	"github.com/shopspring/decimal"
)

const (
	// DefaultCurrencySymbol is used when an owner has no stored budget yet.
	DefaultCurrencySymbol = "£"

	// MinorUnitPlaces is the number of fractional digits kept for every amount.
	MinorUnitPlaces = 2
)

// MaxAmount bounds the magnitude of a single amount in major units so that
// the cents value always fits in an int64.
var MaxAmount = decimal.New(1, 15)

// maxIntegerDigits is the digit count of MaxAmount.
const maxIntegerDigits = 16

// ParseAmount parses user input as a decimal number.
// Surrounding whitespace is ignored; blank or malformed input yields ErrInvalidAmount.
func ParseAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, apperrors.ErrInvalidAmount
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", apperrors.ErrInvalidAmount, raw)
	}
	return amount, nil
}

// ToMinorUnits rounds amount to two places (half away from zero) and
// returns it as an integer number of cents. The sign is preserved.
func ToMinorUnits(amount decimal.Decimal) (int64, error) {
	if amount.IsZero() {
		return 0, nil
	}
	// Rounding rescales the coefficient by 10^|exponent|, so the magnitude is
	// bounded from the digit count first.
	magnitude := int64(amount.NumDigits()) + int64(amount.Exponent())
	if magnitude > maxIntegerDigits {
		return 0, fmt.Errorf("%w: exceeds %s", apperrors.ErrInvalidAmount, MaxAmount.String())
	}
	if magnitude <= -(MinorUnitPlaces + 1) {
		// below 0.001, which rounds to zero cents
		return 0, nil
	}
	rounded := amount.Round(MinorUnitPlaces)
	if rounded.Abs().GreaterThan(MaxAmount) {
		return 0, fmt.Errorf("%w: exceeds %s", apperrors.ErrInvalidAmount, MaxAmount.String())
	}
	return rounded.Shift(MinorUnitPlaces).IntPart(), nil
}

// ParseMinorUnits is ParseAmount followed by ToMinorUnits.
func ParseMinorUnits(raw string) (int64, error) {
	amount, err := ParseAmount(raw)
	if err != nil {
		return 0, err
	}
	return ToMinorUnits(amount)
}

// FormatDisplay renders cents as "{symbol}{value}" with exactly two decimals,
// e.g. FormatDisplay(750, "£") == "£7.50" and FormatDisplay(-250, "£") == "£-2.50".
func FormatDisplay(minorUnits int64, symbol string) string {
	return symbol + decimal.New(minorUnits, -MinorUnitPlaces).StringFixed(MinorUnitPlaces)
}
