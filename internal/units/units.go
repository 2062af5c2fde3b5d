// Package units converts between human token amounts and integer base units.
package units

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned for inputs that are not decimal numbers.
var ErrInvalidAmount = errors.New("invalid amount")

// ParseUnits converts a human amount ("1.5") into base units for a token
// with the given decimals ("1500000000000000000"). Digits beyond the token
// precision are rounded half away from zero.
func ParseUnits(amount string, decimals int) (string, error) {
	if decimals < 0 {
		return "", fmt.Errorf("%w: negative decimals %d", ErrInvalidAmount, decimals)
	}
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidAmount, amount)
	}
	return d.Shift(int32(decimals)).Round(0).String(), nil
}

// FormatUnits converts integer base units into a human amount with
// trailing zeros removed.
func FormatUnits(baseUnits string, decimals int) (string, error) {
	if decimals < 0 {
		return "", fmt.Errorf("%w: negative decimals %d", ErrInvalidAmount, decimals)
	}
	d, err := decimal.NewFromString(strings.TrimSpace(baseUnits))
	if err != nil || !d.Equal(d.Truncate(0)) {
		return "", fmt.Errorf("%w: %q is not an integer", ErrInvalidAmount, baseUnits)
	}
	return d.Shift(-int32(decimals)).String(), nil
}

// Half returns 50% of a base-unit balance, rounded down.
func Half(baseUnits string) (string, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(baseUnits))
	if err != nil || !d.Equal(d.Truncate(0)) {
		return "", fmt.Errorf("%w: %q is not an integer", ErrInvalidAmount, baseUnits)
	}
	return d.Mul(decimal.NewFromInt(50)).Div(decimal.NewFromInt(100)).Floor().String(), nil
}
