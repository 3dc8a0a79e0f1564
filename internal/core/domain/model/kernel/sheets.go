package kernel

import (
	"printshop/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// SheetsFromDecimal converts a requested quantity into whole sheets. Fractional
// values are rejected, never rounded. Zero and negative values are rejected unless
// signed is set (administrative adjustments), in which case only zero is rejected.
func SheetsFromDecimal(paramName string, d decimal.Decimal, signed bool) (int, error) {
	if !d.IsInteger() {
		return 0, errs.NewInvalidQuantityError(paramName, d.String(), "fractional sheets are not permitted")
	}
	if d.IsZero() {
		return 0, errs.NewInvalidQuantityError(paramName, d.String(), "must not be zero")
	}
	if !signed && d.IsNegative() {
		return 0, errs.NewInvalidQuantityError(paramName, d.String(), "must be positive")
	}
	if !d.Abs().LessThanOrEqual(decimal.NewFromInt(maxSheets)) {
		return 0, errs.NewInvalidQuantityError(paramName, d.String(), "exceeds the largest supported quantity")
	}
	return int(d.IntPart()), nil
}

// ValidateSheets checks an already integral quantity.
func ValidateSheets(paramName string, n int, signed bool) error {
	_, err := SheetsFromDecimal(paramName, decimal.NewFromInt(int64(n)), signed)
	return err
}

const maxSheets = 1_000_000_000
