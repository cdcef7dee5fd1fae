package utils

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// All monetary arithmetic inside the system uses int64 centavos. The
// decimal type only appears at the boundary (parsing configured amounts,
// formatting for display) and in odds multipliers.

var centavosPerReal = decimal.NewFromInt(100)

// CentavosToDecimal converts centavos to a decimal amount in reais.
func CentavosToDecimal(centavos int64) decimal.Decimal {
	return decimal.NewFromInt(centavos).Div(centavosPerReal)
}

// DecimalToCentavos converts a decimal amount in reais to whole centavos.
// Fractions of a centavo are floored.
func DecimalToCentavos(amount decimal.Decimal) int64 {
	return amount.Mul(centavosPerReal).Floor().IntPart()
}

// ParseCentavos parses a decimal string like "10.50" into centavos.
func ParseCentavos(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return DecimalToCentavos(d), nil
}

// FormatCentavos renders centavos as a display string with 2 decimals.
func FormatCentavos(centavos int64) string {
	return CentavosToDecimal(centavos).StringFixed(2)
}
