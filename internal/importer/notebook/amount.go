package notebook

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseAmount handles both European ("1.234,56") and plain ("1234.56")
// decimal notation. A comma anywhere marks the European form, where dots are
// thousands separators.
func parseAmount(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(s)

	if strings.Contains(clean, ",") {
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	}

	return decimal.NewFromString(clean)
}
