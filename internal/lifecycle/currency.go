package lifecycle

import (
	"strconv"
	"strings"
)

// ParseCurrency parses an operator-entered amount in pt-BR notation
// ("R$ 1.250,00" -> 1250.00). Unparseable or empty input yields 0, never an
// error: a blank value means "nothing to charge" throughout the system.
func ParseCurrency(value string) float64 {
	if value == "" {
		return 0
	}
	cleaned := strings.TrimSpace(value)
	cleaned = strings.ReplaceAll(cleaned, "R$", "")
	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	cleaned = strings.TrimSpace(cleaned)

	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return amount
}
