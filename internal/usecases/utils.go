package usecases

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// ParseAmount parses a decimal amount string
func ParseAmount(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

// FormatAmount renders a float amount back to its decimal string form
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// SumAmounts adds decimal amount strings exactly. Summing through float64
// leaves binary artifacts ("0.30000000000000004") in values that get
// persisted, so batch totals go through rationals instead.
func SumAmounts(amounts ...string) (string, error) {
	sum := new(big.Rat)
	for _, a := range amounts {
		r, ok := new(big.Rat).SetString(a)
		if !ok {
			return "", fmt.Errorf("invalid amount %q", a)
		}
		sum.Add(sum, r)
	}
	return formatRat(sum), nil
}

// formatRat renders a rational as a plain decimal string with no trailing
// zeros. Amount columns hold at most 18 fractional digits.
func formatRat(r *big.Rat) string {
	if r.IsInt() {
		return r.Num().String()
	}
	s := strings.TrimRight(r.FloatString(18), "0")
	return strings.TrimRight(s, ".")
}
