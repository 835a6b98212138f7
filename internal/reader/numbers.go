package reader

import "strconv"

// parseInt recognizes -?\d+ per spec.md §6. Anything with a decimal point,
// exponent, or non-digit body is left for parseFloat or the Sym fallback.
func parseInt(lit string) (int64, bool) {
	v, err := strconv.ParseInt(lit, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseFloat recognizes -?\d+(\.\d*)? and the wider set strconv accepts
// (exponents included), matching spec.md §6's float grammar.
func parseFloat(lit string) (float64, bool) {
	if lit == "" {
		return 0, false
	}
	// Reject bare symbols that strconv would otherwise happily parse as
	// floats in non-decimal notation (e.g. "inf", "nan") — those are
	// ordinary identifiers in this language.
	first := lit[0]
	if first != '-' && first != '+' && (first < '0' || first > '9') {
		return 0, false
	}
	hasDigit := false
	for i := 0; i < len(lit); i++ {
		if lit[i] >= '0' && lit[i] <= '9' {
			hasDigit = true
			break
		}
	}
	if !hasDigit {
		return 0, false
	}
	v, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
