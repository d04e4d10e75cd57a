package parse

import (
	"regexp"
	"strconv"
	"strings"
)

var digitRunRe = regexp.MustCompile(`\d+`)

// Amount converts a hand-entered currency or number string into a canonical
// value. The source cells mix Brazilian and anglo separator conventions
// inconsistently ("R$ 1.234,56", "1234,56", "45.00", "mesa 7"), so Amount is
// deliberately permissive and total: any input it cannot make sense of yields 0.
// It runs on every cell inside the aggregation path, where a single bad value
// must not abort the whole computation.
func Amount(raw string) float64 {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" || s == "NONE" || s == "NAN" {
		return 0
	}

	if strings.Contains(s, "R$") || strings.ContainsAny(s, ",.") {
		return decimal(s)
	}

	// No separators and no currency marker: the value is a free-form label
	// like "mesa 7"; the first run of digits is the number.
	if run := digitRunRe.FindString(s); run != "" {
		n, err := strconv.Atoi(run)
		if err != nil {
			return 0
		}
		return float64(n)
	}
	return 0
}

// decimal parses a currency-looking string. The separator roles are decided
// up front from which separators are present, so the thousands-vs-decimal
// ambiguity is resolved in one explicit place:
//
//	both "." and "," present: "." is the thousands separator, "," the decimal
//	only ","               : decimal separator
//	only "."               : decimal separator, kept as-is
func decimal(s string) float64 {
	s = strings.ReplaceAll(s, "R$", "")
	s = strings.ReplaceAll(s, " ", "")

	hasDot := strings.Contains(s, ".")
	hasComma := strings.Contains(s, ",")
	switch {
	case hasDot && hasComma:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case hasComma:
		s = strings.Replace(s, ",", ".", 1)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
