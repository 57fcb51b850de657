package parser

import (
	"strconv"
	"strings"
)

// ExtractAmount pulls a monetary amount out of free text. Supported
// forms, tried in priority order:
//
//	"1,5jt" / "2 juta"  -> millions
//	"15k" / "15rb" / "15 ribu" -> thousands
//	"25000" -> literal, at least 3 digits (amounts under 100 are
//	assumed not to be money)
//
// The second return value is false when no amount is present. Zero is
// never returned as a valid amount.
func ExtractAmount(text string) (float64, bool) {
	normalized := strings.ReplaceAll(strings.ToLower(text), ",", ".")

	if m := jutaPattern.FindStringSubmatch(normalized); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil && v > 0 {
			return v * 1_000_000, true
		}
	}

	if m := ribuPattern.FindStringSubmatch(normalized); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil && v > 0 {
			return v * 1_000, true
		}
	}

	if m := barePattern.FindStringSubmatch(normalized); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil && v > 0 {
			return v, true
		}
	}

	return 0, false
}
