package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// decodeVisibility reads CAVOK, 9999, a statute-mile group or a group in meters.
// The third return value reports CAVOK, in which case the present weather and
// cloud sections are not decoded.
//
// A token ending in SM is consumed even when its prefix is not a plain number,
// so fractional groups such as 1/4SM leave the visibility empty rather than
// being mistaken for weather.
func decodeVisibility(tokens []string, i int) (int, string, bool) {
	if i >= len(tokens) {
		return i, "", false
	}
	tok := tokens[i]

	switch {
	case tok == "CAVOK":
		return i + 1, CAVOKVisibility, true
	case tok == "9999":
		return i + 1, CAVOKVisibility, false
	case strings.HasSuffix(tok, "SM"):
		miles, ok := parseMiles(strings.TrimSuffix(tok, "SM"))
		if !ok {
			return i + 1, "", false
		}
		return i + 1, fmt.Sprintf("%s statute miles", miles), false
	}

	meters, ok := parseDigits(tok)
	if !ok {
		return i, "", false
	}
	if meters >= 1000 {
		return i + 1, fmt.Sprintf("%d kilometers", MetersToKilometers(meters)), false
	}
	return i + 1, fmt.Sprintf("%d meters", meters), false
}

// parseMiles accepts a decimal number and formats it in its shortest form,
// so "10" stays "10" and "1.50" becomes "1.5".
func parseMiles(s string) (string, bool) {
	if s == "" || strings.Trim(s, "0123456789.") != "" {
		return "", false
	}
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return "", false
	}
	return strconv.FormatFloat(v, 'f', -1, 32), true
}
