package domain

import (
	"strings"
)

type code struct {
	code string
	text string
}

var intensities = []code{
	{"-", "Light "},
	{"+", "Heavy "},
	{"VC", "In vicinity "},
}

var descriptors = []code{
	{"MI", "Shallow "},
	{"BC", "Patches "},
	{"DR", "Low drifting "},
	{"BL", "Blowing "},
	{"SH", "Showers "},
	{"TS", "Thunderstorm "},
	{"FZ", "Freezing "},
	{"PR", "Partial "},
}

var phenomena = []code{
	{"DZ", "drizzle"},
	{"RA", "rain"},
	{"SN", "snow"},
	{"SG", "snow grains"},
	{"IC", "ice crystals"},
	{"GR", "hail"},
	{"PL", "ice pellets"},
	{"HZ", "haze"},
	{"FU", "smoke"},
	{"FG", "fog"},
	{"BR", "mist"},
	{"SQ", "squalls"},
	{"FC", "funnel cloud"},
	{"GS", "small hail/snow pellets"},
	{"UP", "unknown precipitation"},
	{"VA", "volcanic ash"},
	{"DU", "widespread dust"},
	{"SA", "sand"},
	{"PO", "dust/sand whirls"},
	{"SS", "sandstorm"},
	{"DS", "dust storm"},
	{"PY", "spray"},
}

// weatherSubstrings are the codes whose presence anywhere in a token marks it
// as a weather group.
var weatherSubstrings = []string{
	"RA", "SN", "DZ", "PL", "GR", "GS", "UP", "IC", "SG",
	"BR", "FG", "FU", "VA", "DU", "SA", "HZ", "PY",
	"SQ", "FC", "SS", "DS", "PO",
	"MI", "BC", "DR", "BL", "SH", "TS", "FZ", "PR",
}

// cloudPrefixes start a cloud group and end the present weather section.
var cloudPrefixes = []string{"SKC", "CLR", "FEW", "SCT", "BKN", "OVC", "VV"}

// IsWeatherCode reports whether tok contains a weather phenomenon or
// descriptor code. This is a substring test, not a parse: cloud, altimeter
// and slash-separated groups are excluded first, and anything else containing
// e.g. "RA" matches.
func IsWeatherCode(tok string) bool {
	if hasAnyPrefix(tok, cloudPrefixes...) ||
		hasAnyPrefix(tok, "NSC", "NCD", "A", "Q") ||
		strings.Contains(tok, "/") {
		return false
	}
	for _, wx := range weatherSubstrings {
		if strings.Contains(tok, wx) {
			return true
		}
	}
	return false
}

// DecodeWeather describes a single weather group of the form
// [intensity] [descriptor]* phenomenon*. Decoding stops at the first
// unrecognized pair and returns whatever was decoded up to that point.
func DecodeWeather(tok string) string {
	var b strings.Builder
	rest := tok

	for _, in := range intensities {
		if strings.HasPrefix(rest, in.code) {
			b.WriteString(in.text)
			rest = rest[len(in.code):]
			break
		}
	}

	rest = consumeCodes(&b, rest, descriptors)
	consumeCodes(&b, rest, phenomena)

	return strings.TrimSpace(b.String())
}

// consumeCodes greedily matches two-letter codes from the front of s and
// returns the unmatched remainder.
func consumeCodes(b *strings.Builder, s string, table []code) string {
	for len(s) >= 2 && isASCIILetter(s[0]) {
		c, ok := lookupCode(s[:2], table)
		if !ok {
			break
		}
		b.WriteString(c.text)
		s = s[2:]
	}
	return s
}

func lookupCode(s string, table []code) (code, bool) {
	for _, c := range table {
		if c.code == s {
			return c, true
		}
	}
	return code{}, false
}

// decodePresentWeather consumes consecutive weather groups and joins their
// descriptions. Without any, the weather is reported as None.
func decodePresentWeather(tokens []string, i int) (int, string) {
	var groups []string
	for i < len(tokens) {
		tok := tokens[i]
		if hasAnyPrefix(tok, cloudPrefixes...) {
			break
		}
		if !hasAnyPrefix(tok, "-", "+", "VC") && !IsWeatherCode(tok) {
			break
		}
		if desc := DecodeWeather(tok); desc != "" {
			groups = append(groups, desc)
		}
		i++
	}

	if len(groups) == 0 {
		return i, NoWeather
	}
	return i, strings.Join(groups, ", ")
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func isASCIILetter(c byte) bool {
	return ('A' <= c && c <= 'Z') || ('a' <= c && c <= 'z')
}
