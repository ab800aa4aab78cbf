package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Tokenize splits a raw report on runs of whitespace. Case and punctuation are
// preserved; an empty or blank report yields no tokens.
func Tokenize(raw string) []string {
	return strings.Fields(raw)
}

// Decode turns a raw METAR into a Report. It never fails: tokens that do not
// match the section expected at the cursor are skipped and the corresponding
// fields are left empty. stationHint is used as the station identifier until
// the report supplies its own.
//
// Sections are decoded in a fixed order. Each section decoder takes the token
// slice and the cursor index and returns the index after whatever it consumed,
// so the cursor only ever moves forward and is bounded by len(tokens).
func Decode(raw, stationHint string) Report {
	report := Report{Station: stationHint, Raw: raw}

	tokens := Tokenize(raw)
	if len(tokens) == 0 {
		return report
	}

	i := skipReportType(tokens, 0)
	if i < len(tokens) {
		report.Station = tokens[i]
		i++
	}

	i, report.DateTime, report.Zulu = decodeObservationTime(tokens, i)
	i = skipModifiers(tokens, i)
	i, report.Wind = decodeWind(tokens, i)

	var cavok bool
	i, report.Visibility, cavok = decodeVisibility(tokens, i)
	if cavok {
		report.Weather = CAVOKWeather
		report.Clouds = CAVOKClouds
	} else {
		i, report.Weather = decodePresentWeather(tokens, i)
		i, report.Clouds = decodeClouds(tokens, i)
	}

	_, c := decodeConditions(tokens, i)
	report.Temperature = c.temperature
	report.Dewpoint = c.dewpoint
	report.Altimeter = c.altimeter
	report.AltimeterSetting = c.setting
	report.Remarks = c.remarks

	return report
}

// skipReportType consumes a leading METAR or SPECI marker.
func skipReportType(tokens []string, i int) int {
	if i < len(tokens) && (tokens[i] == "METAR" || tokens[i] == "SPECI") {
		return i + 1
	}
	return i
}

// decodeObservationTime reads a DDHHMMZ group. A group that has the right
// shape but non-numeric fields is left for the later sections.
func decodeObservationTime(tokens []string, i int) (int, string, *ObservationTime) {
	if i >= len(tokens) {
		return i, "", nil
	}
	tok := tokens[i]
	if len(tok) != 7 || !strings.HasSuffix(tok, "Z") {
		return i, "", nil
	}

	day, okDay := parseDigits(tok[0:2])
	hour, okHour := parseDigits(tok[2:4])
	minute, okMinute := parseDigits(tok[4:6])
	if !okDay || !okHour || !okMinute {
		return i, "", nil
	}

	formatted := fmt.Sprintf("Day %d, %d:%02dZ", day, hour, minute)
	return i + 1, formatted, &ObservationTime{Day: day, Hour: hour, Minute: minute}
}

// skipModifiers consumes any run of COR, AUTO and NIL markers.
func skipModifiers(tokens []string, i int) int {
	for i < len(tokens) {
		switch tokens[i] {
		case "COR", "AUTO", "NIL":
			i++
		default:
			return i
		}
	}
	return i
}

// parseDigits parses a non-empty run of ASCII digits.
func parseDigits(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseSigned parses an optionally signed decimal integer.
func parseSigned(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
