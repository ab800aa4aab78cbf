package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// maintenanceIndicator ends the remarks section and flags the station for service.
const maintenanceIndicator = "$"

// decodeRemarks decodes the groups following RMK up to the maintenance
// indicator or the end of the report. Unrecognized groups are ignored.
func decodeRemarks(tokens []string, i int) (int, string) {
	var fragments []string

	for ; i < len(tokens); i++ {
		tok := tokens[i]
		if tok == maintenanceIndicator {
			fragments = append(fragments, "Maintenance needed on automated station")
			i++
			break
		}
		if fragment, ok := decodeRemark(tok); ok {
			fragments = append(fragments, fragment)
		}
	}

	return i, strings.Join(fragments, ". ")
}

func decodeRemark(tok string) (string, bool) {
	switch {
	case strings.HasPrefix(tok, "AO"):
		return "Automated station", true

	case strings.HasPrefix(tok, "RAE"):
		minute, ok := parseDigits(tok[3:])
		if !ok {
			return "", false
		}
		return fmt.Sprintf("Rain ended at %d minutes past the hour", minute), true

	case strings.HasPrefix(tok, "P") && len(tok) > 1:
		hundredths, ok := parseDigits(tok[1:])
		if !ok {
			return "", false
		}
		if hundredths == 0 {
			return "No precipitation in past hour", true
		}
		inches := float32(hundredths) / 100
		return fmt.Sprintf("Precipitation: %s inches", strconv.FormatFloat(float64(inches), 'f', -1, 32)), true

	case strings.HasPrefix(tok, "T") && len(tok) > 1 && strings.Contains(tok, "/"):
		parts := strings.Split(tok[1:], "/")
		if len(parts) != 2 {
			return "", false
		}
		temp, okTemp := parseSigned(parts[0])
		dew, okDew := parseSigned(parts[1])
		if !okTemp || !okDew {
			return "", false
		}
		return fmt.Sprintf("Precise temperature: %.1f°C / %.1f°C", float64(temp)/10, float64(dew)/10), true
	}

	return "", false
}
