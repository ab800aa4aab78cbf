package domain

import (
	"fmt"
	"strings"
)

// CardinalDirection maps a wind direction in degrees to one of the eight
// compass points. Values above 360 have no label.
func CardinalDirection(degrees int) string {
	switch {
	case degrees < 0:
		return ""
	case degrees <= 22:
		return "N"
	case degrees <= 67:
		return "NE"
	case degrees <= 112:
		return "E"
	case degrees <= 157:
		return "SE"
	case degrees <= 202:
		return "S"
	case degrees <= 247:
		return "SW"
	case degrees <= 292:
		return "W"
	case degrees <= 337:
		return "NW"
	case degrees <= 360:
		return "N"
	default:
		return ""
	}
}

// decodeWind reads either a VRBssKT group or a dddss[Ggg]KT group, followed by
// an optional dddVddd variability group.
func decodeWind(tokens []string, i int) (int, string) {
	if i >= len(tokens) {
		return i, ""
	}
	tok := tokens[i]

	if strings.HasPrefix(tok, "VRB") {
		if len(tok) < 5 {
			return i, ""
		}
		speed, ok := parseDigits(tok[3:5])
		if !ok {
			return i, ""
		}
		wind := fmt.Sprintf("Variable at %d knots", speed)
		if gust, ok := gustSpeed(tok); ok {
			wind = fmt.Sprintf("Variable at %d knots, gusting to %d knots", speed, gust)
		}
		return i + 1, wind
	}

	if len(tok) < 7 || !strings.HasSuffix(tok, "KT") {
		return i, ""
	}
	dir, okDir := parseDigits(tok[0:3])
	speed, okSpeed := parseDigits(tok[3:5])
	if !okDir || !okSpeed {
		return i, ""
	}

	wind := fmt.Sprintf("%d degrees (%s) at %d knots", dir, CardinalDirection(dir), speed)
	if gust, ok := gustSpeed(tok); ok {
		wind = fmt.Sprintf("%s, gusting to %d knots", wind, gust)
	}
	i++

	if i < len(tokens) {
		if from, to, ok := variableDirection(tokens[i]); ok {
			wind = fmt.Sprintf("%s, variable between %d and %d degrees", wind, from, to)
			i++
		}
	}
	return i, wind
}

// gustSpeed reads the two digits following the first 'G' in a wind group.
func gustSpeed(tok string) (int, bool) {
	g := strings.IndexByte(tok, 'G')
	if g < 0 || g+3 > len(tok) {
		return 0, false
	}
	return parseDigits(tok[g+1 : g+3])
}

// variableDirection matches dddVddd.
func variableDirection(tok string) (int, int, bool) {
	if len(tok) != 7 || tok[3] != 'V' {
		return 0, 0, false
	}
	from, okFrom := parseDigits(tok[0:3])
	to, okTo := parseDigits(tok[4:7])
	if !okFrom || !okTo {
		return 0, 0, false
	}
	return from, to, true
}
