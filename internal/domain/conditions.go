package domain

import (
	"fmt"
	"strings"
)

// conditions collects the fields decoded after the cloud section.
type conditions struct {
	temperature string
	dewpoint    string
	altimeter   string
	setting     *AltimeterSetting
	remarks     string
}

// decodeConditions walks the rest of the report looking for the
// temperature/dewpoint group, the altimeter setting and the remarks. Every
// token is consumed; the remarks, when present, are always last.
func decodeConditions(tokens []string, i int) (int, conditions) {
	var c conditions

	for i < len(tokens) {
		tok := tokens[i]

		switch {
		case strings.Contains(tok, "/") && len(tok) <= 7:
			if temp, dew, ok := temperatureGroup(tok); ok {
				c.temperature = formatTemperature(temp)
				c.dewpoint = formatTemperature(dew)
			}
			i++
		case strings.HasPrefix(tok, "A") && len(tok) == 5:
			if hundredths, ok := parseDigits(tok[1:]); ok {
				inches := float64(hundredths) / 100
				c.altimeter = fmt.Sprintf("%.2f inches of mercury", inches)
				c.setting = &AltimeterSetting{
					HPa:         InchesToHectopascals(inches),
					Inches:      inches,
					DefaultUnit: AltimeterUnitInches,
				}
			}
			i++
		case strings.HasPrefix(tok, "Q") && len(tok) == 5:
			if hpa, ok := parseDigits(tok[1:]); ok {
				c.altimeter = fmt.Sprintf("%d hectopascals", hpa)
				c.setting = &AltimeterSetting{
					HPa:         hpa,
					Inches:      HectopascalsToInches(hpa),
					DefaultUnit: AltimeterUnitHPa,
				}
			}
			i++
		case strings.HasPrefix(tok, "RMK"):
			i, c.remarks = decodeRemarks(tokens, i+1)
			return i, c
		default:
			i++
		}
	}

	return i, c
}

// temperatureGroup parses TT/DD where M marks a negative value. A leading T on
// the temperature is ignored.
func temperatureGroup(tok string) (int, int, bool) {
	parts := strings.Split(tok, "/")
	if len(parts) != 2 {
		return 0, 0, false
	}

	tempStr, tempNeg := parts[0], false
	switch {
	case strings.HasPrefix(tempStr, "M"):
		tempStr, tempNeg = tempStr[1:], true
	case strings.HasPrefix(tempStr, "T"):
		tempStr = tempStr[1:]
	}

	dewStr, dewNeg := parts[1], false
	if strings.HasPrefix(dewStr, "M") {
		dewStr, dewNeg = dewStr[1:], true
	}

	temp, okTemp := parseSigned(tempStr)
	dew, okDew := parseSigned(dewStr)
	if !okTemp || !okDew {
		return 0, 0, false
	}
	if tempNeg {
		temp = -temp
	}
	if dewNeg {
		dew = -dew
	}
	return temp, dew, true
}

func formatTemperature(celsius int) string {
	return fmt.Sprintf("%d°C (%d°F)", celsius, CelsiusToFahrenheit(celsius))
}
