package domain

import (
	"fmt"
	"strings"
)

var coverage = map[string]string{
	"FEW": "Few",
	"SCT": "Scattered",
	"BKN": "Broken",
	"OVC": "Overcast",
}

// Sky conditions that end the cloud section.
var skyConditions = []code{
	{"SKC", "Sky clear"},
	{"CLR", "Clear below 12,000 feet"},
	{"NSC", "No significant cloud"},
	{"NCD", "No cloud detected"},
}

// decodeClouds consumes cloud layers until it reaches a sky condition, a group
// that belongs to the temperature/altimeter/remarks section, or the end of the
// report. Unrecognized tokens in between are skipped.
func decodeClouds(tokens []string, i int) (int, string) {
	var layers []string

loop:
	for i < len(tokens) {
		tok := tokens[i]

		for _, sky := range skyConditions {
			if strings.HasPrefix(tok, sky.code) {
				layers = append(layers, sky.text)
				i++
				break loop
			}
		}

		switch {
		case strings.HasPrefix(tok, "VV"):
			if layer, ok := verticalVisibility(tok); ok {
				layers = append(layers, layer)
			}
			i++
		case len(tok) >= 3 && coverage[tok[:3]] != "":
			if layer, ok := cloudLayer(tok); ok {
				layers = append(layers, layer)
			}
			i++
		case hasAnyPrefix(tok, "A", "Q", "T", "M", "RMK", "NOSIG"):
			break loop
		case strings.Contains(tok, "/") && len(tok) <= 7:
			break loop
		default:
			i++
		}
	}

	if len(layers) == 0 {
		return i, NoCloudInfo
	}
	return i, strings.Join(layers, ", ")
}

// verticalVisibility decodes VVhhh. A bare VV reports an obscured sky without a height.
func verticalVisibility(tok string) (string, bool) {
	if len(tok) < 5 {
		return "Sky obscured", true
	}
	height, ok := parseDigits(tok[2:5])
	if !ok {
		return "", false
	}
	return fmt.Sprintf("Sky obscured, vertical visibility %d feet", height*100), true
}

// cloudLayer decodes a coverage group such as BKN030 or FEW020CB.
func cloudLayer(tok string) (string, bool) {
	if len(tok) < 6 {
		return "", false
	}
	height, ok := parseDigits(tok[3:6])
	if !ok {
		return "", false
	}

	var kind string
	switch {
	case strings.HasSuffix(tok, "CB"):
		kind = " (cumulonimbus)"
	case strings.HasSuffix(tok, "TCU"):
		kind = " (towering cumulus)"
	}
	return fmt.Sprintf("%s at %d feet%s", coverage[tok[:3]], height*100, kind), true
}
