package domain

import (
	"errors"
	"strings"
)

// ErrInvalidStation is returned for station codes that are not four characters long.
var ErrInvalidStation = errors.New("ICAO codes should be 4 characters (e.g., KJFK, EGLL, YSSY)")

// NormalizeStation trims and upper-cases an ICAO station code.
func NormalizeStation(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 4 {
		return "", ErrInvalidStation
	}
	return code, nil
}
