package domain

import "math"

// hPaPerInchHg is the number of hectopascals in one inch of mercury.
const hPaPerInchHg = 33.8639

// CelsiusToFahrenheit converts with truncating integer arithmetic, matching
// how the temperature group is displayed: 22°C is 71°F, not 72°F.
func CelsiusToFahrenheit(celsius int) int {
	return celsius*9/5 + 32
}

// InchesToHectopascals converts an inHg altimeter setting to whole hectopascals, rounded.
func InchesToHectopascals(inches float64) int {
	return int(math.Round(inches * hPaPerInchHg))
}

// HectopascalsToInches converts a hectopascal altimeter setting to inHg.
func HectopascalsToInches(hpa int) float64 {
	return float64(hpa) / hPaPerInchHg
}

// MetersToKilometers returns whole kilometers, discarding the remainder.
func MetersToKilometers(meters int) int {
	return meters / 1000
}
