package view

import (
	"fmt"

	"github.com/couchcryptid/metarflow-service/internal/domain"
)

const (
	notAvailable = "N/A"
	noRemarks    = "None"
)

// Stat is one labelled row of the results page. Empty marks a placeholder
// value so the page can style it differently.
type Stat struct {
	Label string
	Value string
	Empty bool
}

// ToggleData feeds the unit and time-zone toggles on the results page. It is
// rendered as a JSON object, so absent values become null.
type ToggleData struct {
	AltimeterHPa    *int    `json:"altimeter_hpa"`
	AltimeterInches *string `json:"altimeter_inches"`
	AltimeterUnit   string  `json:"altimeter_unit"`
	ZuluDay         *int    `json:"zulu_day"`
	ZuluHour        *int    `json:"zulu_hour"`
	ZuluMinute      *int    `json:"zulu_minute"`
}

// ResultsData is the view model for the results page.
type ResultsData struct {
	Station   string
	DateTime  Stat
	Altimeter Stat
	Remarks   Stat
	Stats     []Stat
	Raw       string
	Toggle    ToggleData
}

// NewResultsData builds the results view model from a decoded report.
func NewResultsData(r domain.Report) *ResultsData {
	return &ResultsData{
		Station:   r.Station,
		DateTime:  stat("Date/Time", r.DateTime, notAvailable),
		Altimeter: stat("Altimeter", r.Altimeter, notAvailable),
		Remarks:   stat("Remarks", r.Remarks, noRemarks),
		Stats: []Stat{
			stat("Wind", r.Wind, notAvailable),
			stat("Visibility", r.Visibility, notAvailable),
			stat("Weather", r.Weather, notAvailable),
			stat("Clouds", r.Clouds, notAvailable),
			stat("Temperature", r.Temperature, notAvailable),
			stat("Dewpoint", r.Dewpoint, notAvailable),
		},
		Raw:    r.Raw,
		Toggle: newToggleData(r),
	}
}

func stat(label, value, placeholder string) Stat {
	if value == "" {
		return Stat{Label: label, Value: placeholder, Empty: true}
	}
	return Stat{Label: label, Value: value}
}

func newToggleData(r domain.Report) ToggleData {
	t := ToggleData{AltimeterUnit: string(domain.AltimeterUnitHPa)}

	if s := r.AltimeterSetting; s != nil {
		hpa := s.HPa
		inches := fmt.Sprintf("%.2f", s.Inches)
		t.AltimeterHPa = &hpa
		t.AltimeterInches = &inches
		if s.DefaultUnit != "" {
			t.AltimeterUnit = string(s.DefaultUnit)
		}
	}

	if z := r.Zulu; z != nil {
		day, hour, minute := z.Day, z.Hour, z.Minute
		t.ZuluDay = &day
		t.ZuluHour = &hour
		t.ZuluMinute = &minute
	}

	return t
}
