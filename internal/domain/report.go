package domain

// AltimeterUnit names the unit an altimeter setting was reported in.
type AltimeterUnit string

const (
	AltimeterUnitInches AltimeterUnit = "inches"
	AltimeterUnitHPa    AltimeterUnit = "hpa"
)

// Fixed display strings shared by the section decoders.
const (
	CAVOKVisibility = "10 kilometers or more"
	CAVOKClouds     = "No clouds below 5,000 feet"
	CAVOKWeather    = "None significant"

	NoWeather   = "None"
	NoCloudInfo = "No cloud information"
)

// ObservationTime is the day of month and UTC time of an observation.
type ObservationTime struct {
	Day    int `json:"day"`
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// AltimeterSetting carries the altimeter in both units so a presentation layer
// can switch between them without decoding the report again.
type AltimeterSetting struct {
	HPa         int           `json:"hpa"`
	Inches      float64       `json:"inches"`
	DefaultUnit AltimeterUnit `json:"default_unit"`
}

// Report is the decoded form of a single METAR. Every field is optional: an
// empty string means the section was absent or could not be recognized.
// Zulu is set if and only if DateTime is non-empty, and AltimeterSetting if and
// only if Altimeter is non-empty.
type Report struct {
	Station          string            `json:"station"`
	DateTime         string            `json:"date_time,omitempty"`
	Zulu             *ObservationTime  `json:"zulu,omitempty"`
	Wind             string            `json:"wind,omitempty"`
	Visibility       string            `json:"visibility,omitempty"`
	Weather          string            `json:"weather,omitempty"`
	Clouds           string            `json:"clouds,omitempty"`
	Temperature      string            `json:"temperature,omitempty"`
	Dewpoint         string            `json:"dewpoint,omitempty"`
	Altimeter        string            `json:"altimeter,omitempty"`
	AltimeterSetting *AltimeterSetting `json:"altimeter_setting,omitempty"`
	Remarks          string            `json:"remarks,omitempty"`
	Raw              string            `json:"raw"`
}
