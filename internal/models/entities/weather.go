package entities

// Severity is the three-level weather risk for an airport.
type Severity string

const (
	SeverityGreen  Severity = "green"
	SeverityYellow Severity = "yellow"
	SeverityRed    Severity = "red"
)

// ParseSeverity maps anything outside the known set to green.
func ParseSeverity(s string) Severity {
	switch Severity(s) {
	case SeverityRed:
		return SeverityRed
	case SeverityYellow:
		return SeverityYellow
	}
	return SeverityGreen
}

// WeatherReport is the latest weather known for an airport.
type WeatherReport struct {
	AirportCode  string   `json:"airportCode"`
	City         string   `json:"city"`
	Severity     Severity `json:"severity"`
	Condition    string   `json:"condition"`
	Icon         string   `json:"icon"`
	TemperatureC float64  `json:"temperature"`
	VisibilityM  int      `json:"visibility"`
	WindKmh      float64  `json:"windSpeed"`
	Alert        string   `json:"alert,omitempty"`
}
