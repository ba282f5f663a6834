package entities

// FlightStatus is drawn from a closed set.
type FlightStatus string

const (
	StatusOnTime   FlightStatus = "On Time"
	StatusDelayed  FlightStatus = "Delayed"
	StatusBoarding FlightStatus = "Boarding"
	StatusInAir    FlightStatus = "In Air"
	StatusLanded   FlightStatus = "Landed"
)

// UnknownRoute marks an origin or destination the backend could not resolve.
const UnknownRoute = "Unknown"

// Valid reports whether s belongs to the closed status set.
func (s FlightStatus) Valid() bool {
	switch s {
	case StatusOnTime, StatusDelayed, StatusBoarding, StatusInAir, StatusLanded:
		return true
	}
	return false
}

// Flight is the normalized shape of one live flight.
type Flight struct {
	ID           string       `json:"id"`
	FlightNumber string       `json:"flightNumber"`
	Airline      string       `json:"airline"`
	Origin       string       `json:"origin"`
	Destination  string       `json:"destination"`
	Lat          float64      `json:"lat"`
	Lon          float64      `json:"lon"`
	Altitude     float64      `json:"altitude"`
	Speed        float64      `json:"speed"`
	Heading      float64      `json:"heading"`
	Status       FlightStatus `json:"status"`
	Progress     int          `json:"progress"`
}

// Airborne reports whether the flight is currently in the air.
func (f Flight) Airborne() bool {
	return f.Status == StatusInAir
}

// HasRoute reports whether both ends of the route are known.
func (f Flight) HasRoute() bool {
	return f.Origin != "" && f.Origin != UnknownRoute &&
		f.Destination != "" && f.Destination != UnknownRoute
}
