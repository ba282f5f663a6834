package entities

// Selection is the single selected entity of a view: a flight, an airport,
// or nothing. At most one of the two fields is set.
type Selection struct {
	Flight      *Flight `json:"flight,omitempty"`
	AirportCode string  `json:"airportCode,omitempty"`
}

// Empty reports whether nothing is selected.
func (s Selection) Empty() bool {
	return s.Flight == nil && s.AirportCode == ""
}

// Kind returns "flight", "airport" or "none".
func (s Selection) Kind() string {
	switch {
	case s.Flight != nil:
		return "flight"
	case s.AirportCode != "":
		return "airport"
	}
	return "none"
}
