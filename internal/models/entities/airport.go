package entities

// Amenities counts the facilities listed for an airport.
type Amenities struct {
	Restaurants int `json:"restaurants"`
	Lounges     int `json:"lounges"`
	Shops       int `json:"shops"`
	Services    int `json:"services"`
}

// Airport is the normalized shape of one record from GET /api/airports.
// Code is non-empty and unique within one fetched collection.
type Airport struct {
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	City      string    `json:"city"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Terminal  int       `json:"terminal"`
	Amenities Amenities `json:"amenities"`
}

const (
	UnknownAirportName = "Unknown Airport"
	UnknownCity        = "Unknown City"
)

// PlaceholderAirport is shown by the airport detail panel when the code
// cannot be resolved from the backend.
func PlaceholderAirport(code string) Airport {
	return Airport{
		Code:     code,
		Name:     UnknownAirportName,
		City:     UnknownCity,
		Terminal: 1,
	}
}

// AirportIndex resolves airports by code.
type AirportIndex map[string]Airport

// IndexAirports builds a lookup over a fetched collection.
func IndexAirports(airports []Airport) AirportIndex {
	idx := make(AirportIndex, len(airports))
	for _, a := range airports {
		idx[a.Code] = a
	}
	return idx
}

// Lookup returns the airport for code, if present.
func (idx AirportIndex) Lookup(code string) (Airport, bool) {
	a, ok := idx[code]
	return a, ok
}
