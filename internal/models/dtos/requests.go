package dtos

type MountViewRequest struct {
	ShowFlights  *bool `json:"show_flights,omitempty"`
	ShowAirports *bool `json:"show_airports,omitempty"`
}

type ChatMessageRequest struct {
	Message string `json:"message"`
}

type PasswordStrengthRequest struct {
	Password string `json:"password"`
}

type WeatherUpdateRequest struct {
	City         string  `json:"city"`
	Severity     string  `json:"severity"`
	Condition    string  `json:"condition"`
	Icon         string  `json:"icon"`
	TemperatureC float64 `json:"temperature"`
	VisibilityM  int     `json:"visibility"`
	WindKmh      float64 `json:"windSpeed"`
	Alert        string  `json:"alert"`
}
