package dtos

import "encoding/json"

// ---- CHAT ----
type ChatRequest struct {
	Message string `json:"message"`
	Context string `json:"context"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

// ---- TRACK FLIGHT ----
type TrackFlightRequest struct {
	ICAO24 string `json:"icao24"`
}

type TrackedFlightInfo struct {
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	Live        bool    `json:"live,omitempty"`
	Altitude    float64 `json:"altitude,omitempty"`
	Velocity    float64 `json:"velocity,omitempty"`
}

type TrackFlightResponse struct {
	FlightInfo TrackedFlightInfo `json:"flight_info"`
	RawRoute   json.RawMessage   `json:"raw_route,omitempty"`
}
