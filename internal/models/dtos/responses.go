package dtos

import (
	"time"

	"trippilot/skyview/internal/models/entities"
)

type APIResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	ResponseTime string `json:"response_time"`
	Data         any    `json:"data,omitempty"`
}

type MountViewResponse struct {
	ViewID       string    `json:"view_id"`
	Token        string    `json:"token"`
	ExpiresAt    time.Time `json:"expires_at"`
	ShowFlights  bool      `json:"show_flights"`
	ShowAirports bool      `json:"show_airports"`
	ChatGreeting string    `json:"chat_greeting"`
}

type FlightListResponse struct {
	Flights []entities.Flight `json:"flights"`
	Total   int               `json:"total"`
}

type AirportListResponse struct {
	Airports []entities.Airport `json:"airports"`
	Total    int                `json:"total"`
}

type AirportDetailResponse struct {
	Airport     entities.Airport        `json:"airport"`
	Placeholder bool                    `json:"placeholder"`
	Weather     *entities.WeatherReport `json:"weather,omitempty"`
}

type SearchResponse struct {
	Query    string             `json:"query"`
	Flights  []entities.Flight  `json:"flights"`
	Airports []entities.Airport `json:"airports"`
}

type ChatMessage struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type ChatReply struct {
	Message ChatMessage `json:"message"`
	Reply   ChatMessage `json:"reply"`
	Context string      `json:"context"`
}

type PasswordChecks struct {
	Length    bool `json:"length"`
	Lowercase bool `json:"lowercase"`
	Uppercase bool `json:"uppercase"`
	Number    bool `json:"number"`
	Special   bool `json:"special"`
}

type PasswordStrengthResponse struct {
	Score  int            `json:"score"`
	Level  string         `json:"level"`
	Checks PasswordChecks `json:"checks"`
}

type SearchHistoryEntry struct {
	ID             string    `json:"id"`
	Query          string    `json:"query"`
	FlightMatches  int       `json:"flight_matches"`
	AirportMatches int       `json:"airport_matches"`
	CreatedAt      time.Time `json:"created_at"`
}

type ChatHistoryEntry struct {
	ID        string    `json:"id"`
	Query     string    `json:"query"`
	Response  string    `json:"response"`
	Failed    bool      `json:"failed"`
	CreatedAt time.Time `json:"created_at"`
}

type HistoryResponse struct {
	Enabled  bool                 `json:"enabled"`
	Searches []SearchHistoryEntry `json:"searches"`
	Chats    []ChatHistoryEntry   `json:"chats"`
}
