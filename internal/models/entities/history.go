package entities

import "time"

type SearchHistoryRow struct {
	ID             string    `db:"id"`
	ViewID         string    `db:"view_id"`
	Query          string    `db:"query"`
	FlightMatches  int       `db:"flight_matches"`
	AirportMatches int       `db:"airport_matches"`
	CreatedAt      time.Time `db:"created_at"`
}

type ChatHistoryRow struct {
	ID        string    `db:"id"`
	ViewID    string    `db:"view_id"`
	Message   string    `db:"message"`
	Reply     string    `db:"reply"`
	Failed    bool      `db:"failed"`
	CreatedAt time.Time `db:"created_at"`
}
