package gorm

import (
	"time"

	"github.com/google/uuid"
	gormlib "gorm.io/gorm"
)

// SearchRecord is one executed search of a view.
type SearchRecord struct {
	ID             string    `gorm:"column:id;primaryKey;type:uuid"`
	ViewID         string    `gorm:"column:view_id;type:varchar(64);not null;index"`
	Query          string    `gorm:"column:query;type:varchar(255);not null"`
	FlightMatches  int       `gorm:"column:flight_matches;not null;default:0"`
	AirportMatches int       `gorm:"column:airport_matches;not null;default:0"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (SearchRecord) TableName() string {
	return "search_history"
}

func (s *SearchRecord) BeforeCreate(*gormlib.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}
