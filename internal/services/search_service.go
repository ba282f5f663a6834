package services

import (
	"errors"
	"strings"
	"unicode/utf8"

	"trippilot/skyview/internal/constants"
	"trippilot/skyview/internal/metrics"
	"trippilot/skyview/internal/models/dtos"
	"trippilot/skyview/internal/models/entities"
	gormModels "trippilot/skyview/internal/models/gorm"
)

var ErrQueryTooShort = errors.New("search query too short")

// SearchRecorder persists searches without blocking.
type SearchRecorder interface {
	RecordSearch(rec gormModels.SearchRecord) bool
}

type SearchService struct {
	recorder SearchRecorder
	metrics  *metrics.MetricsRegistry
}

func NewSearchService(recorder SearchRecorder, m *metrics.MetricsRegistry) *SearchService {
	return &SearchService{recorder: recorder, metrics: m}
}

// Search matches query case-insensitively against the view's latest
// flights (number, airline, origin, destination) and airports (code,
// city, name). Each list is capped.
func (s *SearchService) Search(viewID, query string, flights []entities.Flight, airports []entities.Airport) (*dtos.SearchResponse, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < constants.SearchMinLength {
		return nil, ErrQueryTooShort
	}
	q := strings.ToLower(query)

	resp := &dtos.SearchResponse{
		Query:    query,
		Flights:  []entities.Flight{},
		Airports: []entities.Airport{},
	}
	for _, f := range flights {
		if len(resp.Flights) == constants.SearchMaxResults {
			break
		}
		if containsAny(q, f.FlightNumber, f.Airline, f.Origin, f.Destination) {
			resp.Flights = append(resp.Flights, f)
		}
	}
	for _, a := range airports {
		if len(resp.Airports) == constants.SearchMaxResults {
			break
		}
		if containsAny(q, a.Code, a.City, a.Name) {
			resp.Airports = append(resp.Airports, a)
		}
	}

	if s.metrics != nil {
		s.metrics.SearchesTotal.Inc()
	}
	if s.recorder != nil {
		s.recorder.RecordSearch(gormModels.SearchRecord{
			ViewID:         viewID,
			Query:          query,
			FlightMatches:  len(resp.Flights),
			AirportMatches: len(resp.Airports),
		})
	}
	return resp, nil
}

func containsAny(q string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
