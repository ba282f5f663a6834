package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"trippilot/skyview/internal/models/dtos"
	"trippilot/skyview/internal/models/entities"
)

const defaultHistoryLimit = 20

// HistoryReader reads persisted searches and chat exchanges.
type HistoryReader interface {
	RecentSearches(ctx context.Context, viewID string, limit int) ([]entities.SearchHistoryRow, error)
	RecentChats(ctx context.Context, viewID string, limit int) ([]entities.ChatHistoryRow, error)
}

// HistoryService serves the per-view history. With no reader configured
// it answers with an empty, disabled response.
type HistoryService struct {
	reader HistoryReader
	limit  int
}

func NewHistoryService(reader HistoryReader, limit int) *HistoryService {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return &HistoryService{reader: reader, limit: limit}
}

func (s *HistoryService) Enabled() bool {
	return s.reader != nil
}

// Recent returns the newest searches and chats of viewID.
func (s *HistoryService) Recent(ctx context.Context, viewID string) (*dtos.HistoryResponse, error) {
	resp := &dtos.HistoryResponse{
		Enabled:  s.Enabled(),
		Searches: []dtos.SearchHistoryEntry{},
		Chats:    []dtos.ChatHistoryEntry{},
	}
	if !s.Enabled() {
		return resp, nil
	}

	var searches []entities.SearchHistoryRow
	var chats []entities.ChatHistoryRow
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		searches, err = s.reader.RecentSearches(gctx, viewID, s.limit)
		return err
	})
	g.Go(func() error {
		var err error
		chats, err = s.reader.RecentChats(gctx, viewID, s.limit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, r := range searches {
		resp.Searches = append(resp.Searches, dtos.SearchHistoryEntry{
			ID:             r.ID,
			Query:          r.Query,
			FlightMatches:  r.FlightMatches,
			AirportMatches: r.AirportMatches,
			CreatedAt:      r.CreatedAt,
		})
	}
	for _, r := range chats {
		resp.Chats = append(resp.Chats, dtos.ChatHistoryEntry{
			ID:        r.ID,
			Query:     r.Message,
			Response:  r.Reply,
			Failed:    r.Failed,
			CreatedAt: r.CreatedAt,
		})
	}
	return resp, nil
}
