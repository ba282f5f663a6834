package repositories

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	gormlib "gorm.io/gorm"

	"trippilot/skyview/internal/constants"
	"trippilot/skyview/internal/models/entities"
	"trippilot/skyview/internal/models/gorm"
)

// HistoryRepo stores searches and chat exchanges. Writes go through GORM,
// reads through sqlx.
type HistoryRepo struct {
	orm *gormlib.DB
	db  *sqlx.DB
}

func NewHistoryRepo(orm *gormlib.DB, db *sqlx.DB) *HistoryRepo {
	return &HistoryRepo{orm: orm, db: db}
}

func (r *HistoryRepo) SaveSearch(ctx context.Context, rec *gorm.SearchRecord) error {
	if err := r.orm.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("save search: %w", err)
	}
	return nil
}

func (r *HistoryRepo) SaveChat(ctx context.Context, rec *gorm.ChatQuery) error {
	if err := r.orm.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("save chat query: %w", err)
	}
	return nil
}

// RecentSearches returns the newest searches of viewID first.
func (r *HistoryRepo) RecentSearches(ctx context.Context, viewID string, limit int) ([]entities.SearchHistoryRow, error) {
	rows := []entities.SearchHistoryRow{}
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(constants.RecentSearchesByView), viewID, limit); err != nil {
		return nil, fmt.Errorf("recent searches: %w", err)
	}
	return rows, nil
}

// RecentChats returns the newest chat exchanges of viewID first.
func (r *HistoryRepo) RecentChats(ctx context.Context, viewID string, limit int) ([]entities.ChatHistoryRow, error) {
	rows := []entities.ChatHistoryRow{}
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(constants.RecentChatsByView), viewID, limit); err != nil {
		return nil, fmt.Errorf("recent chats: %w", err)
	}
	return rows, nil
}

// Ping checks the read pool.
func (r *HistoryRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
