package gorm

import (
	"time"

	"github.com/google/uuid"
	gormlib "gorm.io/gorm"
)

// ChatQuery is one chat exchange of a view. Failed marks exchanges that
// were answered with a fallback reply.
type ChatQuery struct {
	ID        string    `gorm:"column:id;primaryKey;type:uuid"`
	ViewID    string    `gorm:"column:view_id;type:varchar(64);not null;index"`
	Message   string    `gorm:"column:message;type:text;not null"`
	Context   string    `gorm:"column:context;type:text"`
	Reply     string    `gorm:"column:reply;type:text"`
	Failed    bool      `gorm:"column:failed;not null;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (ChatQuery) TableName() string {
	return "chat_queries"
}

func (c *ChatQuery) BeforeCreate(*gormlib.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// HistoryModels lists every model the history store migrates.
func HistoryModels() []any {
	return []any{&SearchRecord{}, &ChatQuery{}}
}
