package audit

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"festa-mesas-backend/internal/model"
)

// Store writes one audit row per mutation this service issues against the
// reservation log. The log sheet is shared and hand-editable, so this local
// trail is the only complete record of which changes were ours. Recording is
// best-effort: a failed insert is logged and never blocks the mutation it
// describes.
type Store struct {
	db *gorm.DB
}

// NewStore creates an audit store over the given database.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Record persists a single audit entry.
func (s *Store) Record(ctx context.Context, op, eventID, tableID, detail string) {
	entry := model.AuditEntry{
		RecordedAt: time.Now().UTC(),
		Operation:  op,
		EventID:    eventID,
		TableID:    tableID,
		Detail:     detail,
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		log.Printf("Warning: failed to record audit entry for %s %s: %v", op, eventID, err)
	}
}

// Recent returns the newest entries, most recent first, capped at limit.
func (s *Store) Recent(ctx context.Context, limit int) ([]model.AuditEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	var entries []model.AuditEntry
	err := s.db.WithContext(ctx).
		Order("recorded_at DESC, id DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
