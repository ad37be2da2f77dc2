// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Entry model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When an entry is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-journal-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// UpsertEntry writes the diary entry for (userID, date). If a row for the
// key already exists, its content is overwritten (last write wins); otherwise
// a new row with a UUID primary key is inserted.
//
// On success, it returns the persisted Entry. On failure, it returns a DB error.
func UpsertEntry(ctx context.Context, db *gorm.DB, userID, date, content string) (*domain.Entry, error) {
	now := time.Now().UTC()
	e := &domain.Entry{
		ID:        uuid.NewString(),
		UserID:    userID,
		EntryDate: date,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "entry_date"}},
			DoUpdates: clause.AssignmentColumns([]string{"content", "updated_at"}),
		}).
		Create(e).Error
	if err != nil {
		return nil, err
	}
	// The conflict path keeps the original row id; re-read so callers see it.
	var got domain.Entry
	if err := db.WithContext(ctx).
		Where("user_id = ? AND entry_date = ?", userID, date).
		First(&got).Error; err != nil {
		return nil, err
	}
	return &got, nil
}

// GetEntry fetches the entry for (userID, date), or ErrNotFound if absent.
func GetEntry(ctx context.Context, db *gorm.DB, userID, date string) (*domain.Entry, error) {
	var e domain.Entry
	err := db.WithContext(ctx).
		Where("user_id = ? AND entry_date = ?", userID, date).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// DeleteEntry removes the entry for (userID, date). It returns ErrNotFound
// when no such entry exists.
func DeleteEntry(ctx context.Context, db *gorm.DB, userID, date string) error {
	res := db.WithContext(ctx).
		Where("user_id = ? AND entry_date = ?", userID, date).
		Delete(&domain.Entry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListEntryDates returns the calendar dates for which userID has entries,
// most recent first. It returns an empty slice when the user has no entries.
func ListEntryDates(ctx context.Context, db *gorm.DB, userID string) ([]string, error) {
	var dates []string
	err := db.WithContext(ctx).
		Model(&domain.Entry{}).
		Where("user_id = ?", userID).
		Order("entry_date desc").
		Pluck("entry_date", &dates).Error
	return dates, err
}

// ListEntriesBetween returns all entries for userID with date in
// [startDate, endDate] inclusive, ordered by date ascending. Chronological
// order is load-bearing: it is the only ordering signal the weekly compiler
// passes to the narrative generator.
func ListEntriesBetween(ctx context.Context, db *gorm.DB, userID, startDate, endDate string) ([]domain.Entry, error) {
	var out []domain.Entry
	err := db.WithContext(ctx).
		Where("user_id = ? AND entry_date >= ? AND entry_date <= ?", userID, startDate, endDate).
		Order("entry_date asc").
		Find(&out).Error
	return out, err
}
