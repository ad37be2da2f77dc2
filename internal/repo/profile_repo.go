// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Profile
// model.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-journal-backend/internal/domain"
)

// UpsertProfile writes the profile for userID. Existing rows keep their id
// and generated intro; the user-editable fields are overwritten.
func UpsertProfile(ctx context.Context, db *gorm.DB, p domain.Profile) (*domain.Profile, error) {
	now := time.Now().UTC()
	p.ID = uuid.NewString()
	p.CreatedAt = now
	p.UpdatedAt = now
	err := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "pronoun", "place", "life_phase", "daily_life", "aspirations", "updated_at",
			}),
		}).
		Create(&p).Error
	if err != nil {
		return nil, err
	}
	return GetProfile(ctx, db, p.UserID)
}

// GetProfile fetches the profile for userID, or ErrNotFound if absent.
func GetProfile(ctx context.Context, db *gorm.DB, userID string) (*domain.Profile, error) {
	var p domain.Profile
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProfileIntro overwrites the generated introduction for userID.
// Returns ErrNotFound when no profile row exists.
func UpdateProfileIntro(ctx context.Context, db *gorm.DB, userID, intro string) error {
	res := db.WithContext(ctx).
		Model(&domain.Profile{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{"intro": intro, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListProfileUserIDs enumerates all user ids that have a profile row, in
// stable creation order. Users without a profile are invisible to weekly
// automation.
func ListProfileUserIDs(ctx context.Context, db *gorm.DB) ([]string, error) {
	var ids []string
	err := db.WithContext(ctx).
		Model(&domain.Profile{}).
		Order("created_at asc").
		Pluck("user_id", &ids).Error
	return ids, err
}
