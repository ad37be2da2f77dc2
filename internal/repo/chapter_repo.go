// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Chapter
// model, the write-once weekly chapter cache.
//
// Chapters carry a unique index on (user_id, week_start). CreateChapter maps
// a violation of that index to ErrDuplicate so the service layer can resolve
// the compile race deterministically: insert, catch conflict, re-read.
package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-journal-backend/internal/domain"
)

// ErrDuplicate indicates that a chapter already exists for the given
// (user_id, week_start) tuple.
var ErrDuplicate = errors.New("duplicate")

// GetChapter returns the chapter for (userID, weekStart) or ErrNotFound.
func GetChapter(ctx context.Context, db *gorm.DB, userID, weekStart string) (*domain.Chapter, error) {
	var c domain.Chapter
	err := db.WithContext(ctx).
		Where("user_id = ? AND week_start = ?", userID, weekStart).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListChapters returns all chapters for userID ordered by week start
// ascending. Week starts are "YYYY-MM-DD" strings, so lexical order is
// chronological order; this is the order chapters get numbered in.
func ListChapters(ctx context.Context, db *gorm.DB, userID string) ([]domain.Chapter, error) {
	var out []domain.Chapter
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("week_start asc").
		Find(&out).Error
	return out, err
}

// CountChapters returns the number of chapters for userID.
func CountChapters(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Chapter{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	return total, err
}

// CreateChapter inserts a chapter row and returns ErrDuplicate on unique
// violation, leaving the previously persisted row untouched.
func CreateChapter(ctx context.Context, db *gorm.DB, userID, weekStart, weekEnd, content string) (*domain.Chapter, error) {
	c := &domain.Chapter{
		ID:        uuid.NewString(),
		UserID:    userID,
		WeekStart: weekStart,
		WeekEnd:   weekEnd,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(c).Error; err != nil {
		// glebarez/sqlite often returns plain-text errors for UNIQUE violations.
		low := strings.ToLower(err.Error())
		if errors.Is(err, gorm.ErrDuplicatedKey) ||
			strings.Contains(low, "unique constraint failed") ||
			strings.Contains(low, "constraint failed: unique") {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return c, nil
}
