// Package services – EntryService
//
// This file implements the EntryService, which owns daily diary entries.
// It validates input at the boundary (before any store call), performs
// upserts with last-write-wins semantics, and exposes the date-bounded
// reads the weekly compiler and the week view depend on.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-journal-backend/internal/domain"
	"github.com/tbourn/go-journal-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// WeekView is the current week's entries together with its bounds.
type WeekView struct {
	WeekStart string         `json:"week_start"`
	WeekEnd   string         `json:"week_end"`
	Entries   []domain.Entry `json:"entries"`
}

// EntryService provides entry-level operations: upserting a day's text and
// reading entries by day, by user, or by week.
type EntryService struct {
	DB *gorm.DB
}

// NewEntryService constructs an EntryService.
func NewEntryService(db *gorm.DB) *EntryService {
	return &EntryService{DB: db}
}

// Upsert writes the entry for (userID, date), overwriting any prior content
// for the same day. Validation happens before any side effect.
func (s *EntryService) Upsert(ctx context.Context, userID, date, content string) (*domain.Entry, error) {
	tr := otel.Tracer("services/EntryService")
	ctx, span := tr.Start(ctx, "Upsert",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	date, err := normalizeDate(date)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	return repo.UpsertEntry(ctx, s.DB, userID, date, content)
}

// Content returns the entry text for (userID, date), or "" when no entry
// exists for that day. Absence is not an error.
func (s *EntryService) Content(ctx context.Context, userID, date string) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", ErrInvalidUserID
	}
	date, err := normalizeDate(date)
	if err != nil {
		return "", err
	}
	e, err := repo.GetEntry(ctx, s.DB, userID, date)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return e.Content, nil
}

// Delete removes the entry for (userID, date). Deleting a day that was
// never written returns repo.ErrNotFound.
func (s *EntryService) Delete(ctx context.Context, userID, date string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ErrInvalidUserID
	}
	date, err := normalizeDate(date)
	if err != nil {
		return err
	}
	if err := repo.DeleteEntry(ctx, s.DB, userID, date); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrEntryNotFound
		}
		return err
	}
	return nil
}

// Dates returns the calendar days userID has written on, most recent first.
func (s *EntryService) Dates(ctx context.Context, userID string) ([]string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	dates, err := repo.ListEntryDates(ctx, s.DB, userID)
	if err != nil {
		return nil, err
	}
	if dates == nil {
		dates = []string{}
	}
	return dates, nil
}

// Week returns the entries of the week containing now, oldest first, with
// the week's bounds.
func (s *EntryService) Week(ctx context.Context, userID string, now time.Time) (*WeekView, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	w := domain.WeekOf(now)
	entries, err := repo.ListEntriesBetween(ctx, s.DB, userID, w.StartDate(), w.EndDate())
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []domain.Entry{}
	}
	return &WeekView{WeekStart: w.StartDate(), WeekEnd: w.EndDate(), Entries: entries}, nil
}

// normalizeDate validates and canonicalizes a "YYYY-MM-DD" date string.
func normalizeDate(date string) (string, error) {
	date = strings.TrimSpace(date)
	t, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return "", ErrInvalidDate
	}
	return t.Format(domain.DateLayout), nil
}
