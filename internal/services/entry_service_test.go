package services

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestEntryUpsert_Validation(t *testing.T) {
	db := newSvcDB(t)
	svc := NewEntryService(db)
	ctx := context.Background()

	cases := []struct {
		name    string
		userID  string
		date    string
		content string
		wantErr error
	}{
		{"blank user", "  ", "2024-01-03", "text", ErrInvalidUserID},
		{"empty date", "u1", "", "text", ErrInvalidDate},
		{"garbage date", "u1", "January 3rd", "text", ErrInvalidDate},
		{"wrong layout", "u1", "03-01-2024", "text", ErrInvalidDate},
		{"impossible day", "u1", "2024-02-30", "text", ErrInvalidDate},
		{"blank content", "u1", "2024-01-03", "   \n", ErrEmptyContent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Upsert(ctx, tc.userID, tc.date, tc.content)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestEntryUpsert_LastWriteWins(t *testing.T) {
	db := newSvcDB(t)
	svc := NewEntryService(db)
	ctx := context.Background()

	if _, err := svc.Upsert(ctx, "u1", "2024-01-03", "morning draft"); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if _, err := svc.Upsert(ctx, "u1", "2024-01-03", "evening rewrite"); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	got, err := svc.Content(ctx, "u1", "2024-01-03")
	if err != nil {
		t.Fatalf("Content: %v", err)
	}
	if got != "evening rewrite" {
		t.Fatalf("content = %q, want the later write", got)
	}
}

func TestEntryContent_AbsentDayIsEmptyNotError(t *testing.T) {
	db := newSvcDB(t)
	svc := NewEntryService(db)

	got, err := svc.Content(context.Background(), "u1", "2024-01-03")
	if err != nil {
		t.Fatalf("Content: %v", err)
	}
	if got != "" {
		t.Fatalf("content = %q, want empty", got)
	}
}

func TestEntryDates_NeverNil(t *testing.T) {
	db := newSvcDB(t)
	svc := NewEntryService(db)

	dates, err := svc.Dates(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Dates: %v", err)
	}
	if dates == nil {
		t.Fatal("Dates returned nil; JSON clients expect []")
	}
}

func TestEntryWeek_BoundsAndOrder(t *testing.T) {
	db := newSvcDB(t)
	svc := NewEntryService(db)
	ctx := context.Background()

	for _, d := range []string{"2024-01-05", "2024-01-01", "2023-12-31", "2024-01-08"} {
		if _, err := svc.Upsert(ctx, "u1", d, "entry "+d); err != nil {
			t.Fatalf("seed %s: %v", d, err)
		}
	}

	view, err := svc.Week(ctx, "u1", time.Date(2024, time.January, 3, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Week: %v", err)
	}
	if view.WeekStart != "2024-01-01" || view.WeekEnd != "2024-01-07" {
		t.Fatalf("bounds = %s..%s", view.WeekStart, view.WeekEnd)
	}
	if len(view.Entries) != 2 {
		t.Fatalf("got %d entries, want 2 (out-of-week days excluded)", len(view.Entries))
	}
	if view.Entries[0].EntryDate != "2024-01-01" || view.Entries[1].EntryDate != "2024-01-05" {
		t.Fatalf("entries out of order: %s, %s", view.Entries[0].EntryDate, view.Entries[1].EntryDate)
	}
}

func TestEntryWeek_EmptyWeekHasEmptySlice(t *testing.T) {
	db := newSvcDB(t)
	svc := NewEntryService(db)

	view, err := svc.Week(context.Background(), "u1", time.Now())
	if err != nil {
		t.Fatalf("Week: %v", err)
	}
	if view.Entries == nil || len(view.Entries) != 0 {
		t.Fatalf("entries = %#v, want empty non-nil slice", view.Entries)
	}
}
