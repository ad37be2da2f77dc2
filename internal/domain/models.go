// Package domain defines the persistence models for journal entries,
// generated chapters, and author profiles. These types are mapped with GORM
// and form the core data layer of the journaling application.
package domain

import (
	"time"
)

// DateLayout is the canonical calendar-date format used across the
// application. Dates are stored as "YYYY-MM-DD" strings so that lexical
// ordering matches chronological ordering in SQL.
const DateLayout = "2006-01-02"

// Entry represents one day's diary text for one user. At most one entry
// exists per (user, calendar day); later writes overwrite the content
// (upsert, last-write-wins, no versioning).
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - UserID: opaque stable user identifier; part of the upsert key.
//   - EntryDate: calendar day "YYYY-MM-DD"; part of the upsert key.
//   - Content: the day's raw diary text.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
type Entry struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	UserID    string    `json:"user_id"    gorm:"type:varchar(64);not null;uniqueIndex:ux_entry_user_date,priority:1"`
	EntryDate string    `json:"date"       gorm:"type:char(10);not null;uniqueIndex:ux_entry_user_date,priority:2"`
	Content   string    `json:"content"    gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for Entry.
func (Entry) TableName() string { return "entries" }

// Chapter represents an immutable generated narrative covering one user's
// one week of entries. At most one chapter exists per (user, week start);
// the unique index is the storage-level guarantee that concurrent compile
// calls cannot persist duplicates.
//
// Chapters are created once and never mutated thereafter.
type Chapter struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	UserID    string    `json:"user_id"    gorm:"type:varchar(64);not null;uniqueIndex:ux_chapter_user_week,priority:1"`
	WeekStart string    `json:"week_start" gorm:"type:char(10);not null;uniqueIndex:ux_chapter_user_week,priority:2"`
	WeekEnd   string    `json:"week_end"   gorm:"type:char(10);not null"`
	Content   string    `json:"content"    gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for Chapter.
func (Chapter) TableName() string { return "chapters" }

// Profile holds a user's self-description used for book metadata and for
// generating the book introduction. At most one profile exists per user;
// writes follow the same upsert semantics as Entry.
//
// Intro is populated by an explicit generation action and may be
// regenerated (overwritten) on repeat invocation; it is the only generated
// field on this model.
type Profile struct {
	ID          string    `json:"id"          gorm:"type:char(36);primaryKey"`
	UserID      string    `json:"user_id"     gorm:"type:varchar(64);not null;uniqueIndex:ux_profile_user"`
	Name        string    `json:"name"        gorm:"type:varchar(255);not null"`
	Pronoun     string    `json:"pronoun"     gorm:"type:varchar(32)"`
	Place       string    `json:"place"       gorm:"type:varchar(255)"`
	LifePhase   string    `json:"life_phase"  gorm:"type:varchar(255)"`
	DailyLife   string    `json:"daily_life"  gorm:"type:text"`
	Aspirations string    `json:"aspirations" gorm:"type:text"`
	Intro       string    `json:"intro"       gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the database table name for Profile.
func (Profile) TableName() string { return "profiles" }
