// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the service contracts consumed by the handlers and the
// Handlers aggregate that the router wires up. Handlers are transport-thin:
// they validate input, call application services, and translate results into
// HTTP responses.
package handlers

import (
	"context"
	"time"

	"github.com/tbourn/go-journal-backend/internal/book"
	"github.com/tbourn/go-journal-backend/internal/domain"
	"github.com/tbourn/go-journal-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// EntryService defines diary entry operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type EntryService interface {
	// Upsert writes the entry for (userID, date), last write wins.
	Upsert(ctx context.Context, userID, date, content string) (*domain.Entry, error)
	// Content returns the day's text, or "" when no entry exists.
	Content(ctx context.Context, userID, date string) (string, error)
	// Delete removes the entry for (userID, date).
	Delete(ctx context.Context, userID, date string) error
	// Dates returns the days the user has written on, most recent first.
	Dates(ctx context.Context, userID string) ([]string, error)
	// Week returns the current week's entries with its bounds.
	Week(ctx context.Context, userID string, now time.Time) (*services.WeekView, error)
}

// ChapterService defines the weekly compile operation.
type ChapterService interface {
	// CompileWeek produces or fetches the chapter for the week containing ref.
	CompileWeek(ctx context.Context, userID string, ref time.Time) (*services.CompileResult, error)
}

// ProfileService defines profile operations.
type ProfileService interface {
	Upsert(ctx context.Context, p domain.Profile) (*domain.Profile, error)
	Get(ctx context.Context, userID string) (*domain.Profile, error)
	// GenerateIntro produces and persists the book introduction.
	GenerateIntro(ctx context.Context, userID string) (string, error)
}

// BookService defines book assembly.
type BookService interface {
	Assemble(ctx context.Context, userID string) (*book.Book, error)
}

// AutomationService defines the privileged weekly batch run.
type AutomationService interface {
	RunWeeklyBatch(ctx context.Context) (*services.BatchReport, error)
}

// AuthService defines the passcode login flow.
type AuthService interface {
	RequestCode(ctx context.Context, email string) error
	VerifyCode(ctx context.Context, email, code string) (token, userID string, err error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for entries, weeks, profiles, books,
// automation, and auth. It depends on abstract service interfaces to keep
// transport concerns separate from business logic.
type Handlers struct {
	entrySvc   EntryService
	chapterSvc ChapterService
	profileSvc ProfileService
	bookSvc    BookService
	autoSvc    AutomationService
	authSvc    AuthService
}

// New constructs and returns a Handlers instance bound to the given services.
// authSvc may be nil when the passcode login flow is not configured; its
// routes then report unavailability.
func New(entrySvc EntryService, chapterSvc ChapterService, profileSvc ProfileService, bookSvc BookService, autoSvc AutomationService, authSvc AuthService) *Handlers {
	return &Handlers{
		entrySvc:   entrySvc,
		chapterSvc: chapterSvc,
		profileSvc: profileSvc,
		bookSvc:    bookSvc,
		autoSvc:    autoSvc,
		authSvc:    authSvc,
	}
}
