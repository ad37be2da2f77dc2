// Package services – BookService
//
// This file implements the BookService, which assembles a user's cached
// chapters plus the optional generated introduction into the derived Book
// view consumed by the text and PDF renderers.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tbourn/go-journal-backend/internal/book"
	"github.com/tbourn/go-journal-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// BookService derives books from the chapter cache and profile store.
type BookService struct {
	DB *gorm.DB
}

// NewBookService constructs a BookService.
func NewBookService(db *gorm.DB) *BookService {
	return &BookService{DB: db}
}

// titleCaser renders author names in title case for the cover.
var titleCaser = cases.Title(language.English)

// Assemble builds the ordered Book for userID.
//
// The profile is optional: a missing profile yields the default author and
// no prologue. Zero chapters is ErrNoChapters regardless of prologue
// presence; a book requires at least one chapter.
func (s *BookService) Assemble(ctx context.Context, userID string) (*book.Book, error) {
	tr := otel.Tracer("services/BookService")
	ctx, span := tr.Start(ctx, "Assemble",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidUserID
	}

	author := book.DefaultAuthor
	prologue := ""
	if p, err := repo.GetProfile(ctx, s.DB, userID); err == nil {
		if name := strings.TrimSpace(p.Name); name != "" {
			author = titleCaser.String(name)
		}
		prologue = strings.TrimSpace(p.Intro)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	chapters, err := repo.ListChapters(ctx, s.DB, userID)
	if err != nil {
		return nil, err
	}
	if len(chapters) == 0 {
		return nil, ErrNoChapters
	}

	return &book.Book{
		Title:    "The Story of " + author,
		Author:   author,
		Prologue: prologue,
		Chapters: chapters,
	}, nil
}
