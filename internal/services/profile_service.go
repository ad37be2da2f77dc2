// Package services – ProfileService
//
// This file implements the ProfileService, which owns user profiles and the
// explicit introduction-generation action. Profiles follow the same upsert
// semantics as entries; the generated introduction is the one field a repeat
// generation overwrites.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-journal-backend/internal/ai"
	"github.com/tbourn/go-journal-backend/internal/domain"
	"github.com/tbourn/go-journal-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ProfileService provides profile upserts, reads, and introduction
// generation.
type ProfileService struct {
	DB        *gorm.DB
	Generator ai.Generator

	// GenerateTimeout bounds the introduction generation call.
	GenerateTimeout time.Duration
}

// NewProfileService constructs a ProfileService with a default generator
// timeout.
func NewProfileService(db *gorm.DB, g ai.Generator) *ProfileService {
	return &ProfileService{DB: db, Generator: g, GenerateTimeout: 60 * time.Second}
}

// Upsert writes the profile for p.UserID, overwriting the user-editable
// fields of an existing row. UserID and Name are required.
func (s *ProfileService) Upsert(ctx context.Context, p domain.Profile) (*domain.Profile, error) {
	p.UserID = strings.TrimSpace(p.UserID)
	p.Name = strings.TrimSpace(p.Name)
	if p.UserID == "" || p.Name == "" {
		return nil, ErrInvalidProfile
	}
	return repo.UpsertProfile(ctx, s.DB, p)
}

// Get returns the profile for userID, or ErrProfileNotFound.
func (s *ProfileService) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	p, err := repo.GetProfile(ctx, s.DB, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	return p, err
}

// GenerateIntro produces a book introduction from the profile's facts and
// persists it. A repeat invocation regenerates and overwrites the stored
// introduction.
func (s *ProfileService) GenerateIntro(ctx context.Context, userID string) (string, error) {
	tr := otel.Tracer("services/ProfileService")
	ctx, span := tr.Start(ctx, "GenerateIntro",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	p, err := s.Get(ctx, userID)
	if err != nil {
		return "", err
	}

	if s.Generator == nil {
		return "", ErrGenerationFailed
	}
	genCtx := ctx
	if s.GenerateTimeout > 0 {
		var cancel context.CancelFunc
		genCtx, cancel = context.WithTimeout(ctx, s.GenerateTimeout)
		defer cancel()
	}
	intro, err := s.Generator.Generate(genCtx, ai.IntroInstructions, profileFacts(p))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	intro = strings.TrimSpace(intro)
	if intro == "" {
		return "", ErrGenerationFailed
	}

	if err := repo.UpdateProfileIntro(ctx, s.DB, userID, intro); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrProfileNotFound
		}
		return "", err
	}
	return intro, nil
}

// profileFacts flattens profile fields into the fact sheet handed to the
// generator. Empty fields are omitted rather than sent as blanks.
func profileFacts(p *domain.Profile) string {
	var b strings.Builder
	add := func(label, v string) {
		if v = strings.TrimSpace(v); v != "" {
			fmt.Fprintf(&b, "%s: %s\n", label, v)
		}
	}
	add("Name", p.Name)
	add("Pronoun", p.Pronoun)
	add("Lives in", p.Place)
	add("Life phase", p.LifePhase)
	add("Daily life", p.DailyLife)
	add("Aspirations", p.Aspirations)
	return b.String()
}
