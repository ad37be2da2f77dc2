// Package services – ChapterService
//
// This file implements the weekly compiler: the component that turns one
// user's week of diary entries into a single generated chapter, caching the
// result so that repeated calls within the same week return the same
// artifact.
//
// Idempotence under concurrency is resolved at the storage layer: chapters
// carry a unique index on (user, week start), and the compile path inserts,
// catches the conflict, and re-reads the winning row. Two concurrent
// compiles may both call the generator, but at most one chapter is ever
// persisted per (user, week).
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

// CompileSource reports where a compiled chapter came from.
type CompileSource string

const (
	// SourceCached means an already-persisted chapter was returned.
	SourceCached CompileSource = "cached"
	// SourceGenerated means the chapter was produced by this call.
	SourceGenerated CompileSource = "generated"
)

// CompileResult is the outcome of a successful weekly compile.
type CompileResult struct {
	Chapter *domain.Chapter
	Source  CompileSource
}

// ChapterService orchestrates the entry store, the chapter cache, and the
// narrative generator to produce or fetch a week's chapter.
type ChapterService struct {
	DB        *gorm.DB
	Generator ai.Generator

	// GenerateTimeout bounds each generator call. Expiry is reported as
	// ErrGenerationFailed; the eventual upstream completion is discarded.
	GenerateTimeout time.Duration
}

// NewChapterService constructs a ChapterService with a default generator
// timeout.
func NewChapterService(db *gorm.DB, g ai.Generator) *ChapterService {
	return &ChapterService{DB: db, Generator: g, GenerateTimeout: 60 * time.Second}
}

// CompileWeek produces or fetches the chapter for the week containing ref.
//
// Behavior:
//  1. Week bounds are computed from ref (Monday..Sunday).
//  2. An existing chapter for (userID, week start) is returned as-is with
//     Source = cached. Repeated calls within one week return the same text.
//  3. Otherwise all entries in [start, end] are read in date order. A week
//     with zero entries returns ErrNoEntries and writes nothing.
//  4. Entry texts are trimmed and joined with a blank line; dates are not
//     included in the text sent to the generator.
//  5. Generator failure or empty output returns ErrGenerationFailed and
//     writes nothing.
//  6. The generated chapter is inserted; if a concurrent compile won the
//     insert, the fresh text is discarded and the persisted row is
//     returned with Source = cached.
func (s *ChapterService) CompileWeek(ctx context.Context, userID string, ref time.Time) (*CompileResult, error) {
	week := domain.WeekOf(ref)

	tr := otel.Tracer("services/ChapterService")
	ctx, span := tr.Start(ctx, "CompileWeek",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("week.start", week.StartDate()),
		),
	)
	defer span.End()

	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidUserID
	}

	// Fast path: the chapter cache is write-once with idempotent reads.
	if existing, err := repo.GetChapter(ctx, s.DB, userID, week.StartDate()); err == nil {
		return &CompileResult{Chapter: existing, Source: SourceCached}, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	entries, err := repo.ListEntriesBetween(ctx, s.DB, userID, week.StartDate(), week.EndDate())
	if err != nil {
		return nil, err
	}
	raw := concatEntries(entries)
	if raw == "" {
		return nil, ErrNoEntries
	}

	text, err := s.generate(ctx, ai.ChapterInstructions, raw)
	if err != nil {
		return nil, err
	}

	chapter, err := repo.CreateChapter(ctx, s.DB, userID, week.StartDate(), week.EndDate(), text)
	if errors.Is(err, repo.ErrDuplicate) {
		// A concurrent compile persisted first; discard our text and
		// return the winning row so every caller sees one artifact.
		existing, rerr := repo.GetChapter(ctx, s.DB, userID, week.StartDate())
		if rerr != nil {
			return nil, rerr
		}
		return &CompileResult{Chapter: existing, Source: SourceCached}, nil
	}
	if err != nil {
		return nil, err
	}
	return &CompileResult{Chapter: chapter, Source: SourceGenerated}, nil
}

// generate invokes the narrative generator under the configured timeout and
// maps every failure mode, including expiry and empty output, to
// ErrGenerationFailed.
func (s *ChapterService) generate(ctx context.Context, instructions, text string) (string, error) {
	if s.Generator == nil {
		return "", ErrGenerationFailed
	}
	if s.GenerateTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.GenerateTimeout)
		defer cancel()
	}
	out, err := s.Generator.Generate(ctx, instructions, text)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", ErrGenerationFailed
	}
	return out, nil
}

// concatEntries joins entry texts in date order, each trimmed, separated by
// a blank line. Blank entries are dropped. The result is the exact text
// passed to the generator: chronological order is the only temporal signal.
func concatEntries(entries []domain.Entry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		if t := strings.TrimSpace(e.Content); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n\n")
}
