// Package services – AutomationService
//
// This file implements the weekly batch runner: once a week it walks every
// known user (every user with a profile row) and compiles the week that
// just completed. Per-user failures are isolated so one user's generator
// outage never aborts the batch; the report itemizes every outcome for
// observability.
package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-journal-backend/internal/clock"
	"github.com/tbourn/go-journal-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Per-user batch outcomes.
const (
	OutcomeGenerated = "generated"
	OutcomeCached    = "already-cached"
	OutcomeNoEntries = "no-entries"
	OutcomeFailed    = "failed"
)

// UserOutcome records what happened for one user during a batch run.
type UserOutcome struct {
	UserID  string `json:"user_id"`
	Outcome string `json:"outcome"`
	Error   string `json:"error,omitempty"`
}

// BatchReport is the itemized result of one automation run.
type BatchReport struct {
	RunAt     time.Time     `json:"run_at"`
	Skipped   bool          `json:"skipped"`
	Reason    string        `json:"reason,omitempty"`
	Processed int           `json:"processed"`
	Cached    int           `json:"cached"`
	NoEntries int           `json:"no_entries"`
	Failed    int           `json:"failed"`
	Outcomes  []UserOutcome `json:"outcomes"`
}

// WeekCompiler is the compile contract the runner depends on; satisfied by
// *ChapterService.
type WeekCompiler interface {
	CompileWeek(ctx context.Context, userID string, ref time.Time) (*CompileResult, error)
}

// AutomationService runs the weekly compile batch across all users.
type AutomationService struct {
	DB       *gorm.DB
	Compiler WeekCompiler
	// Clock supplies the execution time; injected so the Sunday gate and
	// week-boundary math are testable without real wall-clock time.
	Clock clock.Clock
	// Location is the fixed reference zone the Sunday gate is evaluated in.
	Location *time.Location
}

// NewAutomationService constructs an AutomationService on the system clock
// in UTC.
func NewAutomationService(db *gorm.DB, compiler WeekCompiler) *AutomationService {
	return &AutomationService{
		DB:       db,
		Compiler: compiler,
		Clock:    clock.System{},
		Location: time.UTC,
	}
}

// RunWeeklyBatch compiles the just-completed week for every user with a
// profile.
//
// The run only proceeds when the clock's day-of-week in the configured zone
// is Sunday; otherwise it is a no-op reporting Skipped. Each user is
// attempted independently: already-cached, no-entries, and failed outcomes
// are counted without aborting the remainder of the batch.
func (s *AutomationService) RunWeeklyBatch(ctx context.Context) (*BatchReport, error) {
	now := s.Clock.Now().In(s.location())

	tr := otel.Tracer("services/AutomationService")
	ctx, span := tr.Start(ctx, "RunWeeklyBatch",
		trace.WithAttributes(attribute.String("run.at", now.Format(time.RFC3339))),
	)
	defer span.End()

	report := &BatchReport{RunAt: now, Outcomes: []UserOutcome{}}
	if now.Weekday() != time.Sunday {
		report.Skipped = true
		report.Reason = "not Sunday"
		return report, nil
	}

	userIDs, err := repo.ListProfileUserIDs(ctx, s.DB)
	if err != nil {
		return nil, err
	}

	for _, uid := range userIDs {
		outcome := UserOutcome{UserID: uid}
		res, err := s.Compiler.CompileWeek(ctx, uid, now)
		switch {
		case errors.Is(err, ErrNoEntries):
			outcome.Outcome = OutcomeNoEntries
			report.NoEntries++
		case err != nil:
			outcome.Outcome = OutcomeFailed
			outcome.Error = err.Error()
			report.Failed++
		case res.Source == SourceCached:
			outcome.Outcome = OutcomeCached
			report.Cached++
		default:
			outcome.Outcome = OutcomeGenerated
			report.Processed++
		}
		report.Outcomes = append(report.Outcomes, outcome)
	}
	return report, nil
}

func (s *AutomationService) location() *time.Location {
	if s.Location != nil {
		return s.Location
	}
	return time.UTC
}
