// Package services defines the business logic for entries, chapters,
// profiles, books, and weekly automation. This file centralizes common
// service-level error values so that they can be consistently returned by
// service methods and checked by callers.
//
// These errors are intended for internal use by the service layer and
// translation into user-facing messages or HTTP status codes should be
// performed at the handler layer.
package services

import "errors"

var (
	// ErrInvalidUserID is returned when a request is missing the user id.
	ErrInvalidUserID = errors.New("user id is required")

	// ErrInvalidDate is returned when a date is missing or not "YYYY-MM-DD".
	ErrInvalidDate = errors.New("date must be YYYY-MM-DD")

	// ErrEmptyContent is returned when an entry write carries no text.
	ErrEmptyContent = errors.New("content is empty")

	// ErrInvalidProfile is returned when a profile write is missing
	// required fields (user id or name).
	ErrInvalidProfile = errors.New("profile requires user id and name")

	// ErrNoEntries signals a legitimately empty week: the user wrote
	// nothing in the requested span. Callers must not treat this as a
	// failure, and no chapter is cached for such a week.
	ErrNoEntries = errors.New("no entries this week")

	// ErrNoChapters signals that a book cannot be assembled because the
	// user has no chapters yet, regardless of prologue presence.
	ErrNoChapters = errors.New("no chapters yet")

	// ErrEntryNotFound indicates that the requested entry does not exist.
	ErrEntryNotFound = errors.New("entry not found")

	// ErrProfileNotFound indicates that the requested profile does not exist.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrGenerationFailed is returned when the narrative generator is
	// unavailable, errored, timed out, or returned no usable text.
	// Nothing is cached on this path.
	ErrGenerationFailed = errors.New("narrative generation failed")
)
