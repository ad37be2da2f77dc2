// Weekly view and compile HTTP handlers.
//
// This file exposes the week-level endpoints:
//   - GET  /weeks/{userId}          (current week's entries and bounds)
//   - POST /weeks/{userId}/enhance  (compile the current week's chapter)
//
// The enhance endpoint is idempotent per (user, week): a second call within
// the same week returns the cached chapter with source = "cached". A week
// with zero entries is a 200 with the no_content code, never an error
// status; callers must be able to distinguish emptiness from failure.
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-journal-backend/internal/services"
)

// EnhanceResponse is the result of a weekly compile.
type EnhanceResponse struct {
	Chapter   string `json:"chapter"`
	WeekStart string `json:"week_start"`
	WeekEnd   string `json:"week_end"`
	// Source is "generated" on a fresh compile, "cached" on an idempotent hit.
	Source string `json:"source"`
}

// NoContentResponse accompanies a 200 for legitimately empty results.
type NoContentResponse struct {
	Code    string `json:"code" example:"no_content"`
	Message string `json:"message" example:"no entries this week"`
}

// GetWeek godoc
// @ID          getWeek
// @Summary     Current week's entries
// @Description Returns the Monday-to-Sunday bounds of the current week and the user's entries within it, oldest first.
// @Tags        Weeks
// @Produce     json
//
// @Param       userId  path  string  true  "User ID"  example(u-8f2c)
//
// @Success     200  {object}  services.WeekView
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /weeks/{userId} [get]
func (h *Handlers) GetWeek(c *gin.Context) {
	view, err := h.entrySvc.Week(c.Request.Context(), c.Param("userId"), time.Now())
	if err != nil {
		if errors.Is(err, services.ErrInvalidUserID) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not read week")
		return
	}
	ok(c, http.StatusOK, view)
}

// EnhanceWeek godoc
// @ID          enhanceWeek
// @Summary     Compile the current week's chapter
// @Description Generates (or returns the cached) narrative chapter for the week containing today. A week with no entries yields 200 with code no_content and no cached chapter.
// @Tags        Weeks
// @Produce     json
//
// @Param       userId  path  string  true  "User ID"  example(u-8f2c)
//
// @Success     200  {object}  handlers.EnhanceResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     502  {object}  handlers.ErrorResponse  "Generation failed"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /weeks/{userId}/enhance [post]
func (h *Handlers) EnhanceWeek(c *gin.Context) {
	res, err := h.chapterSvc.CompileWeek(c.Request.Context(), c.Param("userId"), time.Now())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidUserID):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		case errors.Is(err, services.ErrNoEntries):
			// Legitimately empty, not a failure.
			ok(c, http.StatusOK, NoContentResponse{Code: ErrCodeNoContent, Message: "no entries this week"})
		case errors.Is(err, services.ErrGenerationFailed):
			fail(c, http.StatusBadGateway, ErrCodeGenerationFailed, "narrative generation failed")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not compile week")
		}
		return
	}
	ok(c, http.StatusOK, EnhanceResponse{
		Chapter:   res.Chapter.Content,
		WeekStart: res.Chapter.WeekStart,
		WeekEnd:   res.Chapter.WeekEnd,
		Source:    string(res.Source),
	})
}
