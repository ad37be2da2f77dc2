// Diary entry HTTP handlers.
//
// This file exposes REST endpoints for entry resources:
//   - POST   /entries                   (upsert a day's text)
//   - GET    /entries/{userId}          (dates with entries, descending)
//   - GET    /entries/{userId}/{date}   (a day's text; "" when absent)
//   - DELETE /entries/{userId}/{date}   (remove a day's entry)
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-journal-backend/internal/services"
	"github.com/tbourn/go-journal-backend/internal/utils"
)

//
// DTOs
//

// UpsertEntryRequest is the JSON payload for writing a day's entry.
type UpsertEntryRequest struct {
	// UserID identifies the entry owner.
	UserID string `json:"user_id" binding:"required" example:"u-8f2c"`
	// Date is the calendar day being written, "YYYY-MM-DD".
	Date string `json:"date" binding:"required" example:"2024-01-02"`
	// Content is the day's diary text.
	Content string `json:"content" binding:"required" example:"Went for a walk."`
}

// EntryContentResponse wraps a single day's text.
type EntryContentResponse struct {
	Content string `json:"content"`
}

// EntryDatesResponse lists the days a user has written on.
type EntryDatesResponse struct {
	Dates []string `json:"dates"`
}

//
// Helpers
//

// clampLimit parses and bounds the optional "limit" query param. Zero means
// no limit.
func clampLimit(c *gin.Context) int {
	const maxLimit = 1000
	limit := utils.AtoiDefault(c.Query("limit"), 0)
	if limit < 0 {
		limit = 0
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return limit
}

//
// Handlers
//

// UpsertEntry godoc
// @ID          upsertEntry
// @Summary     Write a day's entry
// @Description Creates or overwrites the diary entry for (user, date). Last write wins.
// @Tags        Entries
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.UpsertEntryRequest  true  "Entry payload"
//
// @Success     200  {object}  domain.Entry
// @Failure     400  {object}  handlers.ErrorResponse  "Missing or malformed fields"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /entries [post]
func (h *Handlers) UpsertEntry(c *gin.Context) {
	var req UpsertEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "user_id, date and content are required")
		return
	}

	e, err := h.entrySvc.Upsert(c.Request.Context(), req.UserID, req.Date, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidUserID),
			errors.Is(err, services.ErrInvalidDate),
			errors.Is(err, services.ErrEmptyContent):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not save entry")
		}
		return
	}
	ok(c, http.StatusOK, e)
}

// ListEntryDates godoc
// @ID          listEntryDates
// @Summary     List days with entries
// @Description Returns the calendar dates the user has written on, most recent first.
// @Tags        Entries
// @Produce     json
//
// @Param       userId  path   string  true   "User ID"  example(u-8f2c)
// @Param       limit   query  int     false  "Maximum number of dates to return"  example(30)
//
// @Success     200  {object}  handlers.EntryDatesResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /entries/{userId} [get]
func (h *Handlers) ListEntryDates(c *gin.Context) {
	dates, err := h.entrySvc.Dates(c.Request.Context(), c.Param("userId"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidUserID) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not list entries")
		return
	}
	if limit := clampLimit(c); limit > 0 && limit < len(dates) {
		dates = dates[:limit]
	}
	ok(c, http.StatusOK, EntryDatesResponse{Dates: dates})
}

// GetEntry godoc
// @ID          getEntry
// @Summary     Read a day's entry
// @Description Returns the diary text for (user, date). An absent entry yields an empty string, not an error.
// @Tags        Entries
// @Produce     json
//
// @Param       userId  path  string  true  "User ID"             example(u-8f2c)
// @Param       date    path  string  true  "Date (YYYY-MM-DD)"   example(2024-01-02)
//
// @Success     200  {object}  handlers.EntryContentResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /entries/{userId}/{date} [get]
func (h *Handlers) GetEntry(c *gin.Context) {
	content, err := h.entrySvc.Content(c.Request.Context(), c.Param("userId"), c.Param("date"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidUserID), errors.Is(err, services.ErrInvalidDate):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not read entry")
		}
		return
	}
	ok(c, http.StatusOK, EntryContentResponse{Content: content})
}

// DeleteEntry godoc
// @ID          deleteEntry
// @Summary     Delete a day's entry
// @Description Removes the diary entry for (user, date).
// @Tags        Entries
// @Produce     json
//
// @Param       userId  path  string  true  "User ID"             example(u-8f2c)
// @Param       date    path  string  true  "Date (YYYY-MM-DD)"   example(2024-01-02)
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Entry not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /entries/{userId}/{date} [delete]
func (h *Handlers) DeleteEntry(c *gin.Context) {
	err := h.entrySvc.Delete(c.Request.Context(), c.Param("userId"), c.Param("date"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidUserID), errors.Is(err, services.ErrInvalidDate):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		case errors.Is(err, services.ErrEntryNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "entry not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not delete entry")
		}
		return
	}
	noContent(c)
}
