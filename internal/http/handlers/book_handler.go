// Book HTTP handlers.
//
// Endpoints:
//   - GET /books/{userId}      (assembled book as JSON with full text)
//   - GET /books/{userId}/pdf  (paginated PDF download)
//
// A user with zero chapters has no book yet; both endpoints answer 200 with
// the no_content code in that case, mirroring the empty-week contract.
package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-journal-backend/internal/book"
	"github.com/tbourn/go-journal-backend/internal/services"
)

// BookResponse is the JSON rendering of an assembled book.
type BookResponse struct {
	Title        string `json:"title"`
	Author       string `json:"author"`
	ChapterCount int    `json:"chapter_count"`
	// Text is the full plain-text rendering of the book.
	Text string `json:"text"`
}

// GetBook godoc
// @ID          getBook
// @Summary     Assemble the user's book
// @Description Collects every compiled chapter in week order, adds the profile's introduction when present, and returns the plain-text rendering.
// @Tags        Books
// @Produce     json
//
// @Param       userId  path  string  true  "User ID"  example(u-8f2c)
//
// @Success     200  {object}  handlers.BookResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /books/{userId} [get]
func (h *Handlers) GetBook(c *gin.Context) {
	b, err := h.bookSvc.Assemble(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.bookError(c, err)
		return
	}
	ok(c, http.StatusOK, BookResponse{
		Title:        b.Title,
		Author:       b.Author,
		ChapterCount: b.ChapterCount(),
		Text:         book.RenderText(b),
	})
}

// GetBookPDF godoc
// @ID          getBookPDF
// @Summary     Download the user's book as a PDF
// @Description Renders the assembled book as a paginated PDF and streams it as an attachment.
// @Tags        Books
// @Produce     application/pdf
//
// @Param       userId  path  string  true  "User ID"  example(u-8f2c)
//
// @Success     200  {file}    file                    "PDF document"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /books/{userId}/pdf [get]
func (h *Handlers) GetBookPDF(c *gin.Context) {
	userID := c.Param("userId")
	b, err := h.bookSvc.Assemble(c.Request.Context(), userID)
	if err != nil {
		h.bookError(c, err)
		return
	}
	pdf, err := book.RenderPDF(b)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not render PDF")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", userID+"-book.pdf"))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// bookError maps assembly failures shared by both book endpoints.
func (h *Handlers) bookError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidUserID):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	case errors.Is(err, services.ErrNoChapters):
		ok(c, http.StatusOK, NoContentResponse{Code: ErrCodeNoContent, Message: "no chapters yet"})
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not assemble book")
	}
}
