// Profile HTTP handlers.
//
// Endpoints:
//   - POST /profiles                 (create or overwrite a profile)
//   - GET  /profiles/{userId}        (fetch a profile; null body when absent)
//   - POST /profiles/{userId}/intro  (generate the book introduction)
//
// A missing profile on GET is not an error: the response carries
// {"profile": null} so clients can render an empty form without special
// casing a 404.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-journal-backend/internal/domain"
	"github.com/tbourn/go-journal-backend/internal/services"
)

// UpsertProfileRequest is the payload for POST /profiles.
type UpsertProfileRequest struct {
	UserID      string `json:"user_id"     binding:"required" example:"u-8f2c"`
	Name        string `json:"name"        binding:"required" example:"Maria"`
	Pronoun     string `json:"pronoun"     example:"she"`
	Place       string `json:"place"       example:"Lisbon"`
	LifePhase   string `json:"life_phase"  example:"new parent"`
	DailyLife   string `json:"daily_life"  example:"mornings at the bakery, evenings with the kids"`
	Aspirations string `json:"aspirations" example:"open a second shop"`
}

// ProfileResponse wraps a profile read; Profile is null when none exists.
type ProfileResponse struct {
	Profile *domain.Profile `json:"profile"`
}

// IntroResponse carries a freshly generated book introduction.
type IntroResponse struct {
	Intro string `json:"intro"`
}

// UpsertProfile godoc
// @ID          upsertProfile
// @Summary     Create or update a profile
// @Description Writes the user's profile. A repeat write overwrites the editable fields; a previously generated introduction is preserved.
// @Tags        Profiles
// @Accept      json
// @Produce     json
//
// @Param       payload  body  handlers.UpsertProfileRequest  true  "Profile fields"
//
// @Success     200  {object}  domain.Profile
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /profiles [post]
func (h *Handlers) UpsertProfile(c *gin.Context) {
	var req UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid request payload")
		return
	}
	p, err := h.profileSvc.Upsert(c.Request.Context(), domain.Profile{
		UserID:      req.UserID,
		Name:        req.Name,
		Pronoun:     req.Pronoun,
		Place:       req.Place,
		LifePhase:   req.LifePhase,
		DailyLife:   req.DailyLife,
		Aspirations: req.Aspirations,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidProfile) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not save profile")
		return
	}
	ok(c, http.StatusOK, p)
}

// GetProfile godoc
// @ID          getProfile
// @Summary     Fetch a profile
// @Description Returns the user's profile, or {"profile": null} when none has been created yet.
// @Tags        Profiles
// @Produce     json
//
// @Param       userId  path  string  true  "User ID"  example(u-8f2c)
//
// @Success     200  {object}  handlers.ProfileResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /profiles/{userId} [get]
func (h *Handlers) GetProfile(c *gin.Context) {
	p, err := h.profileSvc.Get(c.Request.Context(), c.Param("userId"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProfileNotFound):
			ok(c, http.StatusOK, ProfileResponse{Profile: nil})
		case errors.Is(err, services.ErrInvalidUserID):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not read profile")
		}
		return
	}
	ok(c, http.StatusOK, ProfileResponse{Profile: p})
}

// GenerateIntro godoc
// @ID          generateIntro
// @Summary     Generate the book introduction
// @Description Produces an introduction from the profile's facts and stores it. Repeat calls regenerate and overwrite the stored text.
// @Tags        Profiles
// @Produce     json
//
// @Param       userId  path  string  true  "User ID"  example(u-8f2c)
//
// @Success     200  {object}  handlers.IntroResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Profile not found"
// @Failure     502  {object}  handlers.ErrorResponse  "Generation failed"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /profiles/{userId}/intro [post]
func (h *Handlers) GenerateIntro(c *gin.Context) {
	intro, err := h.profileSvc.GenerateIntro(c.Request.Context(), c.Param("userId"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidUserID):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		case errors.Is(err, services.ErrProfileNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "profile not found")
		case errors.Is(err, services.ErrGenerationFailed):
			fail(c, http.StatusBadGateway, ErrCodeGenerationFailed, "introduction generation failed")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not generate introduction")
		}
		return
	}
	ok(c, http.StatusOK, IntroResponse{Intro: intro})
}
