// Passcode login HTTP handlers.
//
// Endpoints:
//   - POST /auth/request-code  (email a one-time login code)
//   - POST /auth/verify-code   (exchange the code for a bearer token)
//
// When the auth stack is not configured (no Redis or token secret), both
// endpoints answer 503 so deployments without login still run the rest of
// the API.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-journal-backend/internal/logincode"
)

// RequestCodeRequest is the payload for POST /auth/request-code.
type RequestCodeRequest struct {
	Email string `json:"email" binding:"required" example:"maria@example.com"`
}

// RequestCodeResponse acknowledges that a code was dispatched.
type RequestCodeResponse struct {
	Message string `json:"message" example:"login code sent"`
}

// VerifyCodeRequest is the payload for POST /auth/verify-code.
type VerifyCodeRequest struct {
	Email string `json:"email" binding:"required" example:"maria@example.com"`
	Code  string `json:"code"  binding:"required" example:"482910"`
}

// VerifyCodeResponse carries the bearer token on successful login.
type VerifyCodeResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}

// RequestCode godoc
// @ID          requestCode
// @Summary     Request a login code
// @Description Sends a short-lived one-time code to the given email address. Repeat requests within the resend window are rate limited.
// @Tags        Auth
// @Accept      json
// @Produce     json
//
// @Param       payload  body  handlers.RequestCodeRequest  true  "Email address"
//
// @Success     200  {object}  handlers.RequestCodeResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     429  {object}  handlers.ErrorResponse  "Too many requests"
// @Failure     503  {object}  handlers.ErrorResponse  "Login not configured"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /auth/request-code [post]
func (h *Handlers) RequestCode(c *gin.Context) {
	if h.authSvc == nil {
		fail(c, http.StatusServiceUnavailable, ErrCodeInternal, "login is not configured")
		return
	}
	var req RequestCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid request payload")
		return
	}
	if err := h.authSvc.RequestCode(c.Request.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, logincode.ErrEmailInvalid):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		case errors.Is(err, logincode.ErrRateLimited):
			fail(c, http.StatusTooManyRequests, ErrCodeRateLimited, "a code was sent recently, try again shortly")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not send login code")
		}
		return
	}
	ok(c, http.StatusOK, RequestCodeResponse{Message: "login code sent"})
}

// VerifyCode godoc
// @ID          verifyCode
// @Summary     Verify a login code
// @Description Exchanges a one-time code for a bearer token. The user id is the normalized email address.
// @Tags        Auth
// @Accept      json
// @Produce     json
//
// @Param       payload  body  handlers.VerifyCodeRequest  true  "Email and code"
//
// @Success     200  {object}  handlers.VerifyCodeResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Invalid or expired code"
// @Failure     503  {object}  handlers.ErrorResponse  "Login not configured"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /auth/verify-code [post]
func (h *Handlers) VerifyCode(c *gin.Context) {
	if h.authSvc == nil {
		fail(c, http.StatusServiceUnavailable, ErrCodeInternal, "login is not configured")
		return
	}
	var req VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid request payload")
		return
	}
	token, userID, err := h.authSvc.VerifyCode(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, logincode.ErrEmailInvalid):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		case errors.Is(err, logincode.ErrCodeInvalid), errors.Is(err, logincode.ErrCodeExpired):
			fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "invalid or expired login code")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not verify login code")
		}
		return
	}
	ok(c, http.StatusOK, VerifyCodeResponse{Token: token, UserID: userID})
}
