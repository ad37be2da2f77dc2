// Package services – AuthService
//
// This file implements the email passcode login flow: request a one-time
// code (delivered by the external mail provider) and exchange it for a
// bearer token whose subject is the normalized email, which doubles as the
// opaque user id. The code store and token issuer are injected
// collaborators.
package services

import (
	"context"

	"github.com/tbourn/go-journal-backend/internal/identity"
	"github.com/tbourn/go-journal-backend/internal/logincode"
	"github.com/tbourn/go-journal-backend/internal/mail"
)

// AuthService coordinates the login-code store, mail delivery, and token
// issuance.
type AuthService struct {
	Codes  *logincode.Store
	Mailer mail.Sender
	Tokens *identity.Tokens
}

// NewAuthService constructs an AuthService.
func NewAuthService(codes *logincode.Store, mailer mail.Sender, tokens *identity.Tokens) *AuthService {
	return &AuthService{Codes: codes, Mailer: mailer, Tokens: tokens}
}

// RequestCode issues a one-time code for email and hands it to the mail
// provider. Store-level rate limiting and email validation errors pass
// through for the handler to map.
func (s *AuthService) RequestCode(ctx context.Context, email string) error {
	code, err := s.Codes.Issue(ctx, email)
	if err != nil {
		return err
	}
	return s.Mailer.SendLoginCode(ctx, email, code)
}

// VerifyCode checks the code and, on success, returns a bearer token plus
// the user id (the normalized email).
func (s *AuthService) VerifyCode(ctx context.Context, email, code string) (token, userID string, err error) {
	userID, err = logincode.NormalizeEmail(email)
	if err != nil {
		return "", "", err
	}
	if err := s.Codes.Verify(ctx, userID, code); err != nil {
		return "", "", err
	}
	token, err = s.Tokens.Issue(userID)
	if err != nil {
		return "", "", err
	}
	return token, userID, nil
}
