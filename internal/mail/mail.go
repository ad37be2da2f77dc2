// Package mail defines the narrow contract for the external email delivery
// provider used to send login codes. Real delivery is a configured external
// collaborator; the in-repo implementation only logs, which is what local
// development and tests need.
package mail

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tbourn/go-journal-backend/internal/logincode"
)

// Sender delivers a login code to an email address.
type Sender interface {
	SendLoginCode(ctx context.Context, email, code string) error
}

// LogSender is a Sender that emits the masked recipient at debug level
// instead of delivering anything. The code itself is never logged above
// debug.
type LogSender struct {
	Log zerolog.Logger
}

// SendLoginCode implements Sender.
func (s LogSender) SendLoginCode(_ context.Context, email, code string) error {
	s.Log.Debug().
		Str("email", logincode.MaskEmail(email)).
		Str("code", code).
		Msg("login code issued (log sender, not delivered)")
	return nil
}
