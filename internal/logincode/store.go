// Package logincode implements the one-time email login codes used by the
// passcode login flow. Codes live in Redis with a short TTL so they survive
// process restarts and scale across instances; the store is an injected
// capability, never process-global state.
//
// Codes are bcrypt-hashed at rest, rate limited on issuance per email, and
// verification attempts are bounded.
package logincode

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/mail"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrRateLimited is returned when a code was requested again too soon.
	ErrRateLimited = errors.New("too many code requests")
	// ErrCodeInvalid is returned for a wrong code.
	ErrCodeInvalid = errors.New("incorrect login code")
	// ErrCodeExpired is returned when no live code exists for the email.
	ErrCodeExpired = errors.New("login code expired or not requested")
	// ErrEmailInvalid is returned for a missing or malformed email.
	ErrEmailInvalid = errors.New("email format is invalid")
)

// Store issues and verifies one-time login codes backed by Redis.
type Store struct {
	client      *redis.Client
	keyPrefix   string
	codeTTL     time.Duration
	resendAfter time.Duration
	maxAttempts int
}

type challenge struct {
	Email     string    `json:"email"`
	CodeHash  string    `json:"codeHash"`
	ExpiresAt time.Time `json:"expiresAt"`
	Attempts  int       `json:"attempts"`
}

// New creates a Store connected to the Redis instance at addr. ttl bounds
// code lifetime; values <= 0 fall back to 10 minutes.
func New(addr, password string, ttl time.Duration) (*Store, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, errors.New("login code redis addr is required")
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Store{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
		keyPrefix:   "journal:auth:code",
		codeTTL:     ttl,
		resendAfter: time.Minute,
		maxAttempts: 5,
	}, nil
}

// Issue creates a fresh 6-digit code for email and returns it for delivery.
// A second request within the resend window returns ErrRateLimited.
func (s *Store) Issue(ctx context.Context, email string) (string, error) {
	email, err := NormalizeEmail(email)
	if err != nil {
		return "", err
	}

	allowed, err := s.client.SetNX(ctx, s.resendKey(email), "1", s.resendAfter).Result()
	if err != nil {
		return "", err
	}
	if !allowed {
		return "", ErrRateLimited
	}

	code, err := numericCode(6)
	if err != nil {
		return "", fmt.Errorf("generate login code: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash login code: %w", err)
	}
	raw, err := json.Marshal(challenge{
		Email:     email,
		CodeHash:  string(hash),
		ExpiresAt: time.Now().UTC().Add(s.codeTTL),
	})
	if err != nil {
		return "", err
	}
	if err := s.client.Set(ctx, s.codeKey(email), raw, s.codeTTL+time.Minute).Err(); err != nil {
		return "", err
	}
	return code, nil
}

// Verify checks code against the live challenge for email. The challenge is
// consumed on success and after too many wrong attempts.
func (s *Store) Verify(ctx context.Context, email, code string) error {
	email, err := NormalizeEmail(email)
	if err != nil {
		return err
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return ErrCodeInvalid
	}

	key := s.codeKey(email)
	raw, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCodeExpired
	}
	if err != nil {
		return err
	}
	var ch challenge
	if err := json.Unmarshal(raw, &ch); err != nil {
		return fmt.Errorf("unmarshal login challenge: %w", err)
	}
	if time.Now().UTC().After(ch.ExpiresAt) {
		_ = s.client.Del(ctx, key).Err()
		return ErrCodeExpired
	}
	if bcrypt.CompareHashAndPassword([]byte(ch.CodeHash), []byte(code)) != nil {
		ch.Attempts++
		if ch.Attempts >= s.maxAttempts {
			_ = s.client.Del(ctx, key).Err()
		} else if updated, merr := json.Marshal(ch); merr == nil {
			if ttl, terr := s.client.TTL(ctx, key).Result(); terr == nil && ttl > 0 {
				_ = s.client.Set(ctx, key, updated, ttl).Err()
			}
		}
		return ErrCodeInvalid
	}
	return s.client.Del(ctx, key).Err()
}

func (s *Store) codeKey(email string) string {
	return fmt.Sprintf("%s:challenge:%s", s.keyPrefix, email)
}

func (s *Store) resendKey(email string) string {
	return fmt.Sprintf("%s:resend:%s", s.keyPrefix, email)
}

// NormalizeEmail lowercases, trims, and validates an email address. The
// normalized form doubles as the opaque user id for passcode logins.
func NormalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return "", ErrEmailInvalid
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", ErrEmailInvalid
	}
	return email, nil
}

// MaskEmail obscures the local part of an address for safe logging.
func MaskEmail(email string) string {
	email = strings.TrimSpace(strings.ToLower(email))
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return email
	}
	local, domain := parts[0], parts[1]
	switch len(local) {
	case 0:
		return "***@" + domain
	case 1, 2:
		return local[:1] + "***@" + domain
	default:
		return local[:1] + "***" + local[len(local)-1:] + "@" + domain
	}
}

func numericCode(length int) (string, error) {
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		b.WriteByte(byte('0' + n.Int64()))
	}
	return b.String(), nil
}
