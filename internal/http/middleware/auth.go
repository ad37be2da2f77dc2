// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file provides Identity, a soft authentication middleware that parses
// an optional Bearer token and, when valid, stores the subject under the
// "userID" context key. It never rejects a request: the API is usable
// anonymously, and the resolved identity only enriches logging and switches
// rate limiting from per-IP to per-user keys.
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// TokenVerifier resolves a bearer token to a user id.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Identity returns a middleware that extracts the Bearer token from the
// Authorization header and, on successful verification, sets the user id in
// the Gin context. Missing or invalid tokens are ignored; enforcement, when
// wanted, belongs to the individual route.
func Identity(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if v != nil {
			if raw, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer "); ok {
				if uid, err := v.Verify(strings.TrimSpace(raw)); err == nil && uid != "" {
					c.Set("userID", uid)
				}
			}
		}
		c.Next()
	}
}
