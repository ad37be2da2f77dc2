// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file provides RequireSecret, a guard for privileged internal routes
// (the weekly automation trigger). Callers authenticate with a static shared
// secret carried in a request header; the comparison is constant time so the
// check leaks no timing information about the configured value.
package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SecretHeader is the request header carrying the automation shared secret.
const SecretHeader = "X-Automation-Secret"

// RequireSecret returns a middleware that rejects any request whose
// SecretHeader does not match secret. An empty configured secret disables
// the route entirely (every request is rejected) rather than leaving it
// open.
//
// The response body follows the API error envelope:
//
//	{"code": "forbidden", "message": "invalid automation secret", "request_id": "..."}
func RequireSecret(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetHeader(SecretHeader)
		if secret == "" || subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
			reqID, _ := c.Get(requestIDKey)
			rid, _ := reqID.(string)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"code":       "forbidden",
				"message":    "invalid automation secret",
				"request_id": rid,
			})
			return
		}
		c.Next()
	}
}
