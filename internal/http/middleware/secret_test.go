package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newSecretRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/internal/run-weekly", RequireSecret(secret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ran": true})
	})
	return r
}

func TestRequireSecret_AllowsMatchingHeader(t *testing.T) {
	r := newSecretRouter("s3cret")

	req := httptest.NewRequest(http.MethodPost, "/internal/run-weekly", nil)
	req.Header.Set(SecretHeader, "s3cret")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestRequireSecret_RejectsWrongOrMissingHeader(t *testing.T) {
	r := newSecretRouter("s3cret")

	for _, header := range []string{"", "wrong", "s3cret "} {
		req := httptest.NewRequest(http.MethodPost, "/internal/run-weekly", nil)
		if header != "" {
			req.Header.Set(SecretHeader, header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Fatalf("header %q: status = %d, want 403", header, w.Code)
		}
	}
}

func TestRequireSecret_EmptyConfigRejectsEverything(t *testing.T) {
	r := newSecretRouter("")

	req := httptest.NewRequest(http.MethodPost, "/internal/run-weekly", nil)
	req.Header.Set(SecretHeader, "")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403 when no secret is configured", w.Code)
	}
}
