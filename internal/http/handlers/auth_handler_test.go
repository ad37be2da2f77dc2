package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-journal-backend/internal/logincode"
)

// fakeAuth scripts the outcomes of the passcode flow.
type fakeAuth struct {
	requestErr error
	verifyErr  error
	token      string
	userID     string
}

func (f *fakeAuth) RequestCode(context.Context, string) error { return f.requestErr }

func (f *fakeAuth) VerifyCode(context.Context, string, string) (string, string, error) {
	if f.verifyErr != nil {
		return "", "", f.verifyErr
	}
	return f.token, f.userID, nil
}

func newAuthRouter(t *testing.T, svc AuthService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := New(nil, nil, nil, nil, nil, svc)
	r := gin.New()
	r.POST("/auth/request-code", h.RequestCode)
	r.POST("/auth/verify-code", h.VerifyCode)
	return r
}

func TestRequestCode_OK(t *testing.T) {
	r := newAuthRouter(t, &fakeAuth{})

	w := doJSON(t, r, http.MethodPost, "/auth/request-code", RequestCodeRequest{Email: "maria@example.com"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestRequestCode_RateLimited(t *testing.T) {
	r := newAuthRouter(t, &fakeAuth{requestErr: logincode.ErrRateLimited})

	w := doJSON(t, r, http.MethodPost, "/auth/request-code", RequestCodeRequest{Email: "maria@example.com"})
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", w.Code)
	}
	resp := decode[ErrorResponse](t, w)
	if resp.Code != ErrCodeRateLimited {
		t.Fatalf("code = %q", resp.Code)
	}
}

func TestRequestCode_InvalidEmail(t *testing.T) {
	r := newAuthRouter(t, &fakeAuth{requestErr: logincode.ErrEmailInvalid})

	w := doJSON(t, r, http.MethodPost, "/auth/request-code", RequestCodeRequest{Email: "nope"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestVerifyCode_ReturnsToken(t *testing.T) {
	r := newAuthRouter(t, &fakeAuth{token: "jwt-token", userID: "maria@example.com"})

	w := doJSON(t, r, http.MethodPost, "/auth/verify-code", VerifyCodeRequest{
		Email: "maria@example.com", Code: "123456",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	got := decode[VerifyCodeResponse](t, w)
	if got.Token != "jwt-token" || got.UserID != "maria@example.com" {
		t.Fatalf("response = %+v", got)
	}
}

func TestVerifyCode_WrongOrExpired(t *testing.T) {
	for _, svcErr := range []error{logincode.ErrCodeInvalid, logincode.ErrCodeExpired} {
		r := newAuthRouter(t, &fakeAuth{verifyErr: svcErr})
		w := doJSON(t, r, http.MethodPost, "/auth/verify-code", VerifyCodeRequest{
			Email: "maria@example.com", Code: "000000",
		})
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%v: status = %d, want 401", svcErr, w.Code)
		}
	}
}

func TestAuthRoutes_UnconfiguredAre503(t *testing.T) {
	r := newAuthRouter(t, nil)

	w := doJSON(t, r, http.MethodPost, "/auth/request-code", RequestCodeRequest{Email: "maria@example.com"})
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("request-code status = %d, want 503", w.Code)
	}
	w = doJSON(t, r, http.MethodPost, "/auth/verify-code", VerifyCodeRequest{Email: "m@e.com", Code: "1"})
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("verify-code status = %d, want 503", w.Code)
	}
}
