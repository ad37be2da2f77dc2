package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_LabelsAndInflight(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Metrics())

	// Parameterized route: the path label must be the registered pattern,
	// not the concrete URL.
	r.GET("/entries/:userId", func(c *gin.Context) {
		c.String(http.StatusOK, `{"dates":[]}`)
	})

	// Bodyless response: size stays -1 and the size histogram is skipped.
	r.DELETE("/entries/:userId/:date", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	// Baselines, in case other tests already touched these series.
	basePattern := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/entries/:userId", "200"))
	base404 := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/nope", "404"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/entries/u1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET /entries/u1 -> %d", w.Code)
	}

	// Unmatched route falls back to the raw URL path label.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("GET /nope -> %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/entries/u1/2024-01-02", nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("DELETE -> %d", w.Code)
	}

	if got := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/entries/:userId", "200")); got != basePattern+1 {
		t.Fatalf("pattern-label counter = %v; want %v", got, basePattern+1)
	}
	if got := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/nope", "404")); got != base404+1 {
		t.Fatalf("fallback-label counter = %v; want %v", got, base404+1)
	}
	if inFlight := testutil.ToFloat64(httpInflight); inFlight != 0 {
		t.Fatalf("httpInflight = %v; want 0", inFlight)
	}
}
