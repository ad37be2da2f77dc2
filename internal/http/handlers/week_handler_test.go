package handlers

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/tbourn/go-journal-backend/internal/domain"
	"github.com/tbourn/go-journal-backend/internal/services"
)

func today() string {
	return time.Now().UTC().Format(domain.DateLayout)
}

func TestGetWeek_ReturnsBoundsAndEntries(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	doJSON(t, r, http.MethodPost, "/entries", UpsertEntryRequest{UserID: "u1", Date: today(), Content: "today's note"})

	w := doJSON(t, r, http.MethodGet, "/weeks/u1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	view := decode[services.WeekView](t, w)
	if view.WeekStart == "" || view.WeekEnd == "" {
		t.Fatalf("missing week bounds: %+v", view)
	}
	if len(view.Entries) != 1 || view.Entries[0].Content != "today's note" {
		t.Fatalf("entries = %+v", view.Entries)
	}
}

func TestEnhanceWeek_GeneratesThenServesCache(t *testing.T) {
	gen := &stubGenerator{out: "A chapter about this week."}
	r, _ := newTestRouter(t, gen)

	doJSON(t, r, http.MethodPost, "/entries", UpsertEntryRequest{UserID: "u1", Date: today(), Content: "note"})

	w := doJSON(t, r, http.MethodPost, "/weeks/u1/enhance", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	first := decode[EnhanceResponse](t, w)
	if first.Source != string(services.SourceGenerated) || first.Chapter != "A chapter about this week." {
		t.Fatalf("first call: %+v", first)
	}

	// Upstream failing now is invisible; the cache answers.
	gen.err = errors.New("upstream down")
	w = doJSON(t, r, http.MethodPost, "/weeks/u1/enhance", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("cached status = %d", w.Code)
	}
	second := decode[EnhanceResponse](t, w)
	if second.Source != string(services.SourceCached) || second.Chapter != first.Chapter {
		t.Fatalf("second call: %+v", second)
	}
}

func TestEnhanceWeek_EmptyWeekIs200NoContent(t *testing.T) {
	r, _ := newTestRouter(t, &stubGenerator{out: "never"})

	w := doJSON(t, r, http.MethodPost, "/weeks/u1/enhance", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 for an empty week", w.Code)
	}
	resp := decode[NoContentResponse](t, w)
	if resp.Code != ErrCodeNoContent {
		t.Fatalf("code = %q, want %q", resp.Code, ErrCodeNoContent)
	}
	if resp.Message != "no entries this week" {
		t.Fatalf("message = %q", resp.Message)
	}
}

func TestEnhanceWeek_GenerationFailureIs502(t *testing.T) {
	r, _ := newTestRouter(t, &stubGenerator{err: errors.New("model offline")})

	doJSON(t, r, http.MethodPost, "/entries", UpsertEntryRequest{UserID: "u1", Date: today(), Content: "note"})

	w := doJSON(t, r, http.MethodPost, "/weeks/u1/enhance", nil)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", w.Code)
	}
	resp := decode[ErrorResponse](t, w)
	if resp.Code != ErrCodeGenerationFailed {
		t.Fatalf("code = %q, want %q", resp.Code, ErrCodeGenerationFailed)
	}
}
