package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-journal-backend/internal/ai"
	"github.com/tbourn/go-journal-backend/internal/domain"
	"github.com/tbourn/go-journal-backend/internal/services"
)

// ---------- test harness ----------

func newHandlerDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Unique DSN per call to avoid cross-test contamination
	dsn := fmt.Sprintf("file:journal_handlers_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&domain.Entry{}, &domain.Chapter{}, &domain.Profile{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// stubGenerator replays a fixed narrative for every generation call.
type stubGenerator struct {
	out string
	err error
}

func (g *stubGenerator) Generate(context.Context, string, string) (string, error) {
	return g.out, g.err
}

// newTestRouter wires real services over an in-memory DB and registers the
// public routes the way the router does. The auth service stays nil here;
// its handlers have dedicated fakes.
func newTestRouter(t *testing.T, gen *stubGenerator) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := newHandlerDB(t)

	var generator ai.Generator
	if gen != nil {
		generator = gen
	}
	entrySvc := services.NewEntryService(db)
	chapterSvc := services.NewChapterService(db, generator)
	profileSvc := services.NewProfileService(db, generator)
	bookSvc := services.NewBookService(db)
	autoSvc := services.NewAutomationService(db, chapterSvc)

	h := New(entrySvc, chapterSvc, profileSvc, bookSvc, autoSvc, nil)

	r := gin.New()
	r.POST("/entries", h.UpsertEntry)
	r.GET("/entries/:userId", h.ListEntryDates)
	r.GET("/entries/:userId/:date", h.GetEntry)
	r.DELETE("/entries/:userId/:date", h.DeleteEntry)
	r.GET("/weeks/:userId", h.GetWeek)
	r.POST("/weeks/:userId/enhance", h.EnhanceWeek)
	r.POST("/profiles", h.UpsertProfile)
	r.GET("/profiles/:userId", h.GetProfile)
	r.POST("/profiles/:userId/intro", h.GenerateIntro)
	r.GET("/books/:userId", h.GetBook)
	r.GET("/books/:userId/pdf", h.GetBookPDF)
	r.POST("/internal/run-weekly", h.RunWeekly)
	return r, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

// ---------- entry endpoints ----------

func TestUpsertEntry_CreatesAndOverwrites(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	w := doJSON(t, r, http.MethodPost, "/entries", UpsertEntryRequest{
		UserID: "u1", Date: "2024-01-03", Content: "first version",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/entries", UpsertEntryRequest{
		UserID: "u1", Date: "2024-01-03", Content: "second version",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("overwrite status = %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/entries/u1/2024-01-03", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}
	got := decode[EntryContentResponse](t, w)
	if got.Content != "second version" {
		t.Fatalf("content = %q, want the later write", got.Content)
	}
}

func TestUpsertEntry_ValidationErrors(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	cases := []struct {
		name string
		body UpsertEntryRequest
	}{
		{"missing content", UpsertEntryRequest{UserID: "u1", Date: "2024-01-03"}},
		{"bad date", UpsertEntryRequest{UserID: "u1", Date: "Jan 3", Content: "x"}},
		{"missing user", UpsertEntryRequest{Date: "2024-01-03", Content: "x"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/entries", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400; body = %s", w.Code, w.Body.String())
			}
			resp := decode[ErrorResponse](t, w)
			if resp.Code != ErrCodeBadRequest {
				t.Fatalf("code = %q, want %q", resp.Code, ErrCodeBadRequest)
			}
		})
	}
}

func TestGetEntry_AbsentDayIsEmptyContent(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	w := doJSON(t, r, http.MethodGet, "/entries/u1/2024-01-03", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 for an unwritten day", w.Code)
	}
	got := decode[EntryContentResponse](t, w)
	if got.Content != "" {
		t.Fatalf("content = %q, want empty", got.Content)
	}
}

func TestListEntryDates_MostRecentFirst(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	for _, d := range []string{"2024-01-01", "2024-01-05", "2024-01-03"} {
		doJSON(t, r, http.MethodPost, "/entries", UpsertEntryRequest{UserID: "u1", Date: d, Content: "x"})
	}

	w := doJSON(t, r, http.MethodGet, "/entries/u1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	got := decode[EntryDatesResponse](t, w)
	want := []string{"2024-01-05", "2024-01-03", "2024-01-01"}
	if len(got.Dates) != len(want) {
		t.Fatalf("dates = %v", got.Dates)
	}
	for i := range want {
		if got.Dates[i] != want[i] {
			t.Fatalf("dates[%d] = %q, want %q", i, got.Dates[i], want[i])
		}
	}
}

func TestDeleteEntry(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	doJSON(t, r, http.MethodPost, "/entries", UpsertEntryRequest{UserID: "u1", Date: "2024-01-02", Content: "x"})

	w := doJSON(t, r, http.MethodDelete, "/entries/u1/2024-01-02", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	// The day now reads back empty.
	got := decode[EntryContentResponse](t, doJSON(t, r, http.MethodGet, "/entries/u1/2024-01-02", nil))
	if got.Content != "" {
		t.Fatalf("content after delete = %q", got.Content)
	}

	// Deleting again is a 404.
	w = doJSON(t, r, http.MethodDelete, "/entries/u1/2024-01-02", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d", w.Code)
	}
	if er := decode[ErrorResponse](t, w); er.Code != ErrCodeNotFound {
		t.Fatalf("code = %q", er.Code)
	}

	// Malformed date is rejected before touching the store.
	w = doJSON(t, r, http.MethodDelete, "/entries/u1/not-a-date", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad date status = %d", w.Code)
	}
}

func TestListEntryDates_LimitParam(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	for _, d := range []string{"2024-01-01", "2024-01-02", "2024-01-03"} {
		doJSON(t, r, http.MethodPost, "/entries", UpsertEntryRequest{UserID: "u1", Date: d, Content: "x"})
	}

	w := doJSON(t, r, http.MethodGet, "/entries/u1?limit=2", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	got := decode[EntryDatesResponse](t, w)
	if len(got.Dates) != 2 || got.Dates[0] != "2024-01-03" {
		t.Fatalf("dates = %v", got.Dates)
	}

	// Garbage and negative limits fall back to returning everything.
	for _, q := range []string{"limit=abc", "limit=-5", "limit=0"} {
		w := doJSON(t, r, http.MethodGet, "/entries/u1?"+q, nil)
		got := decode[EntryDatesResponse](t, w)
		if len(got.Dates) != 3 {
			t.Fatalf("%s: dates = %v", q, got.Dates)
		}
	}
}
