package eventsapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"club-site/internal/api/auth"
	"club-site/internal/app/http/middleware"
	"club-site/internal/infra/cache"
	"club-site/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func newTestRouter(t *testing.T, signedIn bool, write ...gin.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	admin := testutil.SeedAdmin(t, db, "1001", "ada", true)
	h := NewHandler(NewService(db, cache.Noop{}, time.Minute))

	r := gin.New()
	r.GET("/api/events", h.ListEvents)
	r.GET("/api/events/:id", h.GetEvent)

	w := r.Group("/api/events")
	w.Use(func(c *gin.Context) {
		if signedIn {
			auth.SetCurrentAdmin(c, admin)
		}
		c.Next()
	})
	w.Use(write...)
	w.POST("", h.CreateEvent)
	w.PUT("/:id", h.UpdateEvent)
	w.DELETE("/:id", h.DeleteEvent)
	return r
}

func do(r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, Result) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var res Result
	_ = json.Unmarshal(w.Body.Bytes(), &res)
	return w, res
}

const demoBody = `{
	"title": "Demo Night",
	"description": "",
	"dateStart": "2026-01-01T18:00",
	"location": {"street": "", "city": "", "state": "", "zip": "", "country": ""},
	"timeline": {"title": "", "markers": [{"title": "Doors open", "timestamp": "2026-01-01T18:00"}]}
}`

func TestHandlerCreateAndGet(t *testing.T) {
	r := newTestRouter(t, true)

	w, res := do(r, http.MethodPost, "/api/events", demoBody)
	if w.Code != http.StatusCreated || !res.Success || res.ID == "" {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}

	w, _ = do(r, http.MethodGet, "/api/events/"+res.ID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var ev map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &ev); err != nil {
		t.Fatal(err)
	}
	if ev["location"] != nil {
		t.Fatalf("location=%v want null", ev["location"])
	}
	markers := ev["timeline"].(map[string]any)["markers"].([]any)
	if len(markers) != 1 {
		t.Fatalf("markers=%v", markers)
	}

	w, _ = do(r, http.MethodGet, "/api/events", "")
	var list []map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &list)
	if w.Code != http.StatusOK || len(list) != 1 {
		t.Fatalf("list status=%d len=%d", w.Code, len(list))
	}
}

func TestHandlerValidationError(t *testing.T) {
	r := newTestRouter(t, true)

	w, res := do(r, http.MethodPost, "/api/events", `{"title":"   ","dateStart":"2026-01-01"}`)
	if w.Code != http.StatusBadRequest || res.Success || res.Error != "Title is required" {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}

	w, res = do(r, http.MethodPost, "/api/events", `{"title":"x","dateStart":"someday"}`)
	if w.Code != http.StatusBadRequest || res.Error != "Invalid date" {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
}

func TestHandlerRequiresAdmin(t *testing.T) {
	r := newTestRouter(t, false)

	w, res := do(r, http.MethodPost, "/api/events", demoBody)
	if w.Code != http.StatusUnauthorized || res.Error != "Unauthorized" {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
}

func TestHandlerNotFound(t *testing.T) {
	r := newTestRouter(t, true)
	id := uuid.NewString()

	w, res := do(r, http.MethodDelete, "/api/events/"+id, "")
	if w.Code != http.StatusNotFound || res.Success || res.Error != "Event not found" {
		t.Fatalf("delete status=%d body=%s", w.Code, w.Body.String())
	}

	w, _ = do(r, http.MethodPut, "/api/events/"+id, demoBody)
	if w.Code != http.StatusNotFound {
		t.Fatalf("update status=%d", w.Code)
	}

	w, _ = do(r, http.MethodGet, "/api/events/"+id, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("get status=%d", w.Code)
	}
}

func TestHandlerRejectsBadLimit(t *testing.T) {
	r := newTestRouter(t, false)

	for _, q := range []string{"abc", "-1"} {
		w, res := do(r, http.MethodGet, "/api/events?limit="+q, "")
		if w.Code != http.StatusBadRequest || res.Error != "Invalid limit" {
			t.Fatalf("limit=%s: status=%d body=%s", q, w.Code, w.Body.String())
		}
	}

	if w, _ := do(r, http.MethodGet, "/api/events?limit=0", ""); w.Code != http.StatusOK {
		t.Fatalf("limit=0: status=%d", w.Code)
	}
}

func TestHandlerStoresTextAsTyped(t *testing.T) {
	r := newTestRouter(t, true, middleware.SanitizeAndCleanInputMiddleware())

	body := `{
		"title": "Ages 18+ > kids <3",
		"dateStart": "2026-01-01T18:00",
		"location": {"city": "A < B", "street": "Tom & Jerry's"},
		"timeline": {"markers": [{"title": "Doors > 7pm", "timestamp": "2026-01-01T19:00"}]}
	}`
	w, res := do(r, http.MethodPost, "/api/events", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}

	w, _ = do(r, http.MethodGet, "/api/events/"+res.ID, "")
	var ev EventWithRelations
	if err := json.Unmarshal(w.Body.Bytes(), &ev); err != nil {
		t.Fatal(err)
	}
	if ev.Title != "Ages 18+ > kids <3" {
		t.Fatalf("title=%q", ev.Title)
	}
	if ev.Location == nil || ev.Location.City == nil || *ev.Location.City != "A < B" ||
		ev.Location.Street == nil || *ev.Location.Street != "Tom & Jerry's" {
		t.Fatalf("location=%+v", ev.Location)
	}
	if ev.Timeline == nil || len(ev.Timeline.Markers) != 1 || ev.Timeline.Markers[0].Title != "Doors > 7pm" {
		t.Fatalf("timeline=%+v", ev.Timeline)
	}

	w, res = do(r, http.MethodPost, "/api/events", `{"title":"<b>Demo</b>","dateStart":"2026-01-01"}`)
	if w.Code != http.StatusBadRequest || res.Error != "HTML is not allowed" {
		t.Fatalf("markup: status=%d body=%s", w.Code, w.Body.String())
	}
}
