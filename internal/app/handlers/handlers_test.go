package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/voyplan/go-tripui/internal/app/middleware"
	"github.com/voyplan/go-tripui/internal/maps"
	"github.com/voyplan/go-tripui/internal/models"
	"github.com/voyplan/go-tripui/internal/planner"
	"github.com/voyplan/go-tripui/internal/session"
	"github.com/voyplan/go-tripui/internal/views"
)

func f(v float64) *float64 { return &v }

// fakeBackend implements the planner API surface and records what it saw.
type fakeBackend struct {
	t *testing.T

	planStatus int
	planBody   string
	itinerary  *models.Itinerary

	token string

	ragAuth   *string
	planPaths []string
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/agent/plan", func(w http.ResponseWriter, r *http.Request) {
		b.planPaths = append(b.planPaths, r.URL.Path)
		if b.planStatus != 0 && b.planStatus != http.StatusOK {
			w.WriteHeader(b.planStatus)
			w.Write([]byte(b.planBody))
			return
		}
		json.NewEncoder(w).Encode(b.itinerary)
	})

	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.TokenResponse{AccessToken: b.token})
	})
	mux.HandleFunc("POST /auth/register", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.TokenResponse{AccessToken: b.token})
	})

	mux.HandleFunc("POST /rag/docs", func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		b.ragAuth = &auth
		if auth == "" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail":"Unauthorized"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	mux.HandleFunc("POST /api/trips", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":1,"title":"saved","itinerary":{}}`))
	})
	mux.HandleFunc("GET /api/trips", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":1,"title":"Tokyo trip","itinerary":{}}]`))
	})

	mux.HandleFunc("GET /api/booking/hotel-intent", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(b.t, "Tokyo", r.URL.Query().Get("city"))
		json.NewEncoder(w).Encode(models.BookingIntent{
			URL:    "https://example/booking?city=Tokyo",
			Source: "MockProvider",
		})
	})

	return mux
}

func sampleItinerary() *models.Itinerary {
	return &models.Itinerary{
		Trip: models.TripInfo{City: "Tokyo", Days: 5, Currency: "USD", Budget: 1500},
		Days: []models.DayPlan{
			{Date: "2025-09-12", Items: []models.DayItem{
				{
					Time:      "09:00",
					POI:       models.POI{Name: "Senso-ji", Rating: f(4.5), Lat: f(35.7148), Lng: f(139.7967)},
					Transport: &models.Transport{Mode: models.ModeMetro, DurationMin: 18},
					Source:    &models.Source{Type: models.SourceMaps, PlaceID: "ChIJ8T1G"},
				},
				// No rating, no transport, no source: all optional fragments
				// must simply be omitted.
				{Time: "12:30", POI: models.POI{Name: "Local ramen"}},
			}},
		},
		Totals: models.Totals{Lodging: 500, Food: 300, Transport: 100, Tickets: 200, Misc: 50, Currency: "USD"},
		Notes:  []string{"Prices are estimates."},
	}
}

type testApp struct {
	router   *gin.Engine
	sessions *session.Store
	cookie   *http.Cookie
	sid      string
}

func newTestApp(t *testing.T, backendURL string) *testApp {
	gin.SetMode(gin.TestMode)

	store := session.NewStore(time.Hour)
	h := New(planner.New(backendURL, zap.NewNop()), store, maps.NewGoogle(""), zap.NewNop())

	r := gin.New()
	tmpl, err := views.Templates()
	require.NoError(t, err)
	r.SetHTMLTemplate(tmpl)
	r.Use(middleware.SessionMiddleware(store))
	h.Register(r)

	sid := store.NewID()
	return &testApp{
		router:   r,
		sessions: store,
		sid:      sid,
		cookie:   &http.Cookie{Name: session.CookieName, Value: sid},
	}
}

func (a *testApp) get(t *testing.T, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.AddCookie(a.cookie)
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) post(t *testing.T, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(a.cookie)
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func TestHomeWithoutItinerary(t *testing.T) {
	app := newTestApp(t, "http://unused")

	w := app.get(t, "/")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No itinerary yet")
	assert.Contains(t, w.Body.String(), "Generate Plan")
	assert.NotContains(t, w.Body.String(), "Total:")
}

func TestHomeSetsSessionCookie(t *testing.T) {
	app := newTestApp(t, "http://unused")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, session.CookieName, cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
}

func TestPlanSuccessRendersItinerary(t *testing.T) {
	backend := &fakeBackend{t: t, itinerary: sampleItinerary()}
	ts := httptest.NewServer(backend.handler())
	defer ts.Close()

	app := newTestApp(t, ts.URL)
	w := app.post(t, "/plan", url.Values{
		"city":        {"Tokyo"},
		"days":        {"5"},
		"budget":      {"1500"},
		"preferences": {"food", "culture"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()

	// Grand total is recomputed from the five buckets at render time.
	assert.Contains(t, body, "Total: 1150 USD")
	assert.Contains(t, body, "Day 1 — 2025-09-12")
	assert.Contains(t, body, "Senso-ji")
	assert.Contains(t, body, "⭐ 4.5")
	assert.Contains(t, body, "metro ~ 18")
	assert.Contains(t, body, "place_id:ChIJ8T1G")
	// The bare item renders without any optional fragment.
	assert.Contains(t, body, "Local ramen")

	st := app.sessions.Get(app.sid)
	require.NotNil(t, st.Itinerary)
	assert.Equal(t, "Tokyo", st.Itinerary.Trip.City)
}

func TestPlanFailureKeepsPreviousItinerary(t *testing.T) {
	backend := &fakeBackend{t: t, planStatus: http.StatusBadGateway, planBody: `{"detail":"planner exploded"}`}
	ts := httptest.NewServer(backend.handler())
	defer ts.Close()

	app := newTestApp(t, ts.URL)
	app.sessions.SetItinerary(app.sid, sampleItinerary())

	w := app.post(t, "/plan", url.Values{
		"city":   {"Paris"},
		"days":   {"3"},
		"budget": {"1000"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()

	// The backend's error text shows up in the form's error area...
	assert.Contains(t, body, "planner exploded")
	// ...and the previously displayed itinerary is untouched.
	assert.Contains(t, body, "Senso-ji")
	assert.Contains(t, body, "Total: 1150 USD")

	st := app.sessions.Get(app.sid)
	require.NotNil(t, st.Itinerary)
	assert.Equal(t, "Tokyo", st.Itinerary.Trip.City)
}

func TestPlanRejectsOutOfSetChoices(t *testing.T) {
	app := newTestApp(t, "http://unused")

	w := app.post(t, "/plan", url.Values{
		"city":   {"Atlantis"},
		"days":   {"5"},
		"budget": {"1500"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Please pick a destination")
}

func TestZeroDayItineraryRenders(t *testing.T) {
	app := newTestApp(t, "http://unused")
	app.sessions.SetItinerary(app.sid, &models.Itinerary{
		Trip:   models.TripInfo{City: "Tokyo", Days: 0, Currency: "USD"},
		Totals: models.Totals{Currency: "USD"},
	})

	w := app.get(t, "/")

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "Day 1")
}

func TestLoginThenRagDocCarriesBearerToken(t *testing.T) {
	backend := &fakeBackend{t: t, token: "tok-123"}
	ts := httptest.NewServer(backend.handler())
	defer ts.Close()

	app := newTestApp(t, ts.URL)

	w := app.post(t, "/auth", url.Values{
		"mode":     {"login"},
		"email":    {"user@example.com"},
		"password": {"hunter2"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Success!")
	assert.Equal(t, "tok-123", app.sessions.Get(app.sid).Token)

	w = app.post(t, "/rag/docs", url.Values{
		"title":   {"Asakusa tips"},
		"city":    {"Tokyo"},
		"content": {"Go early."},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Document added.")
	require.NotNil(t, backend.ragAuth)
	assert.Equal(t, "Bearer tok-123", *backend.ragAuth)
}

func TestRagDocWithoutLoginSendsNoAuthHeader(t *testing.T) {
	backend := &fakeBackend{t: t}
	ts := httptest.NewServer(backend.handler())
	defer ts.Close()

	app := newTestApp(t, ts.URL)
	w := app.post(t, "/rag/docs", url.Values{
		"title":   {"Asakusa tips"},
		"city":    {"Tokyo"},
		"content": {"Go early."},
	})

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, backend.ragAuth)
	assert.Empty(t, *backend.ragAuth, "without a stored token the call goes out without an Authorization header")
	// The backend's rejection is surfaced in the panel.
	assert.Contains(t, w.Body.String(), "Unauthorized")
}

func TestAuthFailureShowsBackendError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Invalid credentials"}`))
	}))
	defer ts.Close()

	app := newTestApp(t, ts.URL)
	w := app.post(t, "/auth", url.Values{
		"mode":     {"login"},
		"email":    {"user@example.com"},
		"password": {"wrong"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
	assert.Empty(t, app.sessions.Get(app.sid).Token)
}

func TestBookingRendersLinkWithSource(t *testing.T) {
	backend := &fakeBackend{t: t}
	ts := httptest.NewServer(backend.handler())
	defer ts.Close()

	app := newTestApp(t, ts.URL)
	app.sessions.SetItinerary(app.sid, sampleItinerary())

	w := app.post(t, "/booking", url.Values{
		"checkin": {"2025-09-12"},
		"nights":  {"4"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "https://example/booking?city=Tokyo")
	assert.Contains(t, body, "(MockProvider)")

	st := app.sessions.Get(app.sid)
	require.NotNil(t, st.Booking)
	assert.Equal(t, "MockProvider", st.Booking.Source)
}

func TestBookingWithoutItinerary(t *testing.T) {
	app := newTestApp(t, "http://unused")

	w := app.post(t, "/booking", url.Values{"checkin": {"2025-09-12"}, "nights": {"4"}})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Plan a trip first.")
}

func TestSaveTripAndList(t *testing.T) {
	backend := &fakeBackend{t: t, token: "tok-123"}
	ts := httptest.NewServer(backend.handler())
	defer ts.Close()

	app := newTestApp(t, ts.URL)
	app.sessions.SetToken(app.sid, "tok-123", "user@example.com")
	app.sessions.SetItinerary(app.sid, sampleItinerary())

	w := app.post(t, "/trips", url.Values{"title": {"Golden week"}})

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Trip saved.")
	assert.Contains(t, body, "Signed in as user@example.com")
	// The trips panel re-lists from the backend after saving.
	assert.Contains(t, body, "Tokyo trip")
}
