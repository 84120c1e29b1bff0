package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/voyplan/go-tripui/internal/app/middleware"
	"github.com/voyplan/go-tripui/internal/maps"
	"github.com/voyplan/go-tripui/internal/observability/metrics"
	"github.com/voyplan/go-tripui/internal/planner"
	"github.com/voyplan/go-tripui/internal/session"
	"github.com/voyplan/go-tripui/internal/views"
)

// Fixed choice sets. Keeping inputs structurally constrained means there is
// almost nothing to validate; an out-of-set value can only come from a
// hand-crafted request.
var (
	cities = []views.CityOption{
		{Label: "Tokyo, Japan", City: "Tokyo", Country: "Japan"},
		{Label: "Paris, France", City: "Paris", Country: "France"},
		{Label: "Bangkok, Thailand", City: "Bangkok", Country: "Thailand"},
	}
	durations   = []int{3, 5, 7, 10}
	budgets     = []int{500, 1000, 1500, 2000, 3000}
	preferences = []string{"food", "culture", "nature", "shopping", "nightlife", "family"}
)

const (
	defaultDays   = 5
	defaultBudget = 1500
	currency      = "USD"
)

// Handlers wires the page routes to the planner client, the session store
// and the map provider.
type Handlers struct {
	client   *planner.Client
	sessions *session.Store
	maps     maps.Provider
	logger   *zap.Logger
}

func New(client *planner.Client, sessions *session.Store, mapProvider maps.Provider, logger *zap.Logger) *Handlers {
	return &Handlers{
		client:   client,
		sessions: sessions,
		maps:     mapProvider,
		logger:   logger,
	}
}

// Register mounts all page routes.
func (h *Handlers) Register(r gin.IRouter) {
	r.GET("/", h.HandleHome)
	r.POST("/plan", h.HandlePlan)
	r.POST("/auth", h.HandleAuth)
	r.POST("/rag/docs", h.HandleAddDoc)
	r.POST("/trips", h.HandleSaveTrip)
	r.POST("/booking", h.HandleBooking)
}

// state reads the request's session.
func (h *Handlers) state(c *gin.Context) (string, session.State) {
	id := middleware.GetSessionID(c)
	return id, h.sessions.Get(id)
}

// homeData assembles the full page view from the session snapshot. Every
// panel tolerates missing pieces: no itinerary, no token, no map provider.
func (h *Handlers) homeData(c *gin.Context, st session.State) *views.HomeData {
	data := &views.HomeData{
		Cities:      cities,
		Durations:   durations,
		Budgets:     budgets,
		Preferences: preferences,
		Form: views.FormState{
			City:        cities[0].City,
			Country:     cities[0].Country,
			Days:        defaultDays,
			Budget:      defaultBudget,
			Preferences: []string{"food", "culture"},
		},
		Itinerary:  st.Itinerary,
		SignedInAs: st.Email,
		Booking:    st.Booking,
	}

	if h.maps != nil {
		data.Map = h.maps.Embed(st.Itinerary)
	}

	if st.Token != "" {
		trips, err := h.client.WithToken(st.Token).ListTrips(c.Request.Context())
		if err != nil {
			// The trips panel just stays empty; the token may have expired.
			h.logger.Warn("Listing trips failed", zap.Error(err))
		} else {
			data.Trips = trips
		}
	}

	return data
}

// render writes the page and records render timing.
func (h *Handlers) render(c *gin.Context, status int, data *views.HomeData) {
	start := time.Now()
	c.HTML(status, "home.html", data)

	m := metrics.Get()
	m.PageRenderDuration.Record(c.Request.Context(), time.Since(start).Seconds())
	m.ActiveSessionsGauge.Record(c.Request.Context(), int64(h.sessions.Len()))
}

// HandleHome composes the whole page from the current session snapshot.
func (h *Handlers) HandleHome(c *gin.Context) {
	_, st := h.state(c)
	h.render(c, http.StatusOK, h.homeData(c, st))
}

func recordPlanSubmit(c *gin.Context, outcome string) {
	metrics.Get().PlanRequestsTotal.Add(c.Request.Context(), 1,
		metric.WithAttributes(planOutcomeAttr(outcome)))
}
