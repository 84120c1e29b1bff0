package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/voyplan/go-tripui/internal/models"
	"github.com/voyplan/go-tripui/internal/views"
)

func planOutcomeAttr(outcome string) attribute.KeyValue {
	return attribute.String("outcome", outcome)
}

func cityOption(city string) (views.CityOption, bool) {
	for _, opt := range cities {
		if opt.City == city {
			return opt, true
		}
	}
	return views.CityOption{}, false
}

func inIntSet(set []int, v int) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// HandlePlan converts the form selection into a PlanRequest and submits it.
// Success replaces the session's itinerary wholesale; failure re-renders with
// the backend error inline and leaves the previous itinerary untouched.
func (h *Handlers) HandlePlan(c *gin.Context) {
	id, st := h.state(c)

	form := views.FormState{
		Days:        defaultDays,
		Budget:      defaultBudget,
		Preferences: c.PostFormArray("preferences"),
	}
	if d, err := strconv.Atoi(c.PostForm("days")); err == nil {
		form.Days = d
	}
	if b, err := strconv.Atoi(c.PostForm("budget")); err == nil {
		form.Budget = b
	}

	opt, ok := cityOption(c.PostForm("city"))
	if !ok || !inIntSet(durations, form.Days) || !inIntSet(budgets, form.Budget) {
		form.Error = "Please pick a destination, duration and budget from the lists."
		data := h.homeData(c, st)
		data.Form = form
		h.render(c, http.StatusBadRequest, data)
		return
	}
	form.City = opt.City
	form.Country = opt.Country

	req := models.PlanRequest{
		City:        opt.City,
		Country:     opt.Country,
		Days:        form.Days,
		Budget:      float64(form.Budget),
		Currency:    currency,
		Preferences: form.Preferences,
	}

	it, err := h.client.PlanTrip(c.Request.Context(), req)
	if err != nil {
		recordPlanSubmit(c, "error")
		h.logger.Warn("Plan request failed", zap.String("city", req.City), zap.Error(err))

		// The form surfaces the failure locally; the old itinerary (and
		// everything rendered from it) stays as it was.
		form.Error = err.Error()
		data := h.homeData(c, st)
		data.Form = form
		h.render(c, http.StatusOK, data)
		return
	}

	recordPlanSubmit(c, "ok")

	// Replace the snapshot as a unit. The booking link belonged to the old
	// itinerary, so it goes too.
	st.Itinerary = it
	st.Booking = nil
	h.sessions.Put(id, st)

	data := h.homeData(c, h.sessions.Get(id))
	data.Form = form
	h.render(c, http.StatusOK, data)
}
