package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HandleSaveTrip persists the current itinerary under a title.
func (h *Handlers) HandleSaveTrip(c *gin.Context) {
	id, st := h.state(c)

	if st.Itinerary == nil {
		data := h.homeData(c, st)
		data.TripsMsg = "Plan a trip first."
		h.render(c, http.StatusOK, data)
		return
	}

	title := c.PostForm("title")
	if title == "" {
		title = st.Itinerary.Trip.City + " trip"
	}

	err := h.client.WithToken(st.Token).SaveTrip(c.Request.Context(), title, st.Itinerary)

	data := h.homeData(c, h.sessions.Get(id))
	if err != nil {
		h.logger.Warn("Saving trip failed", zap.String("title", title), zap.Error(err))
		data.TripsMsg = err.Error()
	} else {
		data.TripsMsg = "Trip saved."
	}
	h.render(c, http.StatusOK, data)
}
