package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HandleBooking asks the backend for a hotel booking link for the planned
// city and keeps the result on the session for display next to the control.
func (h *Handlers) HandleBooking(c *gin.Context) {
	id, st := h.state(c)

	if st.Itinerary == nil {
		data := h.homeData(c, st)
		data.BookingMsg = "Plan a trip first."
		h.render(c, http.StatusOK, data)
		return
	}

	checkin := c.PostForm("checkin")
	nights := 1
	if n, err := strconv.Atoi(c.PostForm("nights")); err == nil && n > 0 {
		nights = n
	}

	intent, err := h.client.HotelIntent(c.Request.Context(), st.Itinerary.Trip.City, checkin, nights)
	if err != nil {
		h.logger.Warn("Hotel intent failed", zap.String("city", st.Itinerary.Trip.City), zap.Error(err))
		data := h.homeData(c, st)
		data.BookingMsg = err.Error()
		h.render(c, http.StatusOK, data)
		return
	}

	h.sessions.SetBooking(id, intent)

	data := h.homeData(c, h.sessions.Get(id))
	h.render(c, http.StatusOK, data)
}
