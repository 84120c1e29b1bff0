package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/voyplan/go-tripui/internal/session"
)

// HandleAuth serves both login and register; the pressed button decides which.
// A successful call overwrites the session's token wholesale; a failure
// leaves any previous token in place and shows the backend's reason.
func (h *Handlers) HandleAuth(c *gin.Context) {
	id, _ := h.state(c)

	email := c.PostForm("email")
	password := c.PostForm("password")
	mode := c.PostForm("mode")

	var token string
	var err error
	switch mode {
	case "register":
		token, err = h.client.Register(c.Request.Context(), email, password)
	default:
		mode = "login"
		token, err = h.client.Login(c.Request.Context(), email, password)
	}

	if err != nil {
		h.logger.Warn("Auth failed", zap.String("mode", mode), zap.Error(err))
		data := h.homeData(c, h.sessions.Get(id))
		data.AuthMsg = err.Error()
		h.render(c, http.StatusOK, data)
		return
	}

	h.sessions.SetToken(id, token, session.DisplayEmail(token))

	data := h.homeData(c, h.sessions.Get(id))
	data.AuthMsg = "Success!"
	h.render(c, http.StatusOK, data)
}
