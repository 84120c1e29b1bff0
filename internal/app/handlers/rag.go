package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/voyplan/go-tripui/internal/models"
)

// HandleAddDoc submits a local knowledge document. The call is attempted with
// whatever token the session holds; without one it simply goes out without an
// Authorization header and the backend's rejection is shown as-is.
func (h *Handlers) HandleAddDoc(c *gin.Context) {
	id, st := h.state(c)

	doc := models.KnowledgeDoc{
		Title:   c.PostForm("title"),
		City:    c.PostForm("city"),
		Content: c.PostForm("content"),
	}

	err := h.client.WithToken(st.Token).AddKnowledgeDoc(c.Request.Context(), doc)

	data := h.homeData(c, h.sessions.Get(id))
	if err != nil {
		h.logger.Warn("Adding knowledge doc failed", zap.String("city", doc.City), zap.Error(err))
		data.RagMsg = err.Error()
	} else {
		data.RagMsg = "Document added."
	}
	h.render(c, http.StatusOK, data)
}
