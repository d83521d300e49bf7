// README: Public contact-form handler.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ojoto/internal/modules/contact"
)

type ContactHandler struct {
	contact *contact.Service
}

func NewContactHandler(svc *contact.Service) *ContactHandler {
	return &ContactHandler{contact: svc}
}

func (h *ContactHandler) Submit(c *gin.Context) {
	var req contact.Input
	if !bindJSON(c, &req) {
		return
	}
	if _, err := h.contact.Submit(c.Request.Context(), req); err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, gin.H{"message": "Message sent successfully"})
}
