package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pdfchat/src/core/session"
)

// CreateSession godoc
// @Summary Create a chat session
// @Tags sessions
// @Produce json
// @Success 201 {object} map[string]string
// @Router /sessions [post]
func (h *Handler) CreateSession(c *gin.Context) {
	s := h.sessions.Create()
	c.JSON(http.StatusCreated, gin.H{"id": s.ID})
}

// GetSession godoc
// @Summary Get session state
// @Tags sessions
// @Param id path string true "Session ID"
// @Produce json
// @Success 200 {object} session.Snapshot
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id} [get]
func (h *Handler) GetSession(c *gin.Context) {
	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		sendError(c, http.StatusNotFound, err)
		return
	}
	c.JSON(http.StatusOK, s.Snapshot())
}

// GetHistory godoc
// @Summary Get the session transcript, oldest turn first
// @Tags chat
// @Param id path string true "Session ID"
// @Produce json
// @Success 200 {array} session.Turn
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id}/history [get]
func (h *Handler) GetHistory(c *gin.Context) {
	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		sendError(c, http.StatusNotFound, err)
		return
	}
	history := s.History()
	if history == nil {
		history = []session.Turn{}
	}
	c.JSON(http.StatusOK, history)
}
