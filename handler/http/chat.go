package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type askRequest struct {
	Question string `json:"question" binding:"required"`
}

// Ask godoc
// @Summary Ask a question about the processed documents
// @Tags chat
// @Accept json
// @Param id path string true "Session ID"
// @Param body body askRequest true "Question"
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /sessions/{id}/chat [post]
func (h *Handler) Ask(c *gin.Context) {
	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		sendError(c, http.StatusNotFound, err)
		return
	}

	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, err)
		return
	}

	answer, err := s.Ask(c.Request.Context(), req.Question)
	if err != nil {
		sendError(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"answer":  answer,
		"history": s.History(),
	})
}
