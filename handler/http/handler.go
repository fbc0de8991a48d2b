package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pdfchat/src/core/chat"
	"pdfchat/src/core/session"
)

// Handler exposes the session lifecycle over HTTP: create a session, stage
// PDF uploads, process them into an index and chat against it.
type Handler struct {
	sessions *session.Manager
}

func NewHandler(sessions *session.Manager) *Handler {
	return &Handler{sessions: sessions}
}

// RegisterRoutes registers the web UI and all API routes
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.Home)

	api := r.Group("/api/v1")

	// Session routes
	api.POST("/sessions", h.CreateSession)
	api.GET("/sessions/:id", h.GetSession)

	// Document routes
	api.POST("/sessions/:id/documents", h.UploadDocuments)
	api.POST("/sessions/:id/process", h.Process)

	// Chat routes
	api.POST("/sessions/:id/chat", h.Ask)
	api.GET("/sessions/:id/history", h.GetHistory)

	// System routes
	api.GET("/health", h.CheckHealth)
}

// Common error response structure
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Warnings carries the non-fatal per-document extraction warnings
	// collected before the run failed.
	Warnings []string `json:"warnings,omitempty"`
}

func sendError(c *gin.Context, status int, err error) {
	sendErrorWarnings(c, status, err, nil)
}

func sendErrorWarnings(c *gin.Context, status int, err error, warnings []string) {
	var code string
	switch {
	case errors.Is(err, session.ErrNotFound):
		code = "NOT_FOUND"
		status = http.StatusNotFound
	case errors.Is(err, session.ErrNoDocuments):
		code = "VALIDATION_ERROR"
		status = http.StatusBadRequest
	case errors.Is(err, session.ErrNotReady):
		code = "NOT_READY"
		status = http.StatusConflict
	case errors.Is(err, chat.ErrEmbedderUnavailable):
		code = "MISSING_DEPENDENCY"
		status = http.StatusServiceUnavailable
	case status == http.StatusBadRequest:
		code = "VALIDATION_ERROR"
	default:
		code = "PROCESSING_ERROR"
		status = http.StatusInternalServerError
	}

	c.JSON(status, ErrorResponse{
		Code:     code,
		Message:  err.Error(),
		Warnings: warnings,
	})
}

// CheckHealth godoc
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *Handler) CheckHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
