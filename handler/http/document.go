package http

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"pdfchat/src/pdfutil"
)

// UploadDocuments godoc
// @Summary Stage PDF documents for processing
// @Tags documents
// @Accept mpfd
// @Param id path string true "Session ID"
// @Param files formData file true "PDF files"
// @Produce json
// @Success 201 {object} map[string]int
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id}/documents [post]
func (h *Handler) UploadDocuments(c *gin.Context) {
	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		sendError(c, http.StatusNotFound, err)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		sendError(c, http.StatusBadRequest, fmt.Errorf("no files uploaded"))
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		sendError(c, http.StatusBadRequest, fmt.Errorf("no files uploaded"))
		return
	}

	docs := make([]pdfutil.Document, 0, len(files))
	for _, header := range files {
		// Validate file type
		if !strings.EqualFold(filepath.Ext(header.Filename), ".pdf") {
			sendError(c, http.StatusBadRequest, fmt.Errorf("only PDF files are allowed"))
			return
		}

		file, err := header.Open()
		if err != nil {
			sendError(c, http.StatusInternalServerError, fmt.Errorf("failed to open %s: %v", header.Filename, err))
			return
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			sendError(c, http.StatusInternalServerError, fmt.Errorf("failed to read %s: %v", header.Filename, err))
			return
		}

		docs = append(docs, pdfutil.Document{Name: header.Filename, Data: data})
	}

	staged := s.Stage(docs)
	c.JSON(http.StatusCreated, gin.H{"staged": staged})
}

// Process godoc
// @Summary Build the search index over the staged documents
// @Tags documents
// @Param id path string true "Session ID"
// @Produce json
// @Success 200 {object} map[string][]string
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /sessions/{id}/process [post]
func (h *Handler) Process(c *gin.Context) {
	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		sendError(c, http.StatusNotFound, err)
		return
	}

	warnings, err := s.Process(c.Request.Context())
	if err != nil {
		sendErrorWarnings(c, http.StatusInternalServerError, err, warnings)
		return
	}
	if warnings == nil {
		warnings = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"warnings": warnings})
}
