package ui

import (
	"net/http"

	"lifelens/internal/dashboard"
	"lifelens/internal/errors"

	"github.com/gin-gonic/gin"
)

// handleIndex serves the dashboard shell; the tabs populate themselves over
// the JSON API.
func (s *Server) handleIndex(c *gin.Context) {
	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	data := gin.H{
		"Title":   "LifeLens",
		"Total":   s.svc.Options().Total,
		"Version": Version,
	}
	if err := s.templates.ExecuteTemplate(c.Writer, "index.html", data); err != nil {
		s.log.Error("failed to render index: %v", err)
	}
}

func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleOptions(c *gin.Context) {
	c.JSON(http.StatusOK, s.svc.Options())
}

func (s *Server) handleDashboard(c *gin.Context) {
	var req dashboard.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, errors.InvalidInput("malformed dashboard request"))
		return
	}
	view, err := s.svc.Render(req)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *Server) handleCorrelations(c *gin.Context) {
	var req dashboard.CorrelationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, errors.InvalidInput("malformed correlations request"))
		return
	}
	view, err := s.svc.Correlations(req)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *Server) handleRegression(c *gin.Context) {
	var req dashboard.RegressionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, errors.InvalidInput("malformed regression request"))
		return
	}
	view, err := s.svc.Regression(req)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// respondError maps application error codes onto HTTP statuses and keeps the
// body machine-readable.
func (s *Server) respondError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.CodeInvalidInput, errors.CodeSchemaError:
		status = http.StatusBadRequest
	case errors.CodeInsufficientData:
		status = http.StatusUnprocessableEntity
	}
	if status == http.StatusInternalServerError {
		s.log.Error("request failed: %v", err)
	}
	c.JSON(status, gin.H{"code": code, "error": err.Error()})
}
