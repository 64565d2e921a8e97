package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// FrontendErrorReport is an error raised in a browser client
type FrontendErrorReport struct {
	Source         string  `json:"source" binding:"required"`
	Message        string  `json:"message" binding:"required"`
	Stack          *string `json:"stack"`
	ComponentStack *string `json:"componentStack"`
	URL            *string `json:"url"`
	UserAgent      *string `json:"userAgent"`
	Timestamp      string  `json:"timestamp"`
}

func (s *Server) reportFrontendError(c *gin.Context) {
	var report FrontendErrorReport
	if err := c.ShouldBindJSON(&report); err != nil {
		sendBindError(c, err)
		return
	}

	splog := s.ctx.Splog
	splog.Error("[frontend-error] source=%s message=%s timestamp=%s", report.Source, report.Message, report.Timestamp)

	optional := []struct {
		name  string
		value *string
	}{
		{"url", report.URL},
		{"userAgent", report.UserAgent},
		{"componentStack", report.ComponentStack},
		{"stack", report.Stack},
	}
	for _, field := range optional {
		if field.value != nil {
			splog.Error("[frontend-error] %s=%s", field.name, *field.value)
		}
	}

	c.Status(http.StatusNoContent)
}
