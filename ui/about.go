package ui

import (
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Version is stamped via -ldflags at release time.
var Version = "dev"

// handleAbout renders the embedded dataset notes as HTML.
func (s *Server) handleAbout(c *gin.Context) {
	src, err := fs.ReadFile(s.embeddedFiles, "ui/notes.md")
	if err != nil {
		s.log.Error("dataset notes unavailable: %v", err)
		c.String(http.StatusInternalServerError, "about page unavailable")
		return
	}

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	body := markdown.ToHTML(src, p, renderer)

	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	data := gin.H{
		"Title":   "About LifeLens",
		"Body":    template.HTML(body),
		"Version": Version,
	}
	if err := s.templates.ExecuteTemplate(c.Writer, "about.html", data); err != nil {
		s.log.Error("failed to render about: %v", err)
	}
}
