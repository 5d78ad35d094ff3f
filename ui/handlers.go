package ui

import (
	stderrors "errors"
	"fmt"
	"log"
	"net/http"

	"incosedss/app"
	"incosedss/internal/errors"
	"incosedss/internal/report"
	"incosedss/internal/session"
	"incosedss/ui/middleware"

	"github.com/gin-gonic/gin"
)

// handleIndex serves the report for the session's dataset, or the upload prompt
func (s *Server) handleIndex(c *gin.Context) {
	page := newPage()

	entry, ok := s.store.Get(middleware.SessionID(c))
	if !ok {
		page.notify(errors.LevelInfo, uploadPrompt)
		s.renderTemplate(c, http.StatusOK, "report.html", page)
		return
	}

	page.notify(errors.LevelSuccess, loadedBanner)
	page.FileName = entry.FileName
	page.DomainOptions = entry.Dataset.DomainOptions

	req := report.Request{
		Domain:      c.DefaultQuery("domain", ""),
		WithSummary: c.Query("summary") == "1",
	}
	page.SelectedDomain = req.Domain

	r, err := s.service.Render(entry.Dataset, req)
	if err != nil {
		page.fail(err)
		s.renderTemplate(c, http.StatusOK, "report.html", page)
		return
	}

	page.SelectedDomain = r.Domain
	page.Report = s.reportView(r)
	s.renderTemplate(c, http.StatusOK, "report.html", page)
}

// handleUpload replaces the session's dataset with an uploaded spreadsheet
func (s *Server) handleUpload(c *gin.Context) {
	id := middleware.SessionID(c)
	page := newPage()

	// the multipart envelope adds a little on top of the file itself
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxBytes+1<<20)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		log.Printf("[handleUpload] FAILED - No file uploaded: %v", err)
		s.store.Delete(id)
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			page.fail(errors.InvalidInput(fmt.Sprintf("File too large (max %d MB)", s.maxBytes>>20)))
		} else {
			page.fail(errors.InvalidInput("Please choose a survey file to upload."))
		}
		s.renderTemplate(c, http.StatusBadRequest, "report.html", page)
		return
	}
	defer file.Close()

	ds, err := s.service.Ingest(c.Request.Context(), app.Upload{
		FileName: header.Filename,
		Size:     header.Size,
		Body:     file,
	})
	if err != nil {
		s.store.Delete(id)
		page.fail(err)
		s.renderTemplate(c, http.StatusBadRequest, "report.html", page)
		return
	}

	s.store.Put(id, session.Entry{Dataset: ds, FileName: header.Filename})
	c.Redirect(http.StatusSeeOther, "/")
}

// handleReset forgets the session's dataset
func (s *Server) handleReset(c *gin.Context) {
	s.store.Delete(middleware.SessionID(c))
	c.Redirect(http.StatusSeeOther, "/")
}
