package server

import (
	"fmt"
	"net/http"

	"github.com/jonathan/portfolio-builder/internal/export"
)

// htmlDocument renders a fresh cycle and builds the standalone document
func (s *Server) htmlDocument(r *http.Request) (string, error) {
	doc, err := s.session.Document(r.Context())
	if err != nil {
		return "", err
	}
	return export.HTMLDocument(doc.Markup, doc.Title, doc.Customizations, &export.HTMLOptions{Sanitize: s.sanitize})
}

func attachment(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(body)))
	w.WriteHeader(http.StatusOK)
	w.Write(body) //nolint:errcheck
}

func (s *Server) handleExportHTML(w http.ResponseWriter, r *http.Request) {
	page, err := s.htmlDocument(r)
	if err != nil {
		s.failure(w, err)
		return
	}
	attachment(w, "text/html; charset=utf-8", export.HTMLFilename, []byte(page))
}

func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	page, err := s.htmlDocument(r)
	if err != nil {
		s.failure(w, err)
		return
	}

	pdf, err := export.PDF(r.Context(), page, s.pdfOptions)
	if err != nil {
		s.failure(w, err)
		return
	}
	attachment(w, "application/pdf", export.PDFFilename, pdf)
}

func (s *Server) handleExportText(w http.ResponseWriter, r *http.Request) {
	doc, err := s.session.Document(r.Context())
	if err != nil {
		s.failure(w, err)
		return
	}

	text, err := export.PlainText(doc.Markup)
	if err != nil {
		s.failure(w, err)
		return
	}
	attachment(w, "text/plain; charset=utf-8", export.TextFilename, []byte(text))
}
