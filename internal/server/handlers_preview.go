package server

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
	"go.uber.org/zap"
)

// PreviewResponse is a render tree at a revision
type PreviewResponse struct {
	Revision uint64         `json:"revision"`
	Tree     rendering.Tree `json:"tree"`
}

// templateParam reads the optional ?template= override. Empty means the
// document's own template.
func templateParam(r *http.Request) (types.Template, error) {
	t := types.Template(r.URL.Query().Get("template"))
	switch t {
	case "", types.TemplateModern, types.TemplateClassic, types.TemplateMinimal:
		return t, nil
	default:
		return "", &ErrValidation{Field: "template", Message: fmt.Sprintf("unknown template %q", t)}
	}
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	template, err := templateParam(r)
	if err != nil {
		s.handleError(w, err)
		return
	}
	tree, rev := s.session.Tree(template)
	s.jsonResponse(w, http.StatusOK, PreviewResponse{Revision: rev, Tree: tree})
}

func (s *Server) handlePreviewHTML(w http.ResponseWriter, r *http.Request) {
	template, err := templateParam(r)
	if err != nil {
		s.handleError(w, err)
		return
	}
	tree, _ := s.session.Tree(template)

	var buf bytes.Buffer
	if err := rendering.RenderHTML(&buf, tree); err != nil {
		s.handleError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes()) //nolint:errcheck
}

// handlePreviewStream sends a "preview" event with the current render tree and
// another on every document change until the client disconnects
func (s *Server) handlePreviewStream(w http.ResponseWriter, r *http.Request) {
	template, err := templateParam(r)
	if err != nil {
		s.handleError(w, err)
		return
	}

	stream, err := newPreviewStream(w, s.heartbeat)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	ctx := r.Context()
	updates, err := s.session.Watch(ctx)
	if err != nil {
		stream.Fail(err)
		return
	}

	ticker := time.NewTicker(s.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := stream.Ping(); err != nil {
				return
			}
		case snap, ok := <-updates:
			if !ok {
				return
			}
			t := template
			if t == "" {
				t = snap.Document.Template
			}
			event := PreviewResponse{Revision: snap.Revision, Tree: rendering.Render(snap.Document, t)}
			if err := stream.Preview(event); err != nil {
				s.logger.Debug("preview stream closed", zap.Error(err))
				return
			}
		}
	}
}

func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	if s.printer == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "export is not configured")
		return
	}
	template, err := templateParam(r)
	if err != nil {
		s.handleError(w, err)
		return
	}

	tree, rev := s.session.Tree(template)
	pdf, err := s.printer.Print(r.Context(), tree)
	if err != nil {
		s.handleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="resume.pdf"`)
	w.Header().Set("X-Document-Revision", fmt.Sprintf("%d", rev))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf) //nolint:errcheck
}
