package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-builder/internal/resumefile"
	"github.com/jonathan/resume-builder/internal/session"
	"github.com/jonathan/resume-builder/internal/types"
)

// maxBodyBytes caps request bodies
const maxBodyBytes = 1 << 20

// DocumentResponse is the document at a revision
type DocumentResponse struct {
	Document types.Document `json:"document"`
	Revision uint64         `json:"revision"`
}

// AddItemResponse carries the id of the created item. ItemID is empty when the
// section does not exist and nothing was added.
type AddItemResponse struct {
	ItemID   string         `json:"item_id"`
	Document types.Document `json:"document"`
	Revision uint64         `json:"revision"`
}

// ValueRequest sets a single string field. Empty strings are valid values.
type ValueRequest struct {
	Value *string `json:"value" validate:"required"`
}

// TitleRequest renames a section
type TitleRequest struct {
	Title *string `json:"title" validate:"required"`
}

// TemplateRequest selects a template
type TemplateRequest struct {
	Template string `json:"template" validate:"required,oneof=modern classic"`
}

// ThemeRequest sets the accent color
type ThemeRequest struct {
	Color string `json:"color" validate:"required,hexcolor"`
}

// MoveRequest moves an element between two positions
type MoveRequest struct {
	From *int `json:"from" validate:"required"`
	To   *int `json:"to" validate:"required"`
}

func snapshotResponse(snap session.Snapshot) DocumentResponse {
	return DocumentResponse{Document: snap.Document, Revision: snap.Revision}
}

func (s *Server) handleGetDocument(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, snapshotResponse(s.session.Snapshot()))
}

// handleReplaceDocument loads a whole document, validated like a resume file
func (s *Server) handleReplaceDocument(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	doc, err := resumefile.Decode(body, resumefile.FormatJSON)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, snapshotResponse(s.session.Replace(doc)))
}

func (s *Server) handleSetPersonalField(w http.ResponseWriter, r *http.Request) {
	field, ok := types.ParsePersonalField(r.PathValue("field"))
	if !ok {
		s.handleError(w, &ErrValidation{Field: "field", Message: fmt.Sprintf("unknown personal field %q", r.PathValue("field"))})
		return
	}

	var req ValueRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}
	s.jsonResponse(w, http.StatusOK, snapshotResponse(s.session.SetPersonalField(field, *req.Value)))
}

func (s *Server) handleUpdatePersonalInfo(w http.ResponseWriter, r *http.Request) {
	var patch types.PersonalInfoPatch
	if !s.decodeRequest(w, r, &patch) {
		return
	}
	s.jsonResponse(w, http.StatusOK, snapshotResponse(s.session.UpdatePersonalInfo(patch)))
}

func (s *Server) handleSetTemplate(w http.ResponseWriter, r *http.Request) {
	var req TemplateRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}
	s.jsonResponse(w, http.StatusOK, snapshotResponse(s.session.SetTemplate(types.Template(req.Template))))
}

func (s *Server) handleSetThemeColor(w http.ResponseWriter, r *http.Request) {
	var req ThemeRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}
	s.jsonResponse(w, http.StatusOK, snapshotResponse(s.session.SetThemeColor(req.Color)))
}

func (s *Server) handleReorderSections(w http.ResponseWriter, r *http.Request) {
	var req MoveRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}
	s.jsonResponse(w, http.StatusOK, snapshotResponse(s.session.ReorderSections(*req.From, *req.To)))
}

func (s *Server) handleSetSectionTitle(w http.ResponseWriter, r *http.Request) {
	var req TitleRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}
	snap := s.session.SetSectionTitle(r.PathValue("section_id"), *req.Title)
	s.jsonResponse(w, http.StatusOK, snapshotResponse(snap))
}

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var patch types.ItemPatch
	if !s.decodeOptionalRequest(w, r, &patch) {
		return
	}

	snap, id := s.session.AddItem(r.PathValue("section_id"), &patch)
	status := http.StatusCreated
	if id == "" {
		status = http.StatusOK
	}
	s.jsonResponse(w, status, AddItemResponse{ItemID: id, Document: snap.Document, Revision: snap.Revision})
}

func (s *Server) handleReorderItems(w http.ResponseWriter, r *http.Request) {
	var req MoveRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}
	snap := s.session.ReorderItems(r.PathValue("section_id"), *req.From, *req.To)
	s.jsonResponse(w, http.StatusOK, snapshotResponse(snap))
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	field, ok := types.ParseItemField(r.PathValue("field"))
	if !ok {
		s.handleError(w, &ErrValidation{Field: "field", Message: fmt.Sprintf("unknown item field %q", r.PathValue("field"))})
		return
	}

	var req ValueRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}
	snap := s.session.UpdateItem(r.PathValue("section_id"), r.PathValue("item_id"), field, *req.Value)
	s.jsonResponse(w, http.StatusOK, snapshotResponse(snap))
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	snap := s.session.DeleteItem(r.PathValue("section_id"), r.PathValue("item_id"))
	s.jsonResponse(w, http.StatusOK, snapshotResponse(snap))
}

// decodeRequest decodes and validates a JSON body, writing a 400 on failure
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := s.decode(r, dst, false); err != nil {
		s.handleError(w, err)
		return false
	}
	return true
}

// decodeOptionalRequest is decodeRequest where an empty body is allowed
func (s *Server) decodeOptionalRequest(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := s.decode(r, dst, true); err != nil {
		s.handleError(w, err)
		return false
	}
	return true
}

func (s *Server) decode(r *http.Request, dst any, allowEmpty bool) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) && allowEmpty {
			return nil
		}
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}

	if err := s.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return &ErrValidation{
				Field:   strings.ToLower(verrs[0].Field()),
				Message: fmt.Sprintf("failed '%s' validation", verrs[0].Tag()),
			}
		}
		var invalid *validator.InvalidValidationError
		if !errors.As(err, &invalid) {
			return &ErrValidation{Field: "body", Message: err.Error()}
		}
	}
	return nil
}
