package server

import (
	"net/http"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// ChatRequest is one user message to the assistant
type ChatRequest struct {
	Message string `json:"message" validate:"required"`
}

// ChatHistoryResponse is the conversation and whether a reply is pending
type ChatHistoryResponse struct {
	Messages []types.ChatMessage `json:"messages"`
	Pending  bool                `json:"pending"`
}

func (s *Server) handleGetChat(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, ChatHistoryResponse{
		Messages: s.session.History(),
		Pending:  s.session.Pending(),
	})
}

// handleChat runs one assistant turn. Model failures still produce a 200 with
// the apology reply; only a concurrent turn is rejected.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		s.handleError(w, &ErrValidation{Field: "message", Message: "must not be blank"})
		return
	}

	result, err := s.session.Chat(r.Context(), message)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}
