// Package server exposes the orchestrator over HTTP: chat, execute,
// conversation state, reset, status, and health endpoints with JSON
// payloads. Markdown deliverables are additionally rendered to HTML for
// direct display.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/yuin/goldmark"

	"github.com/hypertask-ai/hypertask/internal/orchestrator"
	"github.com/hypertask-ai/hypertask/internal/version"
	"github.com/hypertask-ai/hypertask/pkg/models"
)

// Server is the HTTP surface over the orchestrator.
type Server struct {
	orch      *orchestrator.Orchestrator
	md        goldmark.Markdown
	startedAt time.Time
}

// New creates a Server.
func New(orch *orchestrator.Orchestrator) *Server {
	return &Server{
		orch:      orch,
		md:        goldmark.New(),
		startedAt: time.Now(),
	}
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /chat", s.handleChat)
	mux.HandleFunc("POST /execute", s.handleExecute)
	mux.HandleFunc("GET /conversation/{id}", s.handleConversation)
	mux.HandleFunc("POST /conversation/{id}/reset", s.handleReset)
	mux.HandleFunc("GET /status", s.handleStatus)
	return mux
}

// ListenAndServe starts the server on the given port.
func (s *Server) ListenAndServe(port int) error {
	addr := fmt.Sprintf(":%d", port)
	log.Printf("[server] listening on %s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "online",
		"service": "HyperTask API",
		"version": version.Get(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "healthy",
		"uptime": time.Since(s.startedAt).Round(time.Second).String(),
	})
}

type chatRequest struct {
	ConversationID string `json:"conversation_id"`
	Message        string `json:"message"`
}

type chatResponse struct {
	ConversationID string `json:"conversation_id"`
	Response       string `json:"response"`
	ReadyToExecute bool   `json:"ready_to_execute"`
	Action         string `json:"action"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Message == "" {
		httpError(w, http.StatusBadRequest, "message is required")
		return
	}

	reply, err := s.orch.SubmitMessage(r.Context(), req.ConversationID, req.Message)
	if err != nil {
		httpError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		ConversationID: reply.ConversationID,
		Response:       reply.ResponseText,
		ReadyToExecute: reply.ReadyToExecute,
		Action:         string(reply.Action),
	})
}

type executeRequest struct {
	ConversationID string `json:"conversation_id"`
}

type deliverablePayload struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Capability  string `json:"capability"`
	Type        string `json:"type"`
	Content     string `json:"content"`
	ContentHTML string `json:"content_html,omitempty"`
	Tier        string `json:"tier"`
	Model       string `json:"model"`
}

func (s *Server) handleExecute(w http.ResponseWriter, r *http.Request) {
	var req executeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.ConversationID == "" {
		httpError(w, http.StatusBadRequest, "conversation_id is required")
		return
	}

	res, err := s.orch.ExecutePlan(r.Context(), req.ConversationID)
	switch {
	case errors.Is(err, orchestrator.ErrNotReady):
		httpError(w, http.StatusBadRequest, "conversation not ready for execution; continue chatting to provide more details")
		return
	case errors.Is(err, orchestrator.ErrNoPlan):
		httpError(w, http.StatusBadRequest, "no plan found; please start a new conversation")
		return
	case err != nil:
		httpError(w, http.StatusInternalServerError, err.Error())
		return
	}

	payload := make([]deliverablePayload, 0, len(res.Deliverables))
	for _, d := range res.Deliverables {
		payload = append(payload, s.renderDeliverable(d))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":          string(res.Status),
		"conversation_id": res.ConversationID,
		"deliverables":    payload,
		"transaction": map[string]any{
			"total":    res.TotalCost,
			"burn_fee": res.Fee,
		},
	})
}

// renderDeliverable converts one deliverable to its wire form, rendering
// markdown content to HTML as well.
func (s *Server) renderDeliverable(d models.Deliverable) deliverablePayload {
	p := deliverablePayload{
		ID:         d.ID,
		Name:       d.Name,
		Capability: string(d.Capability),
		Type:       string(d.Type),
		Content:    d.Content,
		Tier:       string(d.Tier),
		Model:      d.Model,
	}
	if d.Type == models.ContentTypeMarkdown {
		var buf bytes.Buffer
		if err := s.md.Convert([]byte(d.Content), &buf); err == nil {
			p.ContentHTML = buf.String()
		}
	}
	return p
}

func (s *Server) handleConversation(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	conv, err := s.orch.Conversation(id)
	if err != nil {
		httpError(w, http.StatusNotFound, "conversation not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"conversation_id":  conv.ID,
		"ready_to_execute": conv.Ready,
		"slots":            conv.Slots,
		"messages":         conv.Messages,
		"plan":             conv.Plan,
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.orch.ResetConversation(id); err != nil {
		httpError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":          "reset",
		"conversation_id": id,
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	capabilities := make(map[string]any)
	for cap, cost := range s.orch.Costs() {
		capabilities[string(cap)] = map[string]any{
			"cost":    cost,
			"display": cap.DisplayName(),
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"capabilities": capabilities,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[server] encode response: %v", err)
	}
}

func httpError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
