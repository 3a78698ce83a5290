package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/cosmusapp/cosmus-go/internal/llm"
	"github.com/cosmusapp/cosmus-go/internal/models"
	"github.com/cosmusapp/cosmus-go/internal/session"
)

// ChatRequest is one user turn.
type ChatRequest struct {
	Name    string `json:"name,omitempty"`
	Message string `json:"message"`
}

// ChatResponse carries the decoded reply and, when the reply requested an
// illustration, the resolved media (absent when resolution found nothing).
// Busy and Failed mark turns where the reply is a canned fallback.
type ChatResponse struct {
	ID     string                 `json:"id"`
	Reply  models.StructuredReply `json:"reply"`
	Media  *models.ResolvedMedia  `json:"media,omitempty"`
	Busy   bool                   `json:"busy,omitempty"`
	Failed bool                   `json:"failed,omitempty"`
}

// MediaResponse wraps a media lookup result; Media is null when the archive
// had nothing usable.
type MediaResponse struct {
	Media *models.ResolvedMedia `json:"media"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Message == "" {
		http.Error(w, "message is required", http.StatusBadRequest)
		return
	}

	resp := s.chatTurn(r.Context(), req)

	status := http.StatusOK
	switch {
	case resp.Busy:
		status = http.StatusServiceUnavailable
	case resp.Failed:
		status = http.StatusBadGateway
	}
	writeJSON(w, status, resp)
}

// chatTurn runs one full conversational turn: send, decode, then resolve the
// requested illustration. A turn is strictly sequential; media is only
// requested after the reply fully decoded. Send failures are converted into
// the persona's canned replies so the response is always renderable.
func (s *Server) chatTurn(ctx context.Context, req ChatRequest) ChatResponse {
	resp := ChatResponse{ID: uuid.NewString()}

	s.mu.Lock()
	sess := s.sessions.Get(req.Name)
	reply, err := s.sessions.Send(ctx, sess, req.Message)
	s.mu.Unlock()

	if err != nil {
		resp.Reply = session.FallbackReply(err)
		if llm.IsRateLimited(err) {
			resp.Busy = true
		} else {
			resp.Failed = true
		}
		return resp
	}

	resp.Reply = reply
	if reply.ImageQuery != "" {
		resp.Media = s.engine.FetchByQuery(ctx, reply.ImageQuery)
	}
	return resp
}

func (s *Server) handleGreeting(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	greeting := s.sessions.Greet(r.Context())
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, ChatResponse{
		ID:    uuid.NewString(),
		Reply: greeting,
	})
}

func (s *Server) handleMedia(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		http.Error(w, "q parameter is required", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, MediaResponse{Media: s.engine.FetchByQuery(r.Context(), query)})
}

func (s *Server) handleRandomMedia(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, MediaResponse{Media: s.engine.FetchRandom(r.Context())})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.stats.Snapshot())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
