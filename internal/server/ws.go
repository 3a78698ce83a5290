package server

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/cosmusapp/cosmus-go/internal/models"
	"github.com/cosmusapp/cosmus-go/internal/session"
)

// wsEvent is one frame pushed to a websocket client. A chat turn produces a
// "reply" event immediately and, when the reply asked for an illustration,
// a later "media" event carrying the same turn ID once resolution finishes.
type wsEvent struct {
	Type  string                  `json:"type"`
	ID    string                  `json:"id"`
	Reply *models.StructuredReply `json:"reply,omitempty"`
	Media *models.ResolvedMedia   `json:"media,omitempty"`
	Error string                  `json:"error,omitempty"`
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()
	s.logger.Debug("websocket client connected", "remote", r.RemoteAddr)

	for {
		var req ChatRequest
		if err := conn.ReadJSON(&req); err != nil {
			s.logger.Debug("websocket client disconnected", "error", err)
			return
		}
		if req.Message == "" {
			if err := conn.WriteJSON(wsEvent{Type: "error", ID: uuid.NewString(), Error: "message is required"}); err != nil {
				return
			}
			continue
		}

		// Two-phase delivery: the reply goes out as soon as the model
		// answers, the media event follows once the archive lookup is done.
		s.mu.Lock()
		sess := s.sessions.Get(req.Name)
		reply, err := s.sessions.Send(r.Context(), sess, req.Message)
		s.mu.Unlock()

		id := uuid.NewString()
		if err != nil {
			fallback := session.FallbackReply(err)
			if werr := conn.WriteJSON(wsEvent{Type: "reply", ID: id, Reply: &fallback}); werr != nil {
				return
			}
			continue
		}

		if werr := conn.WriteJSON(wsEvent{Type: "reply", ID: id, Reply: &reply}); werr != nil {
			return
		}
		if reply.ImageQuery != "" {
			media := s.engine.FetchByQuery(r.Context(), reply.ImageQuery)
			if werr := conn.WriteJSON(wsEvent{Type: "media", ID: id, Media: media}); werr != nil {
				return
			}
		}
	}
}
