package api

import (
	"encoding/json"
	"net/http"

	"github.com/dgallion1/headingnav/internal/session"
	"github.com/gorilla/websocket"
)

// handleNavigatorSession mounts a navigator for one page view and drives it
// from the client's layout, scroll, resize and navigate messages. Messages
// are handled one at a time, in arrival order; the navigator is unmounted
// when the connection closes.
func (s *Server) handleNavigatorSession(w http.ResponseWriter, r *http.Request) {
	p, ok := s.lookupPost(w, r)
	if !ok {
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade", "error", err)
		return
	}
	defer conn.Close()

	sess := session.New(p.Outline)
	defer sess.Close()
	s.log.Debug("navigator session opened", "session_id", sess.ID, "slug", p.Slug)

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warn("websocket read", "session_id", sess.ID, "error", err)
			}
			break
		}

		var req session.Request
		var resp session.Response
		if err := json.Unmarshal(msg, &req); err != nil {
			resp = session.Response{Type: "error", SessionID: sess.ID, Error: "invalid message format"}
		} else {
			resp = sess.Handle(req)
		}

		if err := conn.WriteJSON(resp); err != nil {
			s.log.Warn("websocket write", "session_id", sess.ID, "error", err)
			break
		}
	}
	s.log.Debug("navigator session closed", "session_id", sess.ID)
}
