package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Clients send nothing but control frames
	maxMessageSize = 512
)

// handleWebSocket streams the caller's view of a match: once on connect and
// again after every change. The stream ends after the view of the completed
// match has been sent.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	viewer := viewerOf(r)

	// Resolve the match before upgrading so unknown ids get a plain 404.
	if _, err := s.manager.Get(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}

	updates, unsubscribe := s.manager.Subscribe(id)
	defer unsubscribe()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("WebSocket upgrade failed", "error", err)
		return
	}
	defer func() { _ = conn.Close() }()

	logger := s.logger.With("match", id, "viewer", viewer)
	logger.Debug("Stream opened")

	closed := make(chan struct{})
	go readPump(conn, closed)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	send := func() (bool, error) {
		v, err := s.manager.View(r.Context(), id, viewer)
		if err != nil {
			return false, err
		}
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(MatchResponse{ID: id, View: v}); err != nil {
			return false, err
		}
		return v.GameComplete, nil
	}

	done, err := send()
	for err == nil && !done {
		select {
		case <-updates:
			done, err = send()
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			err = conn.WriteMessage(websocket.PingMessage, nil)
		case <-closed:
			logger.Debug("Stream closed by client")
			return
		case <-r.Context().Done():
			return
		}
	}
	if err != nil {
		logger.Debug("Stream ended", "error", err)
		return
	}

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "match complete"))
	logger.Debug("Stream finished")
}

// readPump discards client frames so control messages are processed, and
// closes done when the connection fails.
func readPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := conn.NextReader(); err != nil {
			return
		}
	}
}
