package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// WebSocket upgrader with permissive settings for local development
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local development
	},
}

const wsReadTimeout = 120 * time.Second

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type    string          `json:"type"`    // "analyze", "ping"
	Payload json.RawMessage `json:"payload"` // Message-specific payload
}

// WSResponse represents a WebSocket response
type WSResponse struct {
	Type    string      `json:"type"`    // "result", "pong", "error"
	Payload interface{} `json:"payload"` // Response-specific payload
}

// WSErrorPayload represents an error payload
type WSErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// handleWebSocket upgrades /ws and answers messages in arrival order.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("WebSocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	ctx := r.Context()
	s.logger.Info("WebSocket connection established", "remote", conn.RemoteAddr().String(), "request_id", RequestID(ctx))

	conn.SetReadLimit(2*s.config.MaxSourceBytes + 1024)
	conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
		return nil
	})

	for {
		var msg WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Error("WebSocket read error", "error", err)
			} else {
				s.logger.Info("WebSocket connection closed")
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(wsReadTimeout))

		switch msg.Type {
		case "ping":
			s.sendResponse(conn, WSResponse{Type: "pong", Payload: nil})

		case "analyze":
			var req AnalyzeRequest
			if err := json.Unmarshal(msg.Payload, &req); err != nil {
				s.sendError(conn, "invalid_payload", "Invalid analyze payload")
				continue
			}
			rep, err := s.analyze(ctx, req.Source)
			if err != nil {
				s.sendError(conn, "too_large", err.Error())
				continue
			}
			s.sendResponse(conn, WSResponse{Type: "result", Payload: rep})

		default:
			s.sendError(conn, "unknown_type", "Unknown message type: "+msg.Type)
		}
	}
}

func (s *Server) sendResponse(conn *websocket.Conn, resp WSResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		s.logger.Error("WebSocket write failed", "error", err)
	}
}

func (s *Server) sendError(conn *websocket.Conn, code, message string) {
	s.sendResponse(conn, WSResponse{
		Type:    "error",
		Payload: WSErrorPayload{Code: code, Message: message},
	})
}
