package ws

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/themobileprof/careportal-assistant/internal/api"
	"github.com/themobileprof/careportal-assistant/internal/api/middleware"
	"github.com/themobileprof/careportal-assistant/internal/chat"
	"github.com/themobileprof/careportal-assistant/internal/memory"
)

// ChatHandler handles WebSocket chat connections
type ChatHandler struct {
	engine            *chat.Engine
	messagesPerMinute int
	upgrader          websocket.Upgrader
}

// NewChatHandler creates a new chat handler. messagesPerMinute caps each
// connection; allowedOrigins limits browser origins the same way CORS does.
// Clients that send no Origin header are accepted.
func NewChatHandler(engine *chat.Engine, messagesPerMinute int, allowedOrigins []string) *ChatHandler {
	origins := middleware.NewOriginChecker(allowedOrigins)
	return &ChatHandler{
		engine:            engine,
		messagesPerMinute: messagesPerMinute,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || origins.Allowed(origin)
			},
		},
	}
}

// IncomingMessage represents a message from the client
type IncomingMessage struct {
	Message string `json:"message"`
	Action  string `json:"action"`
	Payload string `json:"payload"`
}

// OutgoingMessage represents a message to the client
type OutgoingMessage struct {
	Type    string      `json:"type"` // "session", "message", "error", "done"
	Content string      `json:"content,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// HandleChat handles WebSocket chat connections
func (h *ChatHandler) HandleChat(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		sessionID = uuid.NewString()
	} else if !api.ValidSessionID(sessionID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session id"})
		return
	}
	token, hasSession := middleware.SessionFromContext(c)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	ctx := c.Request.Context()
	limiter := middleware.NewMessageLimiter(h.messagesPerMinute)

	log.Printf("WebSocket connected: session=%s, has_session=%t", sessionID, hasSession)

	if err := h.sendSession(conn, sessionID); err != nil {
		return
	}
	if welcome := h.engine.Welcome(ctx, sessionID); len(welcome) > 0 {
		if err := h.sendReplies(conn, welcome); err != nil {
			return
		}
	}

	// Listen for messages
	for {
		var msg IncomingMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		if !limiter.Allow() {
			h.sendError(conn, "Rate limit exceeded. Please slow down.")
			continue
		}

		if err := h.processMessage(ctx, conn, sessionID, token, hasSession, msg); err != nil {
			log.Printf("Error processing message: %v", err)
			h.sendError(conn, err.Error())
		}
	}

	log.Printf("WebSocket disconnected: session=%s", sessionID)
}

func (h *ChatHandler) processMessage(ctx context.Context, conn *websocket.Conn, sessionID, token string, hasSession bool, msg IncomingMessage) error {
	text := msg.Message
	if text == "" {
		text = msg.Payload
	}

	result, err := h.engine.ProcessMessage(ctx, chat.ProcessRequest{
		SessionID:  sessionID,
		Token:      token,
		HasSession: hasSession,
		Text:       text,
		Action:     msg.Action,
	})
	if err != nil {
		return err
	}
	return h.sendReplies(conn, result.Replies)
}

// sendReplies writes each reply followed by a done marker
func (h *ChatHandler) sendReplies(conn *websocket.Conn, replies []memory.Message) error {
	for _, r := range replies {
		if err := conn.WriteJSON(OutgoingMessage{
			Type:    "message",
			Content: r.Text,
			Data:    r,
		}); err != nil {
			return err
		}
	}
	return h.sendDone(conn)
}

func (h *ChatHandler) sendSession(conn *websocket.Conn, sessionID string) error {
	return conn.WriteJSON(OutgoingMessage{
		Type:    "session",
		Content: sessionID,
	})
}

// sendError sends an error message to the client
func (h *ChatHandler) sendError(conn *websocket.Conn, message string) error {
	return conn.WriteJSON(OutgoingMessage{
		Type:    "error",
		Content: message,
	})
}

// sendDone signals that the response is complete
func (h *ChatHandler) sendDone(conn *websocket.Conn) error {
	return conn.WriteJSON(OutgoingMessage{
		Type: "done",
	})
}
