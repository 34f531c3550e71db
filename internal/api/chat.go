package api

import (
	"errors"
	"log"
	"net/http"
	"regexp"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/themobileprof/careportal-assistant/internal/api/middleware"
	"github.com/themobileprof/careportal-assistant/internal/chat"
)

var sessionIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)

// ValidSessionID reports whether id is usable as a chat session id
func ValidSessionID(id string) bool {
	return sessionIDPattern.MatchString(id)
}

// ChatHandler exposes the chat engine over HTTP
type ChatHandler struct {
	engine *chat.Engine
}

func NewChatHandler(engine *chat.Engine) *ChatHandler {
	return &ChatHandler{engine: engine}
}

func (h *ChatHandler) RegisterRoutes(r *gin.RouterGroup) {
	chatGroup := r.Group("/chat")
	chatGroup.POST("/messages", h.SendMessage)
	chatGroup.GET("/sessions/:id/messages", h.GetMessages)
	chatGroup.GET("/sessions/:id/state", h.GetState)
	chatGroup.DELETE("/sessions/:id", h.RestartSession)
}

// SendMessageRequest is one user turn. Action carries a UI button id; Payload
// carries the button's text (e.g. a symptom chip) when Message is empty.
type SendMessageRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
	Action    string `json:"action"`
	Payload   string `json:"payload"`
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	} else if !ValidSessionID(sessionID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session id"})
		return
	}

	text := req.Message
	if text == "" {
		text = req.Payload
	}

	token, hasSession := middleware.SessionFromContext(c)
	result, err := h.engine.ProcessMessage(c.Request.Context(), chat.ProcessRequest{
		SessionID:  sessionID,
		Token:      token,
		HasSession: hasSession,
		Text:       text,
		Action:     req.Action,
	})
	if err != nil {
		if errors.Is(err, chat.ErrEmptyMessage) || errors.Is(err, chat.ErrUnknownAction) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Failed to process message: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id": result.SessionID,
		"replies":    result.Replies,
		"phase":      result.State.Phase(),
		"stale":      result.Stale,
	})
}

func (h *ChatHandler) GetMessages(c *gin.Context) {
	sessionID := c.Param("id")
	if !ValidSessionID(sessionID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session id"})
		return
	}

	limit := 50
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 500 {
			limit = l
		}
	}

	messages, err := h.engine.History(c.Request.Context(), sessionID, limit)
	if err != nil {
		log.Printf("Failed to get messages: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"session_id": sessionID, "messages": messages})
}

func (h *ChatHandler) GetState(c *gin.Context) {
	sessionID := c.Param("id")
	if !ValidSessionID(sessionID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session id"})
		return
	}

	state := h.engine.State(sessionID)
	c.JSON(http.StatusOK, gin.H{
		"session_id": sessionID,
		"phase":      state.Phase(),
		"state":      state,
	})
}

func (h *ChatHandler) RestartSession(c *gin.Context) {
	sessionID := c.Param("id")
	if !ValidSessionID(sessionID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session id"})
		return
	}

	if err := h.engine.Restart(c.Request.Context(), sessionID); err != nil {
		log.Printf("Failed to restart session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to restart session"})
		return
	}

	c.Status(http.StatusNoContent)
}
