package memory

import (
	"time"

	"github.com/google/uuid"
)

// Sender identifies who wrote a message
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Message is one immutable entry of a conversation log
type Message struct {
	ID        string            `json:"id"`
	Sender    Sender            `json:"sender"`
	Text      string            `json:"text"`
	CreatedAt time.Time         `json:"created_at"`
	Widget    string            `json:"widget,omitempty"`
	Payload   map[string]string `json:"payload,omitempty"`
}

// NewUserMessage echoes user input into a message
func NewUserMessage(text string) Message {
	return Message{
		ID:        uuid.NewString(),
		Sender:    SenderUser,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
}

// NewAssistantMessage creates an assistant message with an optional widget
func NewAssistantMessage(text, widget string, payload map[string]string) Message {
	return Message{
		ID:        uuid.NewString(),
		Sender:    SenderAssistant,
		Text:      text,
		CreatedAt: time.Now().UTC(),
		Widget:    widget,
		Payload:   payload,
	}
}
