package server

import (
	"encoding/json"
	"time"

	"github.com/lox/llmholdem/internal/game"
)

// Message is one frame on the event feed
type Message struct {
	Type      game.EventType  `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage wraps a game event for the wire
func NewMessage(event game.GameEvent) (*Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      event.EventType(),
		Data:      data,
		Timestamp: event.Timestamp(),
	}, nil
}
