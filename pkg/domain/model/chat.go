package model

import (
	"time"

	"github.com/m-mizutani/relboard/pkg/domain/types"
)

// ChatMessage is a single turn of the chat panel conversation
type ChatMessage struct {
	Role      types.ChatRole `json:"role"`
	Content   string         `json:"content"`
	CreatedAt time.Time      `json:"created_at"`
}

// ChatSession is a snapshot of a chat panel
type ChatSession struct {
	ID        types.ChatSessionID `json:"id"`
	State     types.ChatState     `json:"state"`
	Messages  []ChatMessage       `json:"messages"`
	CreatedAt time.Time           `json:"created_at"`
}
