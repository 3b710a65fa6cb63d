package models

import (
	"time"

	"github.com/google/uuid"
)

type TurnRole string

const (
	RoleUser      TurnRole = "USER"
	RoleAssistant TurnRole = "ASSISTANT"
)

type TurnAction string

const (
	ActionChat        TurnAction = "chat"
	ActionAskQuestion TurnAction = "ask_question"
	ActionEvaluate    TurnAction = "evaluate"
)

// ConversationTurn is one message exchanged within a session. Turns are
// append-only and ordered per session by CreatedAt.
type ConversationTurn struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	SessionID uuid.UUID  `gorm:"type:uuid;not null;index" json:"session_id"`
	UserID    string     `gorm:"type:text;not null;index" json:"user_id"`
	Message   string     `gorm:"type:text;not null" json:"message"`
	Role      TurnRole   `gorm:"type:text;not null" json:"role"`
	Action    TurnAction `gorm:"type:text;not null" json:"action"`
	CreatedAt time.Time  `gorm:"type:timestamp;default:now()" json:"created_at"`

	// Relations
	Session Session `gorm:"foreignKey:SessionID" json:"-"`
}

func (ConversationTurn) TableName() string {
	return "conversation_turns"
}
