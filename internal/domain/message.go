package domain

import "time"

type MessageFrom string

const (
	FromBot  MessageFrom = "bot"
	FromUser MessageFrom = "user"
)

type MessageType string

const (
	MessageTypeQuestion MessageType = "question"
	MessageTypeFeedback MessageType = "feedback"
	MessageTypeSummary  MessageType = "summary"
)

// Message is one transcript entry. Entries are appended, never mutated or
// removed; insertion order is display order. Plain user answers carry the
// zero MessageType.
type Message struct {
	ID    string
	From  MessageFrom
	Type  MessageType
	Text  string
	Score *float64
	At    time.Time
}
