package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// RetentionWindow is how long a message stays in the store. Anything older
// than this, measured from the time of a write, is pruned by that write.
const RetentionWindow = 7 * 24 * time.Hour

// ErrInvalidMessage is returned when a message fails validation before being stored.
var ErrInvalidMessage = errors.New("invalid message")

var validate = validator.New()

// Sender identifies who produced a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// MessageAnalysis holds the categories detected for a user message.
// An empty string means no category was detected for that taxonomy.
type MessageAnalysis struct {
	Theme string `json:"mentalHealthTheme,omitempty"`
	Mood  string `json:"mood,omitempty"`
}

// IsZero reports whether neither a theme nor a mood was detected.
func (a *MessageAnalysis) IsZero() bool {
	return a == nil || (a.Theme == "" && a.Mood == "")
}

// Message is a single chat turn within a conversation. Messages are immutable
// once stored and only ever leave the store through window expiry.
type Message struct {
	ID             string           `json:"id"             validate:"required"`
	ConversationID string           `json:"conversationId" validate:"required"`
	Content        string           `json:"content"        validate:"required"`
	Sender         Sender           `json:"sender"         validate:"required,oneof=user bot"`
	Timestamp      time.Time        `json:"timestamp"`
	Analysis       *MessageAnalysis `json:"analysis,omitempty"`
}

// Validate checks the invariants every stored message must satisfy.
func (m *Message) Validate() error {
	if m == nil {
		return fmt.Errorf("%w: message is nil", ErrInvalidMessage)
	}
	if err := validate.Struct(m); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	if m.Timestamp.IsZero() {
		return fmt.Errorf("%w: timestamp is zero", ErrInvalidMessage)
	}
	if m.Sender == SenderBot && m.Analysis != nil {
		return fmt.Errorf("%w: bot messages cannot carry analysis", ErrInvalidMessage)
	}
	return nil
}

func (m Message) clone() Message {
	if m.Analysis != nil {
		a := *m.Analysis
		m.Analysis = &a
	}
	return m
}

// messageRow is the persisted shape of a Message.
type messageRow struct {
	Seq            int64          `db:"seq"`
	ID             string         `db:"id"`
	ConversationID string         `db:"conversation_id"`
	Sender         string         `db:"sender"`
	Content        string         `db:"content"`
	Theme          sql.NullString `db:"theme"`
	Mood           sql.NullString `db:"mood"`
	TimestampMs    int64          `db:"timestamp_ms"`
	CreatedAt      time.Time      `db:"created_at"`
}

func newMessageRow(m *Message, now time.Time) messageRow {
	row := messageRow{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		Sender:         string(m.Sender),
		Content:        m.Content,
		TimestampMs:    m.Timestamp.UTC().UnixMilli(),
		CreatedAt:      now,
	}
	if m.Analysis != nil {
		row.Theme = sql.NullString{String: m.Analysis.Theme, Valid: m.Analysis.Theme != ""}
		row.Mood = sql.NullString{String: m.Analysis.Mood, Valid: m.Analysis.Mood != ""}
	}
	return row
}

func (r messageRow) toMessage() (Message, error) {
	sender := Sender(r.Sender)
	if sender != SenderUser && sender != SenderBot {
		return Message{}, fmt.Errorf("unknown sender %q", r.Sender)
	}

	msg := Message{
		ID:             r.ID,
		ConversationID: r.ConversationID,
		Content:        r.Content,
		Sender:         sender,
		Timestamp:      time.UnixMilli(r.TimestampMs).UTC(),
	}

	if sender == SenderUser && (r.Theme.Valid || r.Mood.Valid) {
		msg.Analysis = &MessageAnalysis{Theme: r.Theme.String, Mood: r.Mood.String}
	}
	return msg, nil
}
