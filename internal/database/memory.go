package database

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// MemoryStore implements Store with a mutex-guarded slice. It loses its
// contents on restart and suits tests and ephemeral deployments.
type MemoryStore struct {
	mu       sync.Mutex
	messages []Message
	now      func() time.Time
	logger   *slog.Logger
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore(logger *slog.Logger, opts ...Option) *MemoryStore {
	o := buildOptions(opts)
	return &MemoryStore{
		messages: make([]Message, 0, 64),
		now:      o.now,
		logger:   discardLogger(logger).With("component", "memory_store"),
	}
}

// Ping always succeeds.
func (s *MemoryStore) Ping(_ context.Context) error {
	return nil
}

// Append stores a copy of the message and drops everything older than RetentionWindow.
func (s *MemoryStore) Append(ctx context.Context, message *Message) error {
	if err := message.Validate(); err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = append(s.messages, message.clone())

	cutoff := s.now().Add(-RetentionWindow)
	kept := s.messages[:0]
	for _, m := range s.messages {
		if !m.Timestamp.Before(cutoff) {
			kept = append(kept, m)
		}
	}
	pruned := len(s.messages) - len(kept)
	// zero the tail so pruned messages can be collected
	for i := len(kept); i < len(s.messages); i++ {
		s.messages[i] = Message{}
	}
	s.messages = kept

	s.logger.DebugContext(ctx, "Message appended",
		"conversation_id", message.ConversationID,
		"message_id", message.ID,
		"pruned", pruned)
	return nil
}

// LoadAll returns copies of the conversation's messages in insertion order.
func (s *MemoryStore) LoadAll(ctx context.Context, conversationID string) ([]Message, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Message, 0, len(s.messages))
	for _, m := range s.messages {
		if m.ConversationID == conversationID {
			out = append(out, m.clone())
		}
	}
	return out, nil
}

// RunSQLMaintenance compacts the backing slice.
func (s *MemoryStore) RunSQLMaintenance(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	compacted := make([]Message, len(s.messages), len(s.messages)+64)
	copy(compacted, s.messages)
	s.messages = compacted
	return nil
}
