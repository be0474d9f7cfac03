package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
)

// Store defines the message log used by the conversation pipeline and the
// weekly report. Methods accept context.Context for cancellation and timeouts.
type Store interface {
	// Ping checks the backing storage.
	Ping(ctx context.Context) error

	// Append stores a message and then prunes every stored message older than
	// RetentionWindow, as one atomic step.
	Append(ctx context.Context, message *Message) error

	// LoadAll returns the retained messages of a conversation in insertion order.
	// Unreadable backing data yields an empty slice, not an error.
	LoadAll(ctx context.Context, conversationID string) ([]Message, error)

	// RunSQLMaintenance performs storage maintenance tasks like VACUUM.
	RunSQLMaintenance(ctx context.Context) error
}

// Option configures a store.
type Option func(*storeOptions)

type storeOptions struct {
	now func() time.Time
}

// WithClock overrides the clock used to evaluate the retention window.
func WithClock(now func() time.Time) Option {
	return func(o *storeOptions) {
		if now != nil {
			o.now = now
		}
	}
}

func buildOptions(opts []Option) storeOptions {
	o := storeOptions{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func discardLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return logger
}

// sqlxStore provides an implementation of the Store interface using sqlx.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
	now    func() time.Time

	// mu makes append+prune a single step even if several goroutines write.
	mu sync.Mutex
}

// NewStore creates a new Store implementation backed by sqlx.
// It requires a connected sqlx.DB instance and a logger.
func NewStore(db *sqlx.DB, logger *slog.Logger, opts ...Option) Store {
	o := buildOptions(opts)
	return &sqlxStore{
		db:     db,
		logger: discardLogger(logger).With("component", "store"),
		now:    o.now,
	}
}

// Ping checks the database connection.
func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Append inserts the message and prunes expired messages inside one transaction.
func (s *sqlxStore) Append(ctx context.Context, message *Message) error {
	if err := message.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to begin transaction for appending message",
			"conversation_id", message.ConversationID, "error", err)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if tx != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
				s.logger.WarnContext(ctx, "Error rolling back transaction", "error", rollbackErr)
			}
		}
	}()

	insert := `
        INSERT INTO messages (id, conversation_id, sender, content, theme, mood, timestamp_ms, created_at)
        VALUES (:id, :conversation_id, :sender, :content, :theme, :mood, :timestamp_ms, :created_at);
    `
	if _, err := tx.NamedExecContext(ctx, insert, newMessageRow(message, now)); err != nil {
		s.logger.ErrorContext(ctx, "Error saving message",
			"conversation_id", message.ConversationID, "message_id", message.ID, "error", err)
		return fmt.Errorf("failed to save message %s: %w", message.ID, err)
	}

	cutoff := now.Add(-RetentionWindow).UnixMilli()
	result, err := tx.ExecContext(ctx, `DELETE FROM messages WHERE timestamp_ms < ?;`, cutoff)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error pruning expired messages", "cutoff_ms", cutoff, "error", err)
		return fmt.Errorf("failed to prune expired messages: %w", err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.ErrorContext(ctx, "Failed to commit transaction",
			"conversation_id", message.ConversationID, "error", err)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	tx = nil

	pruned, _ := result.RowsAffected()
	s.logger.DebugContext(ctx, "Message appended",
		"conversation_id", message.ConversationID,
		"message_id", message.ID,
		"sender", message.Sender,
		"pruned", pruned)
	return nil
}

// LoadAll retrieves the retained messages of a conversation ordered by insertion.
func (s *sqlxStore) LoadAll(ctx context.Context, conversationID string) ([]Message, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var rows []messageRow
	query := `
        SELECT seq, id, conversation_id, sender, content, theme, mood, timestamp_ms
        FROM messages
        WHERE conversation_id = ?
        ORDER BY seq ASC;
    `
	if err := s.db.SelectContext(ctx, &rows, query, conversationID); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.logger.WarnContext(ctx, "Failed to read messages, treating conversation as empty",
			"conversation_id", conversationID, "error", err)
		return []Message{}, nil
	}

	messages := make([]Message, 0, len(rows))
	for _, row := range rows {
		msg, err := row.toMessage()
		if err != nil {
			s.logger.WarnContext(ctx, "Skipping malformed stored message",
				"conversation_id", conversationID, "seq", row.Seq, "error", err)
			continue
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// RunSQLMaintenance runs ANALYZE-style optimization and VACUUM on the SQLite database.
// VACUUM cannot run inside a transaction, so it is issued directly on the pool.
func (s *sqlxStore) RunSQLMaintenance(ctx context.Context) error {
	if ctx.Err() != nil {
		s.logger.WarnContext(ctx, "Context cancelled or timed out before starting VACUUM", "error", ctx.Err())
		return ctx.Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.InfoContext(ctx, "Starting database maintenance (VACUUM)...")
	startTime := time.Now()

	if _, err := s.db.ExecContext(ctx, "PRAGMA optimize;"); err != nil {
		s.logger.WarnContext(ctx, "PRAGMA optimize failed, continuing with VACUUM", "error", err)
	}

	if _, err := s.db.ExecContext(ctx, "VACUUM;"); err != nil {
		s.logger.ErrorContext(ctx, "VACUUM failed", "error", err)
		return fmt.Errorf("failed to vacuum database: %w", err)
	}

	s.logger.InfoContext(ctx, "Database maintenance completed", "duration", time.Since(startTime))
	return nil
}
