// Package chat runs the conversation pipeline: a user message is classified
// and stored synchronously, then a deferred task composes and stores the
// bot reply after a fixed delay.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/edgard/mindfulbot/internal/analysis"
	"github.com/edgard/mindfulbot/internal/database"
	"github.com/edgard/mindfulbot/internal/response"
	"github.com/edgard/mindfulbot/internal/text"
)

var (
	// ErrEmptyMessage is returned for blank user input.
	ErrEmptyMessage = errors.New("message is empty")
	// ErrMessageTooLong is returned when user input exceeds the configured limit.
	ErrMessageTooLong = errors.New("message is too long")
)

// Deferrer runs a task once after a delay. Tasks are never cancelled: once
// Defer returns nil the task must eventually run exactly once.
type Deferrer interface {
	Defer(name string, delay time.Duration, task func(ctx context.Context)) error
}

// Config holds the pipeline settings.
type Config struct {
	// MinUserMessages is how many user messages a conversation needs,
	// counting the new one, before analysis runs.
	MinUserMessages int
	// ReplyDelay is how long the reply task waits before running.
	ReplyDelay time.Duration
	// MaxLength caps user input in bytes. Zero disables the cap.
	MaxLength int
}

// Exchange is the result of sending a user message: the stored message and
// the handle to its reply.
type Exchange struct {
	UserMessage database.Message
	Reply       *PendingReply
}

// Service is the conversation pipeline.
type Service struct {
	store     database.Store
	analyzer  *analysis.Analyzer
	generator *response.Generator
	deferrer  Deferrer
	cfg       Config
	now       func() time.Time
	logger    *slog.Logger

	// mu serializes the read-history, analyse, append step.
	mu sync.Mutex
}

// Option customizes a Service.
type Option func(*Service)

// WithClock overrides the clock used to timestamp messages.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wires the pipeline components together.
func NewService(
	store database.Store,
	analyzer *analysis.Analyzer,
	generator *response.Generator,
	deferrer Deferrer,
	cfg Config,
	logger *slog.Logger,
	opts ...Option,
) *Service {
	if cfg.MinUserMessages < 1 {
		cfg.MinUserMessages = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		store:     store,
		analyzer:  analyzer,
		generator: generator,
		deferrer:  deferrer,
		cfg:       cfg,
		now:       time.Now,
		logger:    logger.With("component", "chat"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Send cleans, validates, analyses and stores a user message, then schedules its
// reply. The returned PendingReply resolves once the reply is stored.
func (s *Service) Send(ctx context.Context, conversationID, raw string) (*Exchange, error) {
	content := text.Clean(raw)
	if content == "" {
		return nil, ErrEmptyMessage
	}
	if s.cfg.MaxLength > 0 && len(content) > s.cfg.MaxLength {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrMessageTooLong, len(content), s.cfg.MaxLength)
	}

	userMessage, result, err := s.storeUserMessage(ctx, conversationID, content)
	if err != nil {
		return nil, err
	}

	pending := newPendingReply()
	var once sync.Once
	task := func(taskCtx context.Context) {
		once.Do(func() {
			pending.resolve(s.reply(taskCtx, conversationID, content, result))
		})
	}

	if err := s.deferrer.Defer("reply:"+userMessage.ID, s.cfg.ReplyDelay, task); err != nil {
		s.logger.WarnContext(ctx, "Failed to defer reply, replying inline",
			"conversation_id", conversationID, "message_id", userMessage.ID, "error", err)
		task(context.WithoutCancel(ctx))
	}

	return &Exchange{UserMessage: *userMessage, Reply: pending}, nil
}

func (s *Service) storeUserMessage(ctx context.Context, conversationID, content string) (*database.Message, analysis.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, err := s.store.LoadAll(ctx, conversationID)
	if err != nil {
		return nil, analysis.Result{}, fmt.Errorf("failed to load conversation history: %w", err)
	}

	contents := make([]string, 0, len(history)+1)
	for _, m := range history {
		if m.Sender == database.SenderUser {
			contents = append(contents, m.Content)
		}
	}
	contents = append(contents, content)

	var result analysis.Result
	if len(contents) >= s.cfg.MinUserMessages {
		result = s.analyzer.Analyze(strings.Join(contents, " "))
	}

	message := &database.Message{
		ID:             newMessageID(),
		ConversationID: conversationID,
		Content:        content,
		Sender:         database.SenderUser,
		Timestamp:      s.now(),
	}
	if !result.IsZero() {
		message.Analysis = &database.MessageAnalysis{Theme: result.Theme, Mood: result.Mood}
	}

	if err := s.store.Append(ctx, message); err != nil {
		return nil, analysis.Result{}, fmt.Errorf("failed to store user message: %w", err)
	}

	s.logger.InfoContext(ctx, "User message stored",
		"conversation_id", conversationID,
		"message_id", message.ID,
		"user_messages", len(contents),
		"theme", result.Theme,
		"mood", result.Mood)
	return message, result, nil
}

// reply composes and stores the bot message. Severity is scored on the new
// message text only, while the categories come from the analysed history.
func (s *Service) reply(ctx context.Context, conversationID, content string, result analysis.Result) (*database.Message, error) {
	message := &database.Message{
		ID:             newMessageID(),
		ConversationID: conversationID,
		Content:        s.generator.Generate(content, result),
		Sender:         database.SenderBot,
		Timestamp:      s.now(),
	}

	if err := s.store.Append(ctx, message); err != nil {
		s.logger.ErrorContext(ctx, "Failed to store reply",
			"conversation_id", conversationID, "error", err)
		return nil, fmt.Errorf("failed to store reply: %w", err)
	}

	s.logger.DebugContext(ctx, "Reply stored",
		"conversation_id", conversationID, "message_id", message.ID)
	return message, nil
}

// History returns the retained messages of a conversation.
func (s *Service) History(ctx context.Context, conversationID string) ([]database.Message, error) {
	return s.store.LoadAll(ctx, conversationID)
}

// newMessageID returns a time-ordered identifier.
func newMessageID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
