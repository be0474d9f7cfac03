package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/mindfulbot/internal/chat"
)

// NewChatHandler returns the default handler for plain text messages. It
// feeds the message through the chat pipeline and sends the reply once the
// deferred reply task has stored it.
func NewChatHandler(deps HandlerDeps) bot.HandlerFunc {
	return chatHandler{deps}.Handle
}

type chatHandler struct {
	deps HandlerDeps
}

func (h chatHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "chat")

	msg := update.Message
	if msg == nil || msg.From == nil {
		log.DebugContext(ctx, "Ignoring update without message or sender", "update_id", update.ID)
		return
	}
	if strings.HasPrefix(msg.Text, "/") {
		log.DebugContext(ctx, "Ignoring unknown command", "chat_id", msg.Chat.ID, "text", msg.Text)
		return
	}

	chatID := msg.Chat.ID
	conversationID := ConversationID(chatID)

	exchange, err := h.deps.Chat.Send(ctx, conversationID, msg.Text)
	if err != nil {
		log.WarnContext(ctx, "Message rejected", "error", err, "chat_id", chatID)
		h.send(ctx, b, chatID, msg.ID, h.errorText(err))
		return
	}

	if _, err := b.SendChatAction(ctx, &bot.SendChatActionParams{ChatID: chatID, Action: models.ChatActionTyping}); err != nil {
		log.DebugContext(ctx, "Failed to send typing action", "error", err, "chat_id", chatID)
	}

	waitCtx, cancel := context.WithTimeout(ctx, h.deps.Config.Telegram.ReplyTimeout)
	defer cancel()

	reply, err := exchange.Reply.Wait(waitCtx)
	if err != nil {
		log.ErrorContext(ctx, "Reply not available", "error", err, "chat_id", chatID,
			"message_id", exchange.UserMessage.ID)
		h.send(ctx, b, chatID, msg.ID, h.deps.Config.Messages.GeneralError)
		return
	}

	h.send(ctx, b, chatID, msg.ID, reply.Content)
}

func (h chatHandler) errorText(err error) string {
	messages := h.deps.Config.Messages
	switch {
	case errors.Is(err, chat.ErrEmptyMessage):
		return messages.EmptyMessage
	case errors.Is(err, chat.ErrMessageTooLong):
		return fmt.Sprintf(messages.MessageTooLong, messages.MaxLength)
	default:
		return messages.GeneralError
	}
}

func (h chatHandler) send(ctx context.Context, b *bot.Bot, chatID int64, replyTo int, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:          chatID,
		Text:            text,
		ReplyParameters: &models.ReplyParameters{MessageID: replyTo},
	})
	if err != nil {
		h.deps.Logger.ErrorContext(ctx, "Failed to send message", "handler", "chat", "error", err, "chat_id", chatID)
	}
}
