package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/mindfulbot/internal/report"
)

// NewReportHandler returns a handler for the /report command.
func NewReportHandler(deps HandlerDeps) bot.HandlerFunc {
	return reportHandler{deps}.Handle
}

// reportHandler sends the weekly summary of the chat's conversation.
type reportHandler struct {
	deps HandlerDeps
}

func (h reportHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "report")

	if update.Message == nil {
		log.WarnContext(ctx, "Report handler received update with nil message", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	log.InfoContext(ctx, "Handling /report command", "chat_id", chatID)

	text := h.deps.Config.Messages.GeneralError
	summary, err := h.deps.Reports.Recompute(ctx, ConversationID(chatID))
	if err != nil {
		log.ErrorContext(ctx, "Failed to compute weekly report", "error", err, "chat_id", chatID)
	} else {
		text = report.FormatText(report.Build(summary, h.deps.Tables.Recommendations))
	}

	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text}); err != nil {
		log.ErrorContext(ctx, "Failed to send report", "error", err, "chat_id", chatID)
	}
}
