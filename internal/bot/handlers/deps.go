package handlers

import (
	"log/slog"
	"strconv"

	"github.com/edgard/mindfulbot/internal/chat"
	"github.com/edgard/mindfulbot/internal/config"
	"github.com/edgard/mindfulbot/internal/keywords"
	"github.com/edgard/mindfulbot/internal/report"
)

// HandlerDeps provides dependencies for Telegram command handlers.
type HandlerDeps struct {
	Logger  *slog.Logger
	Config  *config.Config
	Chat    *chat.Service
	Reports *report.Aggregator
	Tables  *keywords.Tables
}

// ConversationID maps a Telegram chat to its conversation in the message store.
func ConversationID(chatID int64) string {
	return "tg:" + strconv.FormatInt(chatID, 10)
}
