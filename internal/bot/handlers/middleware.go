// Package handlers contains Telegram bot command and message handlers,
// along with their registration logic and middleware.
package handlers

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// PrivateOnly creates a middleware that drops messages from group chats.
// Conversations are personal, so nothing is stored or answered outside
// private chats.
func PrivateOnly(deps HandlerDeps) tgbot.Middleware {
	return func(next tgbot.HandlerFunc) tgbot.HandlerFunc {
		return func(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
			if update.Message == nil {
				return
			}

			if update.Message.Chat.Type != models.ChatTypePrivate {
				deps.Logger.With("middleware", "PrivateOnly").DebugContext(ctx, "Ignoring non-private chat",
					"chat_id", update.Message.Chat.ID, "chat_type", update.Message.Chat.Type)
				return
			}

			next(ctx, bot, update)
		}
	}
}
