// Package handlers contains Telegram bot command and message handlers,
// along with their registration logic and middleware.
package handlers

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// AdminOnly creates a middleware that checks if the message sender is the configured admin user.
// If not, it sends a "Not Authorized" message and stops processing by returning early.
func AdminOnly(deps HandlerDeps) tgbot.Middleware {
	return func(next tgbot.HandlerFunc) tgbot.HandlerFunc {
		return func(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
			// Ensure it's a message update and From is not nil
			if update.Message == nil || update.Message.From == nil {
				next(ctx, bot, update)
				return
			}

			if !isFromAdmin(deps.Config.Telegram.AdminID, update) {
				chatID := update.Message.Chat.ID
				log := deps.Logger.With("middleware", "AdminOnly")
				log.WarnContext(ctx, "Unauthorized access attempt", "user_id", update.Message.From.ID, "chat_id", chatID)

				_, err := bot.SendMessage(ctx, &tgbot.SendMessageParams{
					ChatID: chatID,
					Text:   deps.Config.Messages.NotAuthorized,
				})
				if err != nil {
					log.ErrorContext(ctx, "Failed to send unauthorized message", "error", err, "chat_id", chatID)
				}
				return // Stop processing
			}

			// User is the admin, proceed to the next handler
			next(ctx, bot, update)
		}
	}
}

// isFromAdmin reports whether the update's sender is the configured admin.
func isFromAdmin(adminID int64, update *models.Update) bool {
	return update.Message != nil && update.Message.From != nil && update.Message.From.ID == adminID
}
