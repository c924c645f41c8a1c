package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewBroadcastHandler returns a handler for the admin-only /broadcast
// command. Delivery is attempted to every approved user independently;
// per-recipient failures are tallied, never aborting the loop.
func NewBroadcastHandler(deps HandlerDeps) bot.HandlerFunc {
	return broadcastHandler{deps}.Handle
}

type broadcastHandler struct {
	deps HandlerDeps
}

func (h broadcastHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "broadcast")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Broadcast handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID

	message := commandArgument(update.Message.Text)
	if message == "" {
		sendReply(ctx, b, log, chatID, h.deps.Config.Messages.BroadcastUsage)
		return
	}

	ids, err := h.deps.Store.ListApprovedUserIDs(ctx)
	if err != nil {
		log.ErrorContext(ctx, "Failed to list approved users", "error", err)
		sendReply(ctx, b, log, chatID, h.deps.Config.Messages.GeneralError)
		return
	}

	log.InfoContext(ctx, "Handling /broadcast command", "chat_id", chatID, "recipients", len(ids))

	success, failed := deliverToAll(ctx, ids, func(ctx context.Context, userID int64) error {
		_, sendErr := b.SendMessage(ctx, &bot.SendMessageParams{ChatID: userID, Text: message})
		if sendErr != nil {
			log.WarnContext(ctx, "Broadcast delivery failed", "error", sendErr, "user_id", userID)
		}
		return sendErr
	})

	log.InfoContext(ctx, "Broadcast completed", "success", success, "failed", failed)
	sendReply(ctx, b, log, chatID, fmt.Sprintf(h.deps.Config.Messages.BroadcastResultFmt, success, failed))
}
