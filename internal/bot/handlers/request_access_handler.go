package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewRequestAccessHandler returns a handler for the /request_access command.
// It notifies the configured admin about the requester and confirms to the
// requester that the admin has been notified.
func NewRequestAccessHandler(deps HandlerDeps) bot.HandlerFunc {
	return requestAccessHandler{deps}.Handle
}

type requestAccessHandler struct {
	deps HandlerDeps
}

func (h requestAccessHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "request_access")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Request access handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	user := update.Message.From
	chatID := update.Message.Chat.ID
	log.InfoContext(ctx, "Handling /request_access command", "chat_id", chatID, "user_id", user.ID)

	notification := fmt.Sprintf(h.deps.Config.Messages.AccessRequestFmt, user.Username, user.ID, user.ID)
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: h.deps.Config.Telegram.AdminID,
		Text:   notification,
	})
	if err != nil {
		log.ErrorContext(ctx, "Failed to notify admin of access request", "error", err, "user_id", user.ID)
		sendReply(ctx, b, log, chatID, h.deps.Config.Messages.GeneralError)
		return
	}

	sendReply(ctx, b, log, chatID, h.deps.Config.Messages.AccessRequested)
}
