package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewApproveHandler returns a handler for the admin-only /approve command.
// It parses the target user id, flips the approval flag in the registry,
// notifies the approved user, and reports the outcome to the admin.
func NewApproveHandler(deps HandlerDeps) bot.HandlerFunc {
	return approveHandler{deps}.Handle
}

type approveHandler struct {
	deps HandlerDeps
}

func (h approveHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "approve")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Approve handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID

	targetID, err := parseTargetID(update.Message.Text)
	if err != nil {
		log.InfoContext(ctx, "Approve command with bad argument", "error", err, "chat_id", chatID)
		sendReply(ctx, b, log, chatID, h.deps.Config.Messages.ApproveUsage)
		return
	}

	log.InfoContext(ctx, "Handling /approve command", "chat_id", chatID, "target_user_id", targetID)

	if err := h.deps.Store.ApproveUser(ctx, targetID); err != nil {
		log.ErrorContext(ctx, "Failed to approve user", "error", err, "target_user_id", targetID)
		sendReply(ctx, b, log, chatID, h.deps.Config.Messages.GeneralError)
		return
	}

	// Notify the approved user. The user may never have opened a chat with
	// the bot, so delivery failure is expected and does not undo approval.
	_, err = b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: targetID,
		Text:   h.deps.Config.Messages.ApprovedNotice,
	})
	if err != nil {
		log.WarnContext(ctx, "Failed to notify approved user", "error", err, "target_user_id", targetID)
	}

	sendReply(ctx, b, log, chatID, fmt.Sprintf(h.deps.Config.Messages.ApproveSuccessFmt, targetID))
}
