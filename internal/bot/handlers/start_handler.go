package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewStartHandler returns a handler for the /start command. It registers
// the sender in the user registry, optionally verifies channel membership,
// and replies according to the sender's approval state.
func NewStartHandler(deps HandlerDeps) bot.HandlerFunc {
	return startHandler{deps}.Handle
}

// startHandler processes the /start command using injected dependencies.
type startHandler struct {
	deps HandlerDeps
}

func (h startHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "start")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Start handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	user := update.Message.From
	chatID := update.Message.Chat.ID
	log.InfoContext(ctx, "Handling /start command", "chat_id", chatID, "user_id", user.ID)

	if err := h.deps.Store.UpsertUser(ctx, user.ID, user.Username); err != nil {
		log.ErrorContext(ctx, "Failed to register user", "error", err, "user_id", user.ID)
		sendReply(ctx, b, log, chatID, h.deps.Config.Messages.GeneralError)
		return
	}

	// Membership gating is skipped when no channel is configured.
	if channelID := h.deps.Config.Telegram.ChannelID; channelID != 0 {
		member, err := b.GetChatMember(ctx, &bot.GetChatMemberParams{
			ChatID: channelID,
			UserID: user.ID,
		})
		if err != nil {
			log.ErrorContext(ctx, "Channel membership check failed", "error", err, "channel_id", channelID, "user_id", user.ID)
			sendReply(ctx, b, log, chatID, h.deps.Config.Messages.MembershipCheckFailed)
			return
		}
		if !membershipAllows(member) {
			log.InfoContext(ctx, "User not a channel member", "channel_id", channelID, "user_id", user.ID)
			sendReply(ctx, b, log, chatID, fmt.Sprintf(h.deps.Config.Messages.JoinChannelFmt, channelID))
			return
		}
	}

	approved, err := h.deps.Store.IsApproved(ctx, user.ID)
	if err != nil {
		log.ErrorContext(ctx, "Failed to check approval state", "error", err, "user_id", user.ID)
		sendReply(ctx, b, log, chatID, h.deps.Config.Messages.GeneralError)
		return
	}

	if approved {
		sendReply(ctx, b, log, chatID, h.deps.Config.Messages.Welcome)
	} else {
		sendReply(ctx, b, log, chatID, h.deps.Config.Messages.UnderReview)
	}
}
