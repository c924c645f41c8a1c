package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// sendReply sends a plain text message to a chat, logging delivery failures.
// Reply delivery failure is never propagated; the handler already did its work.
func sendReply(ctx context.Context, b *bot.Bot, log *slog.Logger, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send reply", "error", err, "chat_id", chatID)
	}
}

// membershipAllows reports whether a chat member status grants access:
// owners, administrators, and plain members pass; restricted, left, and
// banned users do not.
func membershipAllows(member *models.ChatMember) bool {
	if member == nil {
		return false
	}
	switch member.Type {
	case models.ChatMemberTypeOwner,
		models.ChatMemberTypeAdministrator,
		models.ChatMemberTypeMember:
		return true
	default:
		return false
	}
}

// parseTargetID extracts the numeric user id argument from a command like
// "/approve 12345". It fails on a missing or non-numeric argument.
func parseTargetID(text string) (int64, error) {
	args := strings.Fields(text)
	if len(args) < 2 {
		return 0, fmt.Errorf("missing user id argument")
	}

	id, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid user id %q: %w", args[1], err)
	}
	return id, nil
}

// commandArgument returns the free-text argument following a command,
// e.g. "/broadcast hello there" -> "hello there". The command token may
// carry a bot mention suffix ("/broadcast@somebot").
func commandArgument(text string) string {
	_, rest, found := strings.Cut(strings.TrimSpace(text), " ")
	if !found {
		return ""
	}
	return strings.TrimSpace(rest)
}

// deliverToAll attempts delivery to each recipient independently, counting
// successes and failures. A failing recipient never aborts the loop.
func deliverToAll(ctx context.Context, ids []int64, send func(context.Context, int64) error) (success, failed int) {
	for _, id := range ids {
		if err := send(ctx, id); err != nil {
			failed++
			continue
		}
		success++
	}
	return success, failed
}
