package handlers

import (
	"log/slog"

	"golang.org/x/sync/semaphore"

	"github.com/edfarias/picrelay/internal/config"
	"github.com/edfarias/picrelay/internal/database"
)

// HandlerDeps provides dependencies for Telegram command handlers.
// Transforms is a weighted semaphore bounding concurrent image work so
// slow transforms cannot starve unrelated command handling.
type HandlerDeps struct {
	Logger     *slog.Logger
	Config     *config.Config
	Store      database.Store
	Transforms *semaphore.Weighted
}
