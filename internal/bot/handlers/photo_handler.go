package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"

	"github.com/edfarias/picrelay/internal/imaging"
)

// NewPhotoHandler returns the default update handler. It reacts only to
// photo messages: approved senders get their image resized and relayed
// back, everyone else gets a rejection reply.
//
// Transform work (download, decode, resample, encode) runs under the
// shared semaphore so a burst of large uploads cannot monopolize the
// process; all transient files carry per-request unique names and are
// removed on every exit path.
func NewPhotoHandler(deps HandlerDeps) bot.HandlerFunc {
	format, err := imaging.ParseFormat(deps.Config.Image.Format)
	if err != nil {
		// Config validation guarantees jpeg|png; keep a safe fallback anyway.
		format = imaging.FormatJPEG
	}

	h := photoHandler{
		deps: deps,
		opts: imaging.Options{
			MaxWidth:         deps.Config.Image.MaxWidth,
			MaxHeight:        deps.Config.Image.MaxHeight,
			Quality:          deps.Config.Image.Quality,
			Format:           format,
			PreserveMetadata: deps.Config.Image.PreserveMetadata,
		},
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	return h.Handle
}

type photoHandler struct {
	deps       HandlerDeps
	opts       imaging.Options
	httpClient *http.Client
}

func (h photoHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil || len(update.Message.Photo) == 0 {
		return
	}

	log := h.deps.Logger.With("handler", "photo")
	user := update.Message.From
	chatID := update.Message.Chat.ID

	approved, err := h.deps.Store.IsApproved(ctx, user.ID)
	if err != nil {
		log.ErrorContext(ctx, "Failed to check approval state", "error", err, "user_id", user.ID)
		sendReply(ctx, b, log, chatID, h.deps.Config.Messages.GeneralError)
		return
	}
	if !approved {
		log.InfoContext(ctx, "Rejected photo from unapproved user", "user_id", user.ID)
		sendReply(ctx, b, log, chatID, h.deps.Config.Messages.NotApproved)
		return
	}

	if err := h.deps.Transforms.Acquire(ctx, 1); err != nil {
		log.WarnContext(ctx, "Transform slot acquisition aborted", "error", err, "user_id", user.ID)
		return
	}
	defer h.deps.Transforms.Release(1)

	log.InfoContext(ctx, "Processing photo upload", "chat_id", chatID, "user_id", user.ID)
	startTime := time.Now()

	if err := h.process(ctx, b, update); err != nil {
		log.ErrorContext(ctx, "Image processing failed", "error", err, "chat_id", chatID, "user_id", user.ID)
		sendReply(ctx, b, log, chatID, h.deps.Config.Messages.ProcessingFailed)
		return
	}

	log.InfoContext(ctx, "Photo processed and relayed", "chat_id", chatID, "user_id", user.ID, "duration", time.Since(startTime))
}

// process runs the download -> transform -> relay pipeline. Both transient
// files are removed before it returns, whatever the outcome.
func (h photoHandler) process(ctx context.Context, b *bot.Bot, update *models.Update) error {
	// The transport orders variants by size; the last one is the largest.
	photo := update.Message.Photo[len(update.Message.Photo)-1]

	file, err := b.GetFile(ctx, &bot.GetFileParams{FileID: photo.FileID})
	if err != nil {
		return fmt.Errorf("failed to resolve file reference: %w", err)
	}

	tempDir := h.deps.Config.Image.TempDir
	inputPath := filepath.Join(tempDir, fmt.Sprintf("in_%s.jpg", uuid.NewString()))
	outputPath := filepath.Join(tempDir, fmt.Sprintf("out_%s%s", uuid.NewString(), h.outputExt()))

	if err := h.download(ctx, b.FileDownloadLink(file), inputPath); err != nil {
		return fmt.Errorf("failed to download photo: %w", err)
	}
	defer func() {
		_ = os.Remove(inputPath)
	}()

	if !imaging.IsValid(inputPath) {
		return fmt.Errorf("uploaded file is not a decodable image")
	}

	// Transform removes its own partial output on failure.
	if err := imaging.Transform(inputPath, outputPath, h.opts); err != nil {
		return fmt.Errorf("transform failed: %w", err)
	}
	defer func() {
		_ = os.Remove(outputPath)
	}()

	out, err := os.Open(outputPath)
	if err != nil {
		return fmt.Errorf("failed to open transform output: %w", err)
	}
	defer func() {
		_ = out.Close()
	}()

	_, err = b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:  update.Message.Chat.ID,
		Photo:   &models.InputFileUpload{Filename: "processed" + h.outputExt(), Data: out},
		Caption: h.deps.Config.Messages.ProcessedCaption,
	})
	if err != nil {
		return fmt.Errorf("failed to relay processed photo: %w", err)
	}

	return nil
}

// download fetches a file by URL into path; on failure no file is left behind.
func (h photoHandler) download(ctx context.Context, url, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d fetching file", resp.StatusCode)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if _, err := io.Copy(f, resp.Body); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return err
	}

	return nil
}

func (h photoHandler) outputExt() string {
	if h.opts.Format == imaging.FormatPNG {
		return ".png"
	}
	return ".jpg"
}
