// Package bot is the Telegram transport: it routes commands and
// messages to the parser, the ledger and the receipt pipeline, and
// formats the replies. All domain logic lives in the packages it calls.
package bot

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/DivaIsReal/catatduit/internal/domain"
	"github.com/DivaIsReal/catatduit/internal/gcsuploader"
	"github.com/DivaIsReal/catatduit/internal/jobs"
	"github.com/DivaIsReal/catatduit/internal/ledger"
	"github.com/DivaIsReal/catatduit/internal/parser"
)

// Bot wires the Telegram API to the collaborators.
type Bot struct {
	api       *tgbotapi.BotAPI
	parser    *parser.Parser
	ledger    ledger.Ledger
	uploader  *gcsuploader.Uploader
	publisher jobs.Publisher
	log       zerolog.Logger
}

// New connects to the Telegram Bot API. The ledger and publisher may be
// nil when unconfigured; the bot then parses and replies without
// persisting, annotating replies accordingly.
func New(token string, p *parser.Parser, l ledger.Ledger, up *gcsuploader.Uploader, pub jobs.Publisher, log zerolog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("bot: connect to Telegram: %w", err)
	}

	log.Info().Str("username", api.Self.UserName).Msg("Connected to Telegram")
	return &Bot{
		api:       api,
		parser:    p,
		ledger:    l,
		uploader:  up,
		publisher: pub,
		log:       log,
	}, nil
}

// Run polls for updates until the context is cancelled. Cancellation is
// a normal shutdown, not an error.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	return b.loop(ctx, updates)
}

func (b *Bot) loop(ctx context.Context, updates tgbotapi.UpdatesChannel) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error().Interface("panic", r).Int64("chat_id", msg.Chat.ID).Msg("Handler panicked")
			b.reply(msg.Chat.ID, genericErrorMessage)
		}
	}()

	switch {
	case msg.IsCommand():
		b.handleCommand(ctx, msg)
	case len(msg.Photo) > 0:
		b.handlePhoto(ctx, msg)
	case msg.Text != "":
		b.handleText(ctx, msg, msg.Text, time.Time{})
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.reply(msg.Chat.ID, welcomeMessage)
	case "help":
		b.reply(msg.Chat.ID, helpMessage)
	case "saldo":
		b.handleBalance(ctx, msg.Chat.ID)
	case "catat":
		b.handleBackdate(ctx, msg)
	default:
		b.reply(msg.Chat.ID, helpMessage)
	}
}

func (b *Bot) handleBalance(ctx context.Context, chatID int64) {
	if b.ledger == nil {
		b.reply(chatID, "ℹ️ Google Sheets belum dikonfigurasi (SPREADSHEET_ID/credentials.json).")
		return
	}

	balance, err := b.ledger.Balance(ctx)
	if err != nil {
		b.log.Error().Err(err).Msg("Failed to read balance")
		b.reply(chatID, genericErrorMessage)
		return
	}

	b.reply(chatID, fmt.Sprintf("💰 **SALDO KAMU**\n\nRp %s", domain.FormatAmount(balance)))
}

// handleBackdate implements "/catat DD/MM/YYYY <message>": the date is
// an explicit override, so the parser skips text date resolution.
func (b *Bot) handleBackdate(ctx context.Context, msg *tgbotapi.Message) {
	args := splitArgs(msg.CommandArguments())
	if len(args) < 2 {
		b.reply(msg.Chat.ID, badDateMessage)
		return
	}

	date, err := b.parser.ParseDateLiteral(args[0])
	if err != nil {
		b.reply(msg.Chat.ID, badDateMessage)
		return
	}

	b.handleText(ctx, msg, args[1], date)
}

// handleText parses one message and persists the result. A parse
// failure is reported to the user and aborts; a persistence failure
// keeps the parsed transaction in the reply with a "not saved" note.
func (b *Bot) handleText(ctx context.Context, msg *tgbotapi.Message, text string, explicit time.Time) {
	var (
		tx  *domain.Transaction
		err error
	)
	if explicit.IsZero() {
		tx, err = b.parser.Parse(text)
	} else {
		tx, err = b.parser.ParseWithDate(text, explicit)
	}
	if err != nil {
		b.log.Debug().Err(err).Str("text", text).Msg("Parse failed")
		b.reply(msg.Chat.ID, noAmountMessage)
		return
	}

	b.persistAndReply(ctx, msg.Chat.ID, tx)
}

// persistAndReply appends a transaction to the ledger and sends the
// confirmation, shared by the text and receipt paths.
func (b *Bot) persistAndReply(ctx context.Context, chatID int64, tx *domain.Transaction) {
	response := domain.FormatMessage(tx)

	if b.ledger == nil {
		response += "\n\nℹ️ Google Sheets belum dikonfigurasi (SPREADSHEET_ID/credentials.json)."
		b.reply(chatID, response)
		return
	}

	if err := b.ledger.AddTransaction(ctx, tx); err != nil {
		b.log.Error().Err(err).Msg("Failed to persist transaction")
		b.reply(chatID, response+notSavedNote)
		return
	}

	response += "\n\n✅ Tersimpan ke Google Sheets!"
	if balance, err := b.ledger.Balance(ctx); err == nil {
		response += fmt.Sprintf("\n💰 Saldo Terkini: Rp %s", domain.FormatAmount(balance))
	}
	b.reply(chatID, response)
}

// receiptsEnabled reports whether the photo path is fully wired. The
// caller nils out the publisher when any stage (bucket, OCR) is
// unconfigured, so photos are rejected up front instead of failing in
// the worker.
func (b *Bot) receiptsEnabled() bool {
	return b.uploader != nil && b.publisher != nil
}

// handlePhoto archives the receipt photo and enqueues it for OCR. The
// heavy lifting happens in the worker; the user gets an immediate ack.
func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message) {
	if !b.receiptsEnabled() {
		b.reply(msg.Chat.ID, receiptsDisabledMessage)
		return
	}

	// Telegram sends several sizes; the last is the largest.
	photo := msg.Photo[len(msg.Photo)-1]

	data, err := b.downloadPhoto(ctx, photo.FileID)
	if err != nil {
		b.log.Error().Err(err).Msg("Failed to download photo")
		b.reply(msg.Chat.ID, genericErrorMessage)
		return
	}

	uri, err := b.uploader.UploadReceipt(ctx, data, "image/jpeg", time.Now())
	if err != nil {
		b.log.Error().Err(err).Msg("Failed to archive receipt photo")
		b.reply(msg.Chat.ID, genericErrorMessage)
		return
	}

	job := &jobs.ProcessReceiptJob{ChatID: msg.Chat.ID, PhotoURI: uri}
	if err := b.publisher.PublishProcessReceipt(ctx, job); err != nil {
		b.log.Error().Err(err).Msg("Failed to enqueue receipt job")
		b.reply(msg.Chat.ID, genericErrorMessage)
		return
	}

	b.log.Info().Str("job_id", job.JobID).Str("photo_uri", uri).Msg("Receipt job enqueued")
	b.reply(msg.Chat.ID, receiptQueuedMessage)
}

func (b *Bot) downloadPhoto(ctx context.Context, fileID string) ([]byte, error) {
	url, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("bot: resolve file URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bot: download photo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bot: download photo: status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// Reply sends a plain notification to a chat, used by the receipt
// worker to report job outcomes.
func (b *Bot) Reply(chatID int64, text string) {
	b.reply(chatID, text)
}

// ReplyReceiptFailed tells a chat its receipt could not be read.
func (b *Bot) ReplyReceiptFailed(chatID int64) {
	b.reply(chatID, receiptFailedMessage)
}

// ReplyTransaction sends the confirmation for a worker-produced
// transaction after persisting it.
func (b *Bot) ReplyTransaction(ctx context.Context, chatID int64, tx *domain.Transaction) {
	b.persistAndReply(ctx, chatID, tx)
}

func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send reply")
	}
}

// splitArgs splits command arguments into the first token and the rest.
func splitArgs(s string) []string {
	return strings.SplitN(strings.TrimSpace(s), " ", 2)
}
