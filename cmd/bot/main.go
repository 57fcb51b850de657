package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DivaIsReal/catatduit/internal/bot"
	"github.com/DivaIsReal/catatduit/internal/config"
	"github.com/DivaIsReal/catatduit/internal/gcsuploader"
	"github.com/DivaIsReal/catatduit/internal/jobs"
	"github.com/DivaIsReal/catatduit/internal/jobs/inmemory"
	"github.com/DivaIsReal/catatduit/internal/ledger"
	"github.com/DivaIsReal/catatduit/internal/logger"
	"github.com/DivaIsReal/catatduit/internal/ocr"
	"github.com/DivaIsReal/catatduit/internal/parser"
)

func main() {
	// Initialize logger
	log := logger.New()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if cfg.TelegramToken == "" {
		log.Fatal().Msg("TELEGRAM_TOKEN is required")
	}

	ctx := context.Background()

	// Initialize the ledger. The bot still records locally-parsed
	// transactions in replies when the sheet is unavailable.
	var book ledger.Ledger
	if cfg.SpreadsheetID != "" {
		sheet, err := ledger.NewGoogleSheets(ctx, cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Google Sheets")
		}
		book = sheet
	} else {
		log.Warn().Msg("No SPREADSHEET_ID configured - transactions will not be persisted")
	}

	// Initialize the parser with the configured keyword tables
	p := parser.New(cfg.Keywords.Income, cfg.Keywords.ParserRules(), cfg.Timezone)

	// Initialize receipt infrastructure
	var uploader *gcsuploader.Uploader
	if cfg.GCSBucket != "" {
		uploader = gcsuploader.New(cfg.GCSBucket)
	} else {
		log.Warn().Msg("No GCS bucket configured - receipt photos will be disabled")
	}

	extractor, err := ocr.NewExtractor(ctx, cfg.Timezone, log)
	if err != nil {
		log.Warn().Err(err).Msg("Receipt OCR unavailable - photo messages will be rejected")
	}

	// Initialize job infrastructure
	jobStore := inmemory.NewStore()
	jobQueue := inmemory.NewQueue(100, 2, jobStore)

	// The bot only gets the publisher when the whole receipt pipeline is
	// configured, so photos are rejected immediately instead of being
	// enqueued into jobs that can never succeed.
	var publisher jobs.Publisher
	if uploader != nil && extractor != nil {
		publisher = jobQueue
	}

	// Initialize the bot
	tgBot, err := bot.New(cfg.TelegramToken, p, book, uploader, publisher, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Telegram bot")
	}

	// Create job handler for processing receipt jobs
	jobHandler := func(ctx context.Context, job *jobs.ProcessReceiptJob) error {
		log.Info().
			Str("job_id", job.JobID).
			Int64("chat_id", job.ChatID).
			Str("photo_uri", job.PhotoURI).
			Msg("Processing receipt job")

		err := processReceipt(ctx, job, uploader, extractor, tgBot, cfg.Timezone)
		if err != nil {
			log.Error().
				Err(err).
				Str("job_id", job.JobID).
				Msg("Receipt processing failed")

			// Last attempt: tell the user instead of retrying again.
			if job.RetryCount >= job.MaxRetries {
				tgBot.ReplyReceiptFailed(job.ChatID)
			}
			return err
		}

		log.Info().Str("job_id", job.JobID).Msg("Receipt processing completed")
		return nil
	}

	// Start job consumer in background
	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	if err := jobQueue.Start(workerCtx, jobHandler); err != nil {
		log.Fatal().Err(err).Msg("Failed to start job workers")
	}

	// Run the bot's update loop in a goroutine
	botCtx, cancelBot := context.WithCancel(ctx)
	defer cancelBot()

	go func() {
		log.Info().Msg("Starting Telegram bot")
		if err := tgBot.Run(botCtx); err != nil {
			log.Error().Err(err).Msg("Bot stopped with error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down bot...")

	cancelBot()
	cancelWorker()

	// Stop job queue and wait for in-flight jobs
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := jobQueue.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error stopping job queue")
	}

	log.Info().Msg("Bot exited")
}

// processReceipt runs one queued receipt end to end: download the
// archived photo, extract the fields, persist and confirm.
func processReceipt(ctx context.Context, job *jobs.ProcessReceiptJob, uploader *gcsuploader.Uploader, extractor *ocr.Extractor, tgBot *bot.Bot, loc *time.Location) error {
	if uploader == nil || extractor == nil {
		return fmt.Errorf("receipt pipeline is not configured")
	}

	image, err := uploader.FetchReceipt(ctx, job.PhotoURI)
	if err != nil {
		return fmt.Errorf("fetch receipt photo: %w", err)
	}

	fields, err := extractor.ExtractReceipt(ctx, image, "image/jpeg")
	if err != nil {
		return fmt.Errorf("extract receipt fields: %w", err)
	}

	tx := fields.Transaction(time.Now().In(loc), job.PhotoURI)
	tgBot.ReplyTransaction(ctx, job.ChatID, tx)
	return nil
}
