package bot

import (
	"context"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/DivaIsReal/catatduit/internal/gcsuploader"
	"github.com/DivaIsReal/catatduit/internal/jobs/inmemory"
)

func TestSplitArgs(t *testing.T) {
	assert.Equal(t, []string{"15/01/2026", "makan siang 25rb"}, splitArgs("15/01/2026 makan siang 25rb"))
	assert.Equal(t, []string{"15/01/2026"}, splitArgs("  15/01/2026  "))
	assert.Equal(t, []string{""}, splitArgs(""))
}

// Photos are only accepted when both the archive bucket and the job
// publisher are wired; a missing OCR stage means the caller withholds
// the publisher.
func TestReceiptsEnabled(t *testing.T) {
	b := &Bot{}
	assert.False(t, b.receiptsEnabled())

	b.uploader = gcsuploader.New("bucket")
	assert.False(t, b.receiptsEnabled(), "uploader alone is not enough")

	b.publisher = inmemory.NewQueue(1, 1, nil)
	assert.True(t, b.receiptsEnabled())

	b.uploader = nil
	assert.False(t, b.receiptsEnabled())
}

func TestLoopReturnsNilOnCancel(t *testing.T) {
	b := &Bot{log: zerolog.Nop()}
	updates := make(chan tgbotapi.Update)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- b.loop(ctx, updates) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err, "cancellation is a clean shutdown")
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop on cancel")
	}
}

func TestLoopReturnsNilOnClosedChannel(t *testing.T) {
	b := &Bot{log: zerolog.Nop()}
	updates := make(chan tgbotapi.Update)
	close(updates)

	assert.NoError(t, b.loop(context.Background(), updates))
}
