package inmemory

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DivaIsReal/catatduit/internal/jobs"
)

func TestQueueProcessesJob(t *testing.T) {
	store := NewStore()
	queue := NewQueue(10, 1, store)
	ctx := context.Background()

	done := make(chan string, 1)
	handler := func(ctx context.Context, job *jobs.ProcessReceiptJob) error {
		done <- job.PhotoURI
		return nil
	}
	require.NoError(t, queue.Start(ctx, handler))

	job := &jobs.ProcessReceiptJob{ChatID: 42, PhotoURI: "gs://b/receipts/x.jpg"}
	require.NoError(t, queue.PublishProcessReceipt(ctx, job))

	select {
	case uri := <-done:
		assert.Equal(t, "gs://b/receipts/x.jpg", uri)
	case <-time.After(2 * time.Second):
		t.Fatal("job was never processed")
	}

	// Publish fills in defaults.
	assert.NotEmpty(t, job.JobID)
	assert.Equal(t, 3, job.MaxRetries)

	// The store eventually records completion.
	require.Eventually(t, func() bool {
		saved, err := store.GetJob(ctx, job.JobID)
		return err == nil && saved.Status == jobs.JobStatusCompleted
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, queue.Close())
}

func TestQueueRetriesUntilExhausted(t *testing.T) {
	store := NewStore()
	queue := NewQueue(10, 1, store)
	ctx := context.Background()

	var attempts atomic.Int32
	handler := func(ctx context.Context, job *jobs.ProcessReceiptJob) error {
		attempts.Add(1)
		return errors.New("ocr unavailable")
	}
	require.NoError(t, queue.Start(ctx, handler))

	job := &jobs.ProcessReceiptJob{ChatID: 1, PhotoURI: "gs://b/x.jpg", MaxRetries: 1}
	require.NoError(t, queue.PublishProcessReceipt(ctx, job))

	require.Eventually(t, func() bool {
		saved, err := store.GetJob(ctx, job.JobID)
		return err == nil && saved.Status == jobs.JobStatusFailed
	}, 5*time.Second, 50*time.Millisecond)

	assert.Equal(t, int32(2), attempts.Load(), "one initial attempt plus one retry")

	saved, err := store.GetJob(ctx, job.JobID)
	require.NoError(t, err)
	assert.Equal(t, "ocr unavailable", saved.Error)

	require.NoError(t, queue.Close())
}

func TestQueueRejectsPublishAfterClose(t *testing.T) {
	queue := NewQueue(1, 1, NewStore())
	require.NoError(t, queue.Close())

	err := queue.PublishProcessReceipt(context.Background(), &jobs.ProcessReceiptJob{})
	assert.Error(t, err)
}

func TestQueueStopWaitsForInflight(t *testing.T) {
	queue := NewQueue(1, 1, nil)
	ctx := context.Background()

	release := make(chan struct{})
	started := make(chan struct{})
	handler := func(ctx context.Context, job *jobs.ProcessReceiptJob) error {
		close(started)
		<-release
		return nil
	}
	require.NoError(t, queue.Start(ctx, handler))
	require.NoError(t, queue.PublishProcessReceipt(ctx, &jobs.ProcessReceiptJob{PhotoURI: "gs://b/x"}))

	<-started

	stopCtx, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, queue.Stop(stopCtx), context.DeadlineExceeded, "stop must not return while a job is running")

	close(release)
	assert.NoError(t, queue.Stop(context.Background()))
}
