// Package jobs defines the async job model for receipt processing.
// Reading a receipt photo takes a model round-trip, so the bot replies
// immediately and hands the work to a queue.
package jobs

import (
	"context"
	"time"
)

// JobStatus represents the current status of a job.
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
	JobStatusRetrying  JobStatus = "retrying"
)

// ProcessReceiptJob asks a worker to run OCR over an archived receipt
// photo, build the transaction and persist it, then report back to the
// originating chat.
type ProcessReceiptJob struct {
	// JobID is the unique identifier for this job.
	JobID string `json:"job_id"`

	// ChatID is the Telegram chat the result is reported to.
	ChatID int64 `json:"chat_id"`

	// PhotoURI is the gs:// URI of the archived receipt photo.
	PhotoURI string `json:"photo_uri"`

	// Status is the current status of the job.
	Status JobStatus `json:"status"`

	CreatedAt   time.Time  `json:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// Error contains failure details when Status is failed.
	Error string `json:"error,omitempty"`

	RetryCount int `json:"retry_count"`
	MaxRetries int `json:"max_retries"`
}

// Publisher enqueues receipt jobs. The abstraction keeps the bot
// independent of the queue implementation (in-memory today, a broker
// later).
type Publisher interface {
	PublishProcessReceipt(ctx context.Context, job *ProcessReceiptJob) error
	Close() error
}

// Consumer pulls jobs and runs them through a handler.
type Consumer interface {
	// Start begins consuming jobs; the handler is called per job.
	Start(ctx context.Context, handler JobHandler) error

	// Stop stops consuming and waits for in-flight jobs.
	Stop(ctx context.Context) error
}

// JobHandler processes one job. A returned error marks the job for
// retry until MaxRetries is exhausted.
type JobHandler func(ctx context.Context, job *ProcessReceiptJob) error

// JobStore tracks job state so failures can be inspected.
type JobStore interface {
	SaveJob(ctx context.Context, job *ProcessReceiptJob) error
	GetJob(ctx context.Context, jobID string) (*ProcessReceiptJob, error)
	ListJobs(ctx context.Context, filter JobFilter) ([]*ProcessReceiptJob, error)
}

// JobFilter selects jobs when listing.
type JobFilter struct {
	ChatID int64
	Status JobStatus
	Limit  int
	Offset int
}
