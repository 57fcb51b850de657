// Package inmemory holds the channel-and-map implementations of the job
// queue and store. State is lost on restart, which is acceptable for
// receipt jobs: the photo stays archived in GCS and can be resent.
package inmemory

import (
	"context"
	"fmt"
	"sync"

	"github.com/DivaIsReal/catatduit/internal/jobs"
)

// Store is an in-memory jobs.JobStore, safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	jobs map[string]*jobs.ProcessReceiptJob
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{jobs: make(map[string]*jobs.ProcessReceiptJob)}
}

// SaveJob stores a copy of the job, keyed by ID.
func (s *Store) SaveJob(ctx context.Context, job *jobs.ProcessReceiptJob) error {
	if job.JobID == "" {
		return fmt.Errorf("job ID is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	jobCopy := *job
	s.jobs[job.JobID] = &jobCopy
	return nil
}

// GetJob returns a copy of the job with the given ID.
func (s *Store) GetJob(ctx context.Context, jobID string) (*jobs.ProcessReceiptJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, exists := s.jobs[jobID]
	if !exists {
		return nil, fmt.Errorf("job not found: %s", jobID)
	}

	jobCopy := *job
	return &jobCopy, nil
}

// ListJobs returns copies of jobs matching the filter.
func (s *Store) ListJobs(ctx context.Context, filter jobs.JobFilter) ([]*jobs.ProcessReceiptJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*jobs.ProcessReceiptJob
	for _, job := range s.jobs {
		if filter.ChatID != 0 && job.ChatID != filter.ChatID {
			continue
		}
		if filter.Status != "" && job.Status != filter.Status {
			continue
		}
		jobCopy := *job
		result = append(result, &jobCopy)
	}

	if filter.Offset > 0 {
		if filter.Offset >= len(result) {
			return []*jobs.ProcessReceiptJob{}, nil
		}
		result = result[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(result) {
		result = result[:filter.Limit]
	}

	return result, nil
}

var _ jobs.JobStore = (*Store)(nil)
