package memory

import (
	"context"
	"fmt"
	"iter"
	"sync"
	"time"

	"github.com/99minutos/job-marketplace/internal/core/domain"
	"github.com/99minutos/job-marketplace/internal/core/ports"
)

// JobRepository keeps jobs in memory.
type JobRepository struct {
	mu   sync.RWMutex
	jobs map[string]*domain.Job
}

func NewJobRepository() *JobRepository {
	return &JobRepository{jobs: make(map[string]*domain.Job)}
}

func (r *JobRepository) Create(ctx context.Context, job *domain.Job) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("create job: %w: %v", domain.ErrStoreUnavailable, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.jobs[job.ID] = cloneJob(job)
	return nil
}

func (r *JobRepository) FindByID(ctx context.Context, id string) (*domain.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("find job: %w: %v", domain.ErrStoreUnavailable, err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	j, ok := r.jobs[id]
	if !ok {
		return nil, fmt.Errorf("job: %w", domain.ErrNotFound)
	}
	return cloneJob(j), nil
}

// List snapshots matching jobs when iteration starts.
func (r *JobRepository) List(ctx context.Context, filter ports.JobFilter) iter.Seq2[*domain.Job, error] {
	return func(yield func(*domain.Job, error) bool) {
		if err := ctx.Err(); err != nil {
			yield(nil, fmt.Errorf("list jobs: %w: %v", domain.ErrStoreUnavailable, err))
			return
		}

		r.mu.RLock()
		matched := make([]*domain.Job, 0, len(r.jobs))
		for _, j := range r.jobs {
			if filter.PosterID != "" && j.PosterID != filter.PosterID {
				continue
			}
			matched = append(matched, cloneJob(j))
		}
		r.mu.RUnlock()

		sortNewestFirst(matched, func(j *domain.Job) (time.Time, string) { return j.CreatedAt, j.ID })
		for _, j := range matched {
			if !yield(j, nil) {
				return
			}
		}
	}
}

func (r *JobRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("delete job: %w: %v", domain.ErrStoreUnavailable, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.jobs[id]; !ok {
		return fmt.Errorf("job: %w", domain.ErrNotFound)
	}
	delete(r.jobs, id)
	return nil
}

func cloneJob(j *domain.Job) *domain.Job {
	clone := *j
	if j.Compensation.Amount != nil {
		amount := *j.Compensation.Amount
		clone.Compensation.Amount = &amount
	}
	return &clone
}
