package ports

import (
	"context"
	"iter"

	"github.com/99minutos/job-marketplace/internal/core/domain"
)

// JobFilter narrows a job listing. An empty PosterID lists every job.
type JobFilter struct {
	PosterID string
}

// JobRepository persists job postings.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	FindByID(ctx context.Context, id string) (*domain.Job, error)
	// List yields jobs newest-first by CreatedAt, ties broken by ID
	// descending. The query runs when the sequence is ranged over.
	List(ctx context.Context, filter JobFilter) iter.Seq2[*domain.Job, error]
	// Delete removes the job and returns domain.ErrNotFound when no row
	// was removed.
	Delete(ctx context.Context, id string) error
}
