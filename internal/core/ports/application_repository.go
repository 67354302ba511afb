package ports

import (
	"context"
	"iter"

	"github.com/99minutos/job-marketplace/internal/core/domain"
)

// ApplicationFilter selects applications by job, by seeker, or both.
type ApplicationFilter struct {
	JobID    string
	SeekerID string
}

// ApplicationRepository persists applications. It does not check that the
// referenced job or seeker exist; callers do.
type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) error
	// List yields applications newest-first by AppliedAt, ties broken by ID
	// descending.
	List(ctx context.Context, filter ApplicationFilter) iter.Seq2[*domain.Application, error]
}
