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

// ApplicationRepository keeps applications in memory.
type ApplicationRepository struct {
	mu   sync.RWMutex
	apps map[string]*domain.Application
}

func NewApplicationRepository() *ApplicationRepository {
	return &ApplicationRepository{apps: make(map[string]*domain.Application)}
}

func (r *ApplicationRepository) Create(ctx context.Context, app *domain.Application) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("create application: %w: %v", domain.ErrStoreUnavailable, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *app
	r.apps[app.ID] = &clone
	return nil
}

// List snapshots matching applications when iteration starts.
func (r *ApplicationRepository) List(ctx context.Context, filter ports.ApplicationFilter) iter.Seq2[*domain.Application, error] {
	return func(yield func(*domain.Application, error) bool) {
		if err := ctx.Err(); err != nil {
			yield(nil, fmt.Errorf("list applications: %w: %v", domain.ErrStoreUnavailable, err))
			return
		}

		r.mu.RLock()
		matched := make([]*domain.Application, 0)
		for _, a := range r.apps {
			if filter.JobID != "" && a.JobID != filter.JobID {
				continue
			}
			if filter.SeekerID != "" && a.SeekerID != filter.SeekerID {
				continue
			}
			clone := *a
			matched = append(matched, &clone)
		}
		r.mu.RUnlock()

		sortNewestFirst(matched, func(a *domain.Application) (time.Time, string) { return a.AppliedAt, a.ID })
		for _, a := range matched {
			if !yield(a, nil) {
				return
			}
		}
	}
}
