package service

import (
	"cmp"
	"context"
	"iter"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/99minutos/job-marketplace/internal/core/domain"
	"github.com/99minutos/job-marketplace/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu        sync.Mutex
	byID      map[string]*domain.User
	createErr error // if set, Create returns this error
	findErr   error // if set, Find* return this error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	for _, u := range r.byID {
		if u.Email == user.Email {
			return domain.ErrDuplicateEmail
		}
	}
	clone := *user
	r.byID[user.ID] = &clone
	return nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.byID {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) seed(id, email string, role domain.Role) *domain.User {
	u := &domain.User{ID: id, Email: email, Role: role}
	r.byID[id] = u
	return u
}

type stubJobRepo struct {
	mu        sync.Mutex
	byID      map[string]*domain.Job
	createErr error
	listErr   error
	findCalls int
}

func newStubJobRepo() *stubJobRepo {
	return &stubJobRepo{byID: make(map[string]*domain.Job)}
}

func (r *stubJobRepo) Create(_ context.Context, job *domain.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	clone := *job
	r.byID[job.ID] = &clone
	return nil
}

func (r *stubJobRepo) FindByID(_ context.Context, id string) (*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findCalls++
	j, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *j
	return &clone, nil
}

func (r *stubJobRepo) List(_ context.Context, f ports.JobFilter) iter.Seq2[*domain.Job, error] {
	return func(yield func(*domain.Job, error) bool) {
		if r.listErr != nil {
			yield(nil, r.listErr)
			return
		}
		r.mu.Lock()
		var matched []*domain.Job
		for _, j := range r.byID {
			if f.PosterID != "" && j.PosterID != f.PosterID {
				continue
			}
			clone := *j
			matched = append(matched, &clone)
		}
		r.mu.Unlock()
		slices.SortFunc(matched, func(a, b *domain.Job) int {
			return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), strings.Compare(b.ID, a.ID))
		})
		for _, j := range matched {
			if !yield(j, nil) {
				return
			}
		}
	}
}

func (r *stubJobRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubAppRepo struct {
	mu        sync.Mutex
	apps      []*domain.Application
	createErr error
}

func (r *stubAppRepo) Create(_ context.Context, app *domain.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	clone := *app
	r.apps = append(r.apps, &clone)
	return nil
}

func (r *stubAppRepo) List(_ context.Context, f ports.ApplicationFilter) iter.Seq2[*domain.Application, error] {
	return func(yield func(*domain.Application, error) bool) {
		r.mu.Lock()
		var matched []*domain.Application
		for _, a := range r.apps {
			if f.JobID != "" && a.JobID != f.JobID {
				continue
			}
			if f.SeekerID != "" && a.SeekerID != f.SeekerID {
				continue
			}
			clone := *a
			matched = append(matched, &clone)
		}
		r.mu.Unlock()
		slices.SortFunc(matched, func(a, b *domain.Application) int {
			return cmp.Or(b.AppliedAt.Compare(a.AppliedAt), strings.Compare(b.ID, a.ID))
		})
		for _, a := range matched {
			if !yield(a, nil) {
				return
			}
		}
	}
}
