package service

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/99minutos/job-marketplace/internal/core/domain"
	"github.com/99minutos/job-marketplace/internal/core/ports"
	"github.com/99minutos/job-marketplace/internal/pkg/idgen"
	"github.com/99minutos/job-marketplace/pkg/logger"
)

const maxMessageLen = 5000

// ApplicationService records seeker applications against existing jobs and
// controls who may read them.
type ApplicationService struct {
	apps   ports.ApplicationRepository
	jobs   ports.JobRepository
	users  ports.UserRepository
	now    func() time.Time
	newID  func() string
	logger zerolog.Logger
}

func NewApplicationService(
	apps ports.ApplicationRepository,
	jobs ports.JobRepository,
	users ports.UserRepository,
	logger zerolog.Logger,
) *ApplicationService {
	return &ApplicationService{
		apps:   apps,
		jobs:   jobs,
		users:  users,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  idgen.New,
		logger: logger,
	}
}

// Submit records an application by seekerID to jobID. Repeat submissions to
// the same job are accepted and stored as separate applications.
func (s *ApplicationService) Submit(ctx context.Context, jobID, seekerID, message string) (*domain.Application, error) {
	if jobID == "" {
		return nil, fmt.Errorf("submit application: job: %w", domain.ErrNotFound)
	}
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("submit application: job: %w", err)
	}

	seeker, err := s.users.FindByID(ctx, seekerID)
	if err != nil {
		return nil, fmt.Errorf("submit application: seeker: %w", err)
	}
	if seeker.Role != domain.RoleSeeker {
		return nil, fmt.Errorf("submit application: %w", domain.ErrRoleMismatch)
	}

	message = strings.TrimSpace(message)
	if utf8.RuneCountInString(message) > maxMessageLen {
		return nil, invalid(fmt.Sprintf("message must be at most %d characters", maxMessageLen))
	}

	app := &domain.Application{
		ID:        s.newID(),
		JobID:     job.ID,
		SeekerID:  seeker.ID,
		Message:   message,
		AppliedAt: s.now(),
	}
	if err := s.apps.Create(ctx, app); err != nil {
		logger.From(ctx, &s.logger).Error().Err(err).Str("job_id", job.ID).Msg("failed to create application")
		return nil, err
	}

	logger.From(ctx, &s.logger).Info().Str("application_id", app.ID).Str("job_id", job.ID).Str("seeker_id", seeker.ID).Msg("application submitted")
	return app, nil
}

// ListForJob returns the applications to jobID, newest first. Only the job's
// owner may list them; the check happens before the sequence is returned.
func (s *ApplicationService) ListForJob(ctx context.Context, jobID, requestorID string) (iter.Seq2[*domain.Application, error], error) {
	if jobID == "" {
		return nil, fmt.Errorf("list applications: job: %w", domain.ErrNotFound)
	}
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("list applications: job: %w", err)
	}
	if !job.OwnedBy(requestorID) {
		return nil, fmt.Errorf("list applications: %w", domain.ErrForbidden)
	}
	return s.apps.List(ctx, ports.ApplicationFilter{JobID: job.ID}), nil
}

// ListForSeeker yields seekerID's applications newest first, each joined with
// its job title. Applications whose job was deleted are flagged JobDeleted.
func (s *ApplicationService) ListForSeeker(ctx context.Context, seekerID string) iter.Seq2[*domain.ApplicationView, error] {
	return func(yield func(*domain.ApplicationView, error) bool) {
		titles := make(map[string]string)
		for app, err := range s.apps.List(ctx, ports.ApplicationFilter{SeekerID: seekerID}) {
			if err != nil {
				yield(nil, err)
				return
			}

			view := &domain.ApplicationView{Application: *app}
			title, seen := titles[app.JobID]
			if !seen {
				job, err := s.jobs.FindByID(ctx, app.JobID)
				switch {
				case errors.Is(err, domain.ErrNotFound):
					title = ""
				case err != nil:
					yield(nil, err)
					return
				default:
					title = job.Title
				}
				titles[app.JobID] = title
			}
			view.JobTitle = title
			view.JobDeleted = title == ""

			if !yield(view, nil) {
				return
			}
		}
	}
}
