package service

import (
	"context"
	"fmt"
	"iter"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/99minutos/job-marketplace/internal/core/domain"
	"github.com/99minutos/job-marketplace/internal/core/ports"
	"github.com/99minutos/job-marketplace/internal/pkg/idgen"
	"github.com/99minutos/job-marketplace/pkg/logger"
)

const (
	maxTitleLen       = 200
	maxShortFieldLen  = 200
	maxDescriptionLen = 10000

	// Amounts fit every store: below 10^15 with at most four decimal places.
	maxAmountScale = 4
)

var maxAmount = decimal.New(1, 15)

// JobService owns the job lifecycle: creation by a poster, public listing
// and owner-only deletion.
type JobService struct {
	jobs     ports.JobRepository
	users    ports.UserRepository
	validate *validator.Validate
	now      func() time.Time
	newID    func() string
	logger   zerolog.Logger
}

func NewJobService(jobs ports.JobRepository, users ports.UserRepository, logger zerolog.Logger) *JobService {
	return &JobService{
		jobs:     jobs,
		users:    users,
		validate: validator.New(),
		now:      func() time.Time { return time.Now().UTC() },
		newID:    idgen.New,
		logger:   logger,
	}
}

// Create stores a new job owned by posterID. The poster must exist and hold
// the poster role; identifier and creation time are assigned here.
func (s *JobService) Create(ctx context.Context, posterID string, in ports.JobInput) (*domain.Job, error) {
	poster, err := s.users.FindByID(ctx, posterID)
	if err != nil {
		return nil, fmt.Errorf("create job: poster: %w", err)
	}
	if poster.Role != domain.RolePoster {
		return nil, fmt.Errorf("create job: %w", domain.ErrRoleMismatch)
	}

	job, err := s.buildJob(in)
	if err != nil {
		return nil, err
	}
	job.ID = s.newID()
	job.PosterID = poster.ID
	job.CreatedAt = s.now()

	if err := s.jobs.Create(ctx, job); err != nil {
		logger.From(ctx, &s.logger).Error().Err(err).Str("poster_id", poster.ID).Msg("failed to create job")
		return nil, err
	}

	logger.From(ctx, &s.logger).Info().Str("job_id", job.ID).Str("poster_id", poster.ID).Msg("job created")
	return job, nil
}

// Get returns a single job.
func (s *JobService) Get(ctx context.Context, jobID string) (*domain.Job, error) {
	if jobID == "" {
		return nil, fmt.Errorf("job: %w", domain.ErrNotFound)
	}
	return s.jobs.FindByID(ctx, jobID)
}

// ListAll yields every job, newest first. Each range re-runs the query.
func (s *JobService) ListAll(ctx context.Context) iter.Seq2[*domain.Job, error] {
	return s.jobs.List(ctx, ports.JobFilter{})
}

// ListByPoster yields the jobs owned by posterID, newest first.
func (s *JobService) ListByPoster(ctx context.Context, posterID string) iter.Seq2[*domain.Job, error] {
	return s.jobs.List(ctx, ports.JobFilter{PosterID: posterID})
}

// Delete removes a job on behalf of requestorID, who must own it. A job that
// disappears between the ownership check and the delete reports NotFound.
// Applications referencing the job are left in place.
func (s *JobService) Delete(ctx context.Context, jobID, requestorID string) error {
	job, err := s.Get(ctx, jobID)
	if err != nil {
		return err
	}
	if !job.OwnedBy(requestorID) {
		return fmt.Errorf("delete job: %w", domain.ErrForbidden)
	}
	if err := s.jobs.Delete(ctx, jobID); err != nil {
		return err
	}

	logger.From(ctx, &s.logger).Info().Str("job_id", jobID).Str("poster_id", requestorID).Msg("job deleted")
	return nil
}

func (s *JobService) buildJob(in ports.JobInput) (*domain.Job, error) {
	job := &domain.Job{
		Title:       strings.TrimSpace(in.Title),
		Company:     strings.TrimSpace(in.Company),
		Location:    strings.TrimSpace(in.Location),
		Type:        domain.JobType(strings.ToLower(strings.TrimSpace(in.Type))),
		Contact:     strings.TrimSpace(in.Contact),
		Description: strings.TrimSpace(in.Description),
	}

	switch {
	case job.Title == "":
		return nil, invalid("title is required")
	case job.Description == "":
		return nil, invalid("description is required")
	case job.Contact == "":
		return nil, invalid("contact is required")
	case utf8.RuneCountInString(job.Title) > maxTitleLen:
		return nil, invalid(fmt.Sprintf("title must be at most %d characters", maxTitleLen))
	case utf8.RuneCountInString(job.Company) > maxShortFieldLen:
		return nil, invalid(fmt.Sprintf("company must be at most %d characters", maxShortFieldLen))
	case utf8.RuneCountInString(job.Location) > maxShortFieldLen:
		return nil, invalid(fmt.Sprintf("location must be at most %d characters", maxShortFieldLen))
	case utf8.RuneCountInString(job.Contact) > maxShortFieldLen:
		return nil, invalid(fmt.Sprintf("contact must be at most %d characters", maxShortFieldLen))
	case utf8.RuneCountInString(job.Description) > maxDescriptionLen:
		return nil, invalid(fmt.Sprintf("description must be at most %d characters", maxDescriptionLen))
	case job.Type != "" && !job.Type.Valid():
		return nil, invalid("job_type must be one of: full-time, part-time, contract, internship")
	}

	comp, err := s.buildCompensation(in.Compensation)
	if err != nil {
		return nil, err
	}
	job.Compensation = comp
	return job, nil
}

// buildCompensation accepts free-form text, a structured amount per period,
// or both.
func (s *JobService) buildCompensation(in ports.CompensationInput) (domain.Compensation, error) {
	comp := domain.Compensation{
		Text:     strings.TrimSpace(in.Text),
		Currency: strings.ToUpper(strings.TrimSpace(in.Currency)),
		Period:   domain.PayPeriod(strings.ToLower(strings.TrimSpace(in.Period))),
	}
	if utf8.RuneCountInString(comp.Text) > maxShortFieldLen {
		return comp, invalid(fmt.Sprintf("compensation.text must be at most %d characters", maxShortFieldLen))
	}

	raw := strings.TrimSpace(in.Amount)
	if raw == "" {
		if comp.Currency != "" || comp.Period != "" {
			return comp, invalid("compensation.amount is required when currency or period is set")
		}
		return comp, nil
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return comp, invalid("compensation.amount must be a decimal number")
	}
	if !amount.IsPositive() {
		return comp, invalid("compensation.amount must be greater than 0")
	}
	if amount.GreaterThanOrEqual(maxAmount) {
		return comp, invalid("compensation.amount must be less than " + maxAmount.String())
	}
	if !amount.Equal(amount.Truncate(maxAmountScale)) {
		return comp, invalid(fmt.Sprintf("compensation.amount must have at most %d decimal places", maxAmountScale))
	}
	if !comp.Period.Valid() {
		return comp, invalid("compensation.period must be one of: hour, day, week, month, year")
	}
	if comp.Currency != "" {
		if err := s.validate.Var(comp.Currency, "iso4217"); err != nil {
			return comp, invalid("compensation.currency must be an ISO 4217 code")
		}
	}
	comp.Amount = &amount
	return comp, nil
}

func invalid(reason string) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, reason)
}
