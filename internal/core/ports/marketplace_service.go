package ports

import (
	"context"

	"github.com/99minutos/job-marketplace/internal/core/domain"
)

// CompensationInput is the raw compensation supplied by a poster. Amount is
// a decimal string so that no precision is lost before validation.
type CompensationInput struct {
	Text     string
	Amount   string
	Currency string
	Period   string
}

// JobInput carries the poster-supplied fields of a new job. Identifier and
// timestamp are always assigned server-side.
type JobInput struct {
	Title        string
	Company      string
	Location     string
	Type         string
	Compensation CompensationInput
	Contact      string
	Description  string
}

// MarketplaceService is the single entry point used by transports.
type MarketplaceService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.Session, error)
	Logout(ctx context.Context, session *domain.Session) error
	ResumeSession(ctx context.Context, token string) (*domain.Session, error)
	Me(ctx context.Context, session *domain.Session) (*domain.User, error)

	PostJob(ctx context.Context, session *domain.Session, input JobInput) (*domain.Job, error)
	ListJobs(ctx context.Context) ([]*domain.Job, error)
	GetJob(ctx context.Context, jobID string) (*domain.Job, error)
	ListMyJobs(ctx context.Context, session *domain.Session) ([]*domain.Job, error)
	DeleteJob(ctx context.Context, session *domain.Session, jobID string) error

	ApplyToJob(ctx context.Context, session *domain.Session, jobID, message string) (*domain.Application, error)
	ListApplicationsForJob(ctx context.Context, session *domain.Session, jobID string) ([]*domain.Application, error)
	ListMyApplications(ctx context.Context, session *domain.Session) ([]*domain.ApplicationView, error)
}
