package service

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/rs/zerolog"

	"github.com/99minutos/job-marketplace/internal/core/domain"
	"github.com/99minutos/job-marketplace/internal/core/ports"
	"github.com/99minutos/job-marketplace/internal/pkg/metrics"
	"github.com/99minutos/job-marketplace/pkg/logger"
)

// MarketplaceService is the entry point for every caller. It owns no data:
// it authorizes the session against the operation, delegates to the
// underlying services and folds their failures into the domain taxonomy.
type MarketplaceService struct {
	auth    ports.Authenticator
	jobs    *JobService
	apps    *ApplicationService
	tokens  *TokenIssuer
	revoker ports.SessionRevoker
	log     zerolog.Logger
}

// NewMarketplaceService wires the marketplace facade.
func NewMarketplaceService(
	auth ports.Authenticator,
	jobs *JobService,
	apps *ApplicationService,
	tokens *TokenIssuer,
	revoker ports.SessionRevoker,
	log zerolog.Logger,
) *MarketplaceService {
	return &MarketplaceService{
		auth:    auth,
		jobs:    jobs,
		apps:    apps,
		tokens:  tokens,
		revoker: revoker,
		log:     log,
	}
}

var _ ports.MarketplaceService = (*MarketplaceService)(nil)

// --- Identity ---

// Register creates an account. It does not log the new user in.
func (m *MarketplaceService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	user, err := m.auth.Register(ctx, in)
	if err != nil {
		return nil, m.translate(ctx, "register", err)
	}
	metrics.RegistrationsTotal.WithLabelValues(string(user.Role)).Inc()
	return user, nil
}

// Login authenticates the credentials and returns a new session.
func (m *MarketplaceService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	user, err := m.auth.Authenticate(ctx, email, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginAttemptsTotal.WithLabelValues(domain.CodeInvalidCredentials).Inc()
		} else {
			metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		}
		return nil, m.translate(ctx, "login", err)
	}

	session, err := m.tokens.Issue(user)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return nil, m.translate(ctx, "login", err)
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	logger.From(ctx, &m.log).Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user logged in")
	return session, nil
}

// Logout returns session to the anonymous state and revokes its token. The
// session is cleared even if revocation fails; that failure is still
// reported so the caller knows the token may remain usable until expiry.
func (m *MarketplaceService) Logout(ctx context.Context, session *domain.Session) error {
	if !session.Authenticated() {
		session.Clear()
		return nil
	}

	tokenID, expiresAt, userID := session.TokenID, session.ExpiresAt, session.UserID
	session.Clear()

	if tokenID == "" {
		return nil
	}
	if err := m.revoker.Revoke(ctx, tokenID, expiresAt); err != nil {
		return m.translate(ctx, "logout", err)
	}

	logger.From(ctx, &m.log).Info().Str("user_id", userID).Msg("user logged out")
	return nil
}

// ResumeSession rebuilds the session carried by a bearer token. Expired,
// malformed and revoked tokens yield domain.ErrUnauthenticated.
func (m *MarketplaceService) ResumeSession(ctx context.Context, token string) (*domain.Session, error) {
	session, err := m.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	revoked, err := m.revoker.IsRevoked(ctx, session.TokenID)
	if err != nil {
		return nil, m.translate(ctx, "resume_session", err)
	}
	if revoked {
		return nil, fmt.Errorf("%w: session ended", domain.ErrUnauthenticated)
	}
	return session, nil
}

// Me returns the user behind session.
func (m *MarketplaceService) Me(ctx context.Context, session *domain.Session) (*domain.User, error) {
	if !session.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}
	user, err := m.auth.FindUser(ctx, session.UserID)
	if err != nil {
		return nil, m.translate(ctx, "me", err)
	}
	return user, nil
}

// --- Jobs ---

// PostJob creates a job owned by the session's poster.
func (m *MarketplaceService) PostJob(ctx context.Context, session *domain.Session, in ports.JobInput) (*domain.Job, error) {
	if err := m.authorize(session, domain.OpPostJob); err != nil {
		return nil, err
	}
	job, err := m.jobs.Create(ctx, session.UserID, in)
	if err != nil {
		return nil, m.translate(ctx, string(domain.OpPostJob), err)
	}

	jobType := string(job.Type)
	if jobType == "" {
		jobType = "unspecified"
	}
	metrics.JobsPostedTotal.WithLabelValues(jobType).Inc()
	return job, nil
}

// ListJobs returns every job, newest first. No session is required.
func (m *MarketplaceService) ListJobs(ctx context.Context) ([]*domain.Job, error) {
	jobs, err := collect(m.jobs.ListAll(ctx))
	if err != nil {
		return nil, m.translate(ctx, "list_jobs", err)
	}
	return jobs, nil
}

// GetJob returns one job. No session is required.
func (m *MarketplaceService) GetJob(ctx context.Context, jobID string) (*domain.Job, error) {
	job, err := m.jobs.Get(ctx, jobID)
	if err != nil {
		return nil, m.translate(ctx, "get_job", err)
	}
	return job, nil
}

// ListMyJobs returns the jobs owned by the session's poster.
func (m *MarketplaceService) ListMyJobs(ctx context.Context, session *domain.Session) ([]*domain.Job, error) {
	if err := m.authorize(session, domain.OpListMyJobs); err != nil {
		return nil, err
	}
	jobs, err := collect(m.jobs.ListByPoster(ctx, session.UserID))
	if err != nil {
		return nil, m.translate(ctx, string(domain.OpListMyJobs), err)
	}
	return jobs, nil
}

// DeleteJob removes a job owned by the session's poster.
func (m *MarketplaceService) DeleteJob(ctx context.Context, session *domain.Session, jobID string) error {
	if err := m.authorize(session, domain.OpDeleteJob); err != nil {
		return err
	}
	if err := m.jobs.Delete(ctx, jobID, session.UserID); err != nil {
		return m.translate(ctx, string(domain.OpDeleteJob), err)
	}
	metrics.JobsDeletedTotal.Inc()
	return nil
}

// --- Applications ---

// ApplyToJob records the session's seeker applying to jobID.
func (m *MarketplaceService) ApplyToJob(ctx context.Context, session *domain.Session, jobID, message string) (*domain.Application, error) {
	if err := m.authorize(session, domain.OpApplyToJob); err != nil {
		return nil, err
	}
	app, err := m.apps.Submit(ctx, jobID, session.UserID, message)
	if err != nil {
		return nil, m.translate(ctx, string(domain.OpApplyToJob), err)
	}
	metrics.ApplicationsSubmittedTotal.Inc()
	return app, nil
}

// ListApplicationsForJob returns the applications to a job the session's
// poster owns.
func (m *MarketplaceService) ListApplicationsForJob(ctx context.Context, session *domain.Session, jobID string) ([]*domain.Application, error) {
	if err := m.authorize(session, domain.OpListApplicationsForJob); err != nil {
		return nil, err
	}
	seq, err := m.apps.ListForJob(ctx, jobID, session.UserID)
	if err != nil {
		return nil, m.translate(ctx, string(domain.OpListApplicationsForJob), err)
	}
	apps, err := collect(seq)
	if err != nil {
		return nil, m.translate(ctx, string(domain.OpListApplicationsForJob), err)
	}
	return apps, nil
}

// ListMyApplications returns the session seeker's applications with job
// titles.
func (m *MarketplaceService) ListMyApplications(ctx context.Context, session *domain.Session) ([]*domain.ApplicationView, error) {
	if err := m.authorize(session, domain.OpListMyApplications); err != nil {
		return nil, err
	}
	views, err := collect(m.apps.ListForSeeker(ctx, session.UserID))
	if err != nil {
		return nil, m.translate(ctx, string(domain.OpListMyApplications), err)
	}
	return views, nil
}

// --- Helpers ---

// authorize is the single role gate. It runs before any repository access.
func (m *MarketplaceService) authorize(session *domain.Session, op domain.Operation) error {
	if !session.Authenticated() {
		metrics.AuthorizationDenialsTotal.WithLabelValues(string(op), domain.CodeUnauthenticated).Inc()
		return domain.ErrUnauthenticated
	}
	if !session.Role.Permits(op) {
		metrics.AuthorizationDenialsTotal.WithLabelValues(string(op), domain.CodeRoleMismatch).Inc()
		return fmt.Errorf("%s: %w", op, domain.ErrRoleMismatch)
	}
	return nil
}

// translate keeps taxonomy errors and replaces everything else, including
// wrapped driver failures, with a bare domain.ErrStoreUnavailable.
func (m *MarketplaceService) translate(ctx context.Context, op string, err error) error {
	if errors.Is(err, domain.ErrStoreUnavailable) || !domain.IsKnown(err) {
		logger.From(ctx, &m.log).Error().Err(err).Str("op", op).Msg("store failure")
		return domain.ErrStoreUnavailable
	}
	return err
}

// collect drains a sequence, stopping at the first error.
func collect[T any](seq iter.Seq2[T, error]) ([]T, error) {
	out := make([]T, 0)
	for v, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
