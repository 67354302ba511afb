package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/job-marketplace/internal/core/domain"
	"github.com/99minutos/job-marketplace/internal/core/ports"
	"github.com/99minutos/job-marketplace/internal/pkg/idgen"
	"github.com/99minutos/job-marketplace/pkg/logger"
)

// dummyPassword is hashed once per service so that logins for unknown emails
// still pay for a bcrypt comparison.
const dummyPassword = "no-such-account"

// AuthService implements registration and credential checks.
type AuthService struct {
	repo      ports.UserRepository
	validate  *validator.Validate
	cost      int
	dummyHash []byte
	now       func() time.Time
	newID     func() string
	log       zerolog.Logger
}

// NewAuthService returns an AuthService hashing with the given bcrypt cost.
// Out-of-range costs fall back to bcrypt.DefaultCost.
func NewAuthService(repo ports.UserRepository, cost int, log zerolog.Logger) *AuthService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte(dummyPassword), cost)
	if err != nil {
		// Only fails for invalid costs, which were clamped above.
		panic(fmt.Sprintf("auth: hash dummy password: %v", err))
	}
	return &AuthService{
		repo:      repo,
		validate:  validator.New(),
		cost:      cost,
		dummyHash: dummy,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     idgen.New,
		log:       log,
	}
}

// Register validates the input, hashes the password and persists a new user.
// Email uniqueness is left to the repository's atomic insert.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	email := domain.NormalizeEmail(in.Email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}
	if err := s.validate.Var(email, "email"); err != nil {
		return nil, fmt.Errorf("%w: email must be a valid address", domain.ErrInvalidInput)
	}
	if in.Password == "" {
		return nil, fmt.Errorf("%w: password is required", domain.ErrInvalidInput)
	}
	// bcrypt silently ignores anything past 72 bytes.
	if len(in.Password) > 72 {
		return nil, fmt.Errorf("%w: password must be at most 72 bytes", domain.ErrInvalidInput)
	}
	role := domain.Role(strings.ToLower(strings.TrimSpace(in.Role)))
	if !role.Valid() {
		return nil, fmt.Errorf("%w: role must be one of %s, %s", domain.ErrInvalidInput, domain.RoleSeeker, domain.RolePoster)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:           s.newID(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		DisplayName:  strings.TrimSpace(in.DisplayName),
		CreatedAt:    s.now(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.From(ctx, &s.log).Info().Str("user_id", user.ID).Str("role", string(role)).Msg("user registered")
	return user, nil
}

// Authenticate returns the user owning email if password matches. Unknown
// emails and wrong passwords both yield domain.ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// FindUser loads a user by id.
func (s *AuthService) FindUser(ctx context.Context, id string) (*domain.User, error) {
	if id == "" {
		return nil, fmt.Errorf("user: %w", domain.ErrNotFound)
	}
	return s.repo.FindByID(ctx, id)
}
