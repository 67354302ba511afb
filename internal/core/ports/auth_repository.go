package ports

import (
	"context"

	"github.com/99minutos/job-marketplace/internal/core/domain"
)

// UserRepository is the credential store. Create must enforce email
// uniqueness atomically and report conflicts as domain.ErrDuplicateEmail.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
