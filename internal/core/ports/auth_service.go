package ports

import (
	"context"

	"github.com/99minutos/job-marketplace/internal/core/domain"
)

// RegisterInput carries the fields needed to create an account.
type RegisterInput struct {
	Email       string
	Password    string
	Role        string
	DisplayName string
}

// Authenticator registers and authenticates users.
type Authenticator interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	FindUser(ctx context.Context, id string) (*domain.User, error)
}
