package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/job-marketplace/internal/api/handler"
	"github.com/99minutos/job-marketplace/internal/core/domain"
	"github.com/99minutos/job-marketplace/pkg/logger"
)

// SessionResolver turns a bearer token into a session.
type SessionResolver interface {
	ResumeSession(ctx context.Context, token string) (*domain.Session, error)
}

// Session resolves the bearer token, if any, and injects the session into the
// context. A missing, malformed, expired or revoked token leaves the request
// anonymous; the marketplace service decides whether the operation needs a
// session. Only a failure to check revocation aborts the request.
func Session(resolver SessionResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return next(c)
			}

			ctx := c.Request().Context()
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				logger.Ctx(ctx).Debug().Msg("ignoring malformed authorization header")
				return next(c)
			}

			session, err := resolver.ResumeSession(ctx, strings.TrimSpace(parts[1]))
			switch {
			case errors.Is(err, domain.ErrUnauthenticated):
				logger.Ctx(ctx).Debug().Err(err).Msg("continuing anonymously with unusable bearer token")
				return next(c)
			case err != nil:
				return err
			}

			c.Set(handler.SessionKey, session)
			return next(c)
		}
	}
}
