package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/99minutos/job-marketplace/internal/core/domain"
)

// SessionKey is the echo context key the session middleware stores under.
const SessionKey = "session"

// ctxSession returns the session injected by the session middleware. Requests
// that carried no token get an anonymous session, which the marketplace
// rejects for gated operations.
func ctxSession(c echo.Context) *domain.Session {
	if s, ok := c.Get(SessionKey).(*domain.Session); ok && s != nil {
		return s
	}
	return &domain.Session{}
}
