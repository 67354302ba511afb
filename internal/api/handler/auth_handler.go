package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/job-marketplace/internal/core/ports"
)

type AuthHandler struct {
	service ports.MarketplaceService
}

func NewAuthHandler(service ports.MarketplaceService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register creates a new account. It does not start a session.
//
//	POST /v1/auth/register → 201 User
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.service.Register(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// Login authenticates the credentials and returns a bearer token.
//
//	POST /v1/auth/login → 200 sessionResponse
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	session, err := h.service.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newSessionResponse(session))
}

// Logout revokes the caller's token.
//
//	POST /v1/auth/logout → 204
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.service.Logout(c.Request().Context(), ctxSession(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Me returns the caller's account.
//
//	GET /v1/me → 200 User
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := h.service.Me(c.Request().Context(), ctxSession(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
