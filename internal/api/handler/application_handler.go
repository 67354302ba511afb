package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/job-marketplace/internal/core/ports"
)

type ApplicationHandler struct {
	service ports.MarketplaceService
}

func NewApplicationHandler(service ports.MarketplaceService) *ApplicationHandler {
	return &ApplicationHandler{service: service}
}

// Apply records the caller applying to a job. The body is optional.
//
//	POST /v1/jobs/:id/applications → 201 Application
func (h *ApplicationHandler) Apply(c echo.Context) error {
	var req applyRequest
	if c.Request().ContentLength != 0 {
		if err := bind(c, &req); err != nil {
			return err
		}
	}

	app, err := h.service.ApplyToJob(c.Request().Context(), ctxSession(c), c.Param("id"), req.Message)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, app)
}

// ListForJob returns the applications to one of the caller's jobs.
//
//	GET /v1/jobs/:id/applications → 200 listResponse[Application]
func (h *ApplicationHandler) ListForJob(c echo.Context) error {
	apps, err := h.service.ListApplicationsForJob(c.Request().Context(), ctxSession(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newListResponse(apps))
}

// ListMine returns the caller's applications with job titles.
//
//	GET /v1/me/applications → 200 listResponse[ApplicationView]
func (h *ApplicationHandler) ListMine(c echo.Context) error {
	views, err := h.service.ListMyApplications(c.Request().Context(), ctxSession(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newListResponse(views))
}
