package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/job-marketplace/internal/core/ports"
)

// JobHandler serves the job board.
type JobHandler struct {
	service ports.MarketplaceService
}

func NewJobHandler(service ports.MarketplaceService) *JobHandler {
	return &JobHandler{service: service}
}

// List returns every job, newest first.
//
//	GET /v1/jobs → 200 listResponse[Job]
func (h *JobHandler) List(c echo.Context) error {
	jobs, err := h.service.ListJobs(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newListResponse(jobs))
}

// Get returns one job.
//
//	GET /v1/jobs/:id → 200 Job
func (h *JobHandler) Get(c echo.Context) error {
	job, err := h.service.GetJob(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, job)
}

// Create posts a job owned by the caller.
//
//	POST /v1/jobs → 201 Job
func (h *JobHandler) Create(c echo.Context) error {
	var req createJobRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	job, err := h.service.PostJob(c.Request().Context(), ctxSession(c), req.toInput())
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderLocation, "/v1/jobs/"+job.ID)
	return c.JSON(http.StatusCreated, job)
}

// ListMine returns the caller's own postings.
//
//	GET /v1/me/jobs → 200 listResponse[Job]
func (h *JobHandler) ListMine(c echo.Context) error {
	jobs, err := h.service.ListMyJobs(c.Request().Context(), ctxSession(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newListResponse(jobs))
}

// Delete removes one of the caller's postings.
//
//	DELETE /v1/jobs/:id → 204
func (h *JobHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteJob(c.Request().Context(), ctxSession(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
