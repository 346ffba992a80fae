package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/CIPMABUJA/hr-hub-backend/internal/middleware/auth"
	"github.com/CIPMABUJA/hr-hub-backend/internal/usecase"
)

type ApplicationHandler struct {
	applications *usecase.ApplicationService
	logger       *zap.Logger
}

func NewApplicationHandler(applications *usecase.ApplicationService, logger *zap.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		applications: applications,
		logger:       logger,
	}
}

// Submit records a new membership application for the caller.
func (h *ApplicationHandler) Submit(c echo.Context) error {
	member, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	var req usecase.SubmitApplicationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}

	application, err := h.applications.Submit(c.Request().Context(), member.ID, &req)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusCreated, application)
}

// List returns the caller's own applications.
func (h *ApplicationHandler) List(c echo.Context) error {
	member, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	applications, err := h.applications.ListForMember(c.Request().Context(), member.ID)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, applications)
}

// AdminListPending returns applications awaiting review.
func (h *ApplicationHandler) AdminListPending(c echo.Context) error {
	limit, offset := pagination(c)

	applications, err := h.applications.ListPending(c.Request().Context(), limit, offset)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, applications)
}

// AdminReview decides a pending application.
func (h *ApplicationHandler) AdminReview(c echo.Context) error {
	member, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	applicationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid application id",
		})
	}

	var req usecase.ReviewApplicationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}

	application, err := h.applications.Review(c.Request().Context(), member.ID, applicationID, &req)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, application)
}
