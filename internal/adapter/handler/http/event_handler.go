package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/CIPMABUJA/hr-hub-backend/internal/middleware/auth"
	"github.com/CIPMABUJA/hr-hub-backend/internal/usecase"
)

type EventHandler struct {
	events *usecase.EventService
	logger *zap.Logger
}

func NewEventHandler(events *usecase.EventService, logger *zap.Logger) *EventHandler {
	return &EventHandler{
		events: events,
		logger: logger,
	}
}

// List returns upcoming events. The listing is public.
func (h *EventHandler) List(c echo.Context) error {
	limit, offset := pagination(c)
	events, err := h.events.ListUpcoming(c.Request().Context(), limit, offset)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, events)
}

// Get returns one event.
func (h *EventHandler) Get(c echo.Context) error {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid event id",
		})
	}

	event, err := h.events.Get(c.Request().Context(), eventID)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, event)
}

// Register signs the caller up for an event. Paid events return the
// checkout redirect alongside the pending registration.
func (h *EventHandler) Register(c echo.Context) error {
	member, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid event id",
		})
	}

	result, err := h.events.Register(c.Request().Context(), member.ID, eventID)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusCreated, result)
}

// Registrations returns the caller's own event registrations.
func (h *EventHandler) Registrations(c echo.Context) error {
	member, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	registrations, err := h.events.ListRegistrations(c.Request().Context(), member.ID)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, registrations)
}

// AdminCreate records a new event.
func (h *EventHandler) AdminCreate(c echo.Context) error {
	member, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	var req usecase.CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}

	event, err := h.events.Create(c.Request().Context(), member.ID, &req)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusCreated, event)
}
