package http

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/CIPMABUJA/hr-hub-backend/internal/middleware/auth"
	"github.com/CIPMABUJA/hr-hub-backend/internal/usecase"
)

type CPDHandler struct {
	cpd    *usecase.CPDService
	logger *zap.Logger
}

func NewCPDHandler(cpd *usecase.CPDService, logger *zap.Logger) *CPDHandler {
	return &CPDHandler{
		cpd:    cpd,
		logger: logger,
	}
}

// List returns the caller's CPD records, optionally for one year.
func (h *CPDHandler) List(c echo.Context) error {
	member, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	year := 0
	if v := c.QueryParam("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": "Invalid year parameter",
			})
		}
		year = parsed
	}

	records, err := h.cpd.ListForMember(c.Request().Context(), member.ID, year)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, records)
}

// Summary returns the caller's per-year CPD totals.
func (h *CPDHandler) Summary(c echo.Context) error {
	member, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	summary, err := h.cpd.Summary(c.Request().Context(), member.ID)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, summary)
}

// AdminAward records a manual CPD accrual for the member in the path.
func (h *CPDHandler) AdminAward(c echo.Context) error {
	member, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid member id",
		})
	}

	var req usecase.AwardCPDRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}
	req.MemberID = targetID

	record, err := h.cpd.Award(c.Request().Context(), member.ID, &req)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusCreated, record)
}
