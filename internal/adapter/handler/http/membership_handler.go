package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/CIPMABUJA/hr-hub-backend/internal/middleware/auth"
	"github.com/CIPMABUJA/hr-hub-backend/internal/usecase"
)

type MembershipHandler struct {
	memberships *usecase.MembershipService
	members     *usecase.MemberService
	logger      *zap.Logger
}

func NewMembershipHandler(memberships *usecase.MembershipService, members *usecase.MemberService, logger *zap.Logger) *MembershipHandler {
	return &MembershipHandler{
		memberships: memberships,
		members:     members,
		logger:      logger,
	}
}

// Me returns the caller's membership standing with derived status.
func (h *MembershipHandler) Me(c echo.Context) error {
	member, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	view, err := h.memberships.GetForMember(c.Request().Context(), member.ID)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, view)
}

// Profile returns the caller's member record.
func (h *MembershipHandler) Profile(c echo.Context) error {
	member, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, member)
}

// UpdateProfile applies the caller's profile edit.
func (h *MembershipHandler) UpdateProfile(c echo.Context) error {
	member, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	var req usecase.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}

	updated, err := h.members.UpdateProfile(c.Request().Context(), member.ID, &req)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, updated)
}
