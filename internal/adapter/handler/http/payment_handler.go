package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/CIPMABUJA/hr-hub-backend/internal/domain/model"
	"github.com/CIPMABUJA/hr-hub-backend/internal/middleware/auth"
	"github.com/CIPMABUJA/hr-hub-backend/internal/usecase"
)

type PaymentHandler struct {
	payments *usecase.PaymentService
	logger   *zap.Logger
}

func NewPaymentHandler(payments *usecase.PaymentService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		payments: payments,
		logger:   logger,
	}
}

// Initialize starts a checkout for the authenticated member.
func (h *PaymentHandler) Initialize(c echo.Context) error {
	member, err := auth.RequireAuth(c)
	if err != nil {
		return err // RequireAuth already wrote the response
	}

	var req usecase.InitializePaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}

	// The payer is always the caller; the body cannot redirect a payment
	// onto another member.
	req.MemberID = member.ID
	if req.Email == "" {
		req.Email = member.Email
	}

	result, err := h.payments.InitializePayment(c.Request().Context(), &req)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusCreated, result)
}

// Verify confirms a payment's status with the gateway.
func (h *PaymentHandler) Verify(c echo.Context) error {
	if _, err := auth.RequireAuth(c); err != nil {
		return err
	}

	reference := c.Param("reference")
	result, err := h.payments.VerifyPayment(c.Request().Context(), reference)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, result)
}

// Callback handles the browser redirect from the hosted checkout page.
// Paystack appends the transaction reference as a query parameter. The
// endpoint is unauthenticated because the gateway owns the redirect, and
// verification is idempotent so replaying it is harmless.
func (h *PaymentHandler) Callback(c echo.Context) error {
	reference := c.QueryParam("reference")
	if reference == "" {
		reference = c.QueryParam("trxref")
	}
	if reference == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Missing transaction reference",
		})
	}

	result, err := h.payments.VerifyPayment(c.Request().Context(), reference)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, result)
}

// Get returns one of the caller's payments by reference.
func (h *PaymentHandler) Get(c echo.Context) error {
	member, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	payment, err := h.payments.GetPayment(c.Request().Context(), member.ID, c.Param("reference"))
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, payment)
}

// List returns the caller's payment history.
func (h *PaymentHandler) List(c echo.Context) error {
	member, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	limit, offset := pagination(c)
	payments, err := h.payments.ListMemberPayments(c.Request().Context(), member.ID, limit, offset)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, payments)
}

// AdminList returns payments across all members, optionally filtered by
// status. Mounted behind the admin middleware.
func (h *PaymentHandler) AdminList(c echo.Context) error {
	limit, offset := pagination(c)
	status := model.PaymentStatus(c.QueryParam("status"))

	payments, err := h.payments.ListPayments(c.Request().Context(), status, limit, offset)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, payments)
}

func pagination(c echo.Context) (limit, offset int) {
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil {
		limit = v
	}
	if v, err := strconv.Atoi(c.QueryParam("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}
