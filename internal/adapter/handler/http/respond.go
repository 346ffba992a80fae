package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	domainErrors "github.com/CIPMABUJA/hr-hub-backend/internal/domain/errors"
)

// writeError maps domain errors onto HTTP status codes with a uniform
// JSON body. Unknown errors are logged and reported as 500 without
// leaking internals.
func writeError(c echo.Context, logger *zap.Logger, err error) error {
	switch {
	case domainErrors.IsValidation(err):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, domainErrors.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Not found"})
	case errors.Is(err, domainErrors.ErrForbidden):
		return c.JSON(http.StatusForbidden, map[string]string{"error": "Forbidden"})
	case domainErrors.IsGateway(err):
		logger.Error("Gateway error", zap.Error(err))
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "Payment gateway unavailable"})
	default:
		logger.Error("Unhandled error", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
}
