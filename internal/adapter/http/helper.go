package http

import (
	"errors"
	"net/http"
	"time"

	"loan-tracker/internal/adapter/middleware"
	"loan-tracker/internal/domain/errs"
	"loan-tracker/internal/domain/loan"
	"loan-tracker/internal/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func caller(c echo.Context) string { return middleware.UserID(c) }

// bind decodes and validates the request body. When it returns false the
// error response has already been written.
func bind(c echo.Context, req any) bool {
	if err := c.Bind(req); err != nil {
		_ = c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body", Code: "invalid_body"})
		return false
	}
	if err := c.Validate(req); err != nil {
		_ = c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Code:    "validation_failed",
			Details: ToFieldErrors(err),
		})
		return false
	}
	return true
}

func statusOf(k errs.Kind) int {
	switch k {
	case errs.KindValidation:
		return http.StatusBadRequest
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindForbidden:
		return http.StatusForbidden
	case errs.KindConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// writeError maps taxonomy errors to their status. Anything else is logged
// and hidden behind a 500.
func writeError(c echo.Context, err error) error {
	var e *errs.Error
	if errors.As(err, &e) {
		return c.JSON(statusOf(e.Kind), ErrorResponse{Error: e.Message, Code: e.Code})
	}
	logger.Log.Error("request failed",
		zap.String("method", c.Request().Method),
		zap.String("path", c.Path()),
		zap.Error(err))
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error", Code: "internal"})
}

// parseDate reads an optional YYYY-MM-DD field already checked by the validator.
func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	d, err := loan.ParseDate(*s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
