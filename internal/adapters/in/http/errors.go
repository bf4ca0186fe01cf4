package http

import (
	"errors"
	"net/http"

	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Error is the body of every failed request.
type Error struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Missing []string `json:"missing,omitempty"`
}

// StatusOf maps the error taxonomy onto HTTP status codes.
func StatusOf(err error) int {
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code
	case errors.Is(err, errs.ErrPersistenceFailure):
		return http.StatusServiceUnavailable
	case errors.Is(err, errs.ErrOrderIsBusy), errors.Is(err, errs.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, errs.ErrMissingProof):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errs.IsValidation(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func errorBody(err error, code int) *Error {
	body := &Error{Code: code, Message: err.Error()}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if msg, ok := httpErr.Message.(string); ok {
			body.Message = msg
		}
	}

	var missing *errs.MissingProofError
	if errors.As(err, &missing) {
		body.Missing = missing.Missing
	}

	if code == http.StatusInternalServerError {
		body.Message = http.StatusText(code)
	}
	return body
}

func writeError(c echo.Context, err error) error {
	code := StatusOf(err)
	if code >= http.StatusInternalServerError {
		logger.Errorw(c.Request().Context(), "request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"status", code,
			"error", err,
		)
	}
	return c.JSON(code, errorBody(err, code))
}

// HTTPErrorHandler renders errors returned by routes and middleware.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	_ = writeError(c, err)
}

func badRequest(message string) error {
	return echo.NewHTTPError(http.StatusBadRequest, message)
}
