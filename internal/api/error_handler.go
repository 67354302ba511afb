package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/job-marketplace/internal/core/domain"
)

// errorBody is the canonical error envelope for all API errors:
// {"error": {"code": "<code>", "message": "<message>"}}.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

var codeStatus = map[string]int{
	domain.CodeInvalidInput:       http.StatusBadRequest,
	domain.CodeDuplicateEmail:     http.StatusConflict,
	domain.CodeInvalidCredentials: http.StatusUnauthorized,
	domain.CodeUnauthenticated:    http.StatusUnauthorized,
	domain.CodeRoleMismatch:       http.StatusForbidden,
	domain.CodeForbidden:          http.StatusForbidden,
	domain.CodeNotFound:           http.StatusNotFound,
	domain.CodeStoreUnavailable:   http.StatusServiceUnavailable,
}

// codeMessage holds the fixed client message per kind. invalid_input is
// absent: its field-level reason is rendered as is.
var codeMessage = map[string]string{
	domain.CodeDuplicateEmail:     domain.ErrDuplicateEmail.Error(),
	domain.CodeInvalidCredentials: domain.ErrInvalidCredentials.Error(),
	domain.CodeUnauthenticated:    domain.ErrUnauthenticated.Error(),
	domain.CodeRoleMismatch:       domain.ErrRoleMismatch.Error(),
	domain.CodeForbidden:          domain.ErrForbidden.Error(),
	domain.CodeNotFound:           domain.ErrNotFound.Error(),
	domain.CodeStoreUnavailable:   domain.ErrStoreUnavailable.Error(),
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps domain error codes to their HTTP status.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders the JSON envelope above.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorBody) {
	// Echo's own errors (unknown route, method not allowed, malformed body).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorBody{Error: errorDetail{Code: httpCode(he.Code), Message: fmt.Sprintf("%v", he.Message)}}
	}

	code := domain.Code(err)
	if status, ok := codeStatus[code]; ok {
		msg, fixed := codeMessage[code]
		if !fixed {
			msg = err.Error()
		}
		return status, errorBody{Error: errorDetail{Code: code, Message: msg}}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorBody{Error: errorDetail{Code: domain.CodeInternal, Message: "internal server error"}}
}

// httpCode names the status of an echo.HTTPError with the closest domain code.
func httpCode(status int) string {
	switch status {
	case http.StatusBadRequest, http.StatusUnsupportedMediaType, http.StatusRequestEntityTooLarge:
		return domain.CodeInvalidInput
	case http.StatusUnauthorized:
		return domain.CodeUnauthenticated
	case http.StatusForbidden:
		return domain.CodeForbidden
	case http.StatusNotFound:
		return domain.CodeNotFound
	case http.StatusMethodNotAllowed:
		return "method_not_allowed"
	case http.StatusServiceUnavailable:
		return domain.CodeStoreUnavailable
	default:
		return domain.CodeInternal
	}
}
