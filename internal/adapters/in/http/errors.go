package http

import (
	"errors"
	"net/http"

	"printshop/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int               `json:"code"`
	Kind    string            `json:"kind"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type errorKind struct {
	sentinel error
	status   int
	kind     string
}

// Order matters: a joined validation error may wrap several sentinels and the first
// match wins.
var errorKinds = []errorKind{
	{errs.ErrConsistency, http.StatusInternalServerError, "consistency_error"},
	{errs.ErrObjectNotFound, http.StatusNotFound, "not_found"},
	{errs.ErrUnauthorized, http.StatusForbidden, "unauthorized"},
	{errs.ErrStaleState, http.StatusConflict, "stale_state"},
	{errs.ErrInvalidTransition, http.StatusConflict, "invalid_transition"},
	{errs.ErrInsufficientStock, http.StatusConflict, "insufficient_stock"},
	{errs.ErrDoubleConsume, http.StatusConflict, "double_consume"},
	{errs.ErrOverRelease, http.StatusConflict, "over_release"},
	{errs.ErrInvalidQuantity, http.StatusUnprocessableEntity, "invalid_quantity"},
	{errs.ErrUserNotInDepartment, http.StatusUnprocessableEntity, "user_not_in_department"},
	{errs.ErrValueIsRequired, http.StatusBadRequest, "value_required"},
	{errs.ErrValueIsInvalid, http.StatusBadRequest, "value_invalid"},
	{errs.ErrValueIsOutOfRange, http.StatusBadRequest, "value_out_of_range"},
}

func classify(err error) Error {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		msg, ok := httpErr.Message.(string)
		if !ok {
			msg = http.StatusText(httpErr.Code)
		}
		return Error{Code: httpErr.Code, Kind: "http", Message: msg}
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return Error{
			Code:    http.StatusBadRequest,
			Kind:    "validation_failed",
			Message: "request body failed validation",
			Fields:  fieldErrors(validationErrs),
		}
	}

	for _, k := range errorKinds {
		if errors.Is(err, k.sentinel) {
			return Error{Code: k.status, Kind: k.kind, Message: err.Error()}
		}
	}

	return Error{Code: http.StatusInternalServerError, Kind: "internal", Message: "internal server error"}
}

// handleError is installed as the echo HTTPErrorHandler. Server-side failures are
// logged with the cause and hidden from the client unless they carry a domain meaning.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	body := classify(err)

	entry := s.logger.WithError(err).WithFields(logrus.Fields{
		"method": c.Request().Method,
		"path":   c.Path(),
		"status": body.Code,
	})
	if body.Code >= http.StatusInternalServerError {
		entry.Error("request failed")
	} else {
		entry.Debug("request rejected")
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(body.Code)
	} else {
		err = c.JSON(body.Code, body)
	}
	if err != nil {
		s.logger.WithError(err).Warn("writing error response failed")
	}
}
