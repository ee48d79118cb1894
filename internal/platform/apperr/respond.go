package apperr

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Envelope is the uniform response body for every service-boundary
// operation: {success, data} on the happy path, {success, error} otherwise.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
}

// ErrorBody is the wire form of an application error.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// OK wraps data in a success envelope.
func OK(data interface{}) Envelope {
	return Envelope{Success: true, Data: data}
}

// Fail wraps err in a failure envelope.
func Fail(err error) Envelope {
	body := &ErrorBody{Code: string(KindOf(err)), Message: "internal error"}
	var ae *Error
	if errors.As(err, &ae) {
		body.Message = ae.Message
	}
	return Envelope{Success: false, Error: body}
}

// HTTPStatus maps an error kind to its HTTP status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes the failure envelope for err with the matching status.
func Respond(c echo.Context, err error) error {
	return c.JSON(HTTPStatus(err), Fail(err))
}
