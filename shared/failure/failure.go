package failure

import (
	"errors"
	"net/http"
)

// Failure is an error that knows its HTTP status. Reason is an optional
// machine-readable code clients can branch on, e.g. "slot_full".
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Reason  string `json:"reason,omitempty"`

	cause error
}

var (
	InvalidPageParam        = &Failure{Code: http.StatusBadRequest, Message: "invalid page parameter"}
	InvalidLimitParam       = &Failure{Code: http.StatusBadRequest, Message: "invalid limit parameter"}
	ForbiddenError          = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}
	ResourceRestrictedError = &Failure{Code: http.StatusForbidden, Message: "You don't have permission to access this resource"}
)

func (e *Failure) Error() string {
	return e.Message
}

func (e *Failure) Unwrap() error {
	return e.cause
}

func newFailure(code int, msg string) error {
	return &Failure{Code: code, Message: msg}
}

// BadRequest turns err into a 400 that echoes err's message. A nil err stays nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return &Failure{Code: http.StatusBadRequest, Message: err.Error(), cause: err}
}

func BadRequestFromString(msg string) error {
	return newFailure(http.StatusBadRequest, msg)
}

func Unauthorized(msg string) error {
	return newFailure(http.StatusUnauthorized, msg)
}

func Forbidden(msg string) error {
	return newFailure(http.StatusForbidden, msg)
}

// NotFound takes a full message such as "camp not found".
func NotFound(msg string) error {
	return newFailure(http.StatusNotFound, msg)
}

func Conflict(msg string) error {
	return newFailure(http.StatusConflict, msg)
}

func TooManyRequests(msg string) error {
	return newFailure(http.StatusTooManyRequests, msg)
}

// ServiceUnavailable is used when a backing service is down or not configured.
func ServiceUnavailable(msg string) error {
	return newFailure(http.StatusServiceUnavailable, msg)
}

// InternalError keeps err as the cause. Its message is not shown to clients.
func InternalError(err error) error {
	if err == nil {
		return nil
	}

	return &Failure{Code: http.StatusInternalServerError, Message: err.Error(), cause: err}
}

// WithReason returns a copy of the failure in err tagged with reason. Errors
// that are not failures are returned unchanged.
func WithReason(err error, reason string) error {
	var fail *Failure
	if !errors.As(err, &fail) {
		return err
	}

	tagged := *fail
	tagged.Reason = reason

	return &tagged
}

// GetCode returns the HTTP status carried by err, 500 for anything else.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetReason returns the machine-readable reason carried by err, if any.
func GetReason(err error) string {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Reason
	}

	return ""
}

func IsNotFound(err error) bool {
	return GetCode(err) == http.StatusNotFound
}
