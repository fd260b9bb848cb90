package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"sportsassist/shared/constant"
	"sportsassist/shared/failure"
	"sportsassist/shared/logger"

	"github.com/rs/zerolog/log"
)

const internalErrorMessage = "internal server error"

type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

type Error struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
	Reason  string `json:"reason,omitempty"`
}

type Message struct {
	Message *string `json:"message,omitempty"`
}

func WithMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Message{Message: &message})
}

// WithJSON wraps payload in the data envelope.
func WithJSON(writer http.ResponseWriter, code int, payload any) {
	response(writer, code, Data[any]{Data: &payload})
}

// WithError sends a response with an error message. Plain errors and 500
// failures are reported as a generic internal error.
func WithError(writer http.ResponseWriter, err error) {
	code := failure.GetCode(err)
	errMsg := internalErrorMessage

	var fail *failure.Failure
	if errors.As(err, &fail) && code != http.StatusInternalServerError {
		errMsg = fail.Message
	}

	response(writer, code, Error{Message: errMsg, Code: code, Reason: failure.GetReason(err)})
}

func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithError(writer, failure.TooManyRequests(constant.ResponseErrorRequestLimitExceeded))
}

// WithPreparingShutdown answers health checks during the shutdown grace period.
func WithPreparingShutdown(writer http.ResponseWriter) {
	WithError(writer, failure.ServiceUnavailable(constant.ResponseErrorPrepareShutdown))
}

func WithUnhealthy(writer http.ResponseWriter) {
	WithError(writer, failure.ServiceUnavailable(constant.ResponseErrorUnhealthy))
}

// response encodes before writing the header so an unencodable payload
// still yields a well-formed 500.
func response(writer http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		code = http.StatusInternalServerError
		body = []byte(`{"message":"` + internalErrorMessage + `","code":500}`)
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)

	if _, err = writer.Write(body); err != nil {
		log.Debug().Err(err).Msg("client went away before the response was written")
	}
}
