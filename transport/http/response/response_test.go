package response_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"sportsassist/shared/failure"
	"sportsassist/transport/http/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     int
		expected string
		reason   string
	}{
		{name: "not found", err: failure.NotFound("camp not found"), code: http.StatusNotFound, expected: "camp not found"},
		{name: "conflict", err: failure.Conflict("slot is full"), code: http.StatusConflict, expected: "slot is full"},
		{name: "wrapped failure", err: errors.Join(errors.New("ctx"), failure.BadRequestFromString("bad")), code: http.StatusBadRequest, expected: "bad"},
		{name: "plain error hidden", err: errors.New("pq: connection refused"), code: http.StatusInternalServerError, expected: "internal server error"},
		{name: "internal failure hidden", err: failure.InternalError(errors.New("pq: deadlock detected")), code: http.StatusInternalServerError, expected: "internal server error"},
		{name: "unavailable keeps message", err: failure.ServiceUnavailable("file storage is not configured"), code: http.StatusServiceUnavailable, expected: "file storage is not configured"},
		{
			name:     "reason is exposed",
			err:      fmt.Errorf("failed to book: %w", failure.WithReason(failure.Conflict("slot is fully booked"), "slot_full")),
			code:     http.StatusConflict,
			expected: "slot is fully booked",
			reason:   "slot_full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()

			response.WithError(recorder, tt.err)

			var body response.Error
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

			assert.Equal(t, tt.code, recorder.Code)
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, tt.expected, body.Message)
			assert.Equal(t, tt.reason, body.Reason)
			assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
		})
	}
}

func TestWithJSON(t *testing.T) {
	recorder := httptest.NewRecorder()

	response.WithJSON(recorder, http.StatusCreated, map[string]int{"count": 3})

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.JSONEq(t, `{"data":{"count":3}}`, recorder.Body.String())
}

func TestWithRequestLimitExceeded(t *testing.T) {
	recorder := httptest.NewRecorder()

	response.WithRequestLimitExceeded(recorder)

	assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
	assert.JSONEq(t, `{"message":"REQUEST LIMIT EXCEEDED","code":429}`, recorder.Body.String())
}

func TestWithJSON_UnencodablePayload(t *testing.T) {
	recorder := httptest.NewRecorder()

	response.WithJSON(recorder, http.StatusOK, map[string]any{"broken": make(chan int)})

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.JSONEq(t, `{"message":"internal server error","code":500}`, recorder.Body.String())
}
