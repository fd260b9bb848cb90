package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"sportsassist/config"
	otelMocks "sportsassist/infras/otel/mocks"
	"sportsassist/shared/constant"
	"sportsassist/transport/http/middleware"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracing(t *testing.T) {
	tests := []struct {
		name       string
		requestID  string
		status     int
		wantEcho   bool
		wantErrors int
	}{
		{name: "echoes caller request id", requestID: "req-123", status: http.StatusOK, wantEcho: true},
		{name: "generates request id", status: http.StatusOK},
		{name: "server error marks span", status: http.StatusBadGateway, wantErrors: 1},
		{name: "client error does not mark span", status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			otel := otelMocks.NewOtel()
			app := middleware.NewAppMiddleware(otel, &config.Config{}, nil)

			handler := app.Tracing(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}))

			request := httptest.NewRequest(http.MethodGet, "/v1/camps", nil)
			if tt.requestID != constant.Empty {
				request.Header.Set(constant.RequestHeaderRequestID, tt.requestID)
			}

			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			echoed := recorder.Header().Get(constant.RequestHeaderRequestID)
			if tt.wantEcho {
				assert.Equal(t, tt.requestID, echoed)
			} else {
				_, err := uuid.Parse(echoed)
				assert.NoError(t, err)
			}

			scope := otel.Scope("GET /v1/camps")
			require.NotNil(t, scope)
			assert.Len(t, scope.Errors, tt.wantErrors)
			assert.Equal(t, tt.status, scope.Attributes["http.status_code"])
			assert.True(t, scope.Ended)
		})
	}
}
