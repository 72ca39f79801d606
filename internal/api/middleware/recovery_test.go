package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/clubroster/internal/api/apierr"
	"github.com/mcoot/clubroster/internal/middleware"
	"github.com/mcoot/clubroster/internal/testutil"
)

func panicking() http.Handler {
	return http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})
}

func TestRecoveryQuotesRequestID(t *testing.T) {
	logger, logs := testutil.CaptureLogger()
	handler := middleware.RequestID()(Recovery(logger)(panicking()))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/events", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	id := rr.Header().Get(middleware.RequestIDHeader)
	require.NotEmpty(t, id)

	var resp apierr.ErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, apierr.CodeInternalError, resp.Error.Code)
	assert.Equal(t, "Internal server error (request "+id+")", resp.Error.Message)

	entry := logs.Find("panic recovered")
	require.NotNil(t, entry)
	assert.Equal(t, id, entry["request_id"])
}

func TestRecoveryWithoutRequestID(t *testing.T) {
	rr := httptest.NewRecorder()
	Recovery(testutil.NopLogger())(panicking()).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/events", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	var resp apierr.ErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "Internal server error", resp.Error.Message)
}
