package api_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vytor/wkstats/internal/api"
	"github.com/vytor/wkstats/internal/errors"
	"github.com/vytor/wkstats/internal/logger"
	"github.com/vytor/wkstats/internal/testutil/mocks"
)

// panickingService fails inside a handler.
type panickingService struct {
	*mocks.MockDashboardService
}

func (panickingService) Refresh(ctx context.Context, token string) int {
	panic("boom")
}

func TestAPI_RecoveredPanicIsLoggedWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	prev := logger.Default()
	logger.SetDefault(logger.New(logger.WithOutput(&buf), logger.WithColors(false), logger.WithLevel(logger.DEBUG)))
	t.Cleanup(func() { logger.SetDefault(prev) })

	srv := &api.Server{DashboardService: panickingService{new(mocks.MockDashboardService)}}
	req := httptest.NewRequest(http.MethodPost, "/api/session/refresh", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Request-ID", "req-panic")
	rec := httptest.NewRecorder()

	srv.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode[map[string]map[string]string](t, rec)
	assert.Equal(t, errors.ErrCodeInternal, body["error"]["code"])

	out := buf.String()
	assert.Contains(t, out, "panic recovered: boom")
	assert.Contains(t, out, "request completed with server error")
	for _, line := range bytes.Split(buf.Bytes(), []byte("\n")) {
		if bytes.Contains(line, []byte("panic recovered")) {
			assert.Contains(t, string(line), `"request_id": "req-panic"`)
		}
	}
}
