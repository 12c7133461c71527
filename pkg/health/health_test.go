package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/nbspace/pkg/health"
)

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func TestRun(t *testing.T) {
	t.Parallel()

	t.Run("no checks", func(t *testing.T) {
		t.Parallel()
		resp, err := health.Run(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, health.StatusHealthy, resp.Status)
	})

	t.Run("all healthy", func(t *testing.T) {
		t.Parallel()
		checks := health.Checks{}
		checks.AddPinger("storage", pinger{})
		checks.AddPinger("memo", nil)

		resp, err := health.Run(context.Background(), checks)
		require.NoError(t, err)
		assert.Equal(t, health.StatusHealthy, resp.Status)
		assert.Equal(t, []string{"storage"}, checks.Names())
	})

	t.Run("failure is reported", func(t *testing.T) {
		t.Parallel()
		checks := health.Checks{}
		checks.AddPinger("storage", pinger{})
		checks.AddPinger("memo", pinger{err: errors.New("connection refused")})

		resp, err := health.Run(context.Background(), checks)
		require.ErrorIs(t, err, health.ErrCheckFailed)
		assert.Contains(t, err.Error(), "memo: connection refused")
		assert.Equal(t, health.StatusUnhealthy, resp.Status)
		assert.Equal(t, health.StatusHealthy, resp.Checks["storage"].Status)
		assert.Equal(t, "connection refused", resp.Checks["memo"].Error)
	})

	t.Run("timeout", func(t *testing.T) {
		t.Parallel()
		checks := health.Checks{
			"slow": func(ctx context.Context) error {
				<-ctx.Done()
				return ctx.Err()
			},
		}

		resp, err := health.Run(context.Background(), checks, health.WithTimeout(10*time.Millisecond))
		require.Error(t, err)
		assert.Equal(t, health.StatusUnhealthy, resp.Status)
		assert.Contains(t, resp.Checks["slow"].Error, health.ErrCheckTimeout.Error())
	})
}

func TestHandlers(t *testing.T) {
	t.Parallel()

	t.Run("liveness", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		health.LivenessHandler()(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "OK", rec.Body.String())
	})

	t.Run("readiness text", func(t *testing.T) {
		t.Parallel()
		checks := health.Checks{}
		checks.AddPinger("storage", pinger{err: errors.New("disk gone")})

		rec := httptest.NewRecorder()
		health.ReadinessHandler(checks)(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, "Service Unavailable: storage", rec.Body.String())
	})

	t.Run("readiness json", func(t *testing.T) {
		t.Parallel()
		checks := health.Checks{}
		checks.AddPinger("storage", pinger{})

		rec := httptest.NewRecorder()
		health.ReadinessHandler(checks)(rec, httptest.NewRequest(http.MethodGet, "/health/ready?format=json", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp health.Response
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, health.StatusHealthy, resp.Status)
		assert.Equal(t, health.StatusHealthy, resp.Checks["storage"].Status)
	})
}
