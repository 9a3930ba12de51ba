package http

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/cycle-advisor/internal/infra/config"
)

func TestWithRetryReplaysBodyAfterServerError(t *testing.T) {
	var bodies []string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		bodies = append(bodies, string(data))
		if len(bodies) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("boom"))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	cfg := config.RetryConfig{Enabled: true, MaxAttempts: 3, BaseBackoff: time.Millisecond}
	handler := withRetry(inner, cfg, newTestLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cycle/evaluate", bytes.NewBufferString(`{"start_date":"2024-01-01"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())
	require.Equal(t, "2", rec.Header().Get(retryAttemptHeader))
	require.Equal(t, []string{`{"start_date":"2024-01-01"}`, `{"start_date":"2024-01-01"}`}, bodies)
}

func TestWithRetryGivesUpAfterMaxAttempts(t *testing.T) {
	calls := 0
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	cfg := config.RetryConfig{Enabled: true, MaxAttempts: 2, BaseBackoff: time.Millisecond}
	handler := withRetry(inner, cfg, newTestLogger())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/evaluate", bytes.NewBufferString("{}")))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Equal(t, 2, calls)
}

func TestWithRetrySkipsExcludedAndNonPost(t *testing.T) {
	calls := 0
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	})
	cfg := config.RetryConfig{Enabled: true, MaxAttempts: 3, BaseBackoff: time.Millisecond, Exclude: []string{"/api/v1/cycle/status"}}
	handler := withRetry(inner, cfg, newTestLogger())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/cycle/status", bytes.NewBufferString("{}")))
	require.Equal(t, 1, calls)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/content", nil))
	require.Equal(t, 2, calls)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestWithRetryRejectsOversizedBody(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})
	cfg := config.RetryConfig{Enabled: true, MaxAttempts: 2, BaseBackoff: time.Millisecond}
	handler := withRetry(inner, cfg, newTestLogger())

	big := bytes.Repeat([]byte("a"), retryBodyLimit+1)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/evaluate", bytes.NewReader(big)))
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestWithRetryStopsWhenClientGoesAway(t *testing.T) {
	calls := 0
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	})
	cfg := config.RetryConfig{Enabled: true, MaxAttempts: 5, BaseBackoff: time.Hour}
	handler := withRetry(inner, cfg, newTestLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodPost, "/api/evaluate", bytes.NewBufferString("{}")).WithContext(ctx)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, 1, calls)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Empty(t, rec.Header().Get(retryAttemptHeader))
}
