package http

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/yanqian/cycle-advisor/internal/infra/config"
)

const (
	retryBodyLimit     = 1 << 20
	retryAttemptHeader = "X-Retry-Attempt"
)

var errBodyTooLarge = errors.New("request body exceeds retry limit")

// withRetry replays POST requests that ended in a 5xx. The cycle handlers are pure functions of
// the body, so replaying is safe.
func withRetry(next http.Handler, cfg config.RetryConfig, logger *slog.Logger) http.Handler {
	if !cfg.Enabled || cfg.MaxAttempts <= 1 {
		return next
	}
	skip := make(map[string]bool, len(cfg.Exclude))
	for _, path := range cfg.Exclude {
		skip[path] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || skip[r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}
		body, err := bufferBody(r)
		switch {
		case errors.Is(err, errBodyTooLarge):
			http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
			return
		case err != nil:
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		var last *attemptRecorder
		for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
			if attempt > 1 {
				logger.Warn("transient failure, retrying request",
					"path", r.URL.Path, "status", last.status, "attempt", attempt-1)
				if !waitBackoff(r.Context(), cfg.BaseBackoff<<(attempt-2)) {
					break
				}
			}

			last = newAttemptRecorder(attempt)
			replay := r.Clone(r.Context())
			replay.Body = io.NopCloser(bytes.NewReader(body))
			replay.ContentLength = int64(len(body))
			next.ServeHTTP(last, replay)

			if last.status < http.StatusInternalServerError {
				break
			}
		}
		last.flushTo(w)
	})
}

// waitBackoff sleeps for d unless ctx ends first.
func waitBackoff(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func bufferBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	defer r.Body.Close()
	data, err := io.ReadAll(io.LimitReader(r.Body, retryBodyLimit+1))
	if err != nil {
		return nil, err
	}
	if len(data) > retryBodyLimit {
		return nil, errBodyTooLarge
	}
	return data, nil
}

// attemptRecorder holds one attempt's response until the retry loop settles on it.
type attemptRecorder struct {
	header  http.Header
	body    bytes.Buffer
	status  int
	attempt int
	written bool
}

func newAttemptRecorder(attempt int) *attemptRecorder {
	return &attemptRecorder{header: make(http.Header), status: http.StatusOK, attempt: attempt}
}

func (a *attemptRecorder) Header() http.Header { return a.header }

func (a *attemptRecorder) Write(p []byte) (int, error) {
	a.written = true
	return a.body.Write(p)
}

func (a *attemptRecorder) WriteHeader(status int) {
	if a.written {
		return
	}
	a.status = status
	a.written = true
}

func (a *attemptRecorder) Flush() {}

func (a *attemptRecorder) flushTo(w http.ResponseWriter) {
	dst := w.Header()
	for k, v := range a.header {
		dst[k] = append([]string(nil), v...)
	}
	if a.attempt > 1 {
		dst.Set(retryAttemptHeader, strconv.Itoa(a.attempt))
	}
	w.WriteHeader(a.status)
	if a.body.Len() > 0 {
		_, _ = w.Write(a.body.Bytes())
	}
}
