package classifier

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/dmitrijs2005/moodjournal/internal/common"
	"github.com/dmitrijs2005/moodjournal/internal/logging"
	"github.com/stretchr/testify/require"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
}

func TestHTTPClassifier_Classify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[[{"label":"positive","score":0.91},{"label":"negative","score":0.09}]]`))
	}))
	defer srv.Close()

	c := NewHTTPClassifier(srv.URL, "tok", time.Second, testLogger())
	p, err := c.Classify(context.Background(), "bugün harika hissediyorum")
	require.NoError(t, err)
	require.Equal(t, "positive", p.Label)
	require.InDelta(t, 0.91, p.Confidence(), 1e-9)
}

func TestHTTPClassifier_FlatResponseShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"label":"neutral","score":0.55},{"label":"positive","score":0.45}]`))
	}))
	defer srv.Close()

	c := NewHTTPClassifier(srv.URL, "", time.Second, testLogger())
	p, err := c.Classify(context.Background(), "ok")
	require.NoError(t, err)
	require.Equal(t, "neutral", p.Label)
}

func TestHTTPClassifier_RetriesWarmup(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`[[{"label":"negative","score":0.7},{"label":"positive","score":0.3}]]`))
	}))
	defer srv.Close()

	c := NewHTTPClassifier(srv.URL, "", 2*time.Second, testLogger())
	p, err := c.Classify(context.Background(), "x")
	require.NoError(t, err)
	require.Equal(t, "negative", p.Label)
	require.Equal(t, 2, calls)
}

func TestHTTPClassifier_HardFailureNotRetried(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewHTTPClassifier(srv.URL, "", time.Second, testLogger())
	_, err := c.Classify(context.Background(), "x")
	require.ErrorIs(t, err, common.ErrClassifierUnavailable)
	require.Equal(t, 1, calls)
}
