package weather

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient("test-key", 5*time.Second, discardLogger())
	c.baseURL = srv.URL
	return c
}

func TestClient_CurrentCondition(t *testing.T) {
	t.Run("lowercases the condition group", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/data/2.5/weather", r.URL.Path)
			assert.Equal(t, "40.7100", r.URL.Query().Get("lat"))
			assert.Equal(t, "-74.0000", r.URL.Query().Get("lon"))
			assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
			io.WriteString(w, `{"weather":[{"id":501,"main":"Rain","description":"moderate rain"}]}`)
		})

		condition, err := c.CurrentCondition(context.Background(), 40.71, -74.0)
		require.NoError(t, err)
		assert.Equal(t, "rain", condition)
	})

	t.Run("non-200 is an error", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"cod":401,"message":"Invalid API key"}`, http.StatusUnauthorized)
		})

		_, err := c.CurrentCondition(context.Background(), 40.71, -74.0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 401")
	})

	t.Run("empty conditions is an error", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"weather":[]}`)
		})

		_, err := c.CurrentCondition(context.Background(), 40.71, -74.0)
		assert.Error(t, err)
	})
}
