package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Logging(slog.New(slog.NewJSONHandler(io.Discard, nil))))
	r.POST("/echo", func(c *gin.Context) {
		raw, err := io.ReadAll(c.Request.Body)
		require.NoError(t, err)
		c.Data(http.StatusOK, "application/octet-stream", raw)
	})
	return r
}

func postJSON(r http.Handler, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/echo", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLoggingDoesNotRedactHandlerBody(t *testing.T) {
	r := echoRouter(t)

	// Redaction applies to the log line only; the handler must see the
	// client's actual secret.
	body := []byte(`{"token":"tok_live_1234","name":"Rina"}`)
	w := postJSON(r, body)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, string(body), w.Body.String())
	assert.NotContains(t, w.Body.String(), "redacted")
}

func TestLoggingPreservesOversizedBody(t *testing.T) {
	r := echoRouter(t)

	pad := strings.Repeat("a", 3*reqBodyLimit)
	body := []byte(`{"secret":"s3cret","pad":"` + pad + `"}`)
	w := postJSON(r, body)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, len(body), w.Body.Len())
	assert.Equal(t, string(body), w.Body.String())
}

func TestRedactJSONScrubsSensitiveKeys(t *testing.T) {
	out := redactJSON([]byte(`{"password":"hunter2","nested":{"Token":"abc"},"ok":1}`))
	s := string(out)
	assert.NotContains(t, s, "hunter2")
	assert.NotContains(t, s, "abc")
	assert.Contains(t, s, "***redacted***")
	assert.Contains(t, s, `"ok":1`)
}
