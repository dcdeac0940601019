package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookstore-jsonb/internal/infrastructure/database"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHealth struct {
	err error
}

func (f fakeHealth) HealthCheck(context.Context) error { return f.err }

func (f fakeHealth) Stats() (*database.PoolStats, error) {
	return &database.PoolStats{MaxConns: 25, TotalConns: 5}, nil
}

func serveHealth(t *testing.T, db healthChecker) (int, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/health", healthCheckHandler(db, "1.0.0"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestHealthCheck_OK(t *testing.T) {
	code, body := serveHealth(t, fakeHealth{})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "1.0.0", body["version"])
	assert.Contains(t, body, "pool")
}

func TestHealthCheck_Degraded(t *testing.T) {
	code, body := serveHealth(t, fakeHealth{err: errors.New("database ping failed")})
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "degraded", body["status"])
	assert.NotContains(t, body, "pool")
}
