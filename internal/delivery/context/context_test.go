package context

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskboard/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestSessionRoundTrip(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	_, ok := GetSession(c)
	assert.False(t, ok)

	claims := &entity.SessionClaims{AccountID: uuid.New(), Email: "a@example.com"}
	SetSession(c, claims)

	got, ok := GetSession(c)
	assert.True(t, ok)
	assert.Same(t, claims, got)

	ctx := WithSession(context.Background(), claims)
	got, ok = SessionFromContext(ctx)
	assert.True(t, ok)
	assert.Same(t, claims, got)

	_, ok = SessionFromContext(context.Background())
	assert.False(t, ok)
}

func TestLoggerOrDefault(t *testing.T) {
	fallback := slog.Default()
	assert.Same(t, fallback, GetLoggerOrDefault(context.Background(), fallback))

	scoped := slog.New(slog.DiscardHandler)
	assert.Same(t, scoped, GetLoggerOrDefault(WithLogger(context.Background(), scoped), fallback))
}

func TestRequestID(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	generated := GetRequestID(c)
	_, err := uuid.Parse(generated)
	assert.NoError(t, err)

	SetRequestID(c, "req-1")
	assert.Equal(t, "req-1", GetRequestID(c))

	assert.Equal(t, "req-1", GetRequestIDFromContext(WithRequestID(context.Background(), "req-1")))
	assert.Empty(t, GetRequestIDFromContext(context.Background()))
}
