package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"portfolio/api/internal/config"
	"portfolio/api/internal/middleware"
	"portfolio/api/internal/models"
	"portfolio/api/internal/service"
	"portfolio/api/internal/testutil"
)

// brokenSessionStore simulates a session backend outage.
type brokenSessionStore struct{}

func (brokenSessionStore) Create(context.Context, models.Session) error { return nil }

func (brokenSessionStore) GetByID(context.Context, string) (models.Session, error) {
	return models.Session{}, errors.New("connection refused")
}

func (brokenSessionStore) DeleteByID(context.Context, string) error { return nil }

func (brokenSessionStore) DeleteExpired(context.Context, time.Time) (int64, error) { return 0, nil }

func sessionEngine(sessions service.SessionStore) *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := &config.AppConfig{Session: config.SessionConfig{CookieName: "portfolio_session", TTL: time.Hour}}
	auth := service.NewAuthService(testutil.NewMemUserStore(), sessions, cfg, zerolog.Nop())

	engine := gin.New()
	engine.Use(middleware.Session(auth, "portfolio_session", zerolog.Nop()))
	engine.GET("/open", func(c *gin.Context) { c.Status(http.StatusOK) })
	return engine
}

func TestSessionStoreFailureIsServerError(t *testing.T) {
	engine := sessionEngine(brokenSessionStore{})

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.AddCookie(&http.Cookie{Name: "portfolio_session", Value: "some-token"})
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500 when the session store is down", rec.Code)
	}
}

func TestSessionMissingCookieStaysAnonymous(t *testing.T) {
	engine := sessionEngine(testutil.NewMemSessionStore())

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 for an anonymous request", rec.Code)
	}
}

func TestSessionUnknownTokenStaysAnonymous(t *testing.T) {
	engine := sessionEngine(testutil.NewMemSessionStore())

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.AddCookie(&http.Cookie{Name: "portfolio_session", Value: "no-such-session"})
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 for an unknown session token", rec.Code)
	}
}
