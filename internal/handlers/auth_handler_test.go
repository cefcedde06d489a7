package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"go-registry-console/internal/logger"
	"go-registry-console/internal/middleware"
	"go-registry-console/internal/session"
)

func newAuthTestRouter(t *testing.T, upstreamURL string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if logger.GlobalLogger == nil {
		if err := logger.InitializeLogger(logger.LoggerConfig{
			Level:      logger.ERROR,
			Service:    "registry-console",
			OutputPath: "stdout",
		}); err != nil {
			t.Fatal(err)
		}
	}

	manager := session.NewManager(upstreamURL, time.Second, time.Hour)
	router := gin.New()
	router.LoadHTMLGlob("../../web/templates/*.html")
	router.Use(middleware.TabMiddleware(manager))

	h := NewAuthHandler(manager)
	router.POST("/logout", h.Logout)
	return router
}

func TestLogoutReportsUpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/logout" {
			w.WriteHeader(http.StatusInternalServerError)
			io.WriteString(w, `{"error":"registro no disponible"}`)
			return
		}
		http.NotFound(w, r)
	}))
	defer upstream.Close()

	router := newAuthTestRouter(t, upstream.URL)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected the login view, got status %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "no confirmó el cierre") {
		t.Fatal("the upstream logout failure must reach the user")
	}
	if !strings.Contains(body, "registro no disponible") {
		t.Fatal("the server's message must be part of the notice")
	}
}

func TestLogoutRedirectsWhenUpstreamConfirms(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{}`)
	}))
	defer upstream.Close()

	router := newAuthTestRouter(t, upstream.URL)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("expected a redirect, got status %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Fatalf("expected /login, got %q", loc)
	}
}
