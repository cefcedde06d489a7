package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-registry-console/internal/logger"
	"go-registry-console/internal/middleware"
	"go-registry-console/internal/registry"
	"go-registry-console/internal/session"
)

// AuthHandler drives session establishment, login and logout.
type AuthHandler struct {
	manager *session.Manager
}

func NewAuthHandler(manager *session.Manager) *AuthHandler {
	return &AuthHandler{manager: manager}
}

// Entry handles GET /. On first load the session is resolved in strict
// order: a QR token in the URL wins, an ambient upstream session comes
// second, and with neither the tab lands on the login view.
func (h *AuthHandler) Entry(c *gin.Context) {
	tab := middleware.TabFrom(c)
	qrToken := c.Query("token")
	qrBrand := c.Query("brand")

	sess, err := tab.Establish(c.Request.Context(), qrToken, qrBrand)
	if err != nil {
		if registry.IsConnection(err) {
			SafeHTML(c, http.StatusBadGateway, "login.html", gin.H{
				"title": "Iniciar sesión",
				"error": registry.UserMessage(err, "No se pudo contactar el registro."),
			})
			return
		}
		logger.GlobalLogger.Error("Session establishment failed", err)
		SafeRedirect(c, http.StatusFound, "/login")
		return
	}

	if sess == nil {
		SafeRedirect(c, http.StatusFound, "/login")
		return
	}

	if brand := tab.Brand(); brand != "" {
		if err := tab.RefreshDevices(c.Request.Context()); err != nil {
			logger.GlobalLogger.Error("Initial device load failed", err, map[string]interface{}{
				"brand": brand,
			})
		}
	}
	SafeRedirect(c, http.StatusFound, "/dashboard")
}

// LoginForm handles GET /login.
func (h *AuthHandler) LoginForm(c *gin.Context) {
	tab := middleware.TabFrom(c)
	if tab.Session() != nil {
		SafeRedirect(c, http.StatusFound, "/dashboard")
		return
	}
	SafeHTML(c, http.StatusOK, "login.html", gin.H{
		"title": "Iniciar sesión",
	})
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *gin.Context) {
	tab := middleware.TabFrom(c)
	email := c.PostForm("email")
	password := c.PostForm("password")

	if email == "" || password == "" {
		SafeHTML(c, http.StatusBadRequest, "login.html", gin.H{
			"title": "Iniciar sesión",
			"error": "Correo y contraseña son obligatorios.",
			"email": email,
		})
		return
	}

	result, err := tab.Login(c.Request.Context(), email, password)
	if err != nil {
		logger.GlobalLogger.LogSecurityEvent("Login failed", "medium", map[string]interface{}{
			"email": email,
			"ip":    c.ClientIP(),
		})
		SafeHTML(c, http.StatusUnauthorized, "login.html", gin.H{
			"title": "Iniciar sesión",
			"error": registry.UserMessage(err, "Credenciales inválidas."),
			"email": email,
		})
		return
	}

	logger.GlobalLogger.LogSecurityEvent("Login succeeded", "low", map[string]interface{}{
		"email": email,
		"role":  string(result.User.Role),
	})

	if brand := tab.Brand(); brand != "" {
		if err := tab.RefreshDevices(c.Request.Context()); err != nil {
			logger.GlobalLogger.Error("Device load after login failed", err, map[string]interface{}{
				"brand": brand,
			})
		}
	}
	SafeRedirect(c, http.StatusFound, "/dashboard")
}

// Logout handles POST /logout. Local state is dropped whether or not
// the registry acknowledged; staying "logged in" locally after the user
// asked to leave is the worse failure.
func (h *AuthHandler) Logout(c *gin.Context) {
	tab := middleware.TabFrom(c)
	if err := tab.Logout(c.Request.Context()); err != nil {
		logger.GlobalLogger.Warn("Upstream logout failed", map[string]interface{}{
			"error": err.Error(),
		})
		SafeHTML(c, http.StatusOK, "login.html", gin.H{
			"title":  "Iniciar sesión",
			"notice": "La sesión local se cerró, pero el registro no confirmó el cierre: " + registry.UserMessage(err, "error desconocido."),
		})
		return
	}
	SafeRedirect(c, http.StatusFound, "/login")
}

// requireSession redirects to the login view when the tab has no
// session. Returns the tab, or nil when the request was already
// answered.
func requireSession(c *gin.Context) *session.Tab {
	tab := middleware.TabFrom(c)
	if tab == nil || tab.Session() == nil {
		SafeRedirect(c, http.StatusFound, "/login")
		c.Abort()
		return nil
	}
	return tab
}
