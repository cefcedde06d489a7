package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"go-registry-console/internal/middleware"
	"go-registry-console/internal/models"
)

// SafeHTML safely renders HTML templates with proper error handling
// This prevents blank pages by ensuring proper context and fallback handling
func SafeHTML(c *gin.Context, statusCode int, templateName string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	// Session context is always available for the base layout
	if _, exists := data["session"]; !exists {
		data["session"] = currentSession(c)
	}
	if _, exists := data["title"]; !exists {
		data["title"] = "Registro de Dispositivos"
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("SafeHTML: Template rendering panic for %s: %v", templateName, r)
			renderErrorPage(c, http.StatusInternalServerError, "Template rendering error")
		}
	}()

	c.HTML(statusCode, templateName, data)
}

// SafeRedirect safely redirects with proper logging
func SafeRedirect(c *gin.Context, statusCode int, location string) {
	c.Redirect(statusCode, location)
}

// SafeJSON safely renders JSON with proper error handling
func SafeJSON(c *gin.Context, statusCode int, data interface{}) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("SafeJSON: JSON rendering panic: %v", r)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
				"code":  "RENDER_ERROR",
			})
		}
	}()

	c.JSON(statusCode, data)
}

// currentSession returns the tab's session, nil when unauthenticated.
func currentSession(c *gin.Context) *models.Session {
	if tab := middleware.TabFrom(c); tab != nil {
		return tab.Session()
	}
	return nil
}

// renderErrorPage renders a safe error page that should never fail
func renderErrorPage(c *gin.Context, statusCode int, message string) {
	if c.Writer.Written() {
		return
	}

	requestID := c.GetString("request_id")

	defer func() {
		if r := recover(); r != nil {
			log.Printf("renderErrorPage: Error template also failed: %v", r)
			if c.Writer.Written() {
				return
			}
			// Last resort: plain HTML response
			c.Header("Content-Type", "text/html; charset=utf-8")
			c.String(statusCode, `
<!DOCTYPE html>
<html>
<head>
    <title>Error %d</title>
    <link href="https://cdn.jsdelivr.net/npm/bootstrap@5.1.3/dist/css/bootstrap.min.css" rel="stylesheet">
</head>
<body>
    <div class="container mt-5">
        <div class="alert alert-danger">
            <h4>Application Error %d</h4>
            <p>%s</p>
            <p><a href="/" class="btn btn-primary">Return Home</a></p>
            <small class="text-muted">Request ID: %s</small>
        </div>
    </div>
</body>
</html>`, statusCode, statusCode, message, requestID)
		}
	}()

	c.HTML(statusCode, "error_page.html", gin.H{
		"error_code":    statusCode,
		"error_message": getErrorMessage(statusCode, message),
		"error_details": message,
		"request_id":    requestID,
		"timestamp":     time.Now().Format("2006-01-02 15:04:05"),
		"session":       currentSession(c),
	})
}

// getErrorMessage returns a user-friendly error message based on status code
func getErrorMessage(statusCode int, originalMessage string) string {
	switch statusCode {
	case 400:
		return "Bad Request - The request was invalid or cannot be processed"
	case 401:
		return "Unauthorized - You need to log in to access this page"
	case 403:
		return "Forbidden - You don't have permission to access this resource"
	case 404:
		return "Page Not Found - The requested page could not be found"
	case 500:
		return "Internal Server Error - Something went wrong on the server"
	case 502:
		return "Bad Gateway - The registry returned an invalid response"
	case 503:
		return "Service Unavailable - The registry is temporarily unavailable"
	default:
		if originalMessage != "" {
			return originalMessage
		}
		return "An unexpected error occurred"
	}
}

// GlobalErrorHandler provides global error recovery middleware
func GlobalErrorHandler() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(gin.DefaultWriter, func(c *gin.Context, recovered interface{}) {
		log.Printf("GlobalErrorHandler: Panic recovered: %v", recovered)
		renderErrorPage(c, http.StatusInternalServerError, "An unexpected error occurred")
	})
}

// NotFoundHandler handles 404 errors with proper template rendering
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Accept") == "application/json" ||
			c.ContentType() == "application/json" {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Resource not found",
				"path":  c.Request.URL.Path,
			})
			return
		}

		renderErrorPage(c, http.StatusNotFound, "Page not found")
	}
}
