package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-registry-console/internal/logger"
	"go-registry-console/internal/middleware"
	"go-registry-console/internal/registry"
)

// PublicHandler serves the read-only device page and the password-gated
// downloads linked from it. No session is required on any of its routes.
type PublicHandler struct{}

func NewPublicHandler() *PublicHandler {
	return &PublicHandler{}
}

// DevicePage handles GET /public/device/:uuid.
func (h *PublicHandler) DevicePage(c *gin.Context) {
	tab := middleware.TabFrom(c)
	uuid := c.Param("uuid")
	if uuid == "" {
		renderErrorPage(c, http.StatusBadRequest, "Missing device identifier")
		return
	}

	device, err := tab.Client.DeviceByUUID(c.Request.Context(), uuid)
	if err != nil {
		logger.GlobalLogger.Error("Public device load failed", err, map[string]interface{}{
			"uuid": uuid,
		})
		renderErrorPage(c, http.StatusNotFound, registry.UserMessage(err, "Dispositivo no encontrado."))
		return
	}

	SafeHTML(c, http.StatusOK, "public_device.html", gin.H{
		"title":  device.NombreCatalogo,
		"device": device,
		"files":  device.PublicFiles(),
	})
}

// DownloadPrompt handles GET /public/file/:id/download. Files that need
// no password stream immediately; protected ones get the prompt.
func (h *PublicHandler) DownloadPrompt(c *gin.Context) {
	tab := middleware.TabFrom(c)
	fileID, ok := fileIDParam(c)
	if !ok {
		return
	}

	if c.Query("protected") != "1" {
		h.stream(c, fileID, "")
		return
	}

	flow := tab.Download(fileID)
	if err := flow.Start(fileID); err != nil {
		renderErrorPage(c, http.StatusBadRequest, "Invalid download request")
		return
	}

	SafeHTML(c, http.StatusOK, "password_prompt.html", gin.H{
		"title":   "Archivo protegido",
		"file_id": fileID,
		"back":    c.Query("back"),
	})
}

// SubmitPassword handles POST /public/file/:id/download. A refused
// password returns to the prompt with the fixed denial text; retries
// are unlimited.
func (h *PublicHandler) SubmitPassword(c *gin.Context) {
	tab := middleware.TabFrom(c)
	fileID, ok := fileIDParam(c)
	if !ok {
		return
	}

	flow := tab.Download(fileID)
	resource, err := flow.Submit(c.Request.Context(), c.PostForm("password"))
	if err != nil {
		logger.GlobalLogger.LogSecurityEvent("Protected download refused", "low", map[string]interface{}{
			"file_id": fileID,
			"ip":      c.ClientIP(),
		})
		SafeHTML(c, http.StatusUnauthorized, "password_prompt.html", gin.H{
			"title":   "Archivo protegido",
			"file_id": fileID,
			"error":   flow.Message(),
			"back":    c.PostForm("back"),
		})
		return
	}
	defer resource.Body.Close()
	flow.Reset()

	writeResource(c, resource)
}

// stream fetches and relays a file without a prompt. The same upstream
// endpoint serves both cases; an unexpected 401 still renders the
// prompt rather than leaking the raw denial.
func (h *PublicHandler) stream(c *gin.Context, fileID uint, password string) {
	tab := middleware.TabFrom(c)
	resource, err := tab.Client.DownloadProtectedFile(c.Request.Context(), fileID, password)
	if err != nil {
		if errors.Is(err, registry.ErrDenied) {
			SafeRedirect(c, http.StatusFound,
				"/public/file/"+strconv.FormatUint(uint64(fileID), 10)+"/download?protected=1")
			return
		}
		logger.GlobalLogger.Error("Public download failed", err, map[string]interface{}{
			"file_id": fileID,
		})
		renderErrorPage(c, http.StatusBadGateway, registry.UserMessage(err, "No se pudo descargar el archivo."))
		return
	}
	defer resource.Body.Close()

	writeResource(c, resource)
}

func writeResource(c *gin.Context, resource *registry.ProtectedResource) {
	contentType := resource.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if resource.Filename != "" {
		c.Header("Content-Disposition", `attachment; filename="`+resource.Filename+`"`)
	}
	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, resource.Body); err != nil {
		logger.GlobalLogger.Warn("Download stream interrupted", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func fileIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		renderErrorPage(c, http.StatusBadRequest, "Invalid file id")
		return 0, false
	}
	return uint(id), true
}
