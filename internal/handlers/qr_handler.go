package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-registry-console/internal/logger"
	"go-registry-console/internal/registry"
	"go-registry-console/internal/rolegate"
	"go-registry-console/internal/scan"
	"go-registry-console/internal/services"
)

// QRHandler serves the QR views: the per-device modal, the brand access
// code and the scan endpoint that turns an uploaded photo back into a
// guest entry.
type QRHandler struct {
	barcodes *services.BarcodeService
	decoder  *scan.Decoder
	// publicBaseURL is the externally reachable console URL embedded in
	// generated codes.
	publicBaseURL string
}

func NewQRHandler(barcodes *services.BarcodeService, decoder *scan.Decoder, publicBaseURL string) *QRHandler {
	return &QRHandler{barcodes: barcodes, decoder: decoder, publicBaseURL: publicBaseURL}
}

// DeviceQR handles GET /devices/:id/qr, the modal linking a device to
// its public page.
func (h *QRHandler) DeviceQR(c *gin.Context) {
	tab := requireSession(c)
	if tab == nil {
		return
	}
	if !rolegate.ForSession(tab.Session()).ShowQRActions {
		renderErrorPage(c, http.StatusForbidden, "Your role cannot view QR codes")
		return
	}

	id, ok := deviceID(c)
	if !ok {
		return
	}

	payload, err := tab.Client.DeviceQR(c.Request.Context(), id)
	if err != nil {
		logger.GlobalLogger.Error("Device QR load failed", err, map[string]interface{}{
			"device_id": id,
		})
		renderErrorPage(c, http.StatusBadGateway, registry.UserMessage(err, "No se pudo generar el código QR."))
		return
	}

	SafeHTML(c, http.StatusOK, "qr.html", gin.H{
		"title":      "Código QR",
		"qr_code":    payload.QRCode,
		"device_url": payload.DeviceURL,
		"device":     payload.Device,
	})
}

// ManufacturerQR handles GET /devices/:id/manufacturer-qr, the variant
// linking to the manufacturer page instead of the device page.
func (h *QRHandler) ManufacturerQR(c *gin.Context) {
	tab := requireSession(c)
	if tab == nil {
		return
	}
	if !rolegate.ForSession(tab.Session()).ShowQRActions {
		renderErrorPage(c, http.StatusForbidden, "Your role cannot view QR codes")
		return
	}

	id, ok := deviceID(c)
	if !ok {
		return
	}

	payload, err := tab.Client.ManufacturerQR(c.Request.Context(), id)
	if err != nil {
		logger.GlobalLogger.Error("Manufacturer QR load failed", err, map[string]interface{}{
			"device_id": id,
		})
		renderErrorPage(c, http.StatusBadGateway, registry.UserMessage(err, "No se pudo generar el código QR."))
		return
	}

	SafeHTML(c, http.StatusOK, "qr.html", gin.H{
		"title":        "Código QR del fabricante",
		"qr_code":      payload.QRCode,
		"device_url":   payload.ManufacturerURL,
		"device":       payload.DeviceInfo,
		"manufacturer": true,
	})
}

// DeviceQRImage handles GET /devices/:id/qr.png, the raw PNG for the
// modal's download link, rendered locally from the public URL.
func (h *QRHandler) DeviceQRImage(c *gin.Context) {
	tab := requireSession(c)
	if tab == nil {
		return
	}

	id, ok := deviceID(c)
	if !ok {
		return
	}

	device, err := tab.Client.GetDevice(c.Request.Context(), id)
	if err != nil {
		renderErrorPage(c, http.StatusBadGateway, registry.UserMessage(err, "No se pudo cargar el dispositivo."))
		return
	}

	png, err := h.barcodes.GenerateDeviceQR(h.publicBaseURL, device.UUID)
	if err != nil {
		logger.GlobalLogger.Error("Device QR render failed", err, map[string]interface{}{
			"device_id": id,
		})
		renderErrorPage(c, http.StatusInternalServerError, "QR generation failed")
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// BrandAccessQR handles GET /brand/qr. It renders the entry code for
// the current brand scope so a guest can be handed read access by
// scanning it.
func (h *QRHandler) BrandAccessQR(c *gin.Context) {
	tab := requireSession(c)
	if tab == nil {
		return
	}
	if !rolegate.ForSession(tab.Session()).ShowQRActions {
		renderErrorPage(c, http.StatusForbidden, "Your role cannot issue brand access codes")
		return
	}
	brand := tab.Brand()
	if brand == "" {
		renderErrorPage(c, http.StatusBadRequest, "Select a brand before issuing an access code")
		return
	}

	token, err := tab.Client.IssueBrandToken(c.Request.Context(), brand)
	if err != nil {
		logger.GlobalLogger.Error("Brand token issue failed", err, map[string]interface{}{
			"brand": brand,
		})
		renderErrorPage(c, http.StatusBadGateway, registry.UserMessage(err, "No se pudo generar el acceso."))
		return
	}

	png, err := h.barcodes.GenerateBrandAccessQR(h.publicBaseURL, brand, token)
	if err != nil {
		logger.GlobalLogger.Error("Brand access QR render failed", err, map[string]interface{}{
			"brand": brand,
		})
		renderErrorPage(c, http.StatusInternalServerError, "QR generation failed")
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// ScanUpload handles POST /qr/scan: a photographed access code comes in
// as an image file, gets decoded and redirects into the guest entry
// flow with the brand and token it carried.
func (h *QRHandler) ScanUpload(c *gin.Context) {
	header, err := c.FormFile("image")
	if err != nil {
		SafeHTML(c, http.StatusBadRequest, "login.html", gin.H{
			"title": "Iniciar sesión",
			"error": "Seleccione una imagen con el código QR.",
		})
		return
	}

	file, err := header.Open()
	if err != nil {
		renderErrorPage(c, http.StatusBadRequest, "Could not read uploaded image")
		return
	}
	data, err := io.ReadAll(file)
	file.Close()
	if err != nil {
		renderErrorPage(c, http.StatusBadRequest, "Could not read uploaded image")
		return
	}

	access, err := h.decoder.DecodeBrandAccess(data)
	if err != nil {
		logger.GlobalLogger.Warn("QR scan decode failed", map[string]interface{}{
			"error": err.Error(),
		})
		SafeHTML(c, http.StatusUnprocessableEntity, "login.html", gin.H{
			"title": "Iniciar sesión",
			"error": "No se encontró un código de acceso en la imagen.",
		})
		return
	}

	target := services.BrandAccessURL("", access.Brand, access.Token)
	SafeRedirect(c, http.StatusFound, target)
}
