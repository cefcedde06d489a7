package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-registry-console/internal/logger"
	"go-registry-console/internal/models"
	"go-registry-console/internal/registry"
	"go-registry-console/internal/rolegate"
	"go-registry-console/internal/services"
	"go-registry-console/internal/session"
	"go-registry-console/internal/viewstate"
)

// DeviceHandler serves the device form and its mutations.
type DeviceHandler struct {
	pdf      *services.PDFService
	barcodes *services.BarcodeService
}

func NewDeviceHandler(pdf *services.PDFService, barcodes *services.BarcodeService) *DeviceHandler {
	return &DeviceHandler{pdf: pdf, barcodes: barcodes}
}

// requireEditor rejects viewer roles before any mutation or form render.
func requireEditor(c *gin.Context) *session.Tab {
	tab := requireSession(c)
	if tab == nil {
		return nil
	}
	if !rolegate.ForSession(tab.Session()).CanEditDevices {
		renderErrorPage(c, http.StatusForbidden, "Your role cannot edit devices")
		c.Abort()
		return nil
	}
	return tab
}

// NewForm handles GET /devices/new. The brand is prefilled from the
// current scope; the taxonomy starts at the category level with both
// child selects disabled.
func (h *DeviceHandler) NewForm(c *gin.Context) {
	tab := requireEditor(c)
	if tab == nil {
		return
	}

	categories, err := tab.Client.Categories(c.Request.Context())
	if err != nil {
		logger.GlobalLogger.Error("Category list load failed", err)
	}

	SafeHTML(c, http.StatusOK, "device_form.html", gin.H{
		"title":      "Nuevo dispositivo",
		"mode":       "create",
		"brand":      tab.Brand(),
		"device":     &models.Device{Marca: tab.Brand()},
		"doc":        &models.DeviceDoc{},
		"categories": categories,
		"file_types": models.FileTypes,
	})
}

// EditForm handles GET /devices/:id/edit. The full record is always
// fetched by id; the dashboard summary is never trusted to be complete.
func (h *DeviceHandler) EditForm(c *gin.Context) {
	tab := requireEditor(c)
	if tab == nil {
		return
	}

	id, ok := deviceID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	device, err := tab.Client.GetDevice(ctx, id)
	if err != nil {
		logger.GlobalLogger.Error("Device load for edit failed", err, map[string]interface{}{
			"device_id": id,
		})
		renderErrorPage(c, http.StatusBadGateway, registry.UserMessage(err, "No se pudo cargar el dispositivo."))
		return
	}

	categories, err := tab.Client.Categories(ctx)
	if err != nil {
		logger.GlobalLogger.Error("Category list load failed", err)
	}

	// Preload the dependent levels so the saved selection renders
	// selected instead of cleared.
	var subcategories, groups []string
	if device.Categoria != "" {
		subcategories, _ = tab.Client.Subcategories(ctx, device.Categoria)
		if device.Subcategoria != "" {
			groups, _ = tab.Client.Groups(ctx, device.Categoria, device.Subcategoria)
		}
	}

	SafeHTML(c, http.StatusOK, "device_form.html", gin.H{
		"title":         "Editar dispositivo",
		"mode":          "edit",
		"brand":         tab.Brand(),
		"device":        device,
		"doc":           docFromDevice(device),
		"categories":    categories,
		"subcategories": subcategories,
		"groups":        groups,
		"file_types":    models.FileTypes,
	})
}

// Create handles POST /devices: device save, then documentation fields,
// then attachments one at a time. Later failures never roll back the
// earlier saves; they surface as warnings on the dashboard.
func (h *DeviceHandler) Create(c *gin.Context) {
	tab := requireEditor(c)
	if tab == nil {
		return
	}

	device, doc := deviceFromForm(c)
	ctx := c.Request.Context()

	if err := validateTaxonomy(ctx, tab, device); err != nil {
		h.rerenderForm(c, tab, "create", device, doc, err.Error())
		return
	}

	created, err := tab.Client.CreateDevice(ctx, device)
	if err != nil {
		h.rerenderForm(c, tab, "create", device, doc, registry.UserMessage(err, "No se pudo guardar el dispositivo."))
		return
	}
	logger.GlobalLogger.LogBusinessEvent("Device created", created.NombreCatalogo, "create", map[string]interface{}{
		"device_id": created.ID,
		"brand":     created.Marca,
	})

	warnings := h.saveSecondary(c, tab, created.ID, doc)
	h.finishSave(c, tab, created.Marca, warnings)
}

// Update handles POST /devices/:id with the same save order as Create.
func (h *DeviceHandler) Update(c *gin.Context) {
	tab := requireEditor(c)
	if tab == nil {
		return
	}

	id, ok := deviceID(c)
	if !ok {
		return
	}

	device, doc := deviceFromForm(c)
	ctx := c.Request.Context()

	if err := validateTaxonomy(ctx, tab, device); err != nil {
		device.ID = id
		h.rerenderForm(c, tab, "edit", device, doc, err.Error())
		return
	}

	if err := tab.Client.UpdateDevice(ctx, id, device); err != nil {
		device.ID = id
		h.rerenderForm(c, tab, "edit", device, doc, registry.UserMessage(err, "No se pudo guardar el dispositivo."))
		return
	}
	logger.GlobalLogger.LogBusinessEvent("Device updated", device.NombreCatalogo, "update", map[string]interface{}{
		"device_id": id,
	})

	warnings := h.saveSecondary(c, tab, id, doc)
	h.finishSave(c, tab, device.Marca, warnings)
}

// Delete handles POST /devices/:id/delete. The registry answers with
// the brand the device belonged to; the dashboard re-scopes to it so
// the reload shows the right list even if the scope drifted.
func (h *DeviceHandler) Delete(c *gin.Context) {
	tab := requireEditor(c)
	if tab == nil {
		return
	}

	id, ok := deviceID(c)
	if !ok {
		return
	}

	marca, err := tab.Client.DeleteDevice(c.Request.Context(), id)
	if err != nil {
		logger.GlobalLogger.Error("Device delete failed", err, map[string]interface{}{
			"device_id": id,
		})
		renderErrorPage(c, http.StatusBadGateway, registry.UserMessage(err, "No se pudo eliminar el dispositivo."))
		return
	}

	logger.GlobalLogger.LogBusinessEvent("Device deleted", marca, "delete", map[string]interface{}{
		"device_id": id,
	})

	if marca != "" {
		if err := tab.SetBrand(c.Request.Context(), marca); err != nil {
			logger.GlobalLogger.Error("Reload after delete failed", err, map[string]interface{}{
				"brand": marca,
			})
		}
	}
	SafeRedirect(c, http.StatusFound, "/dashboard")
}

// Subcategories handles GET /devices/form/subcategories, feeding the
// dependent select when the category changes.
func (h *DeviceHandler) Subcategories(c *gin.Context) {
	tab := requireEditor(c)
	if tab == nil {
		return
	}

	categoria := c.Query("categoria")
	if categoria == "" {
		SafeJSON(c, http.StatusBadRequest, gin.H{"error": "categoria is required"})
		return
	}

	subcategories, err := tab.Client.Subcategories(c.Request.Context(), categoria)
	if err != nil {
		SafeJSON(c, http.StatusBadGateway, gin.H{"error": registry.UserMessage(err, "lookup failed")})
		return
	}
	SafeJSON(c, http.StatusOK, gin.H{"subcategories": subcategories})
}

// Groups handles GET /devices/form/groups for the third taxonomy level.
func (h *DeviceHandler) Groups(c *gin.Context) {
	tab := requireEditor(c)
	if tab == nil {
		return
	}

	categoria := c.Query("categoria")
	subcategoria := c.Query("subcategoria")
	if categoria == "" || subcategoria == "" {
		SafeJSON(c, http.StatusBadRequest, gin.H{"error": "categoria and subcategoria are required"})
		return
	}

	groups, err := tab.Client.Groups(c.Request.Context(), categoria, subcategoria)
	if err != nil {
		SafeJSON(c, http.StatusBadGateway, gin.H{"error": registry.UserMessage(err, "lookup failed")})
		return
	}
	SafeJSON(c, http.StatusOK, gin.H{"groups": groups})
}

// DeleteFile handles POST /files/:id/delete from the edit form.
func (h *DeviceHandler) DeleteFile(c *gin.Context) {
	tab := requireEditor(c)
	if tab == nil {
		return
	}

	fileID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		renderErrorPage(c, http.StatusBadRequest, "Invalid file id")
		return
	}

	if err := tab.Client.DeleteFile(c.Request.Context(), uint(fileID)); err != nil {
		logger.GlobalLogger.Error("File delete failed", err, map[string]interface{}{
			"file_id": fileID,
		})
		renderErrorPage(c, http.StatusBadGateway, registry.UserMessage(err, "No se pudo eliminar el archivo."))
		return
	}

	if back := c.PostForm("device_id"); back != "" {
		SafeRedirect(c, http.StatusFound, "/devices/"+back+"/edit")
		return
	}
	SafeRedirect(c, http.StatusFound, "/dashboard")
}

// SpecSheet handles GET /devices/:id/pdf.
func (h *DeviceHandler) SpecSheet(c *gin.Context) {
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

	pdfBytes, err := h.pdf.GenerateDeviceSheet(device)
	if err != nil {
		logger.GlobalLogger.Error("Spec sheet generation failed", err, map[string]interface{}{
			"device_id": id,
		})
		renderErrorPage(c, http.StatusInternalServerError, "PDF generation failed")
		return
	}

	filename := fmt.Sprintf("dispositivo_%s.pdf", device.ModeloTecnico)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// Label handles GET /devices/:id/label, a printable Code128 label of
// the technical model.
func (h *DeviceHandler) Label(c *gin.Context) {
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

	png, err := h.barcodes.GenerateDeviceLabel(device.ModeloTecnico)
	if err != nil {
		logger.GlobalLogger.Error("Label generation failed", err, map[string]interface{}{
			"device_id": id,
		})
		renderErrorPage(c, http.StatusInternalServerError, "Label generation failed")
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// saveSecondary writes the documentation fields and the attachments
// after the device record is in place. Each failure becomes a warning
// naming what did not stick; nothing here undoes the device save.
func (h *DeviceHandler) saveSecondary(c *gin.Context, tab *session.Tab, deviceID uint, doc *models.DeviceDoc) []string {
	var warnings []string
	ctx := c.Request.Context()

	if !doc.Empty() {
		if err := tab.Client.SaveDeviceDoc(ctx, deviceID, doc); err != nil {
			logger.GlobalLogger.Error("Device doc save failed", err, map[string]interface{}{
				"device_id": deviceID,
			})
			warnings = append(warnings, "Los campos de documentación no se guardaron: "+
				registry.UserMessage(err, "error desconocido."))
		}
	}

	for _, upload := range uploadsFromForm(c) {
		if err := tab.Client.UploadDeviceFile(ctx, deviceID, upload); err != nil {
			logger.GlobalLogger.Error("Attachment upload failed", err, map[string]interface{}{
				"device_id": deviceID,
				"file_type": upload.FileType,
			})
			warnings = append(warnings, fmt.Sprintf("El archivo %q no se subió: %s",
				upload.FileType, registry.UserMessage(err, "error desconocido.")))
		}
	}
	return warnings
}

// finishSave reloads the list and lands on the dashboard, carrying any
// warnings in the redirect.
func (h *DeviceHandler) finishSave(c *gin.Context, tab *session.Tab, marca string, warnings []string) {
	if marca != "" && marca != tab.Brand() {
		if err := tab.SetBrand(c.Request.Context(), marca); err != nil {
			logger.GlobalLogger.Error("Reload after save failed", err, map[string]interface{}{
				"brand": marca,
			})
		}
	} else if err := tab.RefreshDevices(c.Request.Context()); err != nil {
		logger.GlobalLogger.Error("Reload after save failed", err, map[string]interface{}{
			"brand": tab.Brand(),
		})
	}

	target := url.Values{"saved": {"1"}}
	for _, w := range warnings {
		target.Add("warning", w)
	}
	SafeRedirect(c, http.StatusFound, "/dashboard?"+target.Encode())
}

func (h *DeviceHandler) rerenderForm(c *gin.Context, tab *session.Tab, mode string, device *models.Device, doc *models.DeviceDoc, message string) {
	ctx := c.Request.Context()
	categories, _ := tab.Client.Categories(ctx)

	var subcategories, groups []string
	if device.Categoria != "" {
		subcategories, _ = tab.Client.Subcategories(ctx, device.Categoria)
		if device.Subcategoria != "" {
			groups, _ = tab.Client.Groups(ctx, device.Categoria, device.Subcategoria)
		}
	}

	title := "Nuevo dispositivo"
	if mode == "edit" {
		title = "Editar dispositivo"
	}
	SafeHTML(c, http.StatusBadGateway, "device_form.html", gin.H{
		"title":         title,
		"mode":          mode,
		"brand":         tab.Brand(),
		"device":        device,
		"doc":           doc,
		"categories":    categories,
		"subcategories": subcategories,
		"groups":        groups,
		"file_types":    models.FileTypes,
		"error":         message,
	})
}

// validateTaxonomy re-runs the dependent-selection rules against the
// live taxonomy before a save: no level may hold a value inconsistent
// with its parent, and a child without its parent is dropped.
func validateTaxonomy(ctx context.Context, tab *session.Tab, device *models.Device) error {
	if device.Categoria == "" {
		device.Subcategoria = ""
		device.Grupo = ""
		return nil
	}

	cascade := viewstate.NewCascade()
	cascade.SetCategoria(device.Categoria)

	if device.Subcategoria != "" {
		subcategories, err := tab.Client.Subcategories(ctx, device.Categoria)
		if err != nil {
			return fmt.Errorf("no se pudo validar la clasificación: %s",
				registry.UserMessage(err, "error de consulta"))
		}
		if err := cascade.LoadSubcategories(subcategories); err != nil {
			return err
		}
		if err := cascade.SetSubcategoria(device.Subcategoria); err != nil {
			return fmt.Errorf("la subcategoría no corresponde a la categoría seleccionada")
		}

		if device.Grupo != "" {
			groups, err := tab.Client.Groups(ctx, device.Categoria, device.Subcategoria)
			if err != nil {
				return fmt.Errorf("no se pudo validar la clasificación: %s",
					registry.UserMessage(err, "error de consulta"))
			}
			if err := cascade.LoadGroups(groups); err != nil {
				return err
			}
			if err := cascade.SetGrupo(device.Grupo); err != nil {
				return fmt.Errorf("el grupo no corresponde a la subcategoría seleccionada")
			}
		}
	}

	device.Subcategoria = cascade.Subcategoria()
	device.Grupo = cascade.Grupo()
	return nil
}

// deviceID parses the :id route parameter, answering the request itself
// on bad input.
func deviceID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		renderErrorPage(c, http.StatusBadRequest, "Invalid device id")
		return 0, false
	}
	return uint(id), true
}

// deviceFromForm maps the posted form onto the wire shape. Numeric
// fields parse leniently: an unparsable value becomes the zero value
// and the registry's validation has the final word.
func deviceFromForm(c *gin.Context) (*models.Device, *models.DeviceDoc) {
	device := &models.Device{
		Marca:           c.PostForm("marca"),
		NombreCatalogo:  c.PostForm("nombre_catalogo"),
		ModeloComercial: c.PostForm("modelo_comercial"),
		ModeloTecnico:   c.PostForm("modelo_tecnico"),
		Comentarios:     c.PostForm("comentarios"),
		FechaVigencia:   c.PostForm("fecha_vigencia"),

		Categoria:    c.PostForm("categoria"),
		Subcategoria: c.PostForm("subcategoria"),
		Grupo:        c.PostForm("grupo"),

		ImportadorRepresentante: c.PostForm("importador_representante"),
		Domicilio:               c.PostForm("domicilio"),
		CorreoContacto:          c.PostForm("correo_contacto"),

		TecnologiaModulacion: c.PostForm("tecnologia_modulacion"),
		Frecuencias:          c.PostForm("frecuencias"),
		GananciaAntena:       c.PostForm("ganancia_antena"),
	}
	if v, err := strconv.Atoi(c.PostForm("ano_lanzamiento")); err == nil {
		device.AnoLanzamiento = v
	}
	if v, err := strconv.ParseFloat(c.PostForm("pire_dbm"), 64); err == nil {
		device.PireDbm = v
	}
	if v, err := strconv.ParseFloat(c.PostForm("pire_mw"), 64); err == nil {
		device.PireMw = v
	}

	doc := &models.DeviceDoc{
		TecnologiaModulacionDoc: c.PostForm("tecnologia_modulacion_doc"),
		FrecuenciasDoc:          c.PostForm("frecuencias_doc"),
		GananciaAntenaDoc:       c.PostForm("ganancia_antena_doc"),
		PireDbmDoc:              c.PostForm("pire_dbm_doc"),
		PireMwDoc:               c.PostForm("pire_mw_doc"),
	}
	return device, doc
}

// uploadsFromForm collects the per-role attachment inputs. Each role
// has a file input, an optional external URL and its visibility pair;
// a role with neither a file nor a URL contributes nothing.
func uploadsFromForm(c *gin.Context) []models.Upload {
	var uploads []models.Upload
	for _, fileType := range models.FileTypes {
		upload := models.Upload{
			FileType:         fileType,
			Visibility:       c.PostForm("visibility_" + fileType),
			RequiresPassword: c.PostForm("requires_password_"+fileType) == "on",
			ExternalURL:      c.PostForm("external_url_" + fileType),
		}
		if upload.Visibility == "" {
			upload.Visibility = models.VisibilityPrivate
		}

		if header, err := c.FormFile("file_" + fileType); err == nil && header != nil {
			file, err := header.Open()
			if err == nil {
				content, readErr := io.ReadAll(file)
				file.Close()
				if readErr == nil {
					upload.FileName = header.Filename
					upload.Content = content
				}
			}
		}

		if len(upload.Content) == 0 && upload.ExternalURL == "" {
			continue
		}
		uploads = append(uploads, upload)
	}
	return uploads
}

// docFromDevice returns the record's documentation variant, empty when
// the registry has none stored for it.
func docFromDevice(device *models.Device) *models.DeviceDoc {
	if device.Doc != nil {
		return device.Doc
	}
	return &models.DeviceDoc{}
}
