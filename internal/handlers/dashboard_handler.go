package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-registry-console/internal/logger"
	"go-registry-console/internal/models"
	"go-registry-console/internal/registry"
	"go-registry-console/internal/rolegate"
)

// DashboardHandler renders the brand-scoped device grid.
type DashboardHandler struct{}

func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

// Dashboard handles GET /dashboard. Without a brand scope the grid
// renders empty; the full catalog is never fetched.
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	tab := requireSession(c)
	if tab == nil {
		return
	}

	caps := rolegate.ForSession(tab.Session())
	brand := tab.Brand()
	filter := models.FilterState{
		Category: c.Query("categoria"),
		Text:     c.Query("q"),
	}

	var loadError string
	if brand != "" && tab.Store.Brand() != brand {
		if err := tab.RefreshDevices(c.Request.Context()); err != nil {
			logger.GlobalLogger.Error("Device list load failed", err, map[string]interface{}{
				"brand": brand,
			})
			loadError = registry.UserMessage(err, "No se pudo cargar la lista de dispositivos.")
		}
	}

	// With no brand scoped the grid is empty no matter what the store
	// holds; the full catalog is never shown.
	devices := []models.Device{}
	categories := []string{}
	total := 0
	if brand != "" {
		devices = tab.Store.Filtered(filter)
		// Category options come from the loaded list, not the taxonomy
		// endpoint: the filter only offers categories actually present.
		categories = presentCategories(tab.Store.Devices())
		total = tab.Store.Len()
	}

	showBanner := caps.ShowBrandBanner && tab.ClaimBanner()

	SafeHTML(c, http.StatusOK, "dashboard.html", gin.H{
		"title":       "Dispositivos",
		"brand":       brand,
		"devices":     devices,
		"total":       total,
		"categories":  categories,
		"filter":      filter,
		"caps":        caps,
		"show_banner": showBanner,
		"load_error":  loadError,
		"warnings":    c.QueryArray("warning"),
		"saved":       c.Query("saved") == "1",
	})
}

// SetBrand handles POST /brand. Switching the scope replaces the device
// list wholesale and drops the filters with the redirect.
func (h *DashboardHandler) SetBrand(c *gin.Context) {
	tab := requireSession(c)
	if tab == nil {
		return
	}

	caps := rolegate.ForSession(tab.Session())
	if !caps.CanChangeBrand {
		renderErrorPage(c, http.StatusForbidden, "Your role cannot change the brand scope")
		return
	}

	brand := c.PostForm("brand")
	if err := tab.SetBrand(c.Request.Context(), brand); err != nil {
		logger.GlobalLogger.Error("Brand scope change failed", err, map[string]interface{}{
			"brand": brand,
		})
		SafeHTML(c, http.StatusBadGateway, "dashboard.html", gin.H{
			"title":      "Dispositivos",
			"brand":      tab.Brand(),
			"devices":    []models.Device{},
			"total":      0,
			"categories": []string{},
			"filter":     models.FilterState{},
			"caps":       caps,
			"load_error": registry.UserMessage(err, "No se pudo cargar la lista de dispositivos."),
		})
		return
	}

	logger.GlobalLogger.LogBusinessEvent("Brand scope changed", brand, "scope")
	SafeRedirect(c, http.StatusFound, "/dashboard")
}

// presentCategories collects the distinct categories of the loaded
// list, in first-seen order.
func presentCategories(devices []models.Device) []string {
	seen := make(map[string]bool)
	var out []string
	for _, d := range devices {
		if d.Categoria == "" || seen[d.Categoria] {
			continue
		}
		seen[d.Categoria] = true
		out = append(out, d.Categoria)
	}
	return out
}
