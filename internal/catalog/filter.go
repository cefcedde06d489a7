package catalog

import (
	"strings"

	"go-registry-console/internal/models"
)

// Filter derives the rendered subset of a device list. It is pure and
// order-preserving: the result keeps the relative order of the input.
//
// An empty category is the "no constraint" sentinel, not a match against
// records whose category happens to be empty. The text filter is a
// case-insensitive substring match against the technical and commercial
// model fields with OR semantics.
func Filter(devices []models.Device, category, text string) []models.Device {
	out := make([]models.Device, 0, len(devices))
	needle := strings.ToLower(text)
	for _, d := range devices {
		if category != "" && d.Categoria != category {
			continue
		}
		if needle != "" && !matchesText(&d, needle) {
			continue
		}
		out = append(out, d)
	}
	return out
}

func matchesText(d *models.Device, needle string) bool {
	return strings.Contains(strings.ToLower(d.ModeloTecnico), needle) ||
		strings.Contains(strings.ToLower(d.ModeloComercial), needle)
}
