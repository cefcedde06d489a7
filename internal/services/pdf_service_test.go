package services

import (
	"bytes"
	"testing"

	"go-registry-console/internal/models"
)

func TestGenerateDeviceSheet(t *testing.T) {
	s := NewPDFService("Catálogo de Dispositivos")
	device := &models.Device{
		Marca:           "Acme",
		NombreCatalogo:  "Router Casa",
		ModeloComercial: "Router Casa X",
		ModeloTecnico:   "RTR-55X",
		AnoLanzamiento:  2024,
		Categoria:       "Redes",
		Subcategoria:    "WiFi",
		Frecuencias:     "2.4 GHz, 5 GHz",
		PireDbm:         20,
	}

	data, err := s.GenerateDeviceSheet(device)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatal("expected a PDF document")
	}
}

func TestGenerateDeviceSheetNilDevice(t *testing.T) {
	s := NewPDFService("")
	if _, err := s.GenerateDeviceSheet(nil); err == nil {
		t.Fatal("nil device must be rejected")
	}
}
