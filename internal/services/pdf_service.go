package services

import (
	"bytes"
	"fmt"
	"strconv"

	"go-registry-console/internal/models"

	"github.com/jung-kurt/gofpdf"
)

type PDFService struct {
	title string
}

// NewPDFService creates the spec-sheet renderer. The title appears in
// the sheet header, e.g. the catalog name.
func NewPDFService(title string) *PDFService {
	if title == "" {
		title = "Catálogo de Dispositivos"
	}
	return &PDFService{title: title}
}

// GenerateDeviceSheet renders a one-page spec sheet for a device.
func (s *PDFService) GenerateDeviceSheet(device *models.Device) ([]byte, error) {
	if device == nil {
		return nil, fmt.Errorf("device cannot be nil")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetMargins(20, 20, 20)

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.SetTextColor(37, 99, 235)
	pdf.Cell(0, 10, s.title)
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(0, 0, 0)
	pdf.Cell(0, 5, device.Marca)
	pdf.Ln(12)

	// Device title
	pdf.SetFont("Arial", "B", 20)
	pdf.SetTextColor(37, 99, 235)
	pdf.Cell(0, 12, device.NombreCatalogo)
	pdf.Ln(14)

	pdf.SetFont("Arial", "B", 10)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFillColor(248, 249, 250)

	labelWidth := 55.0
	valueWidth := 115.0

	row := func(label, value string) {
		if value == "" {
			return
		}
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(labelWidth, 8, label, "1", 0, "", true, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(valueWidth, 8, value, "1", 1, "", false, 0, "")
	}

	// Identification
	row("Modelo comercial:", device.ModeloComercial)
	row("Modelo técnico:", device.ModeloTecnico)
	if device.AnoLanzamiento > 0 {
		row("Año de lanzamiento:", strconv.Itoa(device.AnoLanzamiento))
	}
	row("Vigencia:", device.FechaVigencia)

	pdf.Ln(6)

	// Classification
	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(37, 99, 235)
	pdf.Cell(0, 8, "Clasificación")
	pdf.Ln(8)
	pdf.SetTextColor(0, 0, 0)

	row("Categoría:", device.Categoria)
	row("Subcategoría:", device.Subcategoria)
	row("Grupo:", device.Grupo)

	pdf.Ln(6)

	// Technical characteristics
	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(37, 99, 235)
	pdf.Cell(0, 8, "Características técnicas")
	pdf.Ln(8)
	pdf.SetTextColor(0, 0, 0)

	row("Tecnología / modulación:", device.TecnologiaModulacion)
	row("Frecuencias:", device.Frecuencias)
	row("Ganancia de antena:", device.GananciaAntena)
	if device.PireDbm != 0 {
		row("PIRE (dBm):", strconv.FormatFloat(device.PireDbm, 'f', -1, 64))
	}
	if device.PireMw != 0 {
		row("PIRE (mW):", strconv.FormatFloat(device.PireMw, 'f', -1, 64))
	}

	// Contact
	if device.ImportadorRepresentante != "" || device.CorreoContacto != "" {
		pdf.Ln(6)
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(37, 99, 235)
		pdf.Cell(0, 8, "Importador / Representante")
		pdf.Ln(8)
		pdf.SetTextColor(0, 0, 0)

		row("Nombre:", device.ImportadorRepresentante)
		row("Domicilio:", device.Domicilio)
		row("Correo de contacto:", device.CorreoContacto)
	}

	if device.Comentarios != "" {
		pdf.Ln(6)
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(37, 99, 235)
		pdf.Cell(0, 8, "Comentarios")
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(0, 0, 0)
		pdf.MultiCell(0, 5, device.Comentarios, "", "", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render device sheet: %w", err)
	}
	return buf.Bytes(), nil
}
