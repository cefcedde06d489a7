package services

import (
	"bytes"
	"fmt"
	"image/png"
	"net/url"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/skip2/go-qrcode"
)

type BarcodeService struct{}

func NewBarcodeService() *BarcodeService {
	return &BarcodeService{}
}

func (s *BarcodeService) GenerateQRCode(data string, size int) ([]byte, error) {
	pngBytes, err := qrcode.Encode(data, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	return pngBytes, nil
}

// GenerateDeviceQR encodes the public page URL of a device.
func (s *BarcodeService) GenerateDeviceQR(baseURL, deviceUUID string) ([]byte, error) {
	return s.GenerateQRCode(PublicDeviceURL(baseURL, deviceUUID), 256)
}

// GenerateBrandAccessQR encodes the console entry URL carrying a brand
// access token. Scanning it lands a guest on the dashboard scoped to
// that brand.
func (s *BarcodeService) GenerateBrandAccessQR(baseURL, brand, token string) ([]byte, error) {
	if brand == "" || token == "" {
		return nil, fmt.Errorf("brand and token are required")
	}
	return s.GenerateQRCode(BrandAccessURL(baseURL, brand, token), 256)
}

// GenerateDeviceLabel renders a Code128 label for a device's technical
// model, for printing on the unit itself.
func (s *BarcodeService) GenerateDeviceLabel(modeloTecnico string) ([]byte, error) {
	bc, err := code128.Encode(modeloTecnico)
	if err != nil {
		return nil, fmt.Errorf("failed to encode barcode: %w", err)
	}

	scaledBC, err := barcode.Scale(bc, 300, 100)
	if err != nil {
		return nil, fmt.Errorf("failed to scale barcode: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaledBC); err != nil {
		return nil, fmt.Errorf("failed to encode barcode as PNG: %w", err)
	}

	return buf.Bytes(), nil
}

// PublicDeviceURL builds the public read-only page URL for a device.
func PublicDeviceURL(baseURL, deviceUUID string) string {
	return fmt.Sprintf("%s/public/device/%s", baseURL, url.PathEscape(deviceUUID))
}

// BrandAccessURL builds the console entry URL for a brand access token.
func BrandAccessURL(baseURL, brand, token string) string {
	q := url.Values{"brand": {brand}, "token": {token}}
	return fmt.Sprintf("%s/?%s", baseURL, q.Encode())
}
