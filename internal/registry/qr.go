package registry

import (
	"context"
	"fmt"

	"go-registry-console/internal/models"
)

// QRPayload is the registry's rendering of a device QR: a data URL plus
// the public-page link it encodes.
type QRPayload struct {
	QRCode    string        `json:"qr_code"`
	DeviceURL string        `json:"device_url"`
	Device    models.Device `json:"device"`
}

// ManufacturerQRPayload is the manufacturer-page variant.
type ManufacturerQRPayload struct {
	QRCode          string        `json:"qr_code"`
	Manufacturer    string        `json:"manufacturer"`
	ManufacturerURL string        `json:"manufacturer_url"`
	DeviceInfo      models.Device `json:"device_info"`
}

// DeviceQR fetches the QR payload linking to the device's public page.
func (c *Client) DeviceQR(ctx context.Context, id uint) (*QRPayload, error) {
	var payload QRPayload
	if err := c.doJSON(ctx, "GET", fmt.Sprintf("/devices/%d/qr", id), nil, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// ManufacturerQR fetches the QR payload linking to the manufacturer page.
func (c *Client) ManufacturerQR(ctx context.Context, id uint) (*ManufacturerQRPayload, error) {
	var payload ManufacturerQRPayload
	if err := c.doJSON(ctx, "GET", fmt.Sprintf("/devices/%d/manufacturer-qr", id), nil, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
