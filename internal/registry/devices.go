package registry

import (
	"context"
	"fmt"
	"net/url"

	"go-registry-console/internal/models"
)

// ListDevices fetches the device list for one brand, in registry order.
// Callers enforce the brand-scoping safety rule; this method refuses an
// empty brand outright so no code path can pull the whole catalog by
// accident.
func (c *Client) ListDevices(ctx context.Context, marca string) ([]models.Device, error) {
	if marca == "" {
		return nil, fmt.Errorf("registry: device list requires a brand scope")
	}
	query := url.Values{"marca": {marca}}
	var devices []models.Device
	if err := c.doJSON(ctx, "GET", "/devices", query, nil, &devices); err != nil {
		return nil, err
	}
	return devices, nil
}

// GetDevice fetches the full record for one device by id. The dashboard
// summary is never assumed sufficient for the edit form.
func (c *Client) GetDevice(ctx context.Context, id uint) (*models.Device, error) {
	var device models.Device
	if err := c.doJSON(ctx, "GET", fmt.Sprintf("/devices/%d", id), nil, nil, &device); err != nil {
		return nil, err
	}
	return &device, nil
}

// CreateDevice creates a new catalog record and returns it with its
// assigned id and uuid.
func (c *Client) CreateDevice(ctx context.Context, device *models.Device) (*models.Device, error) {
	var created models.Device
	if err := c.doJSON(ctx, "POST", "/devices", nil, device, &created); err != nil {
		return nil, err
	}
	if created.ID == 0 {
		created = *device
	}
	return &created, nil
}

// UpdateDevice replaces the record identified by id.
func (c *Client) UpdateDevice(ctx context.Context, id uint, device *models.Device) error {
	return c.doJSON(ctx, "PUT", fmt.Sprintf("/devices/%d", id), nil, device, nil)
}

// DeleteDevice removes a device. The registry answers with the brand the
// device belonged to so the dashboard can re-scope and reload.
func (c *Client) DeleteDevice(ctx context.Context, id uint) (string, error) {
	var resp struct {
		Marca string `json:"marca"`
	}
	if err := c.doJSON(ctx, "DELETE", fmt.Sprintf("/devices/%d", id), nil, nil, &resp); err != nil {
		return "", err
	}
	return resp.Marca, nil
}

// SaveDeviceDoc writes the documentation variant of the technical fields.
// This is an independent resource: a failure here never rolls back the
// device save that preceded it.
func (c *Client) SaveDeviceDoc(ctx context.Context, id uint, doc *models.DeviceDoc) error {
	return c.doJSON(ctx, "PUT", fmt.Sprintf("/device_doc/%d", id), nil, doc, nil)
}
