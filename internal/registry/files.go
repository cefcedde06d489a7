package registry

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"go-registry-console/internal/models"
)

// UploadDeviceFile sends one attachment as a multipart request. Uploads
// are always made one at a time so a failure is attributable to a
// specific attachment instead of an opaque batch.
func (c *Client) UploadDeviceFile(ctx context.Context, deviceID uint, upload models.Upload) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	writer.WriteField("device_id", strconv.FormatUint(uint64(deviceID), 10))
	writer.WriteField("file_type", upload.FileType)
	writer.WriteField("visibility", upload.Visibility)
	writer.WriteField("requires_password", strconv.FormatBool(upload.RequiresPassword))
	if upload.ExternalURL != "" {
		writer.WriteField("external_url", upload.ExternalURL)
	}
	if upload.FileName != "" {
		writer.WriteField("file_name", upload.FileName)
	}
	if len(upload.Content) > 0 {
		part, err := writer.CreateFormFile("file", upload.FileName)
		if err != nil {
			return fmt.Errorf("upload %s: %w", upload.FileType, err)
		}
		if _, err := part.Write(upload.Content); err != nil {
			return fmt.Errorf("upload %s: %w", upload.FileType, err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("upload %s: %w", upload.FileType, err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.url("/files/upload-device-files", nil), &buf)
	if err != nil {
		return fmt.Errorf("upload %s: %w", upload.FileType, err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &ConnectionError{Op: "POST /files/upload-device-files", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.responseError(resp)
	}
	return nil
}

// DeleteFile removes one attachment.
func (c *Client) DeleteFile(ctx context.Context, id uint) error {
	return c.doJSON(ctx, "DELETE", fmt.Sprintf("/files/%d", id), nil, nil, nil)
}
