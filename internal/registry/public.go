package registry

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go-registry-console/internal/models"
)

// DeviceByUUID fetches the public read-only record for a device. The
// request is cache-busted so a freshly updated record is never served
// stale from an intermediary.
func (c *Client) DeviceByUUID(ctx context.Context, uuid string) (*models.Device, error) {
	query := url.Values{"_": {strconv.FormatInt(time.Now().UnixMilli(), 10)}}
	var device models.Device
	path := "/device/by-uuid/" + url.PathEscape(uuid)
	if err := c.doJSON(ctx, "GET", path, query, nil, &device); err != nil {
		return nil, err
	}
	return &device, nil
}

// ProtectedResource is the opened body of a protected-file download. The
// caller owns Body and must close it.
type ProtectedResource struct {
	Body        io.ReadCloser
	ContentType string
	Filename    string
}

// DownloadProtectedFile submits a candidate password with the download
// request. Verification lives entirely upstream: a 401 becomes ErrDenied
// with no detail about correctness, any other non-2xx becomes an APIError
// carrying the server's message if one was provided. The same endpoint,
// called with an empty password, serves non-protected files.
func (c *Client) DownloadProtectedFile(ctx context.Context, fileID uint, password string) (*ProtectedResource, error) {
	query := url.Values{}
	if password != "" {
		query.Set("password", password)
	}
	target := c.url(fmt.Sprintf("/download-protected-file/%d", fileID), query)

	req, err := http.NewRequestWithContext(ctx, "GET", target, nil)
	if err != nil {
		return nil, fmt.Errorf("download file %d: %w", fileID, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &ConnectionError{Op: "GET /download-protected-file", Err: err}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, ErrDenied
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, c.responseError(resp)
	}

	filename := ""
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			filename = params["filename"]
		}
	}
	return &ProtectedResource{
		Body:        resp.Body,
		ContentType: resp.Header.Get("Content-Type"),
		Filename:    filename,
	}, nil
}
