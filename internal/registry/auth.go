package registry

import (
	"context"

	"go-registry-console/internal/models"
)

// Profile fetches the session bound to the ambient upstream cookie.
// ErrUnauthenticated means there is no session and the caller must route
// to the login view.
func (c *Client) Profile(ctx context.Context) (*models.Session, error) {
	var session models.Session
	if err := c.doJSON(ctx, "GET", "/auth/profile", nil, nil, &session); err != nil {
		return nil, err
	}
	session.Authenticated = true
	if session.AccessType == "" {
		session.AccessType = models.AccessNormal
	}
	return &session, nil
}

// Login exchanges credentials for a session. The upstream session cookie
// lands in the client's jar; the returned result carries the routing hint.
func (c *Client) Login(ctx context.Context, email, password string) (*models.LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var result models.LoginResult
	if err := c.doJSON(ctx, "POST", "/auth/login", nil, body, &result); err != nil {
		return nil, err
	}
	result.User.Authenticated = true
	if result.User.AccessType == "" {
		result.User.AccessType = models.AccessNormal
	}
	return &result, nil
}

// Logout invalidates the upstream session. Callers clear local state no
// matter what this returns.
func (c *Client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, "POST", "/auth/logout", nil, nil, nil)
}

// IssueBrandToken asks the registry for a fresh access token scoped to
// one brand, for embedding in a handed-out QR code.
func (c *Client) IssueBrandToken(ctx context.Context, brand string) (string, error) {
	body := map[string]string{"brand": brand}
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.doJSON(ctx, "POST", "/auth/brand-token", nil, body, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// ValidateQRToken exchanges a scanned brand token for guest access. On
// success the upstream marks the tab's cookie jar as a QR-guest session;
// the console builds the session shape itself, fixed to the brand the
// token encodes.
func (c *Client) ValidateQRToken(ctx context.Context, token, brand string) (*models.Session, error) {
	body := map[string]string{"token": token, "brand": brand}
	if err := c.doJSON(ctx, "POST", "/auth/validate-qr-token", nil, body, nil); err != nil {
		return nil, err
	}
	return &models.Session{
		Role:          models.RoleQRGuest,
		BrandName:     brand,
		AccessType:    models.AccessQR,
		Authenticated: true,
	}, nil
}
