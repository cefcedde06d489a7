package session

import (
	"context"
	"errors"

	"go-registry-console/internal/models"
	"go-registry-console/internal/registry"
)

// Establish resolves the tab's session on first load, in strict order:
// a QR token in the URL wins over an ambient upstream session, and only
// when both are absent does the tab land on the login view. It returns
// the resolved session, nil when unauthenticated.
func (t *Tab) Establish(ctx context.Context, qrToken, qrBrand string) (*models.Session, error) {
	if qrToken != "" && qrBrand != "" {
		sess, err := t.Client.ValidateQRToken(ctx, qrToken, qrBrand)
		if err == nil {
			t.mu.Lock()
			t.session = sess
			if qrBrand != t.brand {
				t.Store.Clear()
			}
			t.brand = qrBrand
			t.qrToken = qrToken
			t.bannerShown = false
			t.Router.SessionEstablished()
			t.mu.Unlock()
			return sess, nil
		}
		if registry.IsConnection(err) {
			return nil, err
		}
		// An invalid or expired token falls through to the ambient session.
	}

	sess, err := t.Client.Profile(ctx)
	if err != nil {
		if errors.Is(err, registry.ErrUnauthenticated) {
			t.clearLocal()
			return nil, nil
		}
		return nil, err
	}

	t.mu.Lock()
	t.session = sess
	if sess.BrandName != "" && sess.BrandName != t.brand {
		t.brand = sess.BrandName
		t.Store.Clear()
	}
	t.Router.SessionEstablished()
	t.mu.Unlock()
	return sess, nil
}

// Login authenticates with credentials. The redirect hint, not the
// role, decides whether the tab lands pre-scoped to a brand. The device
// list always starts empty: whatever was loaded under the previous
// identity never carries over.
func (t *Tab) Login(ctx context.Context, email, password string) (*models.LoginResult, error) {
	result, err := t.Client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	brand := ""
	switch {
	case result.RedirectToBrand && result.Brand != "":
		brand = result.Brand
	case result.User.BrandName != "":
		brand = result.User.BrandName
	}

	t.mu.Lock()
	t.session = &result.User
	t.qrToken = ""
	t.brand = brand
	t.bannerShown = false
	t.Router.SessionEstablished()
	t.mu.Unlock()
	t.Store.Clear()
	return result, nil
}

// Logout invalidates the upstream session. Local state is cleared no
// matter what the registry answers; the error is returned only so the
// caller can report it.
func (t *Tab) Logout(ctx context.Context) error {
	err := t.Client.Logout(ctx)
	t.clearLocal()
	return err
}

// SetBrand re-scopes the tab to a brand and replaces the device list
// wholesale. An empty brand clears the scope and the list.
func (t *Tab) SetBrand(ctx context.Context, brand string) error {
	if brand == "" {
		t.mu.Lock()
		t.brand = ""
		t.mu.Unlock()
		t.Store.Clear()
		return nil
	}
	devices, err := t.Client.ListDevices(ctx, brand)
	if err != nil {
		return err
	}
	t.mu.Lock()
	t.brand = brand
	t.mu.Unlock()
	t.Store.Replace(brand, devices)
	return nil
}

// RefreshDevices reloads the list for the current brand. With no brand
// scoped it leaves the store empty rather than fetching everything.
func (t *Tab) RefreshDevices(ctx context.Context) error {
	brand := t.Brand()
	if brand == "" {
		t.Store.Clear()
		return nil
	}
	devices, err := t.Client.ListDevices(ctx, brand)
	if err != nil {
		return err
	}
	t.Store.Replace(brand, devices)
	return nil
}

func (t *Tab) clearLocal() {
	t.mu.Lock()
	t.session = nil
	t.brand = ""
	t.qrToken = ""
	t.bannerShown = false
	t.downloads = nil
	t.Router.SessionCleared()
	t.mu.Unlock()
	t.Store.Clear()
}
