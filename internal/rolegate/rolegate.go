// Package rolegate derives the UI affordances a session's role allows.
// Capabilities are recomputed on every render; they are never stored.
package rolegate

import "go-registry-console/internal/models"

// Capabilities is the set of affordances a role grants on the dashboard
// and device cards.
type Capabilities struct {
	// CanEditDevices covers create, edit and delete.
	CanEditDevices bool
	// CanChangeBrand allows switching the brand scope.
	CanChangeBrand bool
	// ShowPublicLinkButton renders the extra external-link button on each
	// card; when false for viewer roles, the card itself is the link.
	ShowPublicLinkButton bool
	// CardLinksToPublic makes the whole card navigate to the public page.
	CardLinksToPublic bool
	// ShowQRActions renders the QR, label and PDF actions per card.
	ShowQRActions bool
	// ShowBrandBanner triggers the one-time informational banner naming
	// the scoped brand for QR-guest access.
	ShowBrandBanner bool
}

// ForRole maps a role to its capability set. Pure: two calls with the
// same role always yield identical capabilities.
func ForRole(role models.Role) Capabilities {
	switch role {
	case models.RoleAdmin, models.RoleAuditor:
		return Capabilities{
			CanEditDevices:       true,
			CanChangeBrand:       true,
			ShowPublicLinkButton: true,
			ShowQRActions:        true,
		}
	case models.RoleQRGuest:
		return Capabilities{
			CardLinksToPublic: true,
			ShowBrandBanner:   true,
		}
	default: // public and anything unknown gets the most restricted view
		return Capabilities{
			CardLinksToPublic: true,
		}
	}
}

// ForSession is a nil-tolerant convenience over ForRole.
func ForSession(session *models.Session) Capabilities {
	if session == nil {
		return Capabilities{}
	}
	return ForRole(session.Role)
}
