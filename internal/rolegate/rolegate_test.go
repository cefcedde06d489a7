package rolegate

import (
	"testing"

	"go-registry-console/internal/models"
)

func TestForRole(t *testing.T) {
	tests := []struct {
		role models.Role
		want Capabilities
	}{
		{models.RoleAdmin, Capabilities{
			CanEditDevices:       true,
			CanChangeBrand:       true,
			ShowPublicLinkButton: true,
			ShowQRActions:        true,
		}},
		{models.RoleAuditor, Capabilities{
			CanEditDevices:       true,
			CanChangeBrand:       true,
			ShowPublicLinkButton: true,
			ShowQRActions:        true,
		}},
		{models.RoleQRGuest, Capabilities{
			CardLinksToPublic: true,
			ShowBrandBanner:   true,
		}},
		{models.RolePublic, Capabilities{
			CardLinksToPublic: true,
		}},
		{models.Role("invented"), Capabilities{
			CardLinksToPublic: true,
		}},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			if got := ForRole(tt.role); got != tt.want {
				t.Fatalf("ForRole(%q) = %+v, want %+v", tt.role, got, tt.want)
			}
		})
	}
}

func TestForRoleIsPure(t *testing.T) {
	first := ForRole(models.RoleAdmin)
	second := ForRole(models.RoleAdmin)
	if first != second {
		t.Fatal("two calls with the same role must yield identical capabilities")
	}
}

func TestViewerRolesNeverEdit(t *testing.T) {
	for _, role := range []models.Role{models.RolePublic, models.RoleQRGuest} {
		caps := ForRole(role)
		if caps.CanEditDevices || caps.CanChangeBrand {
			t.Fatalf("role %q must not carry edit capabilities: %+v", role, caps)
		}
	}
}

func TestForSessionNilIsEmpty(t *testing.T) {
	if got := ForSession(nil); got != (Capabilities{}) {
		t.Fatalf("nil session must grant nothing, got %+v", got)
	}
}

func TestForSessionDelegatesToRole(t *testing.T) {
	sess := &models.Session{Role: models.RoleQRGuest, BrandName: "Acme"}
	if got := ForSession(sess); !got.ShowBrandBanner {
		t.Fatalf("qr_guest session must show the brand banner, got %+v", got)
	}
}
