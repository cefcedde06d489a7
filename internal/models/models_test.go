package models

import "testing"

func TestFileByRole(t *testing.T) {
	device := &Device{Files: []DeviceFile{
		{ID: 1, FileType: FileTypeTestReport},
		{ID: 2, FileType: FileTypeReferenceImage},
		{ID: 3, FileType: FileTypeTechnicalImage},
	}}

	if got := device.ReferenceImage(); got == nil || got.ID != 2 {
		t.Fatalf("reference image is looked up by role, got %+v", got)
	}
	if got := device.TechnicalImage(); got == nil || got.ID != 3 {
		t.Fatalf("technical image is looked up by role, got %+v", got)
	}
	if got := device.FileByRole(FileTypeUserGuide); got != nil {
		t.Fatalf("missing role must return nil, got %+v", got)
	}
}

func TestPublicFilesKeepsOrder(t *testing.T) {
	device := &Device{Files: []DeviceFile{
		{ID: 1, Visibility: VisibilityPublic},
		{ID: 2, Visibility: VisibilityPrivate},
		{ID: 3, Visibility: VisibilityPublic},
	}}

	got := device.PublicFiles()
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Fatalf("expected public files 1 and 3 in order, got %+v", got)
	}
}

func TestDeviceFileHasSource(t *testing.T) {
	tests := []struct {
		name string
		file DeviceFile
		want bool
	}{
		{"stored file", DeviceFile{FilePath: "uploads/x.pdf"}, true},
		{"external link", DeviceFile{ExternalURL: "https://example.com/x.pdf"}, true},
		{"neither", DeviceFile{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.file.HasSource(); got != tt.want {
				t.Fatalf("HasSource = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDeviceDocEmpty(t *testing.T) {
	if !(&DeviceDoc{}).Empty() {
		t.Fatal("zero doc must be empty")
	}
	if (&DeviceDoc{FrecuenciasDoc: "2.4 GHz"}).Empty() {
		t.Fatal("doc with a field set is not empty")
	}
}

func TestSessionReadOnly(t *testing.T) {
	tests := []struct {
		role Role
		want bool
	}{
		{RoleAdmin, false},
		{RoleAuditor, false},
		{RolePublic, true},
		{RoleQRGuest, true},
	}
	for _, tt := range tests {
		sess := &Session{Role: tt.role}
		if got := sess.ReadOnly(); got != tt.want {
			t.Fatalf("ReadOnly(%q) = %v, want %v", tt.role, got, tt.want)
		}
	}
	var nilSession *Session
	if !nilSession.ReadOnly() {
		t.Fatal("nil session is read only")
	}
}
