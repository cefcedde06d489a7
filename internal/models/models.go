package models

// Role identifies the access level of the current session. Roles are
// assigned by the registry API; the console never invents one.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleAuditor Role = "auditor"
	RolePublic  Role = "public"
	RoleQRGuest Role = "qr_guest"
)

// AccessType distinguishes credential logins from QR-token access.
type AccessType string

const (
	AccessNormal AccessType = "normal"
	AccessQR     AccessType = "qr"
)

// Session is the authenticated identity for one browser tab. It mirrors
// the profile payload returned by GET /auth/profile.
type Session struct {
	Role          Role       `json:"role"`
	Email         string     `json:"email"`
	BrandName     string     `json:"brand_name,omitempty"`
	AccessType    AccessType `json:"access_type"`
	Authenticated bool       `json:"authenticated"`
}

// ReadOnly reports whether the session may only view the catalog.
func (s *Session) ReadOnly() bool {
	return s == nil || s.Role == RolePublic || s.Role == RoleQRGuest
}

// LoginResult carries the session plus the routing hint returned by
// POST /auth/login. The hint, not the role, decides where a public-role
// login lands: a public account may be pre-scoped to a single brand.
type LoginResult struct {
	User            Session `json:"user"`
	RedirectToBrand bool    `json:"redirect_to_brand"`
	Brand           string  `json:"brand,omitempty"`
}

// File type roles. The reference and technical images are looked up by
// role, never by position in the attachment list.
const (
	FileTypeReferenceImage = "imagen_referencia"
	FileTypeTechnicalImage = "imagen_tecnica"
	FileTypeTestReport     = "test_report"
	FileTypeExternalImages = "imagenes_externas"
	FileTypeInternalImages = "imagenes_internas"
	FileTypeBlockDiagram   = "diagrama_bloques"
	FileTypeAntennaGain    = "ganancia_antena"
	FileTypeUserGuide      = "guia_usuario"
	FileTypeOtherDocuments = "otros_documentos"
)

// FileTypes lists the closed set of attachment roles offered by the
// device form, in display order.
var FileTypes = []string{
	FileTypeReferenceImage,
	FileTypeTechnicalImage,
	FileTypeTestReport,
	FileTypeExternalImages,
	FileTypeInternalImages,
	FileTypeBlockDiagram,
	FileTypeAntennaGain,
	FileTypeUserGuide,
	FileTypeOtherDocuments,
}

// Visibility values for attachments.
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// DeviceFile is one attachment of a device. At least one of FilePath or
// ExternalURL is present.
type DeviceFile struct {
	ID               uint   `json:"id"`
	DeviceID         uint   `json:"device_id"`
	FileName         string `json:"file_name"`
	FilePath         string `json:"file_path,omitempty"`
	FileType         string `json:"file_type"`
	Visibility       string `json:"visibility"`
	ExternalURL      string `json:"external_url,omitempty"`
	FileSize         int64  `json:"file_size,omitempty"`
	RequiresPassword bool   `json:"requires_password"`
	CreatedAt        string `json:"created_at,omitempty"`
}

// HasSource reports whether the attachment points at anything at all.
func (f *DeviceFile) HasSource() bool {
	return f.FilePath != "" || f.ExternalURL != ""
}

// Device is one catalog record. Field names follow the registry API wire
// format.
type Device struct {
	ID              uint   `json:"id"`
	UUID            string `json:"uuid"`
	Marca           string `json:"marca"`
	NombreCatalogo  string `json:"nombre_catalogo"`
	ModeloComercial string `json:"modelo_comercial"`
	ModeloTecnico   string `json:"modelo_tecnico"`
	AnoLanzamiento  int    `json:"ano_lanzamiento"`
	Comentarios     string `json:"comentarios,omitempty"`
	FechaVigencia   string `json:"fecha_vigencia"`

	Categoria    string `json:"categoria"`
	Subcategoria string `json:"subcategoria"`
	Grupo        string `json:"grupo"`

	ImportadorRepresentante string `json:"importador_representante,omitempty"`
	Domicilio               string `json:"domicilio,omitempty"`
	CorreoContacto          string `json:"correo_contacto,omitempty"`

	TecnologiaModulacion string  `json:"tecnologia_modulacion,omitempty"`
	Frecuencias          string  `json:"frecuencias,omitempty"`
	GananciaAntena       string  `json:"ganancia_antena,omitempty"`
	PireDbm              float64 `json:"pire_dbm"`
	PireMw               float64 `json:"pire_mw"`

	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`

	Files []DeviceFile `json:"files,omitempty"`
	Doc   *DeviceDoc   `json:"doc,omitempty"`
}

// FileByRole returns the first attachment carrying the given role, or nil.
// At most one reference image and one technical image exist per device.
func (d *Device) FileByRole(fileType string) *DeviceFile {
	for i := range d.Files {
		if d.Files[i].FileType == fileType {
			return &d.Files[i]
		}
	}
	return nil
}

// ReferenceImage returns the attachment rendered on the device card.
func (d *Device) ReferenceImage() *DeviceFile {
	return d.FileByRole(FileTypeReferenceImage)
}

// TechnicalImage returns the attachment rendered in the technical section.
func (d *Device) TechnicalImage() *DeviceFile {
	return d.FileByRole(FileTypeTechnicalImage)
}

// PublicFiles returns the attachments visible on the public page, in
// their original order.
func (d *Device) PublicFiles() []DeviceFile {
	var out []DeviceFile
	for _, f := range d.Files {
		if f.Visibility == VisibilityPublic {
			out = append(out, f)
		}
	}
	return out
}

// DeviceDoc carries the parallel documentation variant of the technical
// fields, saved through PUT /device_doc/{id} as an independent resource.
type DeviceDoc struct {
	TecnologiaModulacionDoc string `json:"tecnologia_modulacion_doc,omitempty"`
	FrecuenciasDoc          string `json:"frecuencias_doc,omitempty"`
	GananciaAntenaDoc       string `json:"ganancia_antena_doc,omitempty"`
	PireDbmDoc              string `json:"pire_dbm_doc,omitempty"`
	PireMwDoc               string `json:"pire_mw_doc,omitempty"`
}

// Empty reports whether no documentation field is set.
func (d *DeviceDoc) Empty() bool {
	return d.TecnologiaModulacionDoc == "" && d.FrecuenciasDoc == "" &&
		d.GananciaAntenaDoc == "" && d.PireDbmDoc == "" && d.PireMwDoc == ""
}

// FilterState is the transient, UI-local filter pair for the dashboard.
// An empty Category means "no constraint", not "category is empty".
type FilterState struct {
	Category string
	Text     string
}

// IsZero reports whether neither filter axis is set.
func (f FilterState) IsZero() bool { return f.Category == "" && f.Text == "" }

// Upload describes one attachment to send to the registry. Exactly one
// upload call is made per attachment so a failure names its attachment.
type Upload struct {
	FileType         string
	Visibility       string
	RequiresPassword bool
	FileName         string
	ExternalURL      string
	Content          []byte
}
