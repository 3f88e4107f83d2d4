// Package catalog holds the authored portfolio content and reconciles it
// with records coming from the document store.
package catalog

// Certificate types.
const (
	TypeEducation     = "education"
	TypeCertification = "certification"
)

// Project is a canonical project entry.
type Project struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Image       string   `json:"image" yaml:"image"`
	Link        string   `json:"link" yaml:"link"`
	Tags        []string `json:"tags" yaml:"tags"`
	Featured    bool     `json:"featured" yaml:"featured"`
}

// Certificate is a canonical education or certification entry.
type Certificate struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Issuer      string `json:"issuer" yaml:"issuer"`
	Date        string `json:"date" yaml:"date"`
	Description string `json:"description" yaml:"description"`
	Type        string `json:"type" yaml:"type"`
	Link        string `json:"link" yaml:"link"`
}

// ProjectRecord is a partial project from an untrusted source.
// Nil fields are absent.
type ProjectRecord struct {
	StoreID     string   `json:"_id,omitempty" yaml:"-"`
	ID          *string  `json:"id,omitempty" yaml:"id,omitempty"`
	Title       *string  `json:"title,omitempty" yaml:"title,omitempty"`
	Description *string  `json:"description,omitempty" yaml:"description,omitempty"`
	Image       *string  `json:"image,omitempty" yaml:"image,omitempty"`
	Link        *string  `json:"link,omitempty" yaml:"link,omitempty"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Featured    *bool    `json:"featured,omitempty" yaml:"featured,omitempty"`
}

// CertificateRecord is a partial certificate from an untrusted source.
type CertificateRecord struct {
	StoreID     string  `json:"_id,omitempty" yaml:"-"`
	ID          *string `json:"id,omitempty" yaml:"id,omitempty"`
	Title       *string `json:"title,omitempty" yaml:"title,omitempty"`
	Issuer      *string `json:"issuer,omitempty" yaml:"issuer,omitempty"`
	Date        *string `json:"date,omitempty" yaml:"date,omitempty"`
	Description *string `json:"description,omitempty" yaml:"description,omitempty"`
	Type        *string `json:"type,omitempty" yaml:"type,omitempty"`
	Link        *string `json:"link,omitempty" yaml:"link,omitempty"`
}

// Record converts p into a fully populated ProjectRecord.
func (p Project) Record() ProjectRecord {
	return ProjectRecord{
		ID:          ptr(p.ID),
		Title:       ptr(p.Title),
		Description: ptr(p.Description),
		Image:       ptr(p.Image),
		Link:        ptr(p.Link),
		Tags:        p.Tags,
		Featured:    ptr(p.Featured),
	}
}

// Record converts c into a fully populated CertificateRecord.
func (c Certificate) Record() CertificateRecord {
	return CertificateRecord{
		ID:          ptr(c.ID),
		Title:       ptr(c.Title),
		Issuer:      ptr(c.Issuer),
		Date:        ptr(c.Date),
		Description: ptr(c.Description),
		Type:        ptr(c.Type),
		Link:        ptr(c.Link),
	}
}

func ptr[T any](v T) *T {
	return &v
}
