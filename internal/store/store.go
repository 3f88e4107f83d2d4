package store

import (
	"context"

	"github.com/starford/folio/internal/catalog"
	"github.com/starford/folio/internal/models"
)

// Documents defines the collection operations used by the service layer.
// Consumers should depend on this interface rather than the concrete *Store.
type Documents interface {
	FindProjects(ctx context.Context) ([]catalog.ProjectRecord, error)
	FindCertificates(ctx context.Context) ([]catalog.CertificateRecord, error)
	CountProjects(ctx context.Context) (int, error)
	CountCertificates(ctx context.Context) (int, error)
	SampleTitles(ctx context.Context, collection string, limit int) ([]string, error)
	UpsertProject(ctx context.Context, r catalog.ProjectRecord, insertOnly bool) (bool, error)
	UpsertCertificate(ctx context.Context, r catalog.CertificateRecord, insertOnly bool) (bool, error)
	CreateContact(ctx context.Context, name, email, message string) (*models.Message, error)
	ListContacts(ctx context.Context) ([]models.Message, error)
	CreateUser(ctx context.Context, email, passwordHash string) (*models.User, error)
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByID(ctx context.Context, id string) (*models.User, error)
	ContentChecksums(ctx context.Context) (map[string]string, error)
	SetContentChecksum(ctx context.Context, path, cs string) error
	ForgetContentFile(ctx context.Context, path string) error
}

// Verify *Store satisfies Documents at compile time.
var _ Documents = (*Store)(nil)
