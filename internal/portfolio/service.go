// Package portfolio implements the site's use cases on top of the document
// store and the authored catalog.
package portfolio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/starford/folio/internal/apperr"
	"github.com/starford/folio/internal/auth"
	"github.com/starford/folio/internal/catalog"
	"github.com/starford/folio/internal/models"
	"github.com/starford/folio/internal/store"
)

// Option configures a Service.
type Option func(*Service)

// WithImagePolicy sets which image matched projects keep.
func WithImagePolicy(p catalog.ImagePolicy) Option {
	return func(s *Service) {
		s.imagePolicy = p
	}
}

// WithMessageHook registers fn to be called after each stored contact message.
func WithMessageHook(fn func(*models.Message)) Option {
	return func(s *Service) {
		s.onMessage = fn
	}
}

// Service coordinates the store, catalog merge, and admin auth.
type Service struct {
	handle      *store.Handle
	tokens      auth.TokenService
	imagePolicy catalog.ImagePolicy
	onMessage   func(*models.Message)
}

// NewService creates a new portfolio service.
func NewService(h *store.Handle, tokens auth.TokenService, opts ...Option) *Service {
	s := &Service{handle: h, tokens: tokens, imagePolicy: catalog.ImageFromCatalog}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ready reports whether the store can be reached.
func (s *Service) Ready(ctx context.Context) error {
	_, err := s.handle.Get(ctx)
	return err
}

// StoreState reports the store handle's lifecycle state.
func (s *Service) StoreState() string {
	return s.handle.State().String()
}

// Projects returns the catalog merged with stored project records. Store
// failures are logged and the catalog is served as is.
func (s *Service) Projects(ctx context.Context) []catalog.Project {
	var records []catalog.ProjectRecord
	docs, err := s.handle.Get(ctx)
	if err == nil {
		records, err = docs.FindProjects(ctx)
	}
	if err != nil {
		slog.Warn("projects: serving catalog fallback", slog.String("error", err.Error()))
		return catalog.Projects()
	}
	return catalog.MergeProjects(catalog.Projects(), records, catalog.WithImagePolicy(s.imagePolicy))
}

// Certificates returns the catalog merged with stored certificate records.
func (s *Service) Certificates(ctx context.Context) []catalog.Certificate {
	var records []catalog.CertificateRecord
	docs, err := s.handle.Get(ctx)
	if err == nil {
		records, err = docs.FindCertificates(ctx)
	}
	if err != nil {
		slog.Warn("certificates: serving catalog fallback", slog.String("error", err.Error()))
		return catalog.Certificates()
	}
	return catalog.MergeCertificates(catalog.Certificates(), records)
}

// SubmitContact validates and stores a contact form submission.
func (s *Service) SubmitContact(ctx context.Context, in ContactInput) (*models.Message, error) {
	in = in.Trimmed()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	docs, err := s.handle.Get(ctx)
	if err != nil {
		return nil, err
	}
	m, err := docs.CreateContact(ctx, in.Name, in.Email, in.Message)
	if err != nil {
		return nil, err
	}
	if s.onMessage != nil {
		s.onMessage(m)
	}
	return m, nil
}

// Messages returns all contact messages, newest first.
func (s *Service) Messages(ctx context.Context) ([]models.Message, error) {
	docs, err := s.handle.Get(ctx)
	if err != nil {
		return nil, err
	}
	return docs.ListContacts(ctx)
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Login checks the admin credentials and issues a bearer token.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required: %w", apperr.ErrInvalidInput)
	}
	docs, err := s.handle.Get(ctx)
	if err != nil {
		return nil, err
	}
	u, err := docs.UserByEmail(ctx, email)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return nil, apperr.ErrUnauthorized
	}
	token, _, err := s.tokens.Sign(u)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: u}, nil
}

// Authenticate resolves a bearer token to its user. The token subject must
// name an existing user record.
func (s *Service) Authenticate(ctx context.Context, raw string) (*models.User, error) {
	claims, err := s.tokens.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrUnauthorized, err)
	}
	docs, err := s.handle.Get(ctx)
	if err != nil {
		return nil, err
	}
	u, err := docs.UserByID(ctx, claims.Subject)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// EnsureAdmin creates the admin user unless one with email already exists.
func (s *Service) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	docs, err := s.handle.Get(ctx)
	if err != nil {
		return false, err
	}
	if _, err := docs.UserByEmail(ctx, email); err == nil {
		return false, nil
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return false, err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return false, err
	}
	if _, err := docs.CreateUser(ctx, email, hash); err != nil {
		if errors.Is(err, apperr.ErrAlreadyExists) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Stats summarises the stored collections.
type Stats struct {
	Projects     int     `json:"projects"`
	Certificates int     `json:"certificates"`
	Messages     int     `json:"messages"`
	Samples      Samples `json:"sampleData"`
	State        string  `json:"state"`
}

// Samples lists a few stored titles per collection.
type Samples struct {
	Projects     []string `json:"projects"`
	Certificates []string `json:"certificates"`
}

// Stats returns collection counts and sample titles.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	docs, err := s.handle.Get(ctx)
	if err != nil {
		return nil, err
	}
	st := &Stats{State: s.handle.State().String()}
	if st.Projects, err = docs.CountProjects(ctx); err != nil {
		return nil, err
	}
	if st.Certificates, err = docs.CountCertificates(ctx); err != nil {
		return nil, err
	}
	msgs, err := docs.ListContacts(ctx)
	if err != nil {
		return nil, err
	}
	st.Messages = len(msgs)
	if st.Samples.Projects, err = docs.SampleTitles(ctx, "projects", 3); err != nil {
		return nil, err
	}
	if st.Samples.Certificates, err = docs.SampleTitles(ctx, "certificates", 3); err != nil {
		return nil, err
	}
	return st, nil
}
