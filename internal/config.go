package internal

import (
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/starford/folio/internal/auth"
	"github.com/starford/folio/internal/catalog"
)

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app"`
	Store   StoreConfig       `yaml:"store"`
	Content ContentConfig     `yaml:"content"`
	Catalog CatalogConfig     `yaml:"catalog"`
	Auth    AuthConfig        `yaml:"auth"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Store.Validate(); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	if err := c.Content.Validate(); err != nil {
		return fmt.Errorf("content: %w", err)
	}
	if err := c.Catalog.Validate(); err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	if err := c.Auth.Validate(); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	return nil
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// StoreConfig holds the document store configuration.
type StoreConfig struct {
	Path           string        `yaml:"path"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
}

// Validate validates the store configuration.
func (c *StoreConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
		validation.Field(&c.ConnectTimeout, validation.Min(time.Duration(0))),
	)
}

// ContentConfig holds the path to the YAML content directory.
type ContentConfig struct {
	Path  string `yaml:"path"`
	Watch bool   `yaml:"watch"`
}

// Validate validates the content configuration.
func (c *ContentConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// CatalogConfig controls how stored records are merged into the catalog.
type CatalogConfig struct {
	ImagePolicy catalog.ImagePolicy `yaml:"image_policy"`
}

// Validate validates the catalog configuration.
func (c *CatalogConfig) Validate() error {
	if c.ImagePolicy == "" {
		c.ImagePolicy = catalog.ImageFromCatalog
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.ImagePolicy, validation.In(catalog.ImageFromCatalog, catalog.ImageFromIncoming)),
	)
}

// AuthConfig holds admin authentication configuration.
//
// Secret signs bearer tokens. AdminEmail and AdminPassword are only read by
// the seed command.
type AuthConfig struct {
	Secret        string        `yaml:"secret"`
	TokenTTL      time.Duration `yaml:"token_ttl"`
	AdminEmail    string        `yaml:"admin_email"`
	AdminPassword string        `yaml:"admin_password"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Secret, validation.Required, validation.Length(16, 0)),
		validation.Field(&c.TokenTTL, validation.Required, validation.Min(time.Minute)),
		validation.Field(&c.AdminEmail, is.EmailFormat),
		validation.Field(&c.AdminPassword, validation.Length(8, 0)),
	)
}

// ValidateAdmin checks the credentials needed to seed the admin user.
func (c *AuthConfig) ValidateAdmin() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.AdminEmail, validation.Required, is.EmailFormat),
		validation.Field(&c.AdminPassword, validation.Required, validation.Length(8, 0)),
	)
}

// TokenService returns the token signer configured by c.
func (c *AuthConfig) TokenService() auth.TokenService {
	return auth.TokenService{
		Secret:   []byte(c.Secret),
		Issuer:   "folio",
		Duration: c.TokenTTL,
	}
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Store: StoreConfig{
			Path:           "./folio.db",
			ConnectTimeout: 5 * time.Second,
		},
		Content: ContentConfig{
			Path:  "./content",
			Watch: true,
		},
		Catalog: CatalogConfig{
			ImagePolicy: catalog.ImageFromCatalog,
		},
		Auth: AuthConfig{
			TokenTTL: 24 * time.Hour,
		},
	}
}
