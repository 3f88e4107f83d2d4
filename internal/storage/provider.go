// Package storage defines the content directory abstraction.
package storage

import "github.com/starford/folio/internal/models"

// Provider is the interface for content file operations. Paths are
// slash-separated and relative to the content root.
type Provider interface {
	// List returns metadata for every YAML file under dir.
	List(dir string) ([]models.ContentFile, error)
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
	// Write atomically writes content to path.
	Write(path string, content []byte) error
}
