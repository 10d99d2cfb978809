// Package storage defines the read-only view of a generated documentation directory.
package storage

import "github.com/starford/doxnav/internal/models"

// Provider is the interface for docs directory access.
type Provider interface {
	// List returns metadata for every file under dir with the given extension
	// (for example ".js"). An empty ext matches every file.
	List(dir, ext string) ([]models.FragmentMetadata, error)
	// Read returns the raw bytes of the file at path (relative to the docs root).
	Read(path string) ([]byte, error)
	// Exists reports whether a regular file exists at path.
	Exists(path string) bool
	// Root returns the absolute docs directory.
	Root() string
}
