// internals/helpers/filestore/filestore.go
package filestore

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"booknetwork_backend/internals/constants"
)

// Service writes uploaded files under a base directory and hands back the
// relative path that gets stored on the owning record. Layout mirrors the
// original uploads tree: <base>/users/<ownerID>/<uuid>.<ext>
type Service struct {
	BaseDir string
}

func New(baseDir string) *Service {
	return &Service{BaseDir: baseDir}
}

// SaveCover persists the cover bytes for ownerID and returns the stored
// relative path. The caller has already validated the media type; the
// extension is derived from it.
func (s *Service) SaveCover(ownerID uuid.UUID, contentType string, data []byte) (string, error) {
	dir := filepath.Join(s.BaseDir, "users", ownerID.String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := uuid.NewString() + constants.CoverExtension(contentType)
	full := filepath.Join(dir, name)
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("write cover file: %w", err)
	}

	rel := filepath.ToSlash(filepath.Join("users", ownerID.String(), name))
	log.Printf("[INFO] saved cover %s (%d bytes)", rel, len(data))
	return rel, nil
}

// Read returns the raw bytes for a previously stored reference.
func (s *Service) Read(ref string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.BaseDir, filepath.FromSlash(ref)))
}
