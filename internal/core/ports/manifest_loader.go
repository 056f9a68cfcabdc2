package ports

import "go.trai.ch/loom/internal/core/domain"

// ManifestLoader reads the list of fragments an application registers at bootstrap.
//
//go:generate go run go.uber.org/mock/mockgen -source=manifest_loader.go -destination=mocks/mock_manifest_loader.go -package=mocks
type ManifestLoader interface {
	// Load reads the manifest at path.
	Load(path string) (*domain.Manifest, error)
}
