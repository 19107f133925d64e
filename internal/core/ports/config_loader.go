package ports

import "go.trai.ch/podgen/internal/core/domain"

// ManifestLoader defines the interface for loading an installation manifest.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ManifestLoader interface {
	// Load reads the manifest at path and returns the validated installation.
	Load(path string) (*domain.Installation, error)
}
