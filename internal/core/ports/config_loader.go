package ports

import "go.trai.ch/precache/internal/core/domain"

// ConfigLoader defines the interface for loading the pipeline configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load discovers the config file by walking up from cwd and returns the resolved configuration.
	// When no config file exists, the defaults rooted at cwd are returned.
	Load(cwd string) (domain.Config, error)

	// LoadFile reads the configuration from an explicit file path.
	LoadFile(path string) (domain.Config, error)

	// DiscoverRoot walks up from cwd to find the directory containing the config file.
	DiscoverRoot(cwd string) (string, error)
}
