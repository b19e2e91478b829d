package ports

//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks

import "go.trai.ch/baker/internal/core/domain"

// ConfigLoader reads a build configuration file into a resolved plan.
type ConfigLoader interface {
	// Load reads the configuration file at path.
	Load(path string) (*domain.Plan, error)
}
