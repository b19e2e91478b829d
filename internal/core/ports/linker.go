package ports

import (
	"context"

	"go.trai.ch/baker/internal/core/domain"
)

// Linker combines object artifacts into the final executable or library.
// Unlike compilers, a builder uses exactly one linker.
//
//go:generate go run go.uber.org/mock/mockgen -source=linker.go -destination=mocks/mock_linker.go -package=mocks
type Linker interface {
	// Link produces the final artifact under job.OutputDir/job.OutputName
	// plus the platform extension.
	Link(ctx context.Context, job domain.LinkJob) error
}
