// Package ports defines the capability interfaces between the engine and its
// external collaborators. Where the upstream tool contracts report failure as
// a boolean, these interfaces use idiomatic error returns instead; a nil error
// is success.
package ports

import (
	"context"

	"go.trai.ch/baker/internal/core/domain"
)

// Compiler compiles single source files into object artifacts.
//
//go:generate go run go.uber.org/mock/mockgen -source=compiler.go -destination=mocks/mock_compiler.go -package=mocks
type Compiler interface {
	// ObjectExtension returns the compiler's preferred object file
	// extension, e.g. ".o" or ".obj".
	ObjectExtension() string

	// Compile runs the compiler on one source file. It must produce exactly
	// job.OutputDir/job.OutputName on success and must not leave a partial
	// artifact recognizable as complete on failure.
	Compile(ctx context.Context, job domain.CompileJob) error
}
