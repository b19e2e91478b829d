package toolchain_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/baker/internal/adapters/toolchain"
	"go.trai.ch/baker/internal/core/domain"
	"go.uber.org/mock/gomock"
)

func TestUnixLinker_DebugExecutable(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner, tool, args := captureRunner(t, ctrl)

	l := toolchain.NewUnixLinker("clang", domain.ArtifactExecutable, runner)
	job := domain.LinkJob{
		OutputDir:  "/build/debug",
		OutputName: "app",
		BuildType:  domain.BuildDebug,
		Objects:    []string{"/obj/a.o", "/obj/b.o"},
		Flags:      []string{"-lm"},
	}
	require.NoError(t, l.Link(context.Background(), job))

	assert.Equal(t, "clang", *tool)
	assert.Equal(t, []string{
		"-g",
		"-o", filepath.Join("/build/debug", "app"+domain.ExecutableExtension()),
		"-lm",
		"/obj/a.o", "/obj/b.o",
	}, *args)
}

func TestUnixLinker_ReleaseSharedLibrary(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner, _, args := captureRunner(t, ctrl)

	l := toolchain.NewUnixLinker("gcc", domain.ArtifactSharedLib, runner)
	job := domain.LinkJob{
		OutputDir:  "/build/release_fast",
		OutputName: "engine",
		BuildType:  domain.BuildReleaseFast,
		Objects:    []string{"/obj/a.o"},
	}
	require.NoError(t, l.Link(context.Background(), job))

	assert.Equal(t, []string{
		"-shared",
		"-o", filepath.Join("/build/release_fast", "engine"+domain.SharedLibExtension()),
		"/obj/a.o",
	}, *args)
}

func TestMSVCLinker_DebugSharedLibrary(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner, tool, args := captureRunner(t, ctrl)

	l := toolchain.NewMSVCLinker("link", domain.ArtifactSharedLib, runner)
	job := domain.LinkJob{
		OutputDir:  "/build/debug",
		OutputName: "engine",
		BuildType:  domain.BuildDebug,
		Objects:    []string{"/obj/a.obj"},
	}
	require.NoError(t, l.Link(context.Background(), job))

	assert.Equal(t, "link", *tool)
	assert.Equal(t, []string{
		"/DEBUG", "/PDB:" + filepath.Join("/build/debug", "engine.pdb"),
		"/DLL",
		"/OUT:" + filepath.Join("/build/debug", "engine.dll"),
		"/obj/a.obj",
	}, *args)
}
