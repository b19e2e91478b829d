package commands_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/baker/cmd/baker/commands"
	"go.trai.ch/baker/internal/adapters/logger"
	"go.trai.ch/baker/internal/adapters/telemetry"
	"go.trai.ch/baker/internal/app"
	"go.trai.ch/baker/internal/core/domain"
	"go.trai.ch/baker/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	loader *mocks.MockConfigLoader
	cli    *commands.CLI
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	runner := mocks.NewMockRunner(ctrl)

	a := app.New(loader, runner, telemetry.NewNoOpTracer(), mocks.NewMockWatcher(ctrl), logger.NewWithWriter(io.Discard, slog.LevelError))
	return &fixture{loader: loader, cli: commands.New(a)}
}

func TestVersionCommand(t *testing.T) {
	f := newFixture(t)
	f.cli.SetArgs([]string{"version"})
	assert.NoError(t, f.cli.Execute(context.Background()))
}

func TestUnknownCommand(t *testing.T) {
	f := newFixture(t)
	f.cli.SetArgs([]string{"frobnicate"})
	assert.Error(t, f.cli.Execute(context.Background()))
}

func TestCleanCommand(t *testing.T) {
	f := newFixture(t)
	root := t.TempDir()

	layout, err := domain.NewLayout(root, domain.BuildDebug)
	require.NoError(t, err)
	require.NoError(t, layout.EnsureDirs())
	require.NoError(t, os.WriteFile(layout.DatabasePath(), []byte("{}"), 0o600))

	plan := &domain.Plan{
		Project:   "app",
		Artifact:  domain.ArtifactExecutable,
		BuildType: domain.BuildDebug,
		Workers:   2,
		Root:      root,
		Sources:   []domain.SourcePath{{Dir: root}},
	}
	configPath := filepath.Join(root, "baker.yaml")
	f.loader.EXPECT().Load(configPath).Return(plan, nil)

	f.cli.SetArgs([]string{"clean", "--config", configPath})
	require.NoError(t, f.cli.Execute(context.Background()))

	assert.NoDirExists(t, layout.ObjectDir())
	assert.NoFileExists(t, layout.DatabasePath())
}

func TestBuildCommand_ConfigError(t *testing.T) {
	f := newFixture(t)

	f.loader.EXPECT().Load("missing.yaml").Return(nil, errors.New("no such file"))

	f.cli.SetArgs([]string{"build", "--config", "missing.yaml"})
	assert.Error(t, f.cli.Execute(context.Background()))
}

func TestBuildCommand_InvalidBuildTypeOverride(t *testing.T) {
	f := newFixture(t)

	plan := &domain.Plan{
		Project:   "app",
		Artifact:  domain.ArtifactExecutable,
		BuildType: domain.BuildDebug,
		Workers:   2,
		Root:      t.TempDir(),
		Sources:   []domain.SourcePath{{Dir: "src"}},
	}
	f.loader.EXPECT().Load("baker.yaml").Return(plan, nil)

	f.cli.SetArgs([]string{"build", "--build-type", "turbo"})
	assert.Error(t, f.cli.Execute(context.Background()))
}
