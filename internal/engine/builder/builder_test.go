package builder_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/baker/internal/adapters/db"
	"go.trai.ch/baker/internal/adapters/logger"
	"go.trai.ch/baker/internal/adapters/telemetry"
	"go.trai.ch/baker/internal/adapters/toolchain"
	"go.trai.ch/baker/internal/core/domain"
	"go.trai.ch/baker/internal/core/ports"
	"go.trai.ch/baker/internal/core/ports/mocks"
	"go.trai.ch/baker/internal/engine/builder"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	layout   domain.Layout
	store    *db.Store
	compiler *mocks.MockCompiler
	linker   *mocks.MockLinker
	builder  *builder.Builder
	srcDir   string
}

func newFixture(t *testing.T, cfg builder.Config) *fixture {
	t.Helper()

	layout, err := domain.NewLayout(t.TempDir(), domain.BuildDebug)
	require.NoError(t, err)

	log := logger.NewWithWriter(io.Discard, slog.LevelError)
	store := db.NewStore(layout.DatabasePath(), log)

	ctrl := gomock.NewController(t)
	compiler := mocks.NewMockCompiler(ctrl)
	compiler.EXPECT().ObjectExtension().Return(".o").AnyTimes()
	linker := mocks.NewMockLinker(ctrl)

	bld := builder.New(cfg, layout, store, linker, telemetry.NewNoOpTracer(), log)
	bld.AddLanguage(&ports.Language{
		Name:       "c",
		Extensions: []string{".c"},
		Scanner:    toolchain.NewIncludeScanner(),
		Compiler:   compiler,
	})

	return &fixture{
		layout:   layout,
		store:    store,
		compiler: compiler,
		linker:   linker,
		builder:  bld,
		srcDir:   t.TempDir(),
	}
}

// rebuildWith assembles a second builder over the same layout and store,
// recording onto the given tracer.
func (f *fixture) rebuildWith(tracer ports.Tracer) *builder.Builder {
	log := logger.NewWithWriter(io.Discard, slog.LevelError)
	bld := builder.New(defaultConfig(), f.layout, f.store, f.linker, tracer, log)
	bld.AddLanguage(&ports.Language{
		Name:       "c",
		Extensions: []string{".c"},
		Scanner:    toolchain.NewIncludeScanner(),
		Compiler:   f.compiler,
	})
	return bld
}

func defaultConfig() builder.Config {
	return builder.Config{
		Project:  "app",
		Artifact: domain.ArtifactExecutable,
		Workers:  2,
	}
}

func (f *fixture) writeSource(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(f.srcDir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// expectCompiles arranges for the mock compiler to produce object files the
// way a real driver would, so the next staleness check sees them.
func (f *fixture) expectCompiles(n int) {
	f.compiler.EXPECT().Compile(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, job domain.CompileJob) error {
			return os.WriteFile(filepath.Join(job.OutputDir, job.OutputName), []byte("obj"), 0o600)
		}).Times(n)
}

func TestBuilder_BuildAndLink(t *testing.T) {
	f := newFixture(t, defaultConfig())
	main := f.writeSource(t, "main.c", `#include "util.h"`+"\nint main() {}")
	header := f.writeSource(t, "util.h", "#define X 1")
	f.builder.AddSource(main)

	f.expectCompiles(1)
	f.linker.EXPECT().Link(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, job domain.LinkJob) error {
			require.Len(t, job.Objects, 1)
			assert.Equal(t, f.layout.OutputDir(), job.OutputDir)
			assert.Equal(t, "app", job.OutputName)
			return nil
		}).Times(1)

	ctx := context.Background()
	require.NoError(t, f.builder.Build(ctx))
	require.NoError(t, f.builder.Link(ctx))

	// The header landed in the persisted dependency closure.
	data, ok := f.store.Source(main)
	require.True(t, ok)
	require.Len(t, data.Dependencies, 1)
	assert.Equal(t, header, data.Dependencies[0].String())

	// The database was written to disk.
	_, err := os.Stat(f.layout.DatabasePath())
	assert.NoError(t, err)
}

func TestBuilder_SecondBuildIsIncremental(t *testing.T) {
	f := newFixture(t, defaultConfig())
	f.builder.AddSource(f.writeSource(t, "main.c", "int main() {}"))

	// One compile and one link across both invocations.
	f.expectCompiles(1)
	f.linker.EXPECT().Link(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	ctx := context.Background()
	require.NoError(t, f.builder.Build(ctx))
	require.NoError(t, f.builder.Link(ctx))

	settled, err := os.ReadFile(f.layout.DatabasePath())
	require.NoError(t, err)

	require.NoError(t, f.builder.Build(ctx))
	require.NoError(t, f.builder.Link(ctx))

	// A no-change rebuild leaves the database byte-identical.
	unchanged, err := os.ReadFile(f.layout.DatabasePath())
	require.NoError(t, err)
	assert.Equal(t, settled, unchanged)
}

func TestBuilder_FreshFilesMarkedCached(t *testing.T) {
	f := newFixture(t, defaultConfig())
	main := f.writeSource(t, "main.c", "int main() {}")
	f.builder.AddSource(main)

	f.expectCompiles(1)
	f.linker.EXPECT().Link(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	ctx := context.Background()
	require.NoError(t, f.builder.Build(ctx))
	require.NoError(t, f.builder.Link(ctx))

	// The second run recompiles nothing; the fresh file shows up as one
	// cached job on the tracer.
	ctrl := gomock.NewController(t)
	tracer := mocks.NewMockTracer(ctrl)
	job := mocks.NewMockJob(ctrl)
	tracer.EXPECT().StartJob(gomock.Any(), main, domain.Progress{}).Return(job)
	job.EXPECT().Cached()
	job.EXPECT().Done(nil)

	bld := f.rebuildWith(tracer)
	bld.AddSource(main)
	require.NoError(t, bld.Build(ctx))
	require.NoError(t, bld.Link(ctx))
}

func TestBuilder_HeaderChangeTriggersRebuild(t *testing.T) {
	f := newFixture(t, defaultConfig())
	main := f.writeSource(t, "main.c", `#include "util.h"`+"\nint main() {}")
	header := f.writeSource(t, "util.h", "#define X 1")
	f.builder.AddSource(main)

	f.expectCompiles(2)
	f.linker.EXPECT().Link(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	ctx := context.Background()
	require.NoError(t, f.builder.Build(ctx))
	require.NoError(t, f.builder.Link(ctx))

	// Touch the header into the future relative to the recorded compile.
	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(header, future, future))

	require.NoError(t, f.builder.Build(ctx))
	require.NoError(t, f.builder.Link(ctx))
}

func TestBuilder_LinkRetriedAfterLinkFailure(t *testing.T) {
	f := newFixture(t, defaultConfig())
	f.builder.AddSource(f.writeSource(t, "main.c", "int main() {}"))

	f.expectCompiles(1)
	gomock.InOrder(
		f.linker.EXPECT().Link(gomock.Any(), gomock.Any()).Return(errors.New("undefined symbol")),
		f.linker.EXPECT().Link(gomock.Any(), gomock.Any()).Return(nil),
	)

	ctx := context.Background()
	require.NoError(t, f.builder.Build(ctx))
	err := f.builder.Link(ctx)
	require.ErrorIs(t, err, domain.ErrLinkFailed)
	assert.True(t, f.store.LinkError())

	// Nothing changed, but the persisted link failure forces a retry.
	require.NoError(t, f.builder.Build(ctx))
	require.NoError(t, f.builder.Link(ctx))
	assert.False(t, f.store.LinkError())
}

func TestBuilder_NoLinkAfterFailedBuild(t *testing.T) {
	f := newFixture(t, defaultConfig())
	f.builder.AddSource(f.writeSource(t, "main.c", "int main() {}"))

	f.compiler.EXPECT().Compile(gomock.Any(), gomock.Any()).Return(errors.New("syntax error")).Times(1)

	ctx := context.Background()
	err := f.builder.Build(ctx)
	require.ErrorIs(t, err, domain.ErrBuildFailed)

	// Link is a silent no-op on top of a failed compile; the linker mock has
	// no expectations, so an invocation would fail the test.
	require.NoError(t, f.builder.Link(ctx))
}

func TestBuilder_LinkRequiresBuild(t *testing.T) {
	f := newFixture(t, defaultConfig())
	require.Error(t, f.builder.Link(context.Background()))
}

func TestBuilder_NilLinker(t *testing.T) {
	f := newFixture(t, defaultConfig())
	main := f.writeSource(t, "main.c", "int main() {}")

	log := logger.NewWithWriter(io.Discard, slog.LevelError)
	bld := builder.New(defaultConfig(), f.layout, f.store, nil, telemetry.NewNoOpTracer(), log)
	bld.AddLanguage(&ports.Language{Name: "c", Extensions: []string{".c"}, Scanner: toolchain.NewIncludeScanner(), Compiler: f.compiler})
	bld.AddSource(main)

	f.expectCompiles(1)

	ctx := context.Background()
	require.NoError(t, bld.Build(ctx))
	require.ErrorIs(t, bld.Link(ctx), domain.ErrNoLinker)
}

func TestBuilder_UnsupportedSourceAbortsButSaves(t *testing.T) {
	f := newFixture(t, defaultConfig())
	f.builder.AddSource(f.writeSource(t, "main.zig", "pub fn main() void {}"))

	err := f.builder.Build(context.Background())
	require.ErrorIs(t, err, domain.ErrUnsupportedLanguage)

	// The database is still saved, bracketing the run.
	_, statErr := os.Stat(f.layout.DatabasePath())
	assert.NoError(t, statErr)

	// And the failed build suppresses linking.
	require.NoError(t, f.builder.Link(context.Background()))
}

func TestBuilder_InvalidWorkers(t *testing.T) {
	cfg := defaultConfig()
	cfg.Workers = 0
	f := newFixture(t, cfg)
	f.builder.AddSource(f.writeSource(t, "main.c", "int main() {}"))

	err := f.builder.Build(context.Background())
	require.ErrorIs(t, err, domain.ErrInvalidWorkers)
}

func TestBuilder_ArtifactPath(t *testing.T) {
	f := newFixture(t, defaultConfig())
	expected := filepath.Join(f.layout.OutputDir(), "app"+domain.ExecutableExtension())
	assert.Equal(t, expected, f.builder.ArtifactPath())
}
