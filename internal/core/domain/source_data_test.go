package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/baker/internal/core/domain"
)

func TestNewSourceData_SortsDependencies(t *testing.T) {
	deps := map[string]struct{}{
		"/src/c.h": {},
		"/src/a.h": {},
		"/src/b.h": {},
	}

	data := domain.NewSourceData(deps, time.Now(), "-O2")

	got := make([]string, len(data.Dependencies))
	for i, dep := range data.Dependencies {
		got[i] = dep.String()
	}
	assert.Equal(t, []string{"/src/a.h", "/src/b.h", "/src/c.h"}, got)
}

func TestNewSourceData_EmptyDependencies(t *testing.T) {
	data := domain.NewSourceData(nil, time.Now(), "")
	assert.Empty(t, data.Dependencies)
}

func TestSnapshot_AddObject(t *testing.T) {
	snap := domain.NewSnapshot()

	snap.AddObject("b.o", domain.BuildDebug)
	snap.AddObject("a.o", domain.BuildDebug)
	snap.AddObject("c.o", domain.BuildDebug)

	assert.Equal(t, []string{"a.o", "b.o", "c.o"}, snap.Objects[domain.BuildDebug])
}

func TestSnapshot_AddObject_Idempotent(t *testing.T) {
	snap := domain.NewSnapshot()

	snap.AddObject("a.o", domain.BuildDebug)
	snap.AddObject("a.o", domain.BuildDebug)

	assert.Equal(t, []string{"a.o"}, snap.Objects[domain.BuildDebug])
}

func TestSnapshot_AddObject_PartitionsByBuildType(t *testing.T) {
	snap := domain.NewSnapshot()

	snap.AddObject("a.o", domain.BuildDebug)
	snap.AddObject("a.o", domain.BuildReleaseFast)

	assert.Len(t, snap.Objects[domain.BuildDebug], 1)
	assert.Len(t, snap.Objects[domain.BuildReleaseFast], 1)
}

func TestSnapshot_RemoveObject(t *testing.T) {
	snap := domain.NewSnapshot()
	snap.AddObject("a.o", domain.BuildDebug)
	snap.AddObject("b.o", domain.BuildDebug)

	snap.RemoveObject("a.o", domain.BuildDebug)
	assert.Equal(t, []string{"b.o"}, snap.Objects[domain.BuildDebug])

	// Removing an absent name is a no-op.
	snap.RemoveObject("missing.o", domain.BuildDebug)
	assert.Equal(t, []string{"b.o"}, snap.Objects[domain.BuildDebug])
}
