package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/baker/internal/core/domain"
)

func TestInternedString_EqualHandles(t *testing.T) {
	a := domain.NewInternedString("/src/util.h")
	b := domain.NewInternedString("/src/util.h")
	c := domain.NewInternedString("/src/other.h")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, "/src/util.h", a.String())
}

func TestInternedString_ZeroValue(t *testing.T) {
	var zero domain.InternedString
	assert.Equal(t, "", zero.String())
}

func TestInternedString_JSON(t *testing.T) {
	deps := []domain.InternedString{domain.NewInternedString("/src/a.h")}

	raw, err := json.Marshal(deps)
	require.NoError(t, err)
	assert.JSONEq(t, `["/src/a.h"]`, string(raw))

	var decoded []domain.InternedString
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, deps, decoded)
}
