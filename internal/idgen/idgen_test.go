package idgen

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ReturnsDistinctUUIDs(t *testing.T) {
	a, b := New(), New()
	assert.NotEqual(t, a, b)
	_, err := uuid.Parse(a)
	require.NoError(t, err)
}

func TestNew_UsesStubbedFunc(t *testing.T) {
	orig := NewFunc
	t.Cleanup(func() { NewFunc = orig })
	NewFunc = func() string { return "run-1" }
	assert.Equal(t, "run-1", New())
}
