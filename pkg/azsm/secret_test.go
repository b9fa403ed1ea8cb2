package azsm_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/azsm/pkg/azsm"
)

func TestSecret_Expose(t *testing.T) {
	s := azsm.NewSecret("hunter2")

	var seen string
	err := s.Expose(func(plain string) error {
		seen = plain
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "hunter2", seen)
}

func TestSecret_ExposePropagatesError(t *testing.T) {
	s := azsm.NewSecret("value")
	wantErr := errors.New("downstream failure")

	err := s.Expose(func(string) error { return wantErr })
	assert.ErrorIs(t, err, wantErr)
}

func TestSecret_DestroyBlocksExpose(t *testing.T) {
	s := azsm.NewSecret("value")
	s.Destroy()

	called := false
	err := s.Expose(func(string) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, azsm.ErrSecretDestroyed)
	assert.False(t, called, "closure must not run after Destroy")
	assert.True(t, s.Destroyed())
	assert.Zero(t, s.Len())
}

func TestSecret_DestroyIsIdempotent(t *testing.T) {
	s := azsm.NewSecret("value")
	s.Destroy()
	s.Destroy()
	assert.True(t, s.Destroyed())
}

func TestSecret_FormattingRedacts(t *testing.T) {
	s := azsm.NewSecret("super-secret-value")

	for _, rendered := range []string{
		fmt.Sprintf("%v", s),
		fmt.Sprintf("%s", s),
		fmt.Sprintf("%#v", s),
	} {
		assert.NotContains(t, rendered, "super-secret-value")
		assert.Contains(t, rendered, azsm.SecretRedaction)
	}
}

func TestSecret_CopiesInput(t *testing.T) {
	plain := "original"
	s := azsm.NewSecret(plain)
	s.Destroy()

	// Destroying the Secret must not disturb the caller's string.
	assert.Equal(t, "original", plain)
}

func TestSecret_EmptyValue(t *testing.T) {
	s := azsm.NewSecret("")
	assert.Zero(t, s.Len())

	err := s.Expose(func(plain string) error {
		assert.Empty(t, plain)
		return nil
	})
	assert.NoError(t, err)
}
