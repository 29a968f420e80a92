package guard_test

import (
	"errors"
	"testing"

	"foodcourt/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	t.Run("creates_properly_constructed_guard", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		customError := errors.New("test object not constructed")
		require.NoError(t, g.Validate(customError))
	})
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("zero_value_fails_with_given_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		customError := errors.New("test object not constructed")
		err := g.Validate(customError)
		assert.Equal(t, customError, err)
	})

	t.Run("zero_value_fails_with_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})

	t.Run("constructed_guard_passes_with_nil_error", func(t *testing.T) {
		g := guard.NewConstructorGuard()
		require.NoError(t, g.Validate(nil))
	})
}
