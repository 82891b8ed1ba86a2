//go:build e2e

package e2e

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thesyncim/pagesuite/pkg/pages"
)

func TestInputFields(t *testing.T) {
	t.Run("accepts text input", func(t *testing.T) {
		h := setup(t)
		login := pages.NewLoginPage(h.nav)
		must(t, login.Open(h.ctx))

		user, err := login.InputUsername(h.ctx)
		require.NoError(t, err)
		require.NoError(t, user.SetValue(h.ctx, "MyTestInput123"))

		assert.Equal(t, "MyTestInput123", value(t, h.ctx, login.InputUsername))
	})

	t.Run("keeps password values", func(t *testing.T) {
		h := setup(t)
		login := pages.NewLoginPage(h.nav)
		must(t, login.Open(h.ctx))

		pass, err := login.InputPassword(h.ctx)
		require.NoError(t, err)
		require.NoError(t, pass.SetValue(h.ctx, "SecurePass123!"))

		assert.Equal(t, "SecurePass123!", value(t, h.ctx, login.InputPassword))
	})

	t.Run("clears a value", func(t *testing.T) {
		h := setup(t)
		login := pages.NewLoginPage(h.nav)
		must(t, login.Open(h.ctx))

		user, err := login.InputUsername(h.ctx)
		require.NoError(t, err)
		require.NoError(t, user.SetValue(h.ctx, "ToBeCleared"))
		require.NoError(t, user.ClearValue(h.ctx))

		assert.Equal(t, "", value(t, h.ctx, login.InputUsername))
	})

	t.Run("appends to an existing value", func(t *testing.T) {
		h := setup(t)
		login := pages.NewLoginPage(h.nav)
		must(t, login.Open(h.ctx))

		user, err := login.InputUsername(h.ctx)
		require.NoError(t, err)
		require.NoError(t, user.SetValue(h.ctx, "First"))
		require.NoError(t, user.AddValue(h.ctx, "Second"))

		assert.Equal(t, "FirstSecond", value(t, h.ctx, login.InputUsername))
	})

	t.Run("set value replaces the previous value", func(t *testing.T) {
		h := setup(t)
		login := pages.NewLoginPage(h.nav)
		must(t, login.Open(h.ctx))

		user, err := login.InputUsername(h.ctx)
		require.NoError(t, err)
		require.NoError(t, user.SetValue(h.ctx, "old"))
		require.NoError(t, user.SetValue(h.ctx, "new"))

		h.expect.Element(h.ctx, login.InputUsername).ToHaveValue("new")
	})
}
