//go:build e2e

package e2e

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thesyncim/pagesuite/pkg/browser"
	"github.com/thesyncim/pagesuite/pkg/pages"
)

func TestCheckboxes(t *testing.T) {
	t.Run("displays checkboxes", func(t *testing.T) {
		h := setup(t)
		page := pages.NewCheckboxPage(h.nav)
		must(t, page.Open(h.ctx))

		boxes, err := page.Checkboxes(h.ctx)
		require.NoError(t, err)
		assert.Greater(t, len(boxes), 0)
	})

	t.Run("checks a checkbox", func(t *testing.T) {
		h := setup(t)
		page := pages.NewCheckboxPage(h.nav)
		must(t, page.Open(h.ctx))

		box, err := page.CheckboxOne(h.ctx)
		require.NoError(t, err)
		require.NoError(t, box.Click(h.ctx))

		h.expect.Element(h.ctx, page.CheckboxOne).ToBeSelected()
	})

	t.Run("unchecks a checkbox", func(t *testing.T) {
		h := setup(t)
		page := pages.NewCheckboxPage(h.nav)
		must(t, page.Open(h.ctx))

		box, err := page.CheckboxOne(h.ctx)
		require.NoError(t, err)
		require.NoError(t, box.Click(h.ctx))
		h.expect.Element(h.ctx, page.CheckboxOne).ToBeSelected()

		require.NoError(t, box.Click(h.ctx))
		h.expect.Element(h.ctx, page.CheckboxOne).Not().ToBeSelected()
	})

	t.Run("checkboxes are independent", func(t *testing.T) {
		h := setup(t)
		page := pages.NewCheckboxPage(h.nav)
		must(t, page.Open(h.ctx))

		box, err := page.CheckboxOne(h.ctx)
		require.NoError(t, err)
		require.NoError(t, box.Click(h.ctx))
		h.expect.Element(h.ctx, page.CheckboxOne).ToBeSelected()
		h.expect.Element(h.ctx, page.CheckboxTwo).ToBeSelected()

		h.expect.Elements(h.ctx, browser.ByAll(h.session, `input[type="checkbox"]`)).ToHaveLengthAtLeast(2)
	})

	t.Run("toggling flips the state", func(t *testing.T) {
		h := setup(t)
		page := pages.NewCheckboxPage(h.nav)
		must(t, page.Open(h.ctx))

		before, err := page.IsCheckboxChecked(h.ctx, 0)
		require.NoError(t, err)
		require.NoError(t, page.ToggleCheckbox(h.ctx, 0))
		after, err := page.IsCheckboxChecked(h.ctx, 0)
		require.NoError(t, err)

		assert.Equal(t, !before, after)
	})

	t.Run("toggling twice restores the state", func(t *testing.T) {
		h := setup(t)
		page := pages.NewCheckboxPage(h.nav)
		must(t, page.Open(h.ctx))

		for i := range 2 {
			before, err := page.IsCheckboxChecked(h.ctx, i)
			require.NoError(t, err)

			require.NoError(t, page.ToggleCheckbox(h.ctx, i))
			require.NoError(t, page.ToggleCheckbox(h.ctx, i))

			after, err := page.IsCheckboxChecked(h.ctx, i)
			require.NoError(t, err)
			assert.Equal(t, before, after, "checkbox %d", i)
		}
	})

	t.Run("finds a checkbox by its label", func(t *testing.T) {
		h := setup(t)
		page := pages.NewCheckboxPage(h.nav)
		must(t, page.Open(h.ctx))

		box, err := page.CheckboxByLabel(h.ctx, "checkbox 2")
		require.NoError(t, err)
		checked, err := box.IsSelected(h.ctx)
		require.NoError(t, err)
		assert.True(t, checked)

		_, err = page.CheckboxByLabel(h.ctx, "checkbox 3")
		assert.ErrorIs(t, err, browser.ErrElementNotFound)
	})

	t.Run("index out of range is not found", func(t *testing.T) {
		h := setup(t)
		page := pages.NewCheckboxPage(h.nav)
		must(t, page.Open(h.ctx))

		assert.ErrorIs(t, page.ToggleCheckbox(h.ctx, 5), browser.ErrElementNotFound)
	})
}
