//go:build e2e

package e2e

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thesyncim/pagesuite/pkg/browser"
	"github.com/thesyncim/pagesuite/pkg/pages"
)

func TestLabelsAndText(t *testing.T) {
	openLogin := func(t *testing.T) (*harness, *pages.LoginPage) {
		t.Helper()
		h := setup(t)
		login := pages.NewLoginPage(h.nav)
		must(t, login.Open(h.ctx))
		return h, login
	}

	t.Run("labels", func(t *testing.T) {
		t.Run("heading text is exact", func(t *testing.T) {
			h, _ := openLogin(t)
			h.expect.Element(h.ctx, browser.By(h.session, "h2")).ToHaveText("Login Page")
		})

		t.Run("username label contains its name", func(t *testing.T) {
			h, _ := openLogin(t)
			assert.Contains(t, h.text(t, `label[for="username"]`), "Username")
		})

		t.Run("form has both labels in order", func(t *testing.T) {
			h, _ := openLogin(t)

			labels := h.findAll(t, "label")
			require.Len(t, labels, 2)

			first, err := labels[0].Text(h.ctx)
			require.NoError(t, err)
			second, err := labels[1].Text(h.ctx)
			require.NoError(t, err)
			assert.Contains(t, first, "Username")
			assert.Contains(t, second, "Password")
		})

		t.Run("button text", func(t *testing.T) {
			h, _ := openLogin(t)
			h.expect.Element(h.ctx, browser.By(h.session, `button[type="submit"]`)).ToHaveText("Login")
		})

		t.Run("labels are visible and not empty", func(t *testing.T) {
			h, _ := openLogin(t)

			for i, label := range h.findAll(t, "label") {
				visible, err := label.IsDisplayed(h.ctx)
				require.NoError(t, err)
				assert.True(t, visible, "label %d", i)

				text, err := label.Text(h.ctx)
				require.NoError(t, err)
				assert.NotEmpty(t, text, "label %d", i)
			}
		})
	})

	t.Run("error messages", func(t *testing.T) {
		t.Run("failed login shows an error", func(t *testing.T) {
			h, login := openLogin(t)
			must(t, login.Login(h.ctx, "wronguser", "wrongpass"))

			errorFlash := browser.By(h.session, ".flash.error")
			h.expect.Element(h.ctx, errorFlash).ToBeDisplayed()
			h.expect.Element(h.ctx, errorFlash).ToHaveTextContaining("invalid")
		})

		t.Run("no error before submitting", func(t *testing.T) {
			h, login := openLogin(t)
			// The form must be rendered before absence says anything
			h.expect.Element(h.ctx, login.InputUsername).ToBeDisplayed()
			h.expect.Elements(h.ctx, browser.ByAll(h.session, ".flash.error")).ToHaveLength(0)
			h.expect.Element(h.ctx, browser.By(h.session, ".flash.error")).Not().ToExist()
		})

		t.Run("error names the username", func(t *testing.T) {
			h, login := openLogin(t)
			must(t, login.Login(h.ctx, "test", "test"))

			h.expect.Element(h.ctx, browser.By(h.session, ".flash.error")).ToBeDisplayed()
			text := h.text(t, ".flash.error")
			assert.Contains(t, text, "invalid")
			assert.Contains(t, strings.ToLower(text), "username")
		})
	})

	t.Run("headings", func(t *testing.T) {
		t.Run("login page", func(t *testing.T) {
			h, _ := openLogin(t)
			heading := browser.By(h.session, "h2")
			h.expect.Element(h.ctx, heading).ToBeDisplayed()
			h.expect.Element(h.ctx, heading).ToHaveText("Login Page")
		})

		t.Run("login heading has no unexpected words", func(t *testing.T) {
			h, _ := openLogin(t)
			text := h.text(t, "h2")
			assert.NotContains(t, text, "Admin")
			assert.NotContains(t, text, "Logout")
		})

		t.Run("checkbox page", func(t *testing.T) {
			h := setup(t)
			must(t, pages.NewCheckboxPage(h.nav).Open(h.ctx))

			h.expect.Element(h.ctx, browser.By(h.session, "h3")).ToBeDisplayed()
			assert.Contains(t, h.text(t, "h3"), "Checkboxes")
		})

		t.Run("dropdown page", func(t *testing.T) {
			h := setup(t)
			must(t, pages.NewDropdownPage(h.nav).Open(h.ctx))

			h.expect.Element(h.ctx, browser.By(h.session, "h3")).ToBeDisplayed()
			assert.Contains(t, h.text(t, "h3"), "Dropdown")
		})
	})

	t.Run("dynamic text", func(t *testing.T) {
		t.Run("value follows input", func(t *testing.T) {
			h, login := openLogin(t)
			assert.Equal(t, "", value(t, h.ctx, login.InputUsername))

			user, err := login.InputUsername(h.ctx)
			require.NoError(t, err)
			require.NoError(t, user.SetValue(h.ctx, "admin"))
			assert.Contains(t, value(t, h.ctx, login.InputUsername), "admin")
		})

		t.Run("placeholder is optional", func(t *testing.T) {
			h, login := openLogin(t)

			user, err := login.InputUsername(h.ctx)
			require.NoError(t, err)
			placeholder, ok, err := user.Attribute(h.ctx, "placeholder")
			require.NoError(t, err)
			if ok {
				assert.NotEmpty(t, placeholder)
			} else {
				t.Log("username field has no placeholder")
			}
		})

		t.Run("heading text is case sensitive and trimmed", func(t *testing.T) {
			h, _ := openLogin(t)
			text := h.text(t, "h2")
			assert.Equal(t, "Login Page", text)
			assert.NotEqual(t, "login page", text)
		})
	})

	t.Run("text patterns", func(t *testing.T) {
		t.Run("regular expression", func(t *testing.T) {
			h, _ := openLogin(t)
			assert.Regexp(t, regexp.MustCompile(`(?i)login`), h.text(t, "h2"))
		})

		t.Run("length", func(t *testing.T) {
			h, _ := openLogin(t)
			text := h.text(t, "h2")
			assert.Greater(t, len(text), 3)
			assert.Less(t, len(text), 50)
		})

		t.Run("prefix and suffix", func(t *testing.T) {
			h, _ := openLogin(t)
			text := h.text(t, "h2")
			assert.True(t, strings.HasPrefix(text, "Login"))
			assert.True(t, strings.HasSuffix(text, "Page"))
		})

		t.Run("words", func(t *testing.T) {
			h, _ := openLogin(t)
			assert.Equal(t, []string{"Login", "Page"}, strings.Split(h.text(t, "h2"), " "))
		})
	})

	t.Run("visible text and html", func(t *testing.T) {
		t.Run("visible text", func(t *testing.T) {
			h, _ := openLogin(t)
			text := h.text(t, "h2")
			assert.Len(t, text, 10)
			assert.Contains(t, text, "Login")
		})

		t.Run("html", func(t *testing.T) {
			h, _ := openLogin(t)
			h.expect.Element(h.ctx, browser.By(h.session, "h2")).ToHaveHTMLContaining("h2")

			html, err := h.find(t, "h2").HTML(h.ctx)
			require.NoError(t, err)
			assert.NotEmpty(t, html)
		})

		t.Run("element exists and has text", func(t *testing.T) {
			h, _ := openLogin(t)
			h.expect.Element(h.ctx, browser.By(h.session, "h2")).ToExist()
			assert.NotEmpty(t, h.text(t, "h2"))
		})
	})
}
