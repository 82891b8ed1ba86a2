package pages

import (
	"context"

	"github.com/thesyncim/pagesuite/pkg/browser"
)

// SecureRoute is the path of the secure area page, relative to the base URL.
const SecureRoute = "secure"

// SecurePage is where a successful login lands.
type SecurePage struct {
	nav *Navigator
}

// NewSecurePage returns the secure area page reached through nav.
func NewSecurePage(nav *Navigator) *SecurePage {
	return &SecurePage{nav: nav}
}

// Open navigates to SecureRoute.
func (p *SecurePage) Open(ctx context.Context) error {
	return p.nav.Open(ctx, SecureRoute)
}

func (p *SecurePage) Heading(ctx context.Context) (browser.Element, error) {
	return p.nav.find(ctx, "h2")
}

func (p *SecurePage) AlertFlash(ctx context.Context) (browser.Element, error) {
	return p.nav.find(ctx, selFlash)
}

func (p *SecurePage) BtnLogout(ctx context.Context) (browser.Element, error) {
	return p.nav.find(ctx, selSecureBtn)
}

// Logout ends the session; the site sends the browser back to the login page.
func (p *SecurePage) Logout(ctx context.Context) error {
	btn, err := p.BtnLogout(ctx)
	if err != nil {
		return err
	}

	return btn.Click(ctx)
}
