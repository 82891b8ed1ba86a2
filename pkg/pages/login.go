package pages

import (
	"context"

	"github.com/thesyncim/pagesuite/pkg/browser"
)

// Login page selectors.
const (
	// LoginRoute is the path of the login form page, relative to the base URL.
	LoginRoute = "login"

	selUsername  = `[id="username"]`
	selPassword  = `[id="password"]`
	selSubmit    = `button[type="submit"]`
	selFlash     = `.flash`
	selSecureBtn = `a[href="/logout"]`
)

// LoginPage is the username/password form.
type LoginPage struct {
	nav *Navigator
}

// NewLoginPage returns the login form page reached through nav.
func NewLoginPage(nav *Navigator) *LoginPage {
	return &LoginPage{nav: nav}
}

// Open navigates to LoginRoute.
func (p *LoginPage) Open(ctx context.Context) error {
	return p.nav.Open(ctx, LoginRoute)
}

func (p *LoginPage) InputUsername(ctx context.Context) (browser.Element, error) {
	return p.nav.find(ctx, selUsername)
}

func (p *LoginPage) InputPassword(ctx context.Context) (browser.Element, error) {
	return p.nav.find(ctx, selPassword)
}

func (p *LoginPage) BtnSubmit(ctx context.Context) (browser.Element, error) {
	return p.nav.find(ctx, selSubmit)
}

// AlertFlash is the status banner shown after a submission.
func (p *LoginPage) AlertFlash(ctx context.Context) (browser.Element, error) {
	return p.nav.find(ctx, selFlash)
}

// Login types both credentials and submits the form.
func (p *LoginPage) Login(ctx context.Context, username, password string) error {
	user, err := p.InputUsername(ctx)
	if err != nil {
		return err
	}
	if err := user.SetValue(ctx, username); err != nil {
		return err
	}

	pass, err := p.InputPassword(ctx)
	if err != nil {
		return err
	}
	if err := pass.SetValue(ctx, password); err != nil {
		return err
	}

	submit, err := p.BtnSubmit(ctx)
	if err != nil {
		return err
	}

	return submit.Click(ctx)
}
