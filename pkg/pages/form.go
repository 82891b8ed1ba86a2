package pages

import (
	"context"

	"github.com/thesyncim/pagesuite/pkg/browser"
)

// FormRoute is the path of the name form page, relative to the base URL.
const FormRoute = "formelements"

// FormPage is the first/last name form.
type FormPage struct {
	nav *Navigator
}

// NewFormPage returns the name form page reached through nav.
func NewFormPage(nav *Navigator) *FormPage {
	return &FormPage{nav: nav}
}

// Open navigates to FormRoute.
func (p *FormPage) Open(ctx context.Context) error {
	return p.nav.Open(ctx, FormRoute)
}

func (p *FormPage) InputFirstName(ctx context.Context) (browser.Element, error) {
	return p.nav.find(ctx, `input[name="fname"]`)
}

func (p *FormPage) InputLastName(ctx context.Context) (browser.Element, error) {
	return p.nav.find(ctx, `input[name="lname"]`)
}

func (p *FormPage) SubmitButton(ctx context.Context) (browser.Element, error) {
	return p.nav.find(ctx, `input[type="submit"]`)
}

// SuccessMessage is the first paragraph, rendered after a submission.
func (p *FormPage) SuccessMessage(ctx context.Context) (browser.Element, error) {
	return p.nav.find(ctx, "p")
}

// FillForm types both names and submits.
func (p *FormPage) FillForm(ctx context.Context, firstName, lastName string) error {
	first, err := p.InputFirstName(ctx)
	if err != nil {
		return err
	}
	if err := first.SetValue(ctx, firstName); err != nil {
		return err
	}

	last, err := p.InputLastName(ctx)
	if err != nil {
		return err
	}
	if err := last.SetValue(ctx, lastName); err != nil {
		return err
	}

	submit, err := p.SubmitButton(ctx)
	if err != nil {
		return err
	}

	return submit.Click(ctx)
}
