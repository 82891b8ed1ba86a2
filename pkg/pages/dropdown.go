package pages

import (
	"context"

	"github.com/thesyncim/pagesuite/pkg/browser"
)

// DropdownRoute is the path of the dropdown page, relative to the base URL.
const DropdownRoute = "dropdown"

// DropdownPage wraps a single select element.
type DropdownPage struct {
	nav *Navigator
}

// NewDropdownPage returns the dropdown page reached through nav.
func NewDropdownPage(nav *Navigator) *DropdownPage {
	return &DropdownPage{nav: nav}
}

// Open navigates to DropdownRoute.
func (p *DropdownPage) Open(ctx context.Context) error {
	return p.nav.Open(ctx, DropdownRoute)
}

func (p *DropdownPage) Dropdown(ctx context.Context) (browser.Element, error) {
	return p.nav.find(ctx, "select")
}

// SelectOption selects the option whose value attribute is value.
func (p *DropdownPage) SelectOption(ctx context.Context, value string) error {
	dd, err := p.Dropdown(ctx)
	if err != nil {
		return err
	}

	return dd.SelectByValue(ctx, value)
}

// SelectOptionByText selects the option whose visible text is text.
func (p *DropdownPage) SelectOptionByText(ctx context.Context, text string) error {
	dd, err := p.Dropdown(ctx)
	if err != nil {
		return err
	}

	return dd.SelectByText(ctx, text)
}

// SelectedOption returns the value of the selected option.
func (p *DropdownPage) SelectedOption(ctx context.Context) (string, error) {
	dd, err := p.Dropdown(ctx)
	if err != nil {
		return "", err
	}

	return dd.Value(ctx)
}

// AllOptions returns the text of every option in DOM order. Duplicates are kept.
func (p *DropdownPage) AllOptions(ctx context.Context) ([]string, error) {
	dd, err := p.Dropdown(ctx)
	if err != nil {
		return nil, err
	}

	options, err := dd.FindAll(ctx, "option")
	if err != nil {
		return nil, err
	}

	texts := make([]string, 0, len(options))
	for _, o := range options {
		text, err := o.Text(ctx)
		if err != nil {
			return nil, err
		}
		texts = append(texts, text)
	}

	return texts, nil
}
