package pages

import (
	"context"
	"fmt"

	"github.com/thesyncim/pagesuite/pkg/browser"
)

const (
	// CheckboxRoute is the path of the checkbox list page, relative to the base URL.
	CheckboxRoute = "checkboxes"

	selCheckbox = `input[type="checkbox"]`
)

// CheckboxPage lists independent checkboxes.
type CheckboxPage struct {
	nav *Navigator
}

// NewCheckboxPage returns the checkbox list page reached through nav.
func NewCheckboxPage(nav *Navigator) *CheckboxPage {
	return &CheckboxPage{nav: nav}
}

// Open navigates to CheckboxRoute.
func (p *CheckboxPage) Open(ctx context.Context) error {
	return p.nav.Open(ctx, CheckboxRoute)
}

// Checkboxes returns every checkbox in DOM order, possibly none.
func (p *CheckboxPage) Checkboxes(ctx context.Context) ([]browser.Element, error) {
	return p.nav.findAll(ctx, selCheckbox)
}

func (p *CheckboxPage) CheckboxOne(ctx context.Context) (browser.Element, error) {
	return p.nav.find(ctx, selCheckbox+":nth-of-type(1)")
}

func (p *CheckboxPage) CheckboxTwo(ctx context.Context) (browser.Element, error) {
	return p.nav.find(ctx, selCheckbox+":nth-of-type(2)")
}

// CheckboxByLabel returns the checkbox of the label whose text is label. The
// label is tied to its checkbox by its for attribute or by wrapping it.
func (p *CheckboxPage) CheckboxByLabel(ctx context.Context, label string) (browser.Element, error) {
	labels, err := p.nav.findAll(ctx, "label")
	if err != nil {
		return nil, err
	}

	for _, l := range labels {
		text, err := l.Text(ctx)
		if err != nil {
			return nil, err
		}
		if text != label {
			continue
		}

		if id, ok, err := l.Attribute(ctx, "for"); err != nil {
			return nil, err
		} else if ok && id != "" {
			return p.nav.find(ctx, fmt.Sprintf(`input[type="checkbox"][id=%q]`, id))
		}

		parent, err := l.Parent(ctx)
		if err != nil {
			return nil, err
		}
		boxes, err := parent.FindAll(ctx, selCheckbox)
		if err != nil {
			return nil, err
		}
		if len(boxes) > 0 {
			return boxes[0], nil
		}
	}

	return nil, &browser.Error{Kind: browser.ErrElementNotFound, Op: "checkbox by label", Target: label}
}

// ToggleCheckbox clicks the checkbox at index.
func (p *CheckboxPage) ToggleCheckbox(ctx context.Context, index int) error {
	box, err := p.checkboxAt(ctx, index)
	if err != nil {
		return err
	}

	return box.Click(ctx)
}

// IsCheckboxChecked reports whether the checkbox at index is checked.
func (p *CheckboxPage) IsCheckboxChecked(ctx context.Context, index int) (bool, error) {
	box, err := p.checkboxAt(ctx, index)
	if err != nil {
		return false, err
	}

	return box.IsSelected(ctx)
}

func (p *CheckboxPage) checkboxAt(ctx context.Context, index int) (browser.Element, error) {
	boxes, err := p.Checkboxes(ctx)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(boxes) {
		return nil, &browser.Error{
			Kind:   browser.ErrElementNotFound,
			Op:     fmt.Sprintf("checkbox %d of %d", index, len(boxes)),
			Target: selCheckbox,
		}
	}

	return boxes[index], nil
}
