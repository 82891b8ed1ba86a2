package expect

import (
	"context"
	"fmt"
	"strings"

	"github.com/thesyncim/pagesuite/pkg/browser"
)

// negatedLookup bounds each lookup of a negated matcher, in poll intervals.
// A lookup waits for its selector; an absent element must not stall the poll.
const negatedLookup = 10

// ElementAssertion holds matchers for a single element.
type ElementAssertion struct {
	e      *Expect
	ctx    context.Context
	locate browser.Locate
	negate bool
}

// Element starts an assertion on the element locate resolves.
func (e *Expect) Element(ctx context.Context, locate browser.Locate) *ElementAssertion {
	return &ElementAssertion{e: e, ctx: ctx, locate: locate}
}

// Not negates the next matcher.
func (a *ElementAssertion) Not() *ElementAssertion {
	n := *a
	n.negate = !a.negate
	return &n
}

// check resolves the element and applies read. A missing element yields a
// false observation without error.
func (a *ElementAssertion) check(read func(ctx context.Context, el browser.Element) observation) condition {
	return func(ctx context.Context) observation {
		lookupCtx := ctx
		if a.negate {
			var cancel context.CancelFunc
			lookupCtx, cancel = context.WithTimeout(ctx, negatedLookup*a.e.interval)
			defer cancel()
		}

		el, err := a.locate(lookupCtx)
		if notFound(err) {
			return observation{actual: "element not found"}
		}
		if err != nil {
			return observation{err: err}
		}

		return read(ctx, el)
	}
}

func (a *ElementAssertion) match(what string, read func(ctx context.Context, el browser.Element) observation, msgAndArgs ...any) bool {
	if h, ok := a.e.t.(tHelper); ok {
		h.Helper()
	}

	last, ok := a.e.eventually(a.ctx, a.negate, a.check(read))
	return a.e.report(a.ctx, ok, a.negate, what, last, msgAndArgs...)
}

// ToExist asserts that the element is attached to the DOM.
func (a *ElementAssertion) ToExist(msgAndArgs ...any) bool {
	return a.match("element to exist", func(context.Context, browser.Element) observation {
		return observation{holds: true, actual: "element exists"}
	}, msgAndArgs...)
}

// ToBeExisting is ToExist.
func (a *ElementAssertion) ToBeExisting(msgAndArgs ...any) bool {
	return a.ToExist(msgAndArgs...)
}

func (a *ElementAssertion) ToBeDisplayed(msgAndArgs ...any) bool {
	return a.match("element to be displayed", boolState("displayed", browser.Element.IsDisplayed), msgAndArgs...)
}

func (a *ElementAssertion) ToBeSelected(msgAndArgs ...any) bool {
	return a.match("element to be selected", boolState("selected", browser.Element.IsSelected), msgAndArgs...)
}

// ToHaveText asserts the trimmed visible text equals want.
func (a *ElementAssertion) ToHaveText(want string, msgAndArgs ...any) bool {
	want = strings.TrimSpace(want)
	return a.match(fmt.Sprintf("text %q", want), stringState("text", browser.Element.Text, func(got string) bool {
		return got == want
	}), msgAndArgs...)
}

func (a *ElementAssertion) ToHaveTextContaining(sub string, msgAndArgs ...any) bool {
	return a.match(fmt.Sprintf("text containing %q", sub), stringState("text", browser.Element.Text, func(got string) bool {
		return strings.Contains(got, sub)
	}), msgAndArgs...)
}

func (a *ElementAssertion) ToHaveValue(want string, msgAndArgs ...any) bool {
	return a.match(fmt.Sprintf("value %q", want), stringState("value", browser.Element.Value, func(got string) bool {
		return got == want
	}), msgAndArgs...)
}

func (a *ElementAssertion) ToHaveHTMLContaining(sub string, msgAndArgs ...any) bool {
	return a.match(fmt.Sprintf("html containing %q", sub), stringState("html", browser.Element.HTML, func(got string) bool {
		return strings.Contains(got, sub)
	}), msgAndArgs...)
}

// ToHaveAttribute asserts that attribute name is present with value want.
func (a *ElementAssertion) ToHaveAttribute(name, want string, msgAndArgs ...any) bool {
	return a.match(fmt.Sprintf("attribute %s=%q", name, want), func(ctx context.Context, el browser.Element) observation {
		got, present, err := el.Attribute(ctx, name)
		if err != nil {
			return observation{err: err}
		}
		if !present {
			return observation{actual: fmt.Sprintf("no attribute %s", name)}
		}
		return observation{holds: got == want, actual: fmt.Sprintf("attribute %s=%q", name, got)}
	}, msgAndArgs...)
}

func boolState(name string, read func(browser.Element, context.Context) (bool, error)) func(context.Context, browser.Element) observation {
	return func(ctx context.Context, el browser.Element) observation {
		v, err := read(el, ctx)
		if err != nil {
			return observation{err: err}
		}
		return observation{holds: v, actual: fmt.Sprintf("%s=%t", name, v)}
	}
}

func stringState(name string, read func(browser.Element, context.Context) (string, error), ok func(string) bool) func(context.Context, browser.Element) observation {
	return func(ctx context.Context, el browser.Element) observation {
		v, err := read(el, ctx)
		if err != nil {
			return observation{err: err}
		}
		return observation{holds: ok(v), actual: fmt.Sprintf("%s %q", name, v)}
	}
}
