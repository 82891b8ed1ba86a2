package expect

import (
	"context"
	"fmt"
	"strings"

	"github.com/thesyncim/pagesuite/pkg/browser"
)

// BrowserAssertion holds matchers over the current document.
type BrowserAssertion struct {
	e       *Expect
	ctx     context.Context
	session browser.Session
	negate  bool
}

func (e *Expect) Browser(ctx context.Context, session browser.Session) *BrowserAssertion {
	return &BrowserAssertion{e: e, ctx: ctx, session: session}
}

func (a *BrowserAssertion) Not() *BrowserAssertion {
	n := *a
	n.negate = !a.negate
	return &n
}

func (a *BrowserAssertion) ToHaveTitle(want string, msgAndArgs ...any) bool {
	return a.match(fmt.Sprintf("title %q", want), "title", browser.Session.Title, func(got string) bool {
		return got == want
	}, msgAndArgs...)
}

func (a *BrowserAssertion) ToHaveURL(want string, msgAndArgs ...any) bool {
	return a.match(fmt.Sprintf("url %q", want), "url", browser.Session.URL, func(got string) bool {
		return got == want
	}, msgAndArgs...)
}

func (a *BrowserAssertion) ToHaveURLContaining(sub string, msgAndArgs ...any) bool {
	return a.match(fmt.Sprintf("url containing %q", sub), "url", browser.Session.URL, func(got string) bool {
		return strings.Contains(got, sub)
	}, msgAndArgs...)
}

func (a *BrowserAssertion) match(what, name string, read func(browser.Session, context.Context) (string, error), ok func(string) bool, msgAndArgs ...any) bool {
	if h, isHelper := a.e.t.(tHelper); isHelper {
		h.Helper()
	}

	last, held := a.e.eventually(a.ctx, a.negate, func(ctx context.Context) observation {
		v, err := read(a.session, ctx)
		if err != nil {
			return observation{err: err}
		}
		return observation{holds: ok(v), actual: fmt.Sprintf("%s %q", name, v)}
	})

	return a.e.report(a.ctx, held, a.negate, what, last, msgAndArgs...)
}
