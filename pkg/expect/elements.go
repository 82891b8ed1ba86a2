package expect

import (
	"context"
	"fmt"

	"github.com/thesyncim/pagesuite/pkg/browser"
)

// ElementsAssertion holds matchers over a collection of elements.
type ElementsAssertion struct {
	e      *Expect
	ctx    context.Context
	locate browser.LocateAll
	negate bool
}

// Elements starts an assertion on every element locate resolves.
func (e *Expect) Elements(ctx context.Context, locate browser.LocateAll) *ElementsAssertion {
	return &ElementsAssertion{e: e, ctx: ctx, locate: locate}
}

func (a *ElementsAssertion) Not() *ElementsAssertion {
	n := *a
	n.negate = !a.negate
	return &n
}

func (a *ElementsAssertion) ToHaveLength(want int, msgAndArgs ...any) bool {
	return a.count(fmt.Sprintf("%d elements", want), func(n int) bool { return n == want }, msgAndArgs...)
}

func (a *ElementsAssertion) ToHaveLengthAtLeast(min int, msgAndArgs ...any) bool {
	return a.count(fmt.Sprintf("at least %d elements", min), func(n int) bool { return n >= min }, msgAndArgs...)
}

func (a *ElementsAssertion) count(what string, ok func(int) bool, msgAndArgs ...any) bool {
	if h, isHelper := a.e.t.(tHelper); isHelper {
		h.Helper()
	}

	last, held := a.e.eventually(a.ctx, a.negate, func(ctx context.Context) observation {
		els, err := a.locate(ctx)
		if err != nil && !notFound(err) {
			return observation{err: err}
		}
		return observation{holds: ok(len(els)), actual: fmt.Sprintf("%d elements", len(els))}
	})

	return a.e.report(a.ctx, held, a.negate, what, last, msgAndArgs...)
}
