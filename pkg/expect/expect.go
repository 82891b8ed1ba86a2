// Package expect provides waiting assertions over browser state.
//
// A matcher re-resolves its locator and re-reads the DOM until the condition
// holds or the timeout runs out, then reports through testify. A locator that
// does not resolve counts as the condition being false, so negated existence
// and visibility checks pass on absent elements.
package expect

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-rod/rod/lib/utils"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/thesyncim/pagesuite/pkg/browser"
	"github.com/thesyncim/pagesuite/pkg/logger"
)

const (
	DefaultTimeout  = 10 * time.Second
	DefaultInterval = 100 * time.Millisecond
)

type tHelper interface {
	Helper()
}

// Expect builds matchers that report to t.
type Expect struct {
	t        assert.TestingT
	timeout  time.Duration
	interval time.Duration
}

type Option func(*Expect)

// WithTimeout bounds how long a matcher waits for its condition.
func WithTimeout(d time.Duration) Option {
	return func(e *Expect) { e.timeout = d }
}

// WithInterval sets the first poll interval. Later polls back off up to five
// times that.
func WithInterval(d time.Duration) Option {
	return func(e *Expect) { e.interval = d }
}

func New(t assert.TestingT, opts ...Option) *Expect {
	e := &Expect{t: t, timeout: DefaultTimeout, interval: DefaultInterval}
	for _, opt := range opts {
		opt(e)
	}
	if e.interval <= 0 {
		e.interval = DefaultInterval
	}

	return e
}

// observation is one evaluation of a condition.
type observation struct {
	holds  bool
	actual string
	err    error
}

type condition func(ctx context.Context) observation

// eventually polls cond until it agrees with !negate or the timeout elapses.
// It returns the last observation either way.
func (e *Expect) eventually(ctx context.Context, negate bool, cond condition) (observation, bool) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	var last observation
	sleeper := utils.BackoffSleeper(e.interval, 5*e.interval, nil)
	err := utils.Retry(ctx, sleeper, func() (bool, error) {
		last = cond(ctx)
		return last.err == nil && last.holds != negate, nil
	})

	return last, err == nil
}

// report fails the test with what was expected and what was last seen.
func (e *Expect) report(ctx context.Context, ok bool, negate bool, what string, last observation, msgAndArgs ...any) bool {
	if h, isHelper := e.t.(tHelper); isHelper {
		h.Helper()
	}
	if ok {
		return true
	}

	expected := what
	if negate {
		expected = "not " + what
	}
	observed := last.actual
	if last.err != nil {
		observed = fmt.Sprintf("error: %v", last.err)
	}

	logger.Debug(ctx, "expectation failed",
		zap.String("expected", expected),
		zap.String("observed", observed),
		zap.Duration("timeout", e.timeout),
	)

	return assert.Fail(e.t,
		fmt.Sprintf("timed out after %s\nexpected: %s\nobserved: %s", e.timeout, expected, observed),
		msgAndArgs...)
}

// notFound reports an error that means "no such element".
func notFound(err error) bool {
	return errors.Is(err, browser.ErrElementNotFound)
}
