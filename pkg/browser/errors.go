package browser

import (
	"context"
	"strings"

	"github.com/go-faster/errors"
)

// Kind classifies a driver failure as seen by a scenario.
type Kind struct{ name string }

func (k *Kind) Error() string { return k.name }

var (
	// ErrElementNotFound reports a selector that did not resolve within the wait timeout.
	ErrElementNotFound = &Kind{name: "element not found"}
	// ErrTimeout reports an operation that did not complete within its deadline.
	ErrTimeout = &Kind{name: "timeout"}
	// ErrNavigation reports a page load that failed.
	ErrNavigation = &Kind{name: "navigation failed"}
	// ErrLaunch reports a browser that could not be started or connected to.
	ErrLaunch = &Kind{name: "browser launch failed"}
	// ErrDriver reports any other failed driver command.
	ErrDriver = &Kind{name: "driver command failed"}
	// ErrUnsupported reports an option the selected driver cannot honour.
	ErrUnsupported = &Kind{name: "unsupported"}
)

// Error is returned by every Session and Element operation. errors.Is matches
// both the Kind and the wrapped driver error.
type Error struct {
	Kind   *Kind
	Op     string // operation, e.g. "find", "click"
	Target string // selector or URL the operation was applied to
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.Target != "" {
		b.WriteString(" ")
		b.WriteString(e.Target)
	}
	b.WriteString(": ")
	b.WriteString(e.Kind.Error())
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}

	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	k, ok := target.(*Kind)
	return ok && k == e.Kind
}

func newError(kind *Kind, op, target string, err error) *Error {
	return &Error{Kind: kind, Op: op, Target: target, Err: err}
}

// wrap classifies a raw driver error. Deadline errors become ErrTimeout unless
// fallback says otherwise (a lookup that ran out of time is "not found").
func wrap(fallback *Kind, op, target string, err error) error {
	if err == nil {
		return nil
	}

	var be *Error
	if errors.As(err, &be) {
		return err
	}

	kind := fallback
	if errors.Is(err, context.DeadlineExceeded) && fallback != ErrElementNotFound {
		kind = ErrTimeout
	}

	return newError(kind, op, target, err)
}
