// Package browser is the boundary between page objects and the browser
// automation driver. A Session is one live page; an Element is a handle
// resolved from it. Two drivers implement the contract: go-rod (Chrome
// DevTools Protocol) and playwright-go.
//
// Every operation blocks until the driver confirms it or the wait timeout
// runs out. There is no retry inside an operation: the first failed driver
// command is returned as an *Error.
package browser

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/thesyncim/pagesuite/pkg/logger"
)

//go:generate mockgen -package mockbrowser -source=browser.go -destination=mock/mockbrowser.go Session,Element

// Session is a single browser page shared by the scenarios of a run.
type Session interface {
	// Navigate loads url and waits for the load event.
	Navigate(ctx context.Context, url string) error
	// URL returns the address of the current document.
	URL(ctx context.Context) (string, error)
	// Title returns the title of the current document.
	Title(ctx context.Context) (string, error)
	// Find waits for selector to match and returns the first match.
	Find(ctx context.Context, selector string) (Element, error)
	// FindAll returns every current match of selector without waiting.
	FindAll(ctx context.Context, selector string) ([]Element, error)
	// Screenshot captures the viewport as PNG.
	Screenshot(ctx context.Context) ([]byte, error)
	// ClearCookies drops every cookie the browser holds.
	ClearCookies(ctx context.Context) error
	// Close shuts the browser down.
	Close() error
}

// Element is a resolved DOM element.
type Element interface {
	Click(ctx context.Context) error
	// SetValue replaces the current value of an input.
	SetValue(ctx context.Context, value string) error
	// AddValue appends to the current value of an input.
	AddValue(ctx context.Context, value string) error
	ClearValue(ctx context.Context) error
	Value(ctx context.Context) (string, error)
	// Text returns the rendered text, trimmed.
	Text(ctx context.Context) (string, error)
	// HTML returns the outer HTML.
	HTML(ctx context.Context) (string, error)
	// Attribute returns the attribute value and whether it is present.
	Attribute(ctx context.Context, name string) (string, bool, error)
	IsDisplayed(ctx context.Context) (bool, error)
	// IsSelected reports a checked checkbox or radio, or a selected option.
	IsSelected(ctx context.Context) (bool, error)
	SelectByValue(ctx context.Context, value string) error
	// SelectByText selects the option whose visible text equals text.
	SelectByText(ctx context.Context, text string) error
	FindAll(ctx context.Context, selector string) ([]Element, error)
	Parent(ctx context.Context) (Element, error)
}

// Locate resolves one element. Each call queries the DOM again.
type Locate func(ctx context.Context) (Element, error)

// LocateAll resolves every matching element. Each call queries the DOM again.
type LocateAll func(ctx context.Context) ([]Element, error)

// By returns a Locate for selector on s.
func By(s Session, selector string) Locate {
	return func(ctx context.Context) (Element, error) {
		return s.Find(ctx, selector)
	}
}

// ByAll returns a LocateAll for selector on s.
func ByAll(s Session, selector string) LocateAll {
	return func(ctx context.Context) ([]Element, error) {
		return s.FindAll(ctx, selector)
	}
}

// Driver names accepted by Options.Driver.
const (
	DriverRod        = "rod"
	DriverPlaywright = "playwright"
)

// Options configures Launch.
type Options struct {
	Driver      string        // DriverRod (default) or DriverPlaywright
	BrowserName string        // chromium; playwright also accepts firefox and webkit
	Headless    bool          // Run without a window (default: true)
	NoSandbox   bool          // Disable the Chrome sandbox, needed in most containers
	Bin         string        // Browser executable; empty lets the driver choose
	Timeout     time.Duration // Wait timeout for lookups and commands (default: 10s)

	ConnectTimeout time.Duration // Bound on one launch attempt (default: 120s)
	ConnectRetries int           // Extra launch attempts after the first (default: 3)
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Driver:         DriverRod,
		BrowserName:    "chromium",
		Headless:       true,
		NoSandbox:      true,
		Timeout:        10 * time.Second,
		ConnectTimeout: 120 * time.Second,
		ConnectRetries: 3,
	}
}

// launchFunc starts one browser for one attempt.
type launchFunc func(ctx context.Context, opts Options) (Session, error)

//nolint: gochecknoglobals
var drivers = map[string]launchFunc{
	DriverRod:        launchRod,
	DriverPlaywright: launchPlaywright,
}

// Launch starts a browser with the configured driver and opens one page.
// A failed attempt is retried with exponential backoff up to
// opts.ConnectRetries times; unsupported options fail immediately.
func Launch(ctx context.Context, opts Options) (Session, error) {
	launch, ok := drivers[opts.Driver]
	if !ok {
		return nil, newError(ErrUnsupported, "launch", opts.Driver, errors.New("unknown driver"))
	}

	return launchWithRetry(ctx, opts, launch)
}

func launchWithRetry(ctx context.Context, opts Options, launch launchFunc) (Session, error) {
	var (
		session Session
		attempt int
	)

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(max(opts.ConnectRetries, 0))),
		ctx,
	)

	err := backoff.Retry(func() error {
		attempt++
		attemptCtx, cancel := withTimeout(ctx, opts.ConnectTimeout)
		defer cancel()

		s, err := launchAttempt(attemptCtx, opts, launch)
		if err != nil {
			if errors.Is(err, ErrUnsupported) {
				return backoff.Permanent(err)
			}
			logger.Warn(ctx, "browser launch failed",
				zap.String("driver", opts.Driver),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)

			return err
		}
		session = s

		return nil
	}, policy)
	if err != nil {
		var be *Error
		if errors.As(err, &be) {
			return nil, err
		}

		return nil, newError(ErrLaunch, "launch", opts.Driver, err)
	}

	logger.Debug(ctx, "browser launched", zap.String("driver", opts.Driver), zap.Int("attempts", attempt))

	return session, nil
}

type launchResult struct {
	session Session
	err     error
}

// launchAttempt runs launch and gives up when ctx ends. A browser that comes
// up after the deadline is closed in the background.
func launchAttempt(ctx context.Context, opts Options, launch launchFunc) (Session, error) {
	done := make(chan launchResult, 1)
	go func() {
		s, err := launch(ctx, opts)
		done <- launchResult{session: s, err: err}
	}()

	select {
	case r := <-done:
		return r.session, r.err
	case <-ctx.Done():
		go func() {
			if r := <-done; r.session != nil {
				_ = r.session.Close()
			}
		}()

		return nil, errors.Wrap(ctx.Err(), "launch attempt")
	}
}

// withTimeout bounds ctx by d unless ctx already ends sooner.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, d)
}
