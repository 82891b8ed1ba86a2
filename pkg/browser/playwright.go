package browser

import (
	"context"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"github.com/thesyncim/pagesuite/pkg/logger"
)

// playwrightSession drives a browser through the Playwright driver. Its
// elements are locators, so every command re-resolves them against the
// live DOM.
type playwrightSession struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	page    playwright.Page
	timeout time.Duration
}

func launchPlaywright(ctx context.Context, opts Options) (Session, error) {
	chromium := false
	switch opts.BrowserName {
	case "", "chromium", "chrome":
		chromium = true
	case "firefox", "webkit":
	default:
		return nil, newError(ErrUnsupported, "launch", opts.BrowserName, errors.New("unknown playwright browser"))
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, errors.Wrap(err, "start playwright driver")
	}

	browserType := pw.Chromium
	switch opts.BrowserName {
	case "firefox":
		browserType = pw.Firefox
	case "webkit":
		browserType = pw.WebKit
	}

	launchOpts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	}
	if opts.Bin != "" {
		launchOpts.ExecutablePath = playwright.String(opts.Bin)
	}
	if chromium && opts.NoSandbox {
		launchOpts.ChromiumSandbox = playwright.Bool(false)
	}

	browser, err := browserType.Launch(launchOpts)
	if err != nil {
		_ = pw.Stop()
		return nil, errors.Wrapf(err, "launch %s", browserType.Name())
	}

	page, err := browser.NewPage()
	if err != nil {
		_ = browser.Close()
		_ = pw.Stop()
		return nil, errors.Wrap(err, "open page")
	}
	page.SetDefaultTimeout(milliseconds(opts.Timeout))

	logger.Debug(ctx, "playwright browser launched",
		zap.String("browser", browserType.Name()),
		zap.String("version", browser.Version()),
	)

	return &playwrightSession{pw: pw, browser: browser, page: page, timeout: opts.Timeout}, nil
}

func (s *playwrightSession) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return wrap(ErrNavigation, "navigate", url, err)
	}

	_, err := s.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
		Timeout:   timeoutFor(ctx, s.timeout),
	})
	if err != nil {
		return playwrightError(ErrNavigation, "navigate", url, err)
	}

	logger.Debug(ctx, "navigated", zap.String("url", url))

	return nil
}

func (s *playwrightSession) URL(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", wrap(ErrDriver, "url", "", err)
	}

	return s.page.URL(), nil
}

func (s *playwrightSession) Title(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", wrap(ErrDriver, "title", "", err)
	}

	title, err := s.page.Title()
	if err != nil {
		return "", playwrightError(ErrDriver, "title", "", err)
	}

	return title, nil
}

func (s *playwrightSession) Find(ctx context.Context, selector string) (Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, wrap(ErrElementNotFound, "find", selector, err)
	}

	loc := s.page.Locator(selector).First()
	err := loc.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: timeoutFor(ctx, s.timeout),
	})
	if err != nil {
		return nil, playwrightError(ErrElementNotFound, "find", selector, err)
	}

	return &playwrightElement{loc: loc, selector: selector, timeout: s.timeout}, nil
}

func (s *playwrightSession) FindAll(ctx context.Context, selector string) ([]Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, wrap(ErrDriver, "find all", selector, err)
	}

	locs, err := s.page.Locator(selector).All()
	if err != nil {
		return nil, playwrightError(ErrDriver, "find all", selector, err)
	}

	return wrapLocators(locs, selector, s.timeout), nil
}

func (s *playwrightSession) Screenshot(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, wrap(ErrDriver, "screenshot", "", err)
	}

	png, err := s.page.Screenshot()
	if err != nil {
		return nil, playwrightError(ErrDriver, "screenshot", "", err)
	}

	return png, nil
}

func (s *playwrightSession) ClearCookies(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return wrap(ErrDriver, "clear cookies", "", err)
	}

	if err := s.page.Context().ClearCookies(); err != nil {
		return playwrightError(ErrDriver, "clear cookies", "", err)
	}

	return nil
}

func (s *playwrightSession) Close() error {
	var err error
	if s.browser != nil {
		err = s.browser.Close()
	}
	if s.pw != nil {
		if stopErr := s.pw.Stop(); err == nil {
			err = stopErr
		}
	}

	return err
}

type playwrightElement struct {
	loc      playwright.Locator
	selector string
	timeout  time.Duration
}

func wrapLocators(locs []playwright.Locator, selector string, timeout time.Duration) []Element {
	out := make([]Element, 0, len(locs))
	for _, loc := range locs {
		out = append(out, &playwrightElement{loc: loc, selector: selector, timeout: timeout})
	}

	return out
}

func (e *playwrightElement) Click(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return wrap(ErrDriver, "click", e.selector, err)
	}

	err := e.loc.Click(playwright.LocatorClickOptions{Timeout: timeoutFor(ctx, e.timeout)})

	return playwrightError(ErrDriver, "click", e.selector, err)
}

func (e *playwrightElement) SetValue(ctx context.Context, value string) error {
	if err := ctx.Err(); err != nil {
		return wrap(ErrDriver, "set value", e.selector, err)
	}

	err := e.loc.Fill(value, playwright.LocatorFillOptions{Timeout: timeoutFor(ctx, e.timeout)})

	return playwrightError(ErrDriver, "set value", e.selector, err)
}

func (e *playwrightElement) AddValue(ctx context.Context, value string) error {
	current, err := e.Value(ctx)
	if err != nil {
		return err
	}

	err = e.loc.Fill(current+value, playwright.LocatorFillOptions{Timeout: timeoutFor(ctx, e.timeout)})

	return playwrightError(ErrDriver, "add value", e.selector, err)
}

func (e *playwrightElement) ClearValue(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return wrap(ErrDriver, "clear value", e.selector, err)
	}

	err := e.loc.Clear(playwright.LocatorClearOptions{Timeout: timeoutFor(ctx, e.timeout)})

	return playwrightError(ErrDriver, "clear value", e.selector, err)
}

func (e *playwrightElement) Value(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", wrap(ErrDriver, "value", e.selector, err)
	}

	v, err := e.loc.InputValue(playwright.LocatorInputValueOptions{Timeout: timeoutFor(ctx, e.timeout)})
	if err != nil {
		return "", playwrightError(ErrDriver, "value", e.selector, err)
	}

	return v, nil
}

func (e *playwrightElement) Text(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", wrap(ErrDriver, "text", e.selector, err)
	}

	text, err := e.loc.InnerText(playwright.LocatorInnerTextOptions{Timeout: timeoutFor(ctx, e.timeout)})
	if err != nil {
		return "", playwrightError(ErrDriver, "text", e.selector, err)
	}

	return strings.TrimSpace(text), nil
}

func (e *playwrightElement) HTML(ctx context.Context) (string, error) {
	v, err := e.eval(ctx, "html", `el => el.outerHTML`, nil)
	if err != nil {
		return "", err
	}
	html, _ := v.(string)

	return html, nil
}

func (e *playwrightElement) Attribute(ctx context.Context, name string) (string, bool, error) {
	v, err := e.eval(ctx, "attribute "+name, `(el, name) => el.getAttribute(name)`, name)
	if err != nil {
		return "", false, err
	}
	s, ok := v.(string)

	return s, ok, nil
}

func (e *playwrightElement) IsDisplayed(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, wrap(ErrDriver, "displayed", e.selector, err)
	}

	visible, err := e.loc.IsVisible()
	if err != nil {
		return false, playwrightError(ErrDriver, "displayed", e.selector, err)
	}

	return visible, nil
}

func (e *playwrightElement) IsSelected(ctx context.Context) (bool, error) {
	v, err := e.eval(ctx, "selected", `el => !!(el.checked || el.selected)`, nil)
	if err != nil {
		return false, err
	}
	selected, _ := v.(bool)

	return selected, nil
}

func (e *playwrightElement) SelectByValue(ctx context.Context, value string) error {
	return e.selectOption(ctx, "select value "+value, playwright.SelectOptionValues{
		Values: playwright.StringSlice(value),
	})
}

func (e *playwrightElement) SelectByText(ctx context.Context, text string) error {
	return e.selectOption(ctx, "select "+text, playwright.SelectOptionValues{
		Labels: playwright.StringSlice(text),
	})
}

func (e *playwrightElement) selectOption(ctx context.Context, op string, values playwright.SelectOptionValues) error {
	if err := ctx.Err(); err != nil {
		return wrap(ErrDriver, op, e.selector, err)
	}

	_, err := e.loc.SelectOption(values, playwright.LocatorSelectOptionOptions{Timeout: timeoutFor(ctx, e.timeout)})

	return playwrightError(ErrDriver, op, e.selector, err)
}

func (e *playwrightElement) FindAll(ctx context.Context, selector string) ([]Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, wrap(ErrDriver, "find all", e.selector+" "+selector, err)
	}

	locs, err := e.loc.Locator(selector).All()
	if err != nil {
		return nil, playwrightError(ErrDriver, "find all", e.selector+" "+selector, err)
	}

	return wrapLocators(locs, e.selector+" "+selector, e.timeout), nil
}

func (e *playwrightElement) Parent(ctx context.Context) (Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, wrap(ErrElementNotFound, "parent", e.selector, err)
	}

	return &playwrightElement{loc: e.loc.Locator("xpath=.."), selector: e.selector + "/..", timeout: e.timeout}, nil
}

func (e *playwrightElement) eval(ctx context.Context, op, expression string, arg any) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, wrap(ErrDriver, op, e.selector, err)
	}

	v, err := e.loc.Evaluate(expression, arg, playwright.LocatorEvaluateOptions{Timeout: timeoutFor(ctx, e.timeout)})
	if err != nil {
		return nil, playwrightError(ErrDriver, op, e.selector, err)
	}

	return v, nil
}

// timeoutFor converts the wait timeout to Playwright milliseconds, shortened
// to the context deadline when that comes first.
func timeoutFor(ctx context.Context, d time.Duration) *float64 {
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); d <= 0 || left < d {
			d = max(left, time.Millisecond)
		}
	}

	return playwright.Float(milliseconds(d))
}

func milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// playwrightError classifies err, treating Playwright's timeout as ErrTimeout
// (or ErrElementNotFound for lookups).
func playwrightError(fallback *Kind, op, target string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, playwright.ErrTimeout) && fallback != ErrElementNotFound {
		return newError(ErrTimeout, op, target, err)
	}

	return wrap(fallback, op, target, err)
}
