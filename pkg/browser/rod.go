package browser

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"

	"github.com/thesyncim/pagesuite/pkg/logger"
)

// rodSession drives Chrome over the DevTools Protocol.
type rodSession struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
	timeout  time.Duration
}

// launchRod starts Chrome (downloaded by Rod if no binary is configured) and
// opens a blank page. The browser is configured with:
//   - optional headless mode
//   - optional no-sandbox (for container compatibility)
//   - GPU disabled
func launchRod(ctx context.Context, opts Options) (Session, error) {
	switch opts.BrowserName {
	case "", "chromium", "chrome":
	default:
		return nil, newError(ErrUnsupported, "launch", opts.BrowserName, errors.New("rod drives Chromium only"))
	}

	l := launcher.New().
		Headless(opts.Headless).
		NoSandbox(opts.NoSandbox).
		Set("disable-gpu")
	if opts.Bin != "" {
		l = l.Bin(opts.Bin)
	}

	url, err := l.Launch()
	if err != nil {
		return nil, errors.Wrap(err, "launch chrome")
	}

	browser := rod.New().ControlURL(url)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, errors.Wrap(err, "connect to chrome")
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = browser.Close()
		l.Kill()
		return nil, errors.Wrap(err, "open page")
	}

	logger.Debug(ctx, "chrome connected", zap.String("control_url", url))

	return &rodSession{launcher: l, browser: browser, page: page, timeout: opts.Timeout}, nil
}

func (s *rodSession) Navigate(ctx context.Context, url string) error {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	p := s.page.Context(ctx)
	if err := p.Navigate(url); err != nil {
		return rodError(ErrNavigation, "navigate", url, err)
	}
	if err := p.WaitLoad(); err != nil {
		return rodError(ErrNavigation, "navigate", url, err)
	}

	logger.Debug(ctx, "navigated", zap.String("url", url))

	return nil
}

func (s *rodSession) URL(ctx context.Context) (string, error) {
	info, err := s.page.Context(ctx).Info()
	if err != nil {
		return "", rodError(ErrDriver, "url", "", err)
	}

	return info.URL, nil
}

func (s *rodSession) Title(ctx context.Context) (string, error) {
	info, err := s.page.Context(ctx).Info()
	if err != nil {
		return "", rodError(ErrDriver, "title", "", err)
	}

	return info.Title, nil
}

func (s *rodSession) Find(ctx context.Context, selector string) (Element, error) {
	fctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	el, err := s.page.Context(fctx).Element(selector)
	if err != nil {
		return nil, rodError(ErrElementNotFound, "find", selector, err)
	}

	return &rodElement{el: el, selector: selector, timeout: s.timeout}, nil
}

func (s *rodSession) FindAll(ctx context.Context, selector string) ([]Element, error) {
	els, err := s.page.Context(ctx).Elements(selector)
	if err != nil {
		return nil, rodError(ErrDriver, "find all", selector, err)
	}

	return wrapRodElements(els, selector, s.timeout), nil
}

func (s *rodSession) Screenshot(ctx context.Context) ([]byte, error) {
	png, err := s.page.Context(ctx).Screenshot(false, nil)
	if err != nil {
		return nil, rodError(ErrDriver, "screenshot", "", err)
	}

	return png, nil
}

func (s *rodSession) ClearCookies(ctx context.Context) error {
	if err := (proto.NetworkClearBrowserCookies{}).Call(s.page.Context(ctx)); err != nil {
		return rodError(ErrDriver, "clear cookies", "", err)
	}

	return nil
}

// Close closes the browser, then kills the process this session launched in
// case it did not exit. Other Chrome processes on the machine are untouched.
func (s *rodSession) Close() error {
	var err error
	if s.browser != nil {
		err = s.browser.Close()
	}
	if s.launcher != nil {
		s.launcher.Kill()
	}

	return err
}

type rodElement struct {
	el       *rod.Element
	selector string
	timeout  time.Duration
}

func wrapRodElements(els rod.Elements, selector string, timeout time.Duration) []Element {
	out := make([]Element, 0, len(els))
	for _, el := range els {
		out = append(out, &rodElement{el: el, selector: selector, timeout: timeout})
	}

	return out
}

// bind returns the element bound to ctx, bounded by the wait timeout.
func (e *rodElement) bind(ctx context.Context) (*rod.Element, context.CancelFunc) {
	ctx, cancel := withTimeout(ctx, e.timeout)
	return e.el.Context(ctx), cancel
}

func (e *rodElement) Click(ctx context.Context) error {
	el, cancel := e.bind(ctx)
	defer cancel()

	return rodError(ErrDriver, "click", e.selector, el.Click(proto.InputMouseButtonLeft, 1))
}

func (e *rodElement) SetValue(ctx context.Context, value string) error {
	if value == "" {
		return e.ClearValue(ctx)
	}

	el, cancel := e.bind(ctx)
	defer cancel()

	if err := el.SelectAllText(); err != nil {
		return rodError(ErrDriver, "set value", e.selector, err)
	}

	return rodError(ErrDriver, "set value", e.selector, el.Input(value))
}

func (e *rodElement) AddValue(ctx context.Context, value string) error {
	el, cancel := e.bind(ctx)
	defer cancel()

	// Input types at the caret, so park it after the current value first.
	if _, err := el.Eval(`() => { const n = this.value.length; this.setSelectionRange(n, n) }`); err != nil {
		return rodError(ErrDriver, "add value", e.selector, err)
	}

	return rodError(ErrDriver, "add value", e.selector, el.Input(value))
}

// ClearValue empties the field and fires the events a user edit would.
func (e *rodElement) ClearValue(ctx context.Context) error {
	el, cancel := e.bind(ctx)
	defer cancel()

	_, err := el.Eval(`() => {
		this.value = '';
		this.dispatchEvent(new Event('input', { bubbles: true }));
		this.dispatchEvent(new Event('change', { bubbles: true }));
	}`)

	return rodError(ErrDriver, "clear value", e.selector, err)
}

func (e *rodElement) Value(ctx context.Context) (string, error) {
	el, cancel := e.bind(ctx)
	defer cancel()

	v, err := el.Property("value")
	if err != nil {
		return "", rodError(ErrDriver, "value", e.selector, err)
	}

	return v.Str(), nil
}

func (e *rodElement) Text(ctx context.Context) (string, error) {
	el, cancel := e.bind(ctx)
	defer cancel()

	text, err := el.Text()
	if err != nil {
		return "", rodError(ErrDriver, "text", e.selector, err)
	}

	return strings.TrimSpace(text), nil
}

func (e *rodElement) HTML(ctx context.Context) (string, error) {
	el, cancel := e.bind(ctx)
	defer cancel()

	html, err := el.HTML()
	if err != nil {
		return "", rodError(ErrDriver, "html", e.selector, err)
	}

	return html, nil
}

func (e *rodElement) Attribute(ctx context.Context, name string) (string, bool, error) {
	el, cancel := e.bind(ctx)
	defer cancel()

	v, err := el.Attribute(name)
	if err != nil {
		return "", false, rodError(ErrDriver, "attribute "+name, e.selector, err)
	}
	if v == nil {
		return "", false, nil
	}

	return *v, true, nil
}

func (e *rodElement) IsDisplayed(ctx context.Context) (bool, error) {
	el, cancel := e.bind(ctx)
	defer cancel()

	visible, err := el.Visible()
	if err != nil {
		return false, rodError(ErrDriver, "displayed", e.selector, err)
	}

	return visible, nil
}

func (e *rodElement) IsSelected(ctx context.Context) (bool, error) {
	el, cancel := e.bind(ctx)
	defer cancel()

	res, err := el.Eval(`() => !!(this.checked || this.selected)`)
	if err != nil {
		return false, rodError(ErrDriver, "selected", e.selector, err)
	}

	return res.Value.Bool(), nil
}

//nolint: gochecknoglobals
var cssString = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func (e *rodElement) SelectByValue(ctx context.Context, value string) error {
	el, cancel := e.bind(ctx)
	defer cancel()

	option := `option[value="` + cssString.Replace(value) + `"]`

	return rodError(ErrDriver, "select "+option, e.selector,
		el.Select([]string{option}, true, rod.SelectorTypeCSSSector))
}

func (e *rodElement) SelectByText(ctx context.Context, text string) error {
	el, cancel := e.bind(ctx)
	defer cancel()

	exact := "^" + regexp.QuoteMeta(text) + "$"

	return rodError(ErrDriver, "select "+text, e.selector,
		el.Select([]string{exact}, true, rod.SelectorTypeRegex))
}

func (e *rodElement) FindAll(ctx context.Context, selector string) ([]Element, error) {
	el, cancel := e.bind(ctx)
	defer cancel()

	els, err := el.Elements(selector)
	if err != nil {
		return nil, rodError(ErrDriver, "find all", e.selector+" "+selector, err)
	}

	return wrapRodElements(els, e.selector+" "+selector, e.timeout), nil
}

func (e *rodElement) Parent(ctx context.Context) (Element, error) {
	el, cancel := e.bind(ctx)
	defer cancel()

	parent, err := el.Parent()
	if err != nil {
		return nil, rodError(ErrElementNotFound, "parent", e.selector, err)
	}

	return &rodElement{el: parent, selector: e.selector + "/..", timeout: e.timeout}, nil
}

// rodError classifies err, treating Rod's own not-found error as ErrElementNotFound.
func rodError(fallback *Kind, op, target string, err error) error {
	if err == nil {
		return nil
	}

	var notFound *rod.ElementNotFoundError
	if errors.As(err, &notFound) {
		return newError(ErrElementNotFound, op, target, err)
	}

	return wrap(fallback, op, target, err)
}
