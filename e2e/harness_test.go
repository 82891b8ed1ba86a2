//go:build e2e

package e2e

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/thesyncim/pagesuite/pkg/browser"
	"github.com/thesyncim/pagesuite/pkg/expect"
	"github.com/thesyncim/pagesuite/pkg/logger"
	"github.com/thesyncim/pagesuite/pkg/pages"
)

// harness is what a single scenario works with.
type harness struct {
	ctx     context.Context
	expect  *expect.Expect
	nav     *pages.Navigator
	session browser.Session
}

// setup gives the calling test a context bounded by the test timeout and
// saves a screenshot when it fails. Cookies left by earlier scenarios are
// cleared first, so every scenario starts logged out.
func setup(t *testing.T) *harness {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), suiteCfg.TestTimeout)
	ctx = logger.WithFields(ctx, zap.String("test", t.Name()))

	if err := session.ClearCookies(ctx); err != nil {
		cancel()
		t.Fatalf("reset browser state: %v", err)
	}

	t.Cleanup(func() {
		cancel()
		if t.Failed() {
			saveScreenshot(t)
		}
	})

	return &harness{
		ctx: ctx,
		expect: expect.New(t,
			expect.WithTimeout(suiteCfg.WaitforTimeout),
			expect.WithInterval(suiteCfg.WaitforInterval),
		),
		nav:     pages.NewNavigator(session, baseURL),
		session: session,
	}
}

// find resolves selector or stops the test.
func (h *harness) find(t *testing.T, selector string) browser.Element {
	t.Helper()

	el, err := h.session.Find(h.ctx, selector)
	if err != nil {
		t.Fatalf("find %s: %v", selector, err)
	}
	return el
}

func (h *harness) findAll(t *testing.T, selector string) []browser.Element {
	t.Helper()

	els, err := h.session.FindAll(h.ctx, selector)
	if err != nil {
		t.Fatalf("find all %s: %v", selector, err)
	}
	return els
}

// text returns the visible text of selector or stops the test.
func (h *harness) text(t *testing.T, selector string) string {
	t.Helper()

	s, err := h.find(t, selector).Text(h.ctx)
	if err != nil {
		t.Fatalf("text of %s: %v", selector, err)
	}
	return s
}

// must stops the test on a failed page action.
func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("%v", err)
	}
}

func value(t *testing.T, ctx context.Context, locate browser.Locate) string {
	t.Helper()

	el, err := locate(ctx)
	must(t, err)
	v, err := el.Value(ctx)
	must(t, err)
	return v
}

func saveScreenshot(t *testing.T) {
	dir := suiteCfg.ArtifactsDir
	if dir == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	png, err := session.Screenshot(ctx)
	if err != nil {
		t.Logf("screenshot: %v", err)
		return
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Logf("screenshot dir: %v", err)
		return
	}
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name()) + ".png"
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, png, 0o644); err != nil {
		t.Logf("screenshot write: %v", err)
		return
	}
	t.Logf("screenshot saved to %s", path)
}
