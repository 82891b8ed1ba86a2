// Package pages holds one page object per route of the site under test.
//
// A page object bundles locators and composite actions for its route.
// Locators are methods that query the DOM on every call; nothing is cached
// between calls. Actions run their steps in order and stop at the first
// failing step, returning its error unchanged.
//
// Page objects share navigation through a Navigator instead of a base type.
// They hold no state besides it, so tests construct them freely.
package pages

import (
	"context"
	"strings"

	"github.com/thesyncim/pagesuite/pkg/browser"
)

// Navigator opens routes relative to a base URL on one session.
type Navigator struct {
	session browser.Session
	baseURL string
}

// NewNavigator returns a Navigator for baseURL, e.g. "http://localhost:8080".
func NewNavigator(session browser.Session, baseURL string) *Navigator {
	return &Navigator{session: session, baseURL: baseURL}
}

// Session returns the browser session pages act on.
func (n *Navigator) Session() browser.Session {
	return n.session
}

// URL returns baseURL + "/" + route with exactly one slash between them.
func (n *Navigator) URL(route string) string {
	return JoinURL(n.baseURL, route)
}

// Open navigates the session to route.
func (n *Navigator) Open(ctx context.Context, route string) error {
	return n.session.Navigate(ctx, n.URL(route))
}

// JoinURL joins base and route with a single slash.
func JoinURL(base, route string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(route, "/")
}

// find and findAll keep locator methods one line long.
func (n *Navigator) find(ctx context.Context, selector string) (browser.Element, error) {
	return n.session.Find(ctx, selector)
}

func (n *Navigator) findAll(ctx context.Context, selector string) ([]browser.Element, error) {
	return n.session.FindAll(ctx, selector)
}
