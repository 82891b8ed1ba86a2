//go:build e2e

// Package e2e runs the browser scenarios against the fixture site.
//
// These tests are isolated from the standard test suite via build tags.
// They require a Chrome browser (auto-downloaded by Rod if not present)
// and are intended for CI pipelines or explicit local testing.
//
// Running E2E tests:
//
//	go test -tags=e2e ./e2e/...
//
// Running all tests except E2E:
//
//	go test ./...
//
// Configuration is read from the YAML file named by E2E_CONFIG, with E2E_*
// environment overrides (see internal/config). Without a baseUrl the fixture
// site from cmd/fixture-site/server is started on a random port for the run.
//
// E2E tests use:
//   - pkg/browser for the driver session (rod by default, playwright on request)
//   - pkg/pages for page objects
//   - pkg/expect for waiting assertions
//
// Test isolation:
// One browser session is shared by every test, so tests never run in
// parallel. Each subtest opens its page first and gets its own context
// bounded by the configured test timeout.
package e2e
