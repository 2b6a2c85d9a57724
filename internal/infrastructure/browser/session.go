// Package browser wraps playwright in the narrow session surface the
// fetchers need: open, navigate, wait, read, close. A session owns its
// whole playwright stack and is single-use.
package browser

import (
	"errors"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"

	"MediaScanner/internal/domain"
)

// launchArgs relax sandboxing only as far as headless execution in
// containers requires.
var launchArgs = []string{
	"--disable-gpu",
	"--no-sandbox",
	"--disable-dev-shm-usage",
}

// Options configures a new session.
type Options struct {
	UserAgent string
}

// Session is one live headless browser instance. Close must run on
// every exit path; callers defer it immediately after Open succeeds.
type Session struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	page    playwright.Page
}

// Open launches a headless Chromium and opens a single page.
func Open(opts Options) (*Session, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w: %w", domain.ErrRender, err)
	}

	b, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
		Args:     launchArgs,
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("launch browser: %w: %w", domain.ErrRender, err)
	}

	pageOpts := playwright.BrowserNewPageOptions{}
	if opts.UserAgent != "" {
		pageOpts.UserAgent = playwright.String(opts.UserAgent)
	}
	page, err := b.NewPage(pageOpts)
	if err != nil {
		_ = b.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("open page: %w: %w", domain.ErrRender, err)
	}

	return &Session{pw: pw, browser: b, page: page}, nil
}

// Navigate loads the URL and waits for DOM content within timeout.
func (s *Session) Navigate(url string, timeout time.Duration) error {
	_, err := s.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(ms(timeout)),
	})
	if err != nil {
		return classify("navigate to "+url, err)
	}
	return nil
}

// WaitForBodyText blocks until the document body reports non-empty
// text, the usual signal that a dynamic page has rendered.
func (s *Session) WaitForBodyText(timeout time.Duration) error {
	_, err := s.page.WaitForFunction(
		"() => document.body && document.body.innerText.trim().length > 0",
		nil,
		playwright.PageWaitForFunctionOptions{Timeout: playwright.Float(ms(timeout))},
	)
	if err != nil {
		return classify("wait for body text", err)
	}
	return nil
}

// WaitForText blocks until the selected element exists and carries
// non-empty text.
func (s *Session) WaitForText(selector string, timeout time.Duration) error {
	_, err := s.page.WaitForFunction(
		"sel => { const el = document.querySelector(sel); return el && el.innerText.trim().length > 0; }",
		selector,
		playwright.PageWaitForFunctionOptions{Timeout: playwright.Float(ms(timeout))},
	)
	if err != nil {
		return classify("wait for "+selector, err)
	}
	return nil
}

// WaitForURL blocks until the page URL matches the glob pattern.
func (s *Session) WaitForURL(pattern string, timeout time.Duration) error {
	err := s.page.WaitForURL(pattern, playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(ms(timeout)),
	})
	if err != nil {
		return classify("wait for url "+pattern, err)
	}
	return nil
}

// Fill types value into the selected input.
func (s *Session) Fill(selector, value string, timeout time.Duration) error {
	err := s.page.Locator(selector).Fill(value, playwright.LocatorFillOptions{
		Timeout: playwright.Float(ms(timeout)),
	})
	if err != nil {
		return classify("fill "+selector, err)
	}
	return nil
}

// Click clicks the selected control.
func (s *Session) Click(selector string, timeout time.Duration) error {
	err := s.page.Locator(selector).Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(ms(timeout)),
	})
	if err != nil {
		return classify("click "+selector, err)
	}
	return nil
}

// InnerText reads the rendered text of the selected element.
func (s *Session) InnerText(selector string, timeout time.Duration) (string, error) {
	text, err := s.page.Locator(selector).InnerText(playwright.LocatorInnerTextOptions{
		Timeout: playwright.Float(ms(timeout)),
	})
	if err != nil {
		return "", classify("read "+selector, err)
	}
	return text, nil
}

// PageSource returns the current rendered markup.
func (s *Session) PageSource() (string, error) {
	content, err := s.page.Content()
	if err != nil {
		return "", classify("read page source", err)
	}
	return content, nil
}

// Close tears down page, browser and driver. Safe to call once on any
// exit path; shutdown errors are ignored, the process owns no state.
func (s *Session) Close() {
	if s == nil {
		return
	}
	if s.page != nil {
		_ = s.page.Close()
	}
	if s.browser != nil {
		_ = s.browser.Close()
	}
	if s.pw != nil {
		_ = s.pw.Stop()
	}
}

func classify(op string, err error) error {
	if errors.Is(err, playwright.ErrTimeout) {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrTimeout, err)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrRender, err)
}

func ms(d time.Duration) float64 {
	return float64(d.Milliseconds())
}
