// Package fetch - browser.go renders JavaScript-heavy job boards in a
// headless browser. Several boards (EdJoin, SchoolSpring, district career
// portals) serve the posting body client-side, so a plain GET returns a shell
// with no posting text.
package fetch

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// MinContentLength is the minimum extracted text length to consider a plain
// HTTP fetch successful. Shorter content usually means a JavaScript-rendered
// job board that needs browser rendering.
const MinContentLength = 500

// DefaultBrowserTimeout bounds one headless-browser render.
const DefaultBrowserTimeout = 30 * time.Second

const (
	postingPollAttempts = 16
	postingPollInterval = 500 * time.Millisecond
	// postingSettleDelay lets the board finish filling the container after it
	// first appears (salary tables and deadlines often load last).
	postingSettleDelay = 1 * time.Second
)

// ShouldUseBrowser returns true if the extracted text is too short,
// indicating the page is likely a JavaScript-rendered SPA.
func ShouldUseBrowser(extractedText string) bool {
	return len(strings.TrimSpace(extractedText)) < MinContentLength
}

// postingReadyExpression returns a JS expression that reports whether any of
// the job-posting content containers exists in the DOM yet.
func postingReadyExpression() string {
	return fmt.Sprintf("document.querySelector(%q) !== null", strings.Join(JobPostingSelectors(), ", "))
}

// waitForPostingContent polls the DOM until a posting container appears or
// the attempt budget runs out. Boards with unrecognized markup still render
// something extractable, so exhausting the poll is not an error.
func waitForPostingContent() chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		expr := postingReadyExpression()
		for i := 0; i < postingPollAttempts; i++ {
			var found bool
			if err := chromedp.Evaluate(expr, &found).Do(ctx); err == nil && found {
				return nil
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(postingPollInterval):
			}
		}
		return nil
	})
}

// WithBrowser renders a job-posting page in a headless browser and returns
// the rendered HTML. Requires Chrome/Chromium to be installed on the system.
func WithBrowser(ctx context.Context, url string, timeout time.Duration) (string, error) {
	log.Printf("[fetch] rendering job board in headless browser: %s", url)

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(DefaultUserAgent),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string

	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		waitForPostingContent(),
		chromedp.ActionFunc(func(ctx context.Context) error {
			// District career portals gate the posting behind consent
			// banners; dismiss and ignore failures.
			_ = chromedp.Click(`button[id*="accept"], button[class*="accept"], button[class*="consent"]`, chromedp.NodeVisible).Do(ctx)
			return nil
		}),
		chromedp.Sleep(postingSettleDelay),
		chromedp.OuterHTML("html", &html),
	)

	if err != nil {
		return "", fmt.Errorf("browser rendering failed: %w", err)
	}

	return html, nil
}

// BrowserSimple renders a page with the default timeout.
func BrowserSimple(ctx context.Context, url string) (string, error) {
	return WithBrowser(ctx, url, DefaultBrowserTimeout)
}
