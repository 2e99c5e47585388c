// Package scraper drives a headless Chrome instance to fetch listing pages
// whose detail content only appears after client-side scripts run.
package scraper

import (
	"context"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"imoveis-scraper/config"
	"imoveis-scraper/utils"
)

// Browser is a shared headless Chrome session. One Browser serves a whole
// pipeline run; each fetch opens a fresh tab in it. Close releases the
// underlying processes.
type Browser struct {
	allocCtx      context.Context
	cancelAlloc   context.CancelFunc
	browserCtx    context.Context
	cancelBrowser context.CancelFunc

	limiter *rate.Limiter
	retry   *utils.RetryConfig
	log     *zap.Logger
}

// New launches the allocator and browser contexts from the configuration.
func New(cfg *config.Config, log *zap.Logger) (*Browser, error) {
	chromeBin := findChromeBinary(cfg.ChromeBin)
	log.Info("scraper: using browser binary", zap.String("path", chromeBin))

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 "+
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)

	// Suppress chromedp log noise
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))

	interval := time.Duration(cfg.RateLimitMs) * time.Millisecond
	return &Browser{
		allocCtx:      allocCtx,
		cancelAlloc:   cancelAlloc,
		browserCtx:    browserCtx,
		cancelBrowser: cancelBrowser,
		limiter:       rate.NewLimiter(rate.Every(interval), 1),
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      log,
		},
		log: log,
	}, nil
}

// PageSource navigates to url in a new tab and returns the rendered HTML.
// When waitSelector is set the wait is bounded by timeout: on expiry the
// page source captured so far is returned instead of failing the record.
// An empty return value signals fetch failure.
func (b *Browser) PageSource(ctx context.Context, url, waitSelector string, timeout time.Duration) string {
	if err := b.limiter.Wait(ctx); err != nil {
		b.log.Warn("scraper: rate limiter interrupted", zap.Error(err))
		return ""
	}

	var pageSource string
	err := b.retry.Do("fetch "+url, func() error {
		tabCtx, cancel := chromedp.NewContext(b.browserCtx)
		defer cancel()

		if err := chromedp.Run(tabCtx, chromedp.Navigate(url)); err != nil {
			return eris.Wrapf(err, "scraper: navigate to %s", url)
		}

		if waitSelector != "" {
			waitCtx, cancelWait := context.WithTimeout(tabCtx, timeout)
			err := chromedp.Run(waitCtx, chromedp.WaitReady(waitSelector, chromedp.ByQuery))
			cancelWait()
			if err != nil {
				b.log.Warn("scraper: wait for selector expired, capturing current page",
					zap.String("url", url),
					zap.String("selector", waitSelector),
					zap.Error(err),
				)
			}
		}

		var src string
		if err := chromedp.Run(tabCtx, chromedp.OuterHTML("html", &src, chromedp.ByQuery)); err != nil {
			return eris.Wrap(err, "scraper: capture page source")
		}
		pageSource = src
		return nil
	})
	if err != nil {
		b.log.Error("scraper: fetch failed", zap.String("url", url), zap.Error(err))
		return ""
	}
	return pageSource
}

// Close shuts the browser and its allocator down.
func (b *Browser) Close() {
	b.cancelBrowser()
	b.cancelAlloc()
}

// findChromeBinary locates the Chrome/Chromium binary, preferring the
// configured path.
func findChromeBinary(configured string) string {
	if configured != "" {
		return configured
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
