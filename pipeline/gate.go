package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"

	"imoveis-scraper/cache"
)

// Fetcher is the capability the pipeline needs from the browser: rendered
// page source for a URL, empty on failure.
type Fetcher interface {
	PageSource(ctx context.Context, url, waitSelector string, timeout time.Duration) string
}

// fetchGate decides, per record, between the on-disk snapshot and a live
// fetch, and persists whatever it fetched before extraction runs.
type fetchGate struct {
	cache        *cache.PageCache
	fetcher      Fetcher
	waitSelector string
	timeout      time.Duration
	log          *zap.Logger
}

// pageSource is the gate's verdict for one record. Empty html means the
// page could not be obtained at all.
type pageSource struct {
	html      string
	path      string
	fromCache bool
}

func (g *fetchGate) resolve(ctx context.Context, id, url string) pageSource {
	if html, path, ok := g.cache.Lookup(id); ok {
		g.log.Info("pipeline: reusing cached snapshot",
			zap.String("id_imovel", id),
			zap.String("path", path),
		)
		return pageSource{html: html, path: path, fromCache: true}
	}

	html := g.fetcher.PageSource(ctx, url, g.waitSelector, g.timeout)
	if html == "" {
		return pageSource{}
	}

	path, err := g.cache.Store(id, html)
	if err != nil {
		// Extraction still runs on the in-memory page.
		g.log.Warn("pipeline: could not persist snapshot",
			zap.String("id_imovel", id),
			zap.Error(err),
		)
	}
	return pageSource{html: html, path: path}
}
