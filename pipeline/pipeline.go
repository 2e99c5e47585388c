// Package pipeline turns loaded property records into enriched rows: one
// sequential pass of fetch (or snapshot reuse), heuristic detail extraction
// and status tagging, with every failure contained to the record that
// caused it.
package pipeline

import (
	"context"
	"sort"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"imoveis-scraper/cache"
	"imoveis-scraper/config"
	"imoveis-scraper/extract"
	"imoveis-scraper/models"
)

// Summary counts the terminal statuses of one run.
type Summary struct {
	Total   int
	Success int
	Failed  int
	Errors  int
}

// Pipeline enriches records for one site profile.
type Pipeline struct {
	site *config.Site
	gate *fetchGate
	log  *zap.Logger
}

// New wires a pipeline from its collaborators.
func New(site *config.Site, fetcher Fetcher, pageCache *cache.PageCache, timeout time.Duration, log *zap.Logger) *Pipeline {
	return &Pipeline{
		site: site,
		gate: &fetchGate{
			cache:        pageCache,
			fetcher:      fetcher,
			waitSelector: site.WaitSelector,
			timeout:      timeout,
			log:          log,
		},
		log: log,
	}
}

// Run processes records in order. Every record comes back carrying a
// terminal scraping_status; no failure aborts the batch.
func (p *Pipeline) Run(ctx context.Context, records []*models.Record) Summary {
	summary := Summary{Total: len(records)}

	queue := NewQueue(len(records))
	for i, rec := range records {
		queue.Submit(func() {
			p.process(ctx, i, len(records), rec, &summary)
		})
	}
	queue.Drain()

	p.log.Info("pipeline: batch complete",
		zap.Int("total", summary.Total),
		zap.Int("success", summary.Success),
		zap.Int("failed", summary.Failed),
		zap.Int("errors", summary.Errors),
	)
	return summary
}

func (p *Pipeline) process(ctx context.Context, idx, total int, rec *models.Record, summary *Summary) {
	p.log.Info("pipeline: processing record",
		zap.Int("position", idx+1),
		zap.Int("total", total),
		zap.String("id_imovel", rec.ID()),
	)

	err := p.enrich(ctx, rec)
	switch {
	case err != nil:
		p.log.Error("pipeline: record failed unexpectedly",
			zap.String("id_imovel", rec.ID()),
			zap.String("link", rec.Link()),
			zap.Error(err),
		)
		rec.SetStatus(models.StatusError)
		rec.Set(models.KeyError, err.Error())
		summary.Errors++
	case rec.Status() == models.StatusFailed:
		summary.Failed++
	default:
		summary.Success++
	}
}

// enrich runs fetch and extraction for one record. A panic anywhere in the
// record's work surfaces as an error so the batch can continue.
func (p *Pipeline) enrich(ctx context.Context, rec *models.Record) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = eris.Errorf("record panic: %v", r)
		}
	}()

	url := rec.Link()
	if url == "" {
		p.log.Warn("pipeline: record has no link", zap.String("id_imovel", rec.ID()))
		rec.SetStatus(models.StatusFailed)
		return nil
	}

	src := p.gate.resolve(ctx, rec.ID(), url)
	if src.html == "" {
		p.log.Warn("pipeline: no page source obtained",
			zap.String("id_imovel", rec.ID()),
			zap.String("link", url),
		)
		rec.SetStatus(models.StatusFailed)
		return nil
	}
	if src.path != "" {
		rec.Set(models.KeySavedPath, src.path)
	}

	ex, err := extract.New(src.html)
	if err != nil {
		return eris.Wrap(err, "pipeline: parse page")
	}

	container := p.site.Container
	if container == "" {
		container = extract.DefaultContainer
	}

	p.mergeDetails(rec, ex, container)

	raw := ex.JoinedText(container, "\n")
	if raw == "" {
		raw = models.RawNotFound
	}
	rec.Set(models.KeyRawDetail, raw)

	rec.SetStatus(models.StatusSuccess)
	return nil
}

// mergeDetails runs the site's extraction strategy and folds the result
// into the record, overwriting same-named fields from the input list with
// the fresher page values.
func (p *Pipeline) mergeDetails(rec *models.Record, ex *extract.Extractor, container string) {
	if p.site.Extraction == "selectors" && len(p.site.Selectors) > 0 {
		fields := ex.Fields(p.site.Selectors)
		for _, key := range sortedKeys(fields) {
			rec.Set(key, fields[key])
		}
		return
	}

	details := ex.PropertyDetails(container)
	empty := true
	for _, k := range models.DetailFields {
		if details[k] != "" && details[k] != models.CEPUnavailable {
			empty = false
			break
		}
	}
	if empty {
		p.log.Warn("pipeline: no detail fields extracted",
			zap.String("id_imovel", rec.ID()),
			zap.String("link", rec.Link()),
		)
	}
	for _, k := range models.DetailFields {
		rec.Set(k, details[k])
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
