package pipeline

import (
	"context"
	"time"

	"github.com/nfu-tools/nfu-announcements/internal/extractor"
	"github.com/nfu-tools/nfu-announcements/internal/logger"
	"github.com/nfu-tools/nfu-announcements/internal/output"
	"github.com/nfu-tools/nfu-announcements/internal/render"
	"github.com/nfu-tools/nfu-announcements/internal/site"
)

// DefaultDelay is the pause after each site.
const DefaultDelay = 2 * time.Second

// Metric names recorded by the runner.
const (
	MetricSitesSucceeded = "sites.succeeded"
	MetricSitesEmpty     = "sites.empty"
	MetricSitesFailed    = "sites.failed"
	MetricItemsWritten   = "items.written"
	MetricFetchDuration  = "fetch.duration"
)

// Fetcher downloads a page body.
type Fetcher interface {
	Fetch(ctx context.Context, url string, verifyTLS bool) (string, error)
}

// Store persists rendered fragments per site.
type Store interface {
	Cleanup(domainName string) output.CleanupReport
	Write(domainName string, fragments []string) (string, output.CleanupReport, error)
}

// Options tunes a Runner. Zero values select the defaults.
type Options struct {
	// Delay is the pause after every site. Zero selects DefaultDelay and a
	// negative value disables pacing.
	Delay   time.Duration
	Sleep   func(time.Duration)
	Logger  *logger.Logger
	Metrics *logger.Metrics
}

// Runner executes the batch sequentially.
type Runner struct {
	registry *site.Registry
	fetcher  Fetcher
	store    Store
	delay    time.Duration
	sleep    func(time.Duration)
	log      *logger.Logger
	metrics  *logger.Metrics
}

// New creates a Runner over registry.
func New(registry *site.Registry, fetcher Fetcher, store Store, opts Options) *Runner {
	r := &Runner{
		registry: registry,
		fetcher:  fetcher,
		store:    store,
		delay:    opts.Delay,
		sleep:    opts.Sleep,
		log:      opts.Logger,
		metrics:  opts.Metrics,
	}
	if r.delay == 0 {
		r.delay = DefaultDelay
	}
	if r.sleep == nil {
		r.sleep = time.Sleep
	}
	if r.log == nil {
		r.log = logger.Default()
	}
	if r.metrics == nil {
		r.metrics = logger.NewMetrics()
	}
	return r
}

// Metrics returns the metrics the runner records into.
func (r *Runner) Metrics() *logger.Metrics {
	return r.metrics
}

// Run processes every site once, in registry order, and never stops early.
func (r *Runner) Run(ctx context.Context) Summary {
	sites := r.registry.Sites()
	r.log.Info("📢 開始批次抓取公告 starting batch", logger.Fields{"sites": len(sites)})

	summary := Summary{Results: make([]SiteResult, 0, len(sites))}
	for _, cfg := range sites {
		res := r.RunSite(ctx, cfg)
		summary.add(res)

		if r.delay > 0 {
			r.sleep(r.delay)
		}
	}

	r.log.Info("🎉 全部網站處理完成 all sites processed", logger.Fields{
		"succeeded": summary.Succeeded,
		"empty":     summary.Empty,
		"failed":    summary.Failed,
		"items":     summary.Items,
	})
	return summary
}

// RunSite runs fetch, extract, render and write for one site.
func (r *Runner) RunSite(ctx context.Context, cfg site.Config) SiteResult {
	res := SiteResult{Site: cfg.DomainName, URL: cfg.URL}
	fields := logger.Fields{"site": cfg.DomainName}

	r.log.Info("🌐 開始處理網站 processing site", logger.Fields{"site": cfg.DomainName, "url": cfg.URL})

	r.cleanup(cfg.DomainName)

	verify := r.registry.VerifyTLS(cfg.URL)
	if !verify {
		r.log.Debug("TLS verification disabled", fields)
	}

	start := time.Now()
	body, err := r.fetcher.Fetch(ctx, cfg.URL, verify)
	r.metrics.RecordTiming(MetricFetchDuration, time.Since(start))
	if err != nil {
		r.log.Error("❌ 網站請求失敗 fetch failed", fields, err)
		return r.fail(res, StageFetch, err)
	}

	root, err := extractor.Parse(body)
	if err != nil {
		r.log.Error("❌ HTML 解析失敗 parse failed", fields, err)
		return r.fail(res, StageParse, err)
	}

	extracted := extractor.Extract(root, cfg)
	res.Reason = extracted.Reason
	switch extracted.Reason {
	case extractor.ReasonNoContainer:
		r.log.Warn("⚠️ 找不到父容器 container not found", logger.Fields{"site": cfg.DomainName, "selector": extracted.Selector})
		return r.empty(res, StageExtract)
	case extractor.ReasonNoItems:
		r.log.Warn("⚠️ 找不到公告項目 items not found", logger.Fields{"site": cfg.DomainName, "selector": extracted.Selector})
		return r.empty(res, StageExtract)
	}
	if extracted.Skipped > 0 {
		r.log.Debug("skipped items without title", logger.Fields{"site": cfg.DomainName, "skipped": extracted.Skipped})
	}

	fragments := render.Items(extracted.Items)
	if len(fragments) == 0 {
		r.log.Info("ℹ️ 未抓取到任何公告 no announcements", fields)
		return r.empty(res, StageRender)
	}

	path, _, err := r.store.Write(cfg.DomainName, fragments)
	if err != nil {
		r.log.Error("❌ 寫入 HTML 發生錯誤 write failed", fields, err)
		return r.fail(res, StageWrite, err)
	}

	res.Stage = StageDone
	res.Items = len(fragments)
	res.Path = path
	r.metrics.IncrCounter(MetricSitesSucceeded)
	r.metrics.AddCounter(MetricItemsWritten, int64(res.Items))
	r.log.Info("✅ 完成 done", logger.Fields{"site": cfg.DomainName, "items": res.Items, "path": path})
	return res
}

// cleanup removes the previous output up front so a failed site never leaves
// last run's file behind. Failures are logged and ignored.
func (r *Runner) cleanup(domainName string) {
	report := r.store.Cleanup(domainName)
	for _, path := range report.Removed {
		r.log.Debug("removed stale output", logger.Fields{"site": domainName, "path": path})
	}
	for path, err := range report.Failed {
		r.log.Warn("could not remove stale output", logger.Fields{"site": domainName, "path": path, "error": err.Error()})
	}
}

func (r *Runner) fail(res SiteResult, stage Stage, err error) SiteResult {
	res.Stage = stage
	res.Err = err
	r.metrics.IncrCounter(MetricSitesFailed)
	return res
}

func (r *Runner) empty(res SiteResult, stage Stage) SiteResult {
	res.Stage = stage
	r.metrics.IncrCounter(MetricSitesEmpty)
	return res
}
