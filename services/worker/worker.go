package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"deshnews/ingestworker/config"
	"deshnews/ingestworker/helpers"
	"deshnews/ingestworker/internal/ingest"
	"deshnews/ingestworker/internal/store"
	"deshnews/ingestworker/internal/taxonomy"
	"deshnews/ingestworker/logger"
	apperr "deshnews/ingestworker/pkg/errors"
	"deshnews/ingestworker/services/cache"
	"deshnews/ingestworker/services/publisher"
)

// blockTime is how long a throttled source category stays blocked.
const blockTime = 300 * time.Second

// FetchFunc fetches a URL with a timeout. Tests swap in fixtures.
type FetchFunc func(url string, timeout time.Duration) (io.Reader, error)

// ArticleStore is the slice of the store the worker needs.
type ArticleStore interface {
	Upsert(ctx context.Context, article *ingest.Article, mode store.UpsertMode) (store.Outcome, error)
}

// Stats counts per-run outcomes. Safe for concurrent item workers.
type Stats struct {
	mu       sync.Mutex
	Fetched  int
	Inserted int
	Updated  int
	Skipped  int
	Failed   int
}

func (s *Stats) addOutcome(outcome store.Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Fetched++
	switch outcome {
	case store.OutcomeInserted:
		s.Inserted++
	case store.OutcomeUpdated:
		s.Updated++
	case store.OutcomeSkipped:
		s.Skipped++
	}
}

func (s *Stats) addFailed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Failed++
}

// Worker drives ingestion runs: it builds targets from configuration and
// the taxonomy, fetches and extracts each item, and writes the result,
// isolating per-item failures.
type Worker struct {
	cfg        config.Config
	taxonomy   *taxonomy.Taxonomy
	fetch      FetchFunc
	extractor  *ingest.Extractor
	media      *ingest.MediaResolver
	store      ArticleStore
	publisher  publisher.Publisher
	cache      cache.CacheService
	upsertMode store.UpsertMode
	log        *logger.Logger
}

// NewWorker creates a new worker
func NewWorker(
	cfg config.Config,
	tax *taxonomy.Taxonomy,
	articleStore ArticleStore,
	pub publisher.Publisher,
	cacheSvc cache.CacheService,
) *Worker {
	return &Worker{
		cfg:        cfg,
		taxonomy:   tax,
		fetch:      helpers.Fetch,
		extractor:  ingest.NewExtractor(cfg.SourceBaseURL),
		media:      ingest.NewMediaResolver(cfg.SourceBaseURL),
		store:      articleStore,
		publisher:  pub,
		cache:      cacheSvc,
		upsertMode: store.UpsertMode(cfg.UpsertMode),
		log:        logger.ForComponent("worker"),
	}
}

// Start runs ingestion once, or on an interval when RunOnce is off, until
// the context is cancelled.
func (w *Worker) Start(ctx context.Context) error {
	for {
		start := time.Now()
		stats := w.Run(ctx)
		w.log.Info().
			Dur("elapsed", time.Since(start)).
			Int("fetched", stats.Fetched).
			Int("inserted", stats.Inserted).
			Int("updated", stats.Updated).
			Int("skipped", stats.Skipped).
			Int("failed", stats.Failed).
			Msg("Run complete")

		if w.cfg.RunOnce {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(w.cfg.IngestInterval):
		}
	}
}

// Run executes one ingestion run over the configured targets. Item errors
// never fail the run; the returned stats carry the per-item outcomes.
func (w *Worker) Run(ctx context.Context) *Stats {
	stats := &Stats{}
	targets := w.buildTargets()

	for _, target := range targets {
		if ctx.Err() != nil {
			break
		}
		w.runTarget(ctx, target, stats)
	}

	if w.publisher != nil {
		if err := w.publisher.TrimStreams(); err != nil {
			logger.LogError("worker", err, "stream trimming failed")
		}
	}

	return stats
}

// buildTargets resolves the run configuration into IngestionTargets.
// Category inputs go through the taxonomy; unknown values pass through as
// best-effort labels.
func (w *Worker) buildTargets() []ingest.IngestionTarget {
	var targets []ingest.IngestionTarget

	for _, input := range w.cfg.Categories {
		slug := w.taxonomy.ResolveToSlug(input)
		target := ingest.IngestionTarget{
			CategorySlug: slug,
			ListingURL:   w.cfg.SourceBaseURL + w.taxonomy.ListingPath(slug),
			Category:     w.resolveLabel(slug),
		}
		if parent, ok := w.taxonomy.ParentOf(slug); ok {
			target.ParentCategory = w.resolveLabel(parent)
		}
		targets = append(targets, target)
	}

	for _, articleURL := range w.cfg.ArticleURLs {
		targets = append(targets, ingest.IngestionTarget{
			CategorySlug:   "explicit",
			ArticleURL:     articleURL,
			Category:       w.resolveLabel(w.cfg.CategoryOverride),
			ParentCategory: w.resolveLabel(w.cfg.ParentOverride),
		})
	}

	return targets
}

// resolveLabel maps a slug or label to its display label, passing unknown
// values through unchanged.
func (w *Worker) resolveLabel(input string) string {
	if input == "" {
		return ""
	}
	slug := w.taxonomy.ResolveToSlug(input)
	if label, ok := w.taxonomy.LabelOf(slug); ok {
		return label
	}
	return input
}

// runTarget processes one target: a listing crawl or a single article.
func (w *Worker) runTarget(ctx context.Context, target ingest.IngestionTarget, stats *Stats) {
	log := logger.ForCategory(target.CategorySlug)

	if !target.IsListing() {
		w.processItemLogged(ctx, ingest.ListingItem{Link: target.ArticleURL}, target, stats, log)
		return
	}

	blockKey := "ingest_block:" + target.CategorySlug
	if w.cache != nil {
		if _, err := w.cache.Get(blockKey); err == nil {
			log.Warn().Msg("Category is rate-limit blocked, skipping")
			return
		}
	}

	body, err := w.fetch(target.ListingURL, helpers.ListingTimeout)
	if err != nil {
		if helpers.IsRateLimited(err) && w.cache != nil {
			if setErr := w.cache.Set(blockKey, []byte(fmt.Sprintf("%d", blockTime/time.Second)), blockTime); setErr != nil {
				logger.LogError("worker", setErr, "failed to set rate-limit block")
			}
		}
		logger.LogError("worker", err, "listing fetch failed for %s", target.ListingURL)
		return
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		logger.LogError("worker", err, "listing parse failed for %s", target.ListingURL)
		return
	}

	items := w.extractor.ExtractListing(doc)
	if len(items) == 0 {
		log.Warn().Str("url", target.ListingURL).Msg("No items extracted from listing")
		return
	}
	log.Info().Int("items", len(items)).Msg("Listing extracted")

	switch w.cfg.Mode {
	case config.ModeChunked:
		w.dispatchChunked(ctx, items, target, stats, log)
	default:
		w.dispatchSequential(ctx, items, target, stats, log)
	}
}

// dispatchSequential processes items one by one with a fixed inter-item
// delay to stay polite to the source.
func (w *Worker) dispatchSequential(ctx context.Context, items []ingest.ListingItem, target ingest.IngestionTarget, stats *Stats, log *logger.Logger) {
	for i, item := range items {
		if ctx.Err() != nil {
			return
		}
		w.processItemLogged(ctx, item, target, stats, log)

		if i < len(items)-1 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(w.cfg.ItemDelay):
			}
		}
	}
}

// dispatchChunked partitions items into fixed-size batches, runs each
// batch concurrently, and sleeps between batches. Failures inside a batch
// do not block siblings.
func (w *Worker) dispatchChunked(ctx context.Context, items []ingest.ListingItem, target ingest.IngestionTarget, stats *Stats, log *logger.Logger) {
	for start := 0; start < len(items); start += w.cfg.BatchSize {
		if ctx.Err() != nil {
			return
		}

		end := start + w.cfg.BatchSize
		if end > len(items) {
			end = len(items)
		}

		var wg sync.WaitGroup
		for _, item := range items[start:end] {
			wg.Add(1)
			go func(item ingest.ListingItem) {
				defer wg.Done()
				w.processItemLogged(ctx, item, target, stats, log)
			}(item)
		}
		wg.Wait()

		if end < len(items) {
			select {
			case <-ctx.Done():
				return
			case <-time.After(w.cfg.BatchDelay):
			}
		}
	}
}

// processItemLogged wraps processItem with outcome accounting and logging.
func (w *Worker) processItemLogged(ctx context.Context, item ingest.ListingItem, target ingest.IngestionTarget, stats *Stats, log *logger.Logger) {
	outcome, err := w.processItem(ctx, item, target)
	if err != nil {
		stats.addFailed()
		logger.LogError("worker", err, "item failed: %s", item.Link)
		return
	}
	stats.addOutcome(outcome)
	log.Debug().Str("url", item.Link).Str("outcome", string(outcome)).Msg("Item processed")
}

// processItem runs the full pipeline for one article: fetch detail,
// extract, resolve media, derive identity, upsert, announce.
func (w *Worker) processItem(ctx context.Context, item ingest.ListingItem, target ingest.IngestionTarget) (store.Outcome, error) {
	body, err := w.fetch(item.Link, helpers.DetailTimeout)
	if err != nil {
		return "", apperr.NewNetwork("worker", "detail fetch failed for "+item.Link, err)
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return "", apperr.NewParsing("worker", "detail parse failed for "+item.Link, err)
	}

	detail := w.extractor.ExtractDetail(doc, item)
	media := w.media.Resolve(doc, item.Thumbnail)
	publicID, slug := ingest.DeriveIdentity(item.Link, detail.Title)

	if detail.Title == "" {
		detail.Title = slug
	}

	now := time.Now()
	article := &ingest.Article{
		PublicID:       publicID,
		Title:          detail.Title,
		Slug:           slug,
		Content:        detail.Content,
		Image:          media.Image,
		Category:       target.Category,
		ParentCategory: target.ParentCategory,
		VideoURL:       media.VideoURL,
		VideoThumbnail: media.VideoThumbnail,
		SourceURL:      item.Link,
		Status:         ingest.StatusPublished,
		PublishedAt:    now,
		UpdatedAt:      now,
	}

	outcome, err := w.store.Upsert(ctx, article, w.upsertMode)
	if err != nil {
		return "", apperr.NewStore("worker", "upsert failed for "+article.Slug, err)
	}

	if w.publisher != nil && outcome != store.OutcomeSkipped {
		data, marshalErr := json.Marshal(article)
		if marshalErr != nil {
			logger.LogError("worker", marshalErr, "article marshal failed for %s", article.Slug)
		} else if pubErr := w.publisher.Publish(target.CategorySlug, data); pubErr != nil {
			logger.LogError("worker", pubErr, "publish failed for %s", article.Slug)
		}
	}

	return outcome, nil
}
