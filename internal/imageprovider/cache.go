// Package imageprovider fetches remote bird photographs and keeps them in a
// process-lifetime, in-memory cache keyed by URL.
package imageprovider

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/tphakala/birdcatalog/internal/errors"
	"github.com/tphakala/birdcatalog/internal/logger"
	"github.com/tphakala/birdcatalog/internal/observability/metrics"
)

const componentName = "imageprovider"

// Config tunes a Cache. The zero value is valid.
type Config struct {
	// MaxConcurrentFetches bounds outstanding network fetches. Zero means
	// unbounded.
	MaxConcurrentFetches int
	// RateLimit caps downloads per second across all URLs. Zero means
	// unlimited. Cache hits are never delayed.
	RateLimit float64
	// RateBurst is the limiter bucket size; values below 1 are treated as 1.
	RateBurst int
	Metrics   *metrics.ImageProviderMetrics
	Logger    logger.Logger
}

// Cache maps image URLs to fetched images. At most one successful fetch is
// made per URL; failures are not stored. Entries never expire.
type Cache struct {
	fetcher Fetcher
	store   *gocache.Cache
	group   singleflight.Group
	sem     *semaphore.Weighted
	limiter *rate.Limiter
	limit   int
	metrics *metrics.ImageProviderMetrics
	log     logger.Logger

	bytes atomic.Int64

	// baseCtx outlives individual callers so an abandoned wait does not
	// cancel a fetch other callers share.
	baseCtx context.Context
	cancel  context.CancelFunc

	closeMu sync.RWMutex
	closed  bool
	flights sync.WaitGroup
}

// New creates a cache that downloads through fetcher.
func New(fetcher Fetcher, cfg Config) *Cache {
	ctx, cancel := context.WithCancel(context.Background())

	c := &Cache{
		fetcher: fetcher,
		store:   gocache.New(gocache.NoExpiration, 0),
		limit:   cfg.MaxConcurrentFetches,
		metrics: cfg.Metrics,
		log:     cfg.Logger,
		baseCtx: ctx,
		cancel:  cancel,
	}
	if c.log == nil {
		c.log = logger.Global().Module(componentName)
	}
	if cfg.MaxConcurrentFetches > 0 {
		c.sem = semaphore.NewWeighted(int64(cfg.MaxConcurrentFetches))
	}
	if cfg.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), max(cfg.RateBurst, 1))
	}

	return c
}

// Fetch returns the image for url, downloading it on a miss. Concurrent misses
// for the same URL share one download. Cancelling ctx abandons only this
// caller's wait.
func (c *Cache) Fetch(ctx context.Context, url string) (Image, error) {
	if url == "" {
		return Image{}, errors.Newf("image URL is empty").
			Component(componentName).
			Category(errors.CategoryValidation).
			Build()
	}

	if img, ok := c.Get(url); ok {
		if c.metrics != nil {
			c.metrics.IncrementCacheHits()
		}
		return img, nil
	}
	if c.metrics != nil {
		c.metrics.IncrementCacheMisses()
	}

	if c.isClosed() {
		return Image{}, c.closedError(url)
	}

	ch := c.group.DoChan(url, func() (any, error) {
		return c.runFlight(url)
	})

	select {
	case res := <-ch:
		if res.Shared && c.metrics != nil {
			c.metrics.IncrementSharedFetches()
		}
		if res.Err != nil {
			return Image{}, res.Err
		}
		return res.Val.(Image), nil
	case <-ctx.Done():
		return Image{}, errors.New(ctx.Err()).
			Component(componentName).
			Category(errors.CategoryCancellation).
			Context("url", url).
			Build()
	}
}

// FetchAsync starts a fetch and returns immediately. Exactly one Result is
// delivered, then the channel is closed.
func (c *Cache) FetchAsync(ctx context.Context, url string) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		img, err := c.Fetch(ctx, url)
		out <- Result{URL: url, Image: img, Err: err}
	}()
	return out
}

// FetchAll fetches urls concurrently and returns one Result per input URL, in
// input order. Individual failures are reported in their Result.
func (c *Cache) FetchAll(ctx context.Context, urls []string) []Result {
	results := make([]Result, len(urls))

	var g errgroup.Group
	if c.limit > 0 {
		g.SetLimit(c.limit)
	}
	for i, url := range urls {
		g.Go(func() error {
			img, err := c.Fetch(ctx, url)
			results[i] = Result{URL: url, Image: img, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// Get returns a cached image without touching the network.
func (c *Cache) Get(url string) (Image, bool) {
	v, ok := c.store.Get(url)
	if !ok {
		return Image{}, false
	}
	img, ok := v.(Image)
	return img, ok
}

// Len returns the number of cached images.
func (c *Cache) Len() int {
	return c.store.ItemCount()
}

// MemoryUsage returns the total payload bytes held by the cache.
func (c *Cache) MemoryUsage() int64 {
	return c.bytes.Load()
}

// Close stops accepting new fetches, cancels in-flight downloads and waits
// for them to finish. Cached images remain readable through Get.
func (c *Cache) Close() error {
	c.closeMu.Lock()
	if c.closed {
		c.closeMu.Unlock()
		return nil
	}
	c.closed = true
	c.closeMu.Unlock()

	c.cancel()
	c.flights.Wait()

	c.log.Debug("image cache closed",
		logger.Int("entries", c.Len()),
		logger.Int64("bytes", c.MemoryUsage()))
	return nil
}

func (c *Cache) isClosed() bool {
	c.closeMu.RLock()
	defer c.closeMu.RUnlock()
	return c.closed
}

func (c *Cache) closedError(url string) error {
	return errors.New(ErrCacheClosed).
		Component(componentName).
		Category(errors.CategoryImageCache).
		Context("url", url).
		Build()
}

// runFlight is the body of a single-flight call for url.
func (c *Cache) runFlight(url string) (Image, error) {
	c.closeMu.RLock()
	if c.closed {
		c.closeMu.RUnlock()
		return Image{}, c.closedError(url)
	}
	c.flights.Add(1)
	c.closeMu.RUnlock()
	defer c.flights.Done()

	// A flight that completed just before this one started has already
	// stored the image.
	if img, ok := c.Get(url); ok {
		return img, nil
	}

	if c.sem != nil {
		if err := c.sem.Acquire(c.baseCtx, 1); err != nil {
			return Image{}, errors.New(err).
				Component(componentName).
				Category(errors.CategoryCancellation).
				Context("url", url).
				Build()
		}
		defer c.sem.Release(1)
	}

	return c.download(url)
}

func (c *Cache) download(url string) (Image, error) {
	if c.metrics != nil {
		c.metrics.FetchStarted()
		defer c.metrics.FetchFinished()
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(c.baseCtx); err != nil {
			return Image{}, errors.New(err).
				Component(componentName).
				Category(errors.CategoryCancellation).
				Context("url", url).
				Context("operation", "rate_limit_wait").
				Build()
		}
	}

	start := time.Now()
	data, err := c.fetcher.Fetch(c.baseCtx, url)
	if err == nil {
		var img Image
		img, err = decodeImage(url, data)
		if err == nil {
			c.put(img, time.Since(start))
			return img, nil
		}
	}

	fe := asFetchError(url, err)
	if c.metrics != nil {
		c.metrics.IncrementDownloadErrors(string(fe.Kind))
	}
	c.log.Warn("image fetch failed",
		logger.String("url", url),
		logger.String("kind", string(fe.Kind)),
		logger.Error(fe))

	category := errors.CategoryImageFetch
	if fe.Kind == KindNotImage {
		category = errors.CategoryImageDecode
	}

	return Image{}, errors.New(fe).
		Component(componentName).
		Category(category).
		Context("url", url).
		Context("kind", string(fe.Kind)).
		Timing("image_fetch", time.Since(start)).
		Build()
}

// put stores img and updates size accounting.
func (c *Cache) put(img Image, elapsed time.Duration) {
	if err := c.store.Add(img.URL, img, gocache.NoExpiration); err != nil {
		return
	}
	total := c.bytes.Add(int64(img.Size()))

	if c.metrics != nil {
		c.metrics.ObserveDownload(elapsed.Seconds(), img.Size())
		c.metrics.SetCacheSize(float64(total))
		c.metrics.SetCacheEntries(c.Len())
	}
	c.log.Debug("image cached",
		logger.String("url", img.URL),
		logger.String("mime", img.MIME),
		logger.Int("bytes", img.Size()),
		logger.Duration("elapsed", elapsed))
}
