package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// ImageProviderMetrics tracks the image fetch cache.
type ImageProviderMetrics struct {
	CacheSize        prometheus.Gauge
	CacheEntries     prometheus.Gauge
	CacheHits        prometheus.Counter
	CacheMisses      prometheus.Counter
	SharedFetches    prometheus.Counter
	InFlight         prometheus.Gauge
	ImageDownloads   prometheus.Counter
	DownloadErrors   *prometheus.CounterVec
	DownloadDuration prometheus.Histogram
	DownloadSize     prometheus.Histogram
	registry         *prometheus.Registry
}

// NewImageProviderMetrics creates the collectors and registers them with registry.
func NewImageProviderMetrics(registry *prometheus.Registry) (*ImageProviderMetrics, error) {
	m := &ImageProviderMetrics{registry: registry}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, fmt.Errorf("failed to register ImageProvider metrics: %w", err)
	}
	return m, nil
}

func (m *ImageProviderMetrics) initMetrics() {
	m.CacheSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "image_provider_cache_size_bytes",
		Help: "Current size of the image cache in bytes.",
	})

	m.CacheEntries = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "image_provider_cache_entries",
		Help: "Number of images held in the cache.",
	})

	m.CacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "image_provider_cache_hits_total",
		Help: "Total number of cache hits.",
	})

	m.CacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "image_provider_cache_misses_total",
		Help: "Total number of cache misses.",
	})

	m.SharedFetches = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "image_provider_shared_fetches_total",
		Help: "Total number of callers served by another caller's in-flight fetch.",
	})

	m.InFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "image_provider_fetches_in_flight",
		Help: "Number of network fetches currently in progress.",
	})

	m.ImageDownloads = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "image_provider_downloads_total",
		Help: "Total number of successful image downloads.",
	})

	m.DownloadErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "image_provider_download_errors_total",
		Help: "Total number of image download errors by kind.",
	}, []string{"kind"}) // kind: transport, status, empty_body, not_image

	m.DownloadDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "image_provider_download_duration_seconds",
		Help:    "Duration of image downloads in seconds.",
		Buckets: prometheus.ExponentialBuckets(BucketStart100ms, BucketFactor2, BucketCount10),
	})

	m.DownloadSize = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "image_provider_download_size_bytes",
		Help:    "Size of downloaded images in bytes.",
		Buckets: prometheus.ExponentialBuckets(BucketStart1KB, BucketFactor4, BucketCount8), // 1KB to ~16MB
	})
}

// SetCacheSize updates the current size of the image cache in bytes.
func (m *ImageProviderMetrics) SetCacheSize(sizeBytes float64) {
	m.CacheSize.Set(sizeBytes)
}

// SetCacheEntries updates the number of cached images.
func (m *ImageProviderMetrics) SetCacheEntries(n int) {
	m.CacheEntries.Set(float64(n))
}

// IncrementCacheHits increases the cache hit counter by one.
func (m *ImageProviderMetrics) IncrementCacheHits() {
	m.CacheHits.Inc()
}

// IncrementCacheMisses increases the cache miss counter by one.
func (m *ImageProviderMetrics) IncrementCacheMisses() {
	m.CacheMisses.Inc()
}

// IncrementSharedFetches counts a caller that joined an existing flight.
func (m *ImageProviderMetrics) IncrementSharedFetches() {
	m.SharedFetches.Inc()
}

// FetchStarted and FetchFinished bracket a network fetch.
func (m *ImageProviderMetrics) FetchStarted() {
	m.InFlight.Inc()
}

func (m *ImageProviderMetrics) FetchFinished() {
	m.InFlight.Dec()
}

// ObserveDownload records a successful download.
func (m *ImageProviderMetrics) ObserveDownload(durationSeconds float64, sizeBytes int) {
	m.ImageDownloads.Inc()
	m.DownloadDuration.Observe(durationSeconds)
	m.DownloadSize.Observe(float64(sizeBytes))
}

// IncrementDownloadErrors counts a failed download of the given kind.
func (m *ImageProviderMetrics) IncrementDownloadErrors(kind string) {
	m.DownloadErrors.WithLabelValues(kind).Inc()
}

// Collect implements the prometheus.Collector interface.
func (m *ImageProviderMetrics) Collect(ch chan<- prometheus.Metric) {
	ch <- m.CacheSize
	ch <- m.CacheEntries
	ch <- m.CacheHits
	ch <- m.CacheMisses
	ch <- m.SharedFetches
	ch <- m.InFlight
	ch <- m.ImageDownloads
	m.DownloadErrors.Collect(ch)
	ch <- m.DownloadDuration
	ch <- m.DownloadSize
}

// Describe implements the prometheus.Collector interface.
func (m *ImageProviderMetrics) Describe(ch chan<- *prometheus.Desc) {
	ch <- m.CacheSize.Desc()
	ch <- m.CacheEntries.Desc()
	ch <- m.CacheHits.Desc()
	ch <- m.CacheMisses.Desc()
	ch <- m.SharedFetches.Desc()
	ch <- m.InFlight.Desc()
	ch <- m.ImageDownloads.Desc()
	m.DownloadErrors.Describe(ch)
	ch <- m.DownloadDuration.Desc()
	ch <- m.DownloadSize.Desc()
}
