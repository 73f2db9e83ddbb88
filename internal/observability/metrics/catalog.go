package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// CatalogMetrics describes the loaded catalog and resolver activity.
type CatalogMetrics struct {
	groups            prometheus.Gauge
	species           prometheus.Gauge
	imageEntries      *prometheus.GaugeVec
	deniedEntries     *prometheus.GaugeVec
	loadDuration      prometheus.Gauge
	resolutionsTotal  *prometheus.CounterVec
	resolvedImageURLs *prometheus.HistogramVec
}

// NewCatalogMetrics creates the collectors and registers them with registry.
func NewCatalogMetrics(registry *prometheus.Registry) (*CatalogMetrics, error) {
	m := &CatalogMetrics{
		groups: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "catalog_groups",
			Help: "Number of bird groups in the loaded catalog.",
		}),
		species: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "catalog_species",
			Help: "Number of species across all groups.",
		}),
		imageEntries: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "catalog_image_meta_entries",
			Help: "Number of indexed image metadata entries.",
		}, []string{"index"}), // index: global, group
		deniedEntries: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "catalog_image_meta_denied_entries",
			Help: "Number of image metadata entries removed by the denylist.",
		}, []string{"index"}),
		loadDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "catalog_load_duration_seconds",
			Help: "Time taken to decode and index the catalog.",
		}),
		resolutionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_image_resolutions_total",
			Help: "Total number of image list resolutions.",
		}, []string{"kind"}), // kind: species, species_preview, group, group_preview
		resolvedImageURLs: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "catalog_resolved_image_urls",
			Help:    "Number of image URLs produced per resolution.",
			Buckets: prometheus.LinearBuckets(0, 2, 10),
		}, []string{"kind"}),
	}

	for _, c := range []prometheus.Collector{
		m.groups, m.species, m.imageEntries, m.deniedEntries,
		m.loadDuration, m.resolutionsTotal, m.resolvedImageURLs,
	} {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register catalog metrics: %w", err)
		}
	}

	return m, nil
}

// RecordLoad publishes the catalog shape after a successful load.
func (m *CatalogMetrics) RecordLoad(groups, species, globalImages, groupImages, deniedGlobal, deniedGroup int, seconds float64) {
	m.groups.Set(float64(groups))
	m.species.Set(float64(species))
	m.imageEntries.WithLabelValues("global").Set(float64(globalImages))
	m.imageEntries.WithLabelValues("group").Set(float64(groupImages))
	m.deniedEntries.WithLabelValues("global").Set(float64(deniedGlobal))
	m.deniedEntries.WithLabelValues("group").Set(float64(deniedGroup))
	m.loadDuration.Set(seconds)
}

// RecordResolution counts one resolver call and the number of URLs it produced.
func (m *CatalogMetrics) RecordResolution(kind string, urls int) {
	m.resolutionsTotal.WithLabelValues(kind).Inc()
	m.resolvedImageURLs.WithLabelValues(kind).Observe(float64(urls))
}
