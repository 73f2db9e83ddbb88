// Package app wires settings, logging, telemetry and the catalog services
// shared by every command.
package app

import (
	"io/fs"
	"os"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/tphakala/birdcatalog/internal/buildinfo"
	"github.com/tphakala/birdcatalog/internal/catalog"
	"github.com/tphakala/birdcatalog/internal/catalog/data"
	"github.com/tphakala/birdcatalog/internal/conf"
	"github.com/tphakala/birdcatalog/internal/errors"
	"github.com/tphakala/birdcatalog/internal/httpclient"
	"github.com/tphakala/birdcatalog/internal/imageprovider"
	"github.com/tphakala/birdcatalog/internal/logger"
	"github.com/tphakala/birdcatalog/internal/observability"
	"github.com/tphakala/birdcatalog/internal/privacy"
)

const sentryFlushTimeout = 2 * time.Second

// App holds the process-wide services built from Settings.
type App struct {
	Settings  *conf.Settings
	BuildInfo buildinfo.BuildInfo

	central *logger.CentralLogger
	log     logger.Logger
	metrics *observability.Metrics
}

// New configures logging, metrics and error telemetry from settings.
func New(settings *conf.Settings, bi buildinfo.BuildInfo) (*App, error) {
	if settings == nil {
		return nil, errors.Newf("settings are required").
			Component("app").
			Category(errors.CategoryConfiguration).
			Build()
	}

	if settings.Debug {
		settings.Logging.DefaultLevel = string(logger.LogLevelDebug)
		if settings.Logging.Console != nil {
			settings.Logging.Console.Level = string(logger.LogLevelDebug)
		}
	}

	central, err := logger.NewCentralLogger(&settings.Logging)
	if err != nil {
		return nil, errors.New(err).
			Component("app").
			Category(errors.CategoryConfiguration).
			Context("operation", "init_logger").
			Build()
	}
	logger.SetGlobal(central)

	a := &App{
		Settings:  settings,
		BuildInfo: bi,
		central:   central,
		log:       central.Module("app"),
	}

	if settings.Metrics.Enabled {
		m, err := observability.NewMetrics()
		if err != nil {
			return nil, errors.New(err).
				Component("app").
				Category(errors.CategorySystem).
				Context("operation", "init_metrics").
				Build()
		}
		a.metrics = m
	}

	if settings.Sentry.Enabled {
		if err := a.initSentry(); err != nil {
			a.log.Warn("error telemetry disabled", logger.Error(err))
		}
	}

	return a, nil
}

func (a *App) initSentry() error {
	release := buildinfo.UnknownValue
	if a.BuildInfo != nil {
		release = a.BuildInfo.GetVersion()
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         a.Settings.Sentry.DSN,
		Environment: a.Settings.Sentry.Environment,
		Release:     "birdcatalog@" + release,
	}); err != nil {
		return err
	}

	errors.SetPrivacyScrubber(privacy.ScrubMessage)
	errors.SetTelemetryReporter(errors.NewSentryReporter(true))
	a.log.Info("error telemetry enabled", logger.String("environment", a.Settings.Sentry.Environment))
	return nil
}

// Logger returns a logger scoped to module.
func (a *App) Logger(module string) logger.Logger {
	return a.central.Module(module)
}

// Metrics returns the metrics registry, or nil when metrics are disabled.
func (a *App) Metrics() *observability.Metrics {
	return a.metrics
}

// CatalogFS returns the directory named by catalog.datadir, or the bundled
// data when it is empty.
func (a *App) CatalogFS() fs.FS {
	if dir := a.Settings.Catalog.DataDir; dir != "" {
		return os.DirFS(dir)
	}
	return data.FS
}

// LoadCatalog loads the catalog named by the settings.
func (a *App) LoadCatalog() (*catalog.Catalog, error) {
	c := a.Settings.Catalog
	paths := catalog.Paths{
		Groups:         c.GroupsFile,
		Details:        c.DetailsFile,
		ImageMeta:      c.ImageMetaFile,
		GroupImageMeta: c.GroupImagesFile,
	}

	opts := []catalog.Option{catalog.WithLogger(a.Logger("catalog"))}
	if len(c.ExtraDenied) > 0 {
		opts = append(opts, catalog.WithExtraDenied(c.ExtraDenied...))
	}
	if a.metrics != nil {
		opts = append(opts, catalog.WithRecorder(a.metrics.Catalog))
	}

	return catalog.LoadFS(a.CatalogFS(), paths, opts...)
}

// NewImageCache builds the image fetch cache and the HTTP client behind it.
// Close the cache when done.
func (a *App) NewImageCache() *imageprovider.Cache {
	images := a.Settings.Images
	client := httpclient.New(&httpclient.Config{
		DefaultTimeout: images.Timeout,
		UserAgent:      images.UserAgent,
	})

	cfg := imageprovider.Config{
		MaxConcurrentFetches: images.MaxConcurrentFetches,
		RateLimit:            images.RateLimit,
		RateBurst:            images.RateBurst,
		Logger:               a.Logger("imageprovider"),
	}
	if a.metrics != nil {
		cfg.Metrics = a.metrics.ImageProvider
	}

	return imageprovider.New(imageprovider.NewHTTPFetcher(client, 0), cfg)
}

// Close flushes telemetry and closes log files.
func (a *App) Close() error {
	if !errors.FlushTelemetry(sentryFlushTimeout) {
		a.log.Warn("error telemetry not fully delivered", logger.Duration("timeout", sentryFlushTimeout))
	}
	return a.central.Close()
}
