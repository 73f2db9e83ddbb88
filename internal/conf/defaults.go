// conf/defaults.go default values for settings
package conf

import (
	"time"

	"github.com/spf13/viper"

	"github.com/tphakala/birdcatalog/internal/logger"
)

// Default values shared with other packages.
const (
	DefaultUserAgent            = "birdcatalog/1.0 (+https://github.com/tphakala/birdcatalog)"
	DefaultImageTimeout         = 15 * time.Second
	DefaultMaxConcurrentFetches = 4
	DefaultListen               = "127.0.0.1:8080"
)

// setDefaultConfig registers a default for every key so environment
// overrides are picked up by Unmarshal.
func setDefaultConfig(v *viper.Viper) {
	v.SetDefault("debug", false)

	v.SetDefault("catalog.datadir", "")
	v.SetDefault("catalog.groupsfile", "bird-groups.json")
	v.SetDefault("catalog.detailsfile", "bird-details.json")
	v.SetDefault("catalog.imagemetafile", "image-meta.json")
	v.SetDefault("catalog.groupimagesfile", "bird-groups-image-meta.json")
	v.SetDefault("catalog.extradenied", []string{})

	v.SetDefault("images.useragent", DefaultUserAgent)
	v.SetDefault("images.timeout", DefaultImageTimeout)
	v.SetDefault("images.maxconcurrentfetches", DefaultMaxConcurrentFetches)
	v.SetDefault("images.ratelimit", 0)
	v.SetDefault("images.rateburst", 1)

	v.SetDefault("webserver.listen", DefaultListen)
	v.SetDefault("webserver.allowedorigins", []string{"*"})

	v.SetDefault("metrics.enabled", true)

	v.SetDefault("sentry.enabled", false)
	v.SetDefault("sentry.dsn", "")
	v.SetDefault("sentry.environment", "production")

	v.SetDefault("logging.default_level", logger.DefaultLogLevel)
	v.SetDefault("logging.timezone", "Local")
	v.SetDefault("logging.console.enabled", logger.DefaultConsoleEnabled)
	v.SetDefault("logging.console.level", logger.DefaultLogLevel)
	v.SetDefault("logging.file_output.enabled", logger.DefaultFileEnabled)
	v.SetDefault("logging.file_output.path", logger.DefaultLogPath)
	v.SetDefault("logging.file_output.level", logger.DefaultLogLevel)
}
