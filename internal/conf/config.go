// Package conf loads birdcatalog settings from a YAML config file, environment
// variables and built-in defaults.
package conf

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/tphakala/birdcatalog/internal/errors"
	"github.com/tphakala/birdcatalog/internal/logger"
)

//go:embed config.yaml
var configFiles embed.FS

// EnvPrefix is prepended to every environment override, for example
// BIRDCATALOG_IMAGES_TIMEOUT=10s.
const EnvPrefix = "BIRDCATALOG"

// Settings is the root configuration.
type Settings struct {
	Debug bool `yaml:"debug" mapstructure:"debug"`

	Catalog   CatalogSettings      `yaml:"catalog" mapstructure:"catalog"`
	Images    ImageSettings        `yaml:"images" mapstructure:"images"`
	WebServer WebServerSettings    `yaml:"webserver" mapstructure:"webserver"`
	Metrics   MetricsSettings      `yaml:"metrics" mapstructure:"metrics"`
	Sentry    SentrySettings       `yaml:"sentry" mapstructure:"sentry"`
	Logging   logger.LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

// CatalogSettings selects where the catalog JSON comes from. An empty DataDir
// uses the data bundled with the binary.
type CatalogSettings struct {
	DataDir         string `yaml:"datadir" mapstructure:"datadir"`
	GroupsFile      string `yaml:"groupsfile" mapstructure:"groupsfile"`
	DetailsFile     string `yaml:"detailsfile" mapstructure:"detailsfile"`
	ImageMetaFile   string `yaml:"imagemetafile" mapstructure:"imagemetafile"`
	GroupImagesFile string `yaml:"groupimagesfile" mapstructure:"groupimagesfile"`
	// ExtraDenied lists image filenames hidden in addition to the built-in denylist.
	ExtraDenied []string `yaml:"extradenied" mapstructure:"extradenied"`
}

// ImageSettings controls the remote image fetcher.
type ImageSettings struct {
	UserAgent            string        `yaml:"useragent" mapstructure:"useragent"`
	Timeout              time.Duration `yaml:"timeout" mapstructure:"timeout"`
	MaxConcurrentFetches int           `yaml:"maxconcurrentfetches" mapstructure:"maxconcurrentfetches"` // 0 means unlimited
	RateLimit            float64       `yaml:"ratelimit" mapstructure:"ratelimit"`                       // downloads per second, 0 means unlimited
	RateBurst            int           `yaml:"rateburst" mapstructure:"rateburst"`
}

// WebServerSettings controls the JSON API.
type WebServerSettings struct {
	Listen         string   `yaml:"listen" mapstructure:"listen"`
	AllowedOrigins []string `yaml:"allowedorigins" mapstructure:"allowedorigins"` // CORS origins
}

// MetricsSettings toggles the Prometheus endpoint.
type MetricsSettings struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
}

// SentrySettings enables error telemetry when a DSN is set.
type SentrySettings struct {
	Enabled     bool   `yaml:"enabled" mapstructure:"enabled"`
	DSN         string `yaml:"dsn" mapstructure:"dsn"`
	Environment string `yaml:"environment" mapstructure:"environment"`
}

var (
	settingsInstance *Settings
	settingsMutex    sync.RWMutex
)

// Load reads configFile, or searches the default config paths when
// configFile is empty, applies environment overrides and validates the
// result. A missing config file is not an error; defaults are used.
func Load(configFile string) (*Settings, error) {
	v, err := newViper(configFile)
	if err != nil {
		return nil, err
	}

	settings := &Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, errors.New(err).
			Component("configuration").
			Category(errors.CategoryConfiguration).
			Context("operation", "unmarshal").
			Build()
	}

	if err := ValidateSettings(settings); err != nil {
		return nil, errors.New(err).
			Component("configuration").
			Category(errors.CategoryValidation).
			Build()
	}

	settingsMutex.Lock()
	settingsInstance = settings
	settingsMutex.Unlock()

	return settings, nil
}

// newViper builds an isolated viper instance so repeated loads never share state.
func newViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	setDefaultConfig(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		for _, path := range GetDefaultConfigPaths() {
			v.AddConfigPath(path)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, errors.New(err).
			Component("configuration").
			Category(errors.CategoryConfiguration).
			Context("operation", "read-config").
			Context("config_file", configFile).
			Build()
	}

	return v, nil
}

// GetSettings returns the most recently loaded settings, or nil.
func GetSettings() *Settings {
	settingsMutex.RLock()
	defer settingsMutex.RUnlock()
	return settingsInstance
}

// DefaultConfig returns the commented default configuration file.
func DefaultConfig() ([]byte, error) {
	return fs.ReadFile(configFiles, "config.yaml")
}

// WriteDefaultConfig writes the default configuration to path unless a file
// already exists there.
func WriteDefaultConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return errors.Newf("config file already exists: %s", path).
			Component("configuration").
			Category(errors.CategoryConfiguration).
			Build()
	}

	data, err := DefaultConfig()
	if err != nil {
		return fmt.Errorf("error reading embedded config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("error creating directories for config file: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}

// SaveYAMLConfig writes settings to configPath. Comments are not preserved.
func SaveYAMLConfig(configPath string, settings *Settings) error {
	yamlData, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("error marshaling settings to YAML: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(configPath), "config-*.yaml")
	if err != nil {
		return fmt.Errorf("error creating temporary file: %w", err)
	}
	tempFileName := tempFile.Name()
	defer os.Remove(tempFileName)

	if _, err := tempFile.Write(yamlData); err != nil {
		tempFile.Close()
		return fmt.Errorf("error writing to temporary file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("error closing temporary file: %w", err)
	}

	if err := os.Rename(tempFileName, configPath); err != nil {
		return fmt.Errorf("error replacing config file: %w", err)
	}

	return nil
}
