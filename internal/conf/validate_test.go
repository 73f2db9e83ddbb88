package conf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/birdcatalog/internal/logger"
)

func validSettings() *Settings {
	return &Settings{
		Catalog: CatalogSettings{
			GroupsFile:      "bird-groups.json",
			DetailsFile:     "bird-details.json",
			ImageMetaFile:   "image-meta.json",
			GroupImagesFile: "bird-groups-image-meta.json",
		},
		Images: ImageSettings{
			UserAgent: DefaultUserAgent,
			Timeout:   DefaultImageTimeout,
		},
		WebServer: WebServerSettings{Listen: DefaultListen},
		Logging:   logger.LoggingConfig{DefaultLevel: "info"},
	}
}

func TestValidateSettings(t *testing.T) {
	t.Parallel()

	notADir := filepath.Join(t.TempDir(), "file.json")
	require.NoError(t, os.WriteFile(notADir, []byte("[]"), 0o600))

	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr string
	}{
		{"valid", func(*Settings) {}, ""},
		{"zero timeout", func(s *Settings) { s.Images.Timeout = 0 }, "timeout"},
		{"negative concurrency", func(s *Settings) { s.Images.MaxConcurrentFetches = -1 }, "maxconcurrentfetches"},
		{"negative rate limit", func(s *Settings) { s.Images.RateLimit = -1 }, "ratelimit"},
		{"rate limit without burst", func(s *Settings) { s.Images.RateLimit = 2 }, "rateburst"},
		{"rate limit with burst", func(s *Settings) { s.Images.RateLimit, s.Images.RateBurst = 2, 2 }, ""},
		{"empty user agent", func(s *Settings) { s.Images.UserAgent = " " }, "user agent"},
		{"missing data dir", func(s *Settings) { s.Catalog.DataDir = "/nonexistent/birdcatalog" }, "not accessible"},
		{"data dir is a file", func(s *Settings) { s.Catalog.DataDir = notADir }, "not a directory"},
		{"empty groups file", func(s *Settings) { s.Catalog.GroupsFile = "" }, "groupsfile"},
		{"bad listen address", func(s *Settings) { s.WebServer.Listen = "8080" }, "listen address"},
		{"sentry without dsn", func(s *Settings) { s.Sentry.Enabled = true }, "DSN"},
		{"bad log level", func(s *Settings) { s.Logging.DefaultLevel = "loud" }, "log level"},
		{"bad module level", func(s *Settings) {
			s.Logging.ModuleLevels = map[string]string{"catalog": "verbose"}
		}, "catalog"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := validSettings()
			tt.mutate(s)

			err := ValidateSettings(s)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetDefaultConfigPaths(t *testing.T) {
	t.Parallel()

	paths := GetDefaultConfigPaths()
	require.NotEmpty(t, paths)
	assert.Equal(t, ".", paths[0])
}
