// conf/validate.go

package conf

import (
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/tphakala/birdcatalog/internal/logger"
)

// ValidationError represents a collection of validation errors
type ValidationError struct {
	Errors []string
}

// Error returns a string representation of the validation errors
func (ve ValidationError) Error() string {
	return fmt.Sprintf("Validation errors: %v", ve.Errors)
}

// ValidateSettings validates the entire Settings struct
func ValidateSettings(settings *Settings) error {
	ve := ValidationError{}

	validators := []func(*Settings) error{
		func(s *Settings) error { return validateCatalogSettings(&s.Catalog) },
		func(s *Settings) error { return validateImageSettings(&s.Images) },
		func(s *Settings) error { return validateWebServerSettings(&s.WebServer) },
		func(s *Settings) error { return validateSentrySettings(&s.Sentry) },
		func(s *Settings) error { return validateLoggingSettings(&s.Logging) },
	}

	for _, validate := range validators {
		if err := validate(settings); err != nil {
			ve.Errors = append(ve.Errors, err.Error())
		}
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

func validateCatalogSettings(settings *CatalogSettings) error {
	var errs []string

	if settings.DataDir != "" {
		info, err := os.Stat(settings.DataDir)
		switch {
		case err != nil:
			errs = append(errs, fmt.Sprintf("catalog data directory %q is not accessible: %v", settings.DataDir, err))
		case !info.IsDir():
			errs = append(errs, fmt.Sprintf("catalog data directory %q is not a directory", settings.DataDir))
		}
	}

	for name, file := range map[string]string{
		"groupsfile":      settings.GroupsFile,
		"detailsfile":     settings.DetailsFile,
		"imagemetafile":   settings.ImageMetaFile,
		"groupimagesfile": settings.GroupImagesFile,
	} {
		if strings.TrimSpace(file) == "" {
			errs = append(errs, fmt.Sprintf("catalog %s must not be empty", name))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog settings errors: %v", errs)
	}
	return nil
}

func validateImageSettings(settings *ImageSettings) error {
	var errs []string

	if settings.Timeout <= 0 {
		errs = append(errs, "image fetch timeout must be greater than zero")
	}
	if settings.MaxConcurrentFetches < 0 {
		errs = append(errs, "maxconcurrentfetches must be zero (unlimited) or positive")
	}
	if settings.RateLimit < 0 {
		errs = append(errs, "ratelimit must be zero (unlimited) or positive")
	}
	if settings.RateLimit > 0 && settings.RateBurst < 1 {
		errs = append(errs, "rateburst must be at least 1 when ratelimit is set")
	}
	if strings.TrimSpace(settings.UserAgent) == "" {
		errs = append(errs, "image user agent must not be empty")
	}

	if len(errs) > 0 {
		return fmt.Errorf("image settings errors: %v", errs)
	}
	return nil
}

func validateWebServerSettings(settings *WebServerSettings) error {
	if _, _, err := net.SplitHostPort(settings.Listen); err != nil {
		return fmt.Errorf("invalid webserver listen address %q: %w", settings.Listen, err)
	}
	return nil
}

func validateSentrySettings(settings *SentrySettings) error {
	if settings.Enabled && settings.DSN == "" {
		return fmt.Errorf("sentry is enabled but no DSN is configured")
	}
	return nil
}

func validateLoggingSettings(settings *logger.LoggingConfig) error {
	var errs []string

	check := func(name, level string) {
		switch logger.LogLevel(strings.ToLower(level)) {
		case "", logger.LogLevelTrace, logger.LogLevelDebug, logger.LogLevelInfo, logger.LogLevelWarn, logger.LogLevelError:
		default:
			errs = append(errs, fmt.Sprintf("invalid %s log level %q", name, level))
		}
	}

	check("default", settings.DefaultLevel)
	if settings.Console != nil {
		check("console", settings.Console.Level)
	}
	if settings.FileOutput != nil {
		check("file", settings.FileOutput.Level)
	}
	for module, level := range settings.ModuleLevels {
		check(module, level)
	}

	if len(errs) > 0 {
		return fmt.Errorf("logging settings errors: %v", errs)
	}
	return nil
}
