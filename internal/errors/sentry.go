package errors

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
)

// SentryReporter implements TelemetryReporter for Sentry
type SentryReporter struct {
	enabled bool
}

// NewSentryReporter creates a new Sentry telemetry reporter. The Sentry client
// must already be initialized with sentry.Init.
func NewSentryReporter(enabled bool) *SentryReporter {
	return &SentryReporter{enabled: enabled}
}

// IsEnabled returns whether Sentry telemetry is enabled
func (sr *SentryReporter) IsEnabled() bool {
	return sr.enabled
}

// ReportError reports an enhanced error to Sentry. The error message and
// string context values pass through the privacy scrubber first.
func (sr *SentryReporter) ReportError(ee *EnhancedError) {
	if !sr.enabled || ee.IsReported() {
		return
	}

	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("component", ee.GetComponent())
		scope.SetTag("category", string(ee.Category))
		scope.SetTag("error_type", fmt.Sprintf("%T", ee.Err))
		if ee.Priority != "" {
			scope.SetTag("priority", ee.Priority)
		}

		for key, value := range ee.GetContext() {
			if str, ok := value.(string); ok {
				value = scrub(str)
			}
			scope.SetContext(key, sentry.Context{"value": value})
		}

		scope.SetLevel(levelFor(ee.Category))
		scope.SetFingerprint([]string{ee.GetComponent(), string(ee.Category)})

		sentry.CaptureException(&scrubbedError{msg: scrub(ee.Err.Error()), err: ee.Err})
	})
}

// Flush waits for buffered Sentry events to be sent.
func (sr *SentryReporter) Flush(timeout time.Duration) bool {
	if !sr.enabled {
		return true
	}
	return sentry.Flush(timeout)
}

func levelFor(category ErrorCategory) sentry.Level {
	switch category {
	case CategoryFileParsing, CategoryConfiguration, CategorySystem:
		return sentry.LevelError
	case CategoryNotFound, CategoryCancellation:
		return sentry.LevelInfo
	default:
		return sentry.LevelWarning
	}
}

// scrubbedError carries a scrubbed message while keeping the original chain
// for type inspection.
type scrubbedError struct {
	msg string
	err error
}

func (e *scrubbedError) Error() string { return e.msg }
func (e *scrubbedError) Unwrap() error { return e.err }
