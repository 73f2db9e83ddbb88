// Package errors - telemetry integration (optional)
package errors

import (
	"sync"
	"sync/atomic"
	"time"
)

// TelemetryReporter is an interface for reporting errors to telemetry systems
type TelemetryReporter interface {
	ReportError(err *EnhancedError)
	IsEnabled() bool
}

// TelemetryFlusher is implemented by reporters that deliver events
// asynchronously.
type TelemetryFlusher interface {
	Flush(timeout time.Duration) bool
}

// FlushTelemetry waits up to timeout for the installed reporter to deliver
// queued events. It reports false if events may have been dropped.
func FlushTelemetry(timeout time.Duration) bool {
	reporterMu.RLock()
	r := reporter
	reporterMu.RUnlock()

	f, ok := r.(TelemetryFlusher)
	if !ok {
		return true
	}
	return f.Flush(timeout)
}

// ErrorHook is called for every error built while reporting is active.
type ErrorHook func(ee *EnhancedError)

var (
	hasActiveReporting atomic.Bool

	reporterMu sync.RWMutex
	reporter   TelemetryReporter
	hooks      []ErrorHook
	scrubber   func(string) string
)

// SetPrivacyScrubber installs the function applied to messages and context
// values before they are sent to telemetry. Passing nil disables scrubbing.
func SetPrivacyScrubber(fn func(string) string) {
	reporterMu.Lock()
	defer reporterMu.Unlock()
	scrubber = fn
}

func scrub(s string) string {
	reporterMu.RLock()
	fn := scrubber
	reporterMu.RUnlock()
	if fn == nil {
		return s
	}
	return fn(s)
}

// SetTelemetryReporter installs the telemetry reporter. Passing nil disables it.
func SetTelemetryReporter(r TelemetryReporter) {
	reporterMu.Lock()
	defer reporterMu.Unlock()
	reporter = r
	updateActiveReporting()
}

// AddErrorHook registers a hook that observes every built error.
func AddErrorHook(hook ErrorHook) {
	if hook == nil {
		return
	}
	reporterMu.Lock()
	defer reporterMu.Unlock()
	hooks = append(hooks, hook)
	updateActiveReporting()
}

// ClearErrorHooks removes all registered hooks.
func ClearErrorHooks() {
	reporterMu.Lock()
	defer reporterMu.Unlock()
	hooks = nil
	updateActiveReporting()
}

// updateActiveReporting must be called with reporterMu held.
func updateActiveReporting() {
	active := len(hooks) > 0 || (reporter != nil && reporter.IsEnabled())
	hasActiveReporting.Store(active)
}

func report(ee *EnhancedError) {
	reporterMu.RLock()
	r := reporter
	hs := make([]ErrorHook, len(hooks))
	copy(hs, hooks)
	reporterMu.RUnlock()

	for _, hook := range hs {
		hook(ee)
	}

	if r != nil && r.IsEnabled() && !ee.IsReported() {
		r.ReportError(ee)
		ee.MarkReported()
	}
}
