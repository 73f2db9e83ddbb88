package imageprovider_test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

var (
	pngBytes  = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}
	jpegBytes = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}
)

// fakeFetcher serves canned bodies and records every call.
type fakeFetcher struct {
	mu     sync.Mutex
	bodies map[string][]byte
	errs   map[string]error
	calls  map[string]int

	// started receives the URL of each fetch as it begins, when non-nil.
	started chan string
	// gate blocks every fetch until it is closed, when non-nil.
	gate  chan struct{}
	delay time.Duration

	inflight    atomic.Int32
	maxInflight atomic.Int32
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		bodies: make(map[string][]byte),
		errs:   make(map[string]error),
		calls:  make(map[string]int),
	}
}

func (f *fakeFetcher) serve(url string, body []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bodies[url] = body
	delete(f.errs, url)
}

func (f *fakeFetcher) fail(url string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[url] = err
}

func (f *fakeFetcher) callCount(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[url]
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	n := f.inflight.Add(1)
	defer f.inflight.Add(-1)
	for {
		highest := f.maxInflight.Load()
		if n <= highest || f.maxInflight.CompareAndSwap(highest, n) {
			break
		}
	}

	f.mu.Lock()
	f.calls[url]++
	body, err := f.bodies[url], f.errs[url]
	f.mu.Unlock()

	if f.started != nil {
		f.started <- url
	}
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	if err != nil {
		return nil, err
	}
	return body, nil
}
