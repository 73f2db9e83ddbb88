package imageprovider

import (
	"context"
	"io"
	"net/http"

	"github.com/tphakala/birdcatalog/internal/httpclient"
)

// DefaultMaxImageBytes bounds a single downloaded image.
const DefaultMaxImageBytes = 20 << 20

// Fetcher downloads the body behind a URL. Implementations return a
// *FetchError for failures they can classify.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HTTPFetcher is the default Fetcher, backed by httpclient.
type HTTPFetcher struct {
	client   *httpclient.Client
	maxBytes int64
}

// NewHTTPFetcher returns a fetcher using client. maxBytes <= 0 selects
// DefaultMaxImageBytes.
func NewHTTPFetcher(client *httpclient.Client, maxBytes int64) *HTTPFetcher {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxImageBytes
	}
	return &HTTPFetcher{client: client, maxBytes: maxBytes}
}

// Fetch performs a GET and returns the body of a 2xx response.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	resp, err := f.client.Get(ctx, url)
	if err != nil {
		return nil, &FetchError{URL: url, Kind: KindTransport, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		// Drain a little so the connection can be reused.
		_, _ = io.CopyN(io.Discard, resp.Body, 4<<10)
		return nil, &FetchError{URL: url, Kind: KindStatus, StatusCode: resp.StatusCode, Err: ErrBadStatus}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, &FetchError{URL: url, Kind: KindTransport, Err: err}
	}
	if int64(len(data)) > f.maxBytes {
		return nil, &FetchError{URL: url, Kind: KindTooLarge, Err: ErrBodyTooLarge}
	}
	if len(data) == 0 {
		return nil, &FetchError{URL: url, Kind: KindEmptyBody, Err: ErrMissingBody}
	}

	return data, nil
}
