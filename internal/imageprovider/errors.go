package imageprovider

import (
	"fmt"

	"github.com/tphakala/birdcatalog/internal/errors"
)

// Sentinel causes carried by FetchError.
var (
	ErrMissingBody      = errors.NewStd("missing body")
	ErrUndecodableImage = errors.NewStd("unable to make image from data")
	ErrBadStatus        = errors.NewStd("unexpected HTTP status")
	ErrBodyTooLarge     = errors.NewStd("response body exceeds size limit")
	ErrCacheClosed      = errors.NewStd("image cache is closed")
)

// FetchErrorKind classifies a failed fetch.
type FetchErrorKind string

const (
	KindTransport FetchErrorKind = "transport"
	KindStatus    FetchErrorKind = "status"
	KindEmptyBody FetchErrorKind = "empty_body"
	KindTooLarge  FetchErrorKind = "too_large"
	KindNotImage  FetchErrorKind = "not_image"
)

// FetchError is the typed failure of a single image fetch. It is never
// cached; the next request for the same URL fetches again.
type FetchError struct {
	URL        string
	Kind       FetchErrorKind
	StatusCode int // set for KindStatus
	Err        error
}

func (e *FetchError) Error() string {
	if e.Kind == KindStatus {
		return fmt.Sprintf("fetch %s: %v: %d", e.URL, e.Err, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// asFetchError returns err as a *FetchError, treating any other error as a
// transport failure.
func asFetchError(url string, err error) *FetchError {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe
	}
	return &FetchError{URL: url, Kind: KindTransport, Err: err}
}
