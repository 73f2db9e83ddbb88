package imageprovider

import (
	"time"

	"github.com/h2non/filetype"
)

// Image is a fetched and validated image.
type Image struct {
	URL       string
	Data      []byte
	MIME      string
	Extension string
	FetchedAt time.Time
}

// Size returns the payload size in bytes.
func (i Image) Size() int {
	return len(i.Data)
}

// Result is delivered by FetchAsync and FetchAll.
type Result struct {
	URL   string
	Image Image
	Err   error
}

// decodeImage sniffs data and accepts it only when it is a known image format.
func decodeImage(url string, data []byte) (Image, error) {
	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown || !filetype.IsImage(data) {
		return Image{}, &FetchError{URL: url, Kind: KindNotImage, Err: ErrUndecodableImage}
	}

	return Image{
		URL:       url,
		Data:      data,
		MIME:      kind.MIME.Value,
		Extension: kind.Extension,
		FetchedAt: time.Now(),
	}, nil
}
