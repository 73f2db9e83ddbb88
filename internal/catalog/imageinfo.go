package catalog

import (
	"fmt"
	"time"

	"github.com/tidwall/gjson"
)

// AssetKind tells what an image metadata entry points at.
type AssetKind int

const (
	// AssetUnresolvable entries have neither responsive URLs nor a duration.
	AssetUnresolvable AssetKind = iota
	// AssetImage entries carry at least one responsive URL.
	AssetImage
	// AssetVideo entries carry a playback duration instead of responsive URLs.
	AssetVideo
)

func (k AssetKind) String() string {
	switch k {
	case AssetImage:
		return "image"
	case AssetVideo:
		return "video"
	default:
		return "unresolvable"
	}
}

// ResponsiveURL is one size variant of an image, keyed by its srcset
// descriptor such as "1.5x".
type ResponsiveURL struct {
	Descriptor string `json:"descriptor"`
	URL        string `json:"url"`
}

// Asset is the variant decided when an ImageInfo is decoded.
type Asset struct {
	Kind           AssetKind       `json:"kind"`
	ResponsiveURLs []ResponsiveURL `json:"responsiveUrls,omitempty"`
	Duration       time.Duration   `json:"duration,omitempty"`
}

// ImageInfo is the image host's metadata for one file.
type ImageInfo struct {
	Timestamp           string `json:"timestamp"`
	User                string `json:"user"`
	Size                int64  `json:"size"`
	Width               int    `json:"width"`
	Height              int    `json:"height"`
	Comment             string `json:"comment"`
	ThumbURL            string `json:"thumburl"`
	ThumbWidth          int    `json:"thumbwidth"`
	ThumbHeight         int    `json:"thumbheight"`
	URL                 string `json:"url"`
	DescriptionURL      string `json:"descriptionurl"`
	DescriptionShortURL string `json:"descriptionshorturl"`
	MIME                string `json:"mime"`
	Asset               Asset  `json:"asset"`
}

// DisplayURL returns the first responsive URL of an image asset.
func (i *ImageInfo) DisplayURL() (string, bool) {
	if i.Asset.Kind != AssetImage || len(i.Asset.ResponsiveURLs) == 0 {
		return "", false
	}
	return i.Asset.ResponsiveURLs[0].URL, true
}

// UnmarshalJSON decodes the metadata with gjson so that responsiveUrls keep
// the order in which they appear in the document.
func (i *ImageInfo) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("invalid image info JSON")
	}
	r := gjson.ParseBytes(data)
	if !r.IsObject() {
		return fmt.Errorf("image info must be an object, got %s", r.Type)
	}

	*i = ImageInfo{
		Timestamp:           r.Get("timestamp").String(),
		User:                r.Get("user").String(),
		Size:                r.Get("size").Int(),
		Width:               int(r.Get("width").Int()),
		Height:              int(r.Get("height").Int()),
		Comment:             r.Get("comment").String(),
		ThumbURL:            r.Get("thumburl").String(),
		ThumbWidth:          int(r.Get("thumbwidth").Int()),
		ThumbHeight:         int(r.Get("thumbheight").Int()),
		URL:                 r.Get("url").String(),
		DescriptionURL:      r.Get("descriptionurl").String(),
		DescriptionShortURL: r.Get("descriptionshorturl").String(),
		MIME:                r.Get("mime").String(),
		Asset:               decodeAsset(r),
	}
	return nil
}

// decodeAsset prefers responsive URLs over a duration when both are present.
func decodeAsset(r gjson.Result) Asset {
	if urls := r.Get("responsiveUrls"); urls.IsObject() {
		var variants []ResponsiveURL
		urls.ForEach(func(key, value gjson.Result) bool {
			if value.Type == gjson.String && value.Str != "" {
				variants = append(variants, ResponsiveURL{Descriptor: key.String(), URL: value.Str})
			}
			return true
		})
		if len(variants) > 0 {
			return Asset{Kind: AssetImage, ResponsiveURLs: variants}
		}
	}

	if d := r.Get("duration"); d.Type == gjson.Number {
		return Asset{Kind: AssetVideo, Duration: time.Duration(d.Float() * float64(time.Second))}
	}

	return Asset{Kind: AssetUnresolvable}
}
