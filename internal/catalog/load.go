package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"time"

	"github.com/tphakala/birdcatalog/internal/errors"
	"github.com/tphakala/birdcatalog/internal/logger"
)

// Sources holds the four raw JSON documents a catalog is built from.
type Sources struct {
	Groups         []byte // bird-groups.json
	Details        []byte // bird-details.json
	ImageMeta      []byte // image-meta.json, the global image index
	GroupImageMeta []byte // bird-groups-image-meta.json
}

// Paths names the source files inside a filesystem.
type Paths struct {
	Groups         string
	Details        string
	ImageMeta      string
	GroupImageMeta string
}

// DefaultPaths are the file names used by the bundled data.
var DefaultPaths = Paths{
	Groups:         "bird-groups.json",
	Details:        "bird-details.json",
	ImageMeta:      "image-meta.json",
	GroupImageMeta: "bird-groups-image-meta.json",
}

// Recorder receives catalog statistics. *metrics.CatalogMetrics implements it.
type Recorder interface {
	RecordLoad(groups, species, globalImages, groupImages, deniedGlobal, deniedGroup int, seconds float64)
	RecordResolution(kind string, urls int)
}

type options struct {
	log      logger.Logger
	recorder Recorder
	denylist []string
	extra    []string
}

// Option configures Load.
type Option func(*options)

// WithLogger sets the logger used by the catalog.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithRecorder publishes load and resolution statistics to r.
func WithRecorder(r Recorder) Option {
	return func(o *options) { o.recorder = r }
}

// WithDenylist replaces the built-in denylist.
func WithDenylist(filenames ...string) Option {
	return func(o *options) { o.denylist = filenames }
}

// WithExtraDenied adds filenames to the denylist in use.
func WithExtraDenied(filenames ...string) Option {
	return func(o *options) { o.extra = append(o.extra, filenames...) }
}

// LoadFS reads the sources named by paths from fsys and loads them.
func LoadFS(fsys fs.FS, paths Paths, opts ...Option) (*Catalog, error) {
	var src Sources
	for _, f := range []struct {
		name string
		dst  *[]byte
	}{
		{paths.Groups, &src.Groups},
		{paths.Details, &src.Details},
		{paths.ImageMeta, &src.ImageMeta},
		{paths.GroupImageMeta, &src.GroupImageMeta},
	} {
		data, err := fs.ReadFile(fsys, f.name)
		if err != nil {
			return nil, errors.New(err).
				Component("catalog").
				Category(errors.CategoryFileIO).
				Context("operation", "read_source").
				FileContext(f.name, 0).
				Build()
		}
		*f.dst = data
	}

	return Load(src, opts...)
}

// Load decodes and indexes the four sources. Any missing or malformed
// source fails the whole load; there is no partial catalog.
func Load(src Sources, opts ...Option) (*Catalog, error) {
	o := options{denylist: defaultDenylist}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.Global().Module("catalog")
	}

	start := time.Now()

	var (
		groups    []Group
		details   []SpeciesDetail
		imageMeta []ImageMeta
		groupMeta []ImageMeta
	)
	for _, s := range []struct {
		name string
		data []byte
		dst  any
	}{
		{"groups", src.Groups, &groups},
		{"details", src.Details, &details},
		{"image_meta", src.ImageMeta, &imageMeta},
		{"group_image_meta", src.GroupImageMeta, &groupMeta},
	} {
		if err := decodeSource(s.name, s.data, s.dst); err != nil {
			return nil, err
		}
	}

	deny := newDenylist(o.denylist, o.extra)
	imageMeta, deniedGlobal := deny.filter(imageMeta)
	groupMeta, deniedGroup := deny.filter(groupMeta)

	c := newCatalog(groups, details, imageMeta, groupMeta, o.log, o.recorder)

	elapsed := time.Since(start)
	stats := c.Stats()
	o.log.Info("catalog loaded",
		logger.Int("groups", stats.Groups),
		logger.Int("species", stats.Species),
		logger.Int("details", stats.Details),
		logger.Int("image_meta", stats.ImageMeta),
		logger.Int("group_image_meta", stats.GroupImageMeta),
		logger.Int("denied", deniedGlobal+deniedGroup),
		logger.Duration("elapsed", elapsed))

	if o.recorder != nil {
		o.recorder.RecordLoad(stats.Groups, stats.Species, stats.ImageMeta, stats.GroupImageMeta,
			deniedGlobal, deniedGroup, elapsed.Seconds())
	}

	return c, nil
}

// decodeSource requires a non-empty JSON array.
func decodeSource(name string, data []byte, dst any) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return sourceError(name, fmt.Errorf("catalog source %s is empty", name))
	}
	if trimmed[0] != '[' {
		return sourceError(name, fmt.Errorf("catalog source %s must be a JSON array", name))
	}
	if err := json.Unmarshal(trimmed, dst); err != nil {
		return sourceError(name, fmt.Errorf("failed to decode catalog source %s: %w", name, err))
	}
	return nil
}

func sourceError(name string, err error) error {
	return errors.New(err).
		Component("catalog").
		Category(errors.CategoryFileParsing).
		Context("operation", "decode_source").
		Context("source", name).
		Build()
}
