package catalog

import (
	"io"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/birdcatalog/internal/errors"
	"github.com/tphakala/birdcatalog/internal/logger"
)

func validSources() Sources {
	return Sources{
		Groups: []byte(`[{"category":"Trogons","order":{"name":"Trogoniformes","link":""},"family":{"name":"Trogonidae","link":""},
			"summary":"","summaryHTML":"","images":[],"birds":[{"name":"Resplendent Quetzal","link":"","latin":"Pharomachrus mocinno"}]}]`),
		Details:        []byte(`[{"birdTitle":"Resplendent_Quetzal","summary":"","imageFiles":["q.jpg"]}]`),
		ImageMeta:      []byte(`[{"filename":"q.jpg","info":{"responsiveUrls":{"1.5x":"https://img/q.jpg"}}}]`),
		GroupImageMeta: []byte(`[]`),
	}
}

func quietLogger() Option {
	return WithLogger(logger.NewSlogLogger(io.Discard, logger.LogLevelError))
}

func TestLoad_Minimal(t *testing.T) {
	t.Parallel()

	c, err := Load(validSources(), quietLogger())
	require.NoError(t, err)

	s, _, ok := c.FindSpecies("Resplendent_Quetzal")
	require.True(t, ok)
	assert.Equal(t, []string{"https://img/q.jpg"}, c.AllImages(s))
}

func TestLoad_FailsOnBadSource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Sources)
		source string
	}{
		{"missing groups", func(s *Sources) { s.Groups = nil }, "groups"},
		{"blank details", func(s *Sources) { s.Details = []byte("  \n") }, "details"},
		{"object instead of array", func(s *Sources) { s.ImageMeta = []byte(`{"filename":"q.jpg"}`) }, "image_meta"},
		{"malformed group image meta", func(s *Sources) { s.GroupImageMeta = []byte(`[{"filename":`) }, "group_image_meta"},
		{"wrong field type", func(s *Sources) { s.Details = []byte(`[{"birdTitle":42}]`) }, "details"},
		{"bad image info", func(s *Sources) { s.ImageMeta = []byte(`[{"filename":"q.jpg","info":"text"}]`) }, "image_meta"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := validSources()
			tt.mutate(&src)

			c, err := Load(src, quietLogger())
			require.Error(t, err)
			assert.Nil(t, c, "no partial catalog")
			assert.True(t, errors.IsCategory(err, errors.CategoryFileParsing))

			var ee *errors.EnhancedError
			require.ErrorAs(t, err, &ee)
			assert.Equal(t, tt.source, ee.GetContext()["source"])
		})
	}
}

func TestLoadFS_MissingFile(t *testing.T) {
	t.Parallel()

	src := validSources()
	fsys := fstest.MapFS{
		"bird-groups.json":  {Data: src.Groups},
		"bird-details.json": {Data: src.Details},
		"image-meta.json":   {Data: src.ImageMeta},
	}

	_, err := LoadFS(fsys, DefaultPaths, quietLogger())
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryFileIO))

	fsys["bird-groups-image-meta.json"] = &fstest.MapFile{Data: src.GroupImageMeta}
	_, err = LoadFS(fsys, DefaultPaths, quietLogger())
	require.NoError(t, err)
}

func TestDefaultDenylistIsCopied(t *testing.T) {
	t.Parallel()

	list := DefaultDenylist()
	require.NotEmpty(t, list)
	list[0] = "changed"
	assert.NotEqual(t, "changed", DefaultDenylist()[0])
}
