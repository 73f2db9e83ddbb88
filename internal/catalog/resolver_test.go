package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func imageMeta(filename string, urls ...string) ImageMeta {
	variants := make([]ResponsiveURL, 0, len(urls))
	for i, u := range urls {
		variants = append(variants, ResponsiveURL{Descriptor: []string{"1.5x", "2x", "3x"}[i%3], URL: u})
	}
	kind := AssetImage
	if len(urls) == 0 {
		kind = AssetUnresolvable
	}
	return ImageMeta{Filename: filename, Info: ImageInfo{Asset: Asset{Kind: kind, ResponsiveURLs: variants}}}
}

// countingLookup resolves against entries and records every lookup.
type countingLookup struct {
	entries map[string]ImageMeta
	calls   []string
}

func newLookup(entries ...ImageMeta) *countingLookup {
	l := &countingLookup{entries: make(map[string]ImageMeta)}
	for _, e := range entries {
		l.entries[e.Filename] = e
	}
	return l
}

func (l *countingLookup) lookup(filename string) (*ImageMeta, bool) {
	l.calls = append(l.calls, filename)
	m, ok := l.entries[filename]
	if !ok {
		return nil, false
	}
	return &m, true
}

func TestResolveImages_DedupPreservesFirstOccurrence(t *testing.T) {
	t.Parallel()

	l := newLookup(
		imageMeta("a.jpg", "https://img/a"),
		imageMeta("b.jpg", "https://img/b"),
		imageMeta("c.jpg", "https://img/c"),
	)

	got := ResolveImages([]string{"b.jpg", "a.jpg", "b.jpg", "c.jpg", "a.jpg"}, 0, l.lookup)

	assert.Equal(t, []string{"https://img/b", "https://img/a", "https://img/c"}, got)
	assert.Equal(t, []string{"b.jpg", "a.jpg", "c.jpg"}, l.calls, "each filename is looked up once")
}

func TestResolveImages_TruncatesBeforeResolution(t *testing.T) {
	t.Parallel()

	l := newLookup(
		imageMeta("a.jpg", "https://img/a"),
		imageMeta("c.jpg", "https://img/c"),
		imageMeta("d.jpg", "https://img/d"),
		imageMeta("e.jpg", "https://img/e"),
	)

	// b.jpg has no metadata; it still occupies one of the three candidate slots.
	got := ResolveImages([]string{"a.jpg", "b.jpg", "a.jpg", "c.jpg", "d.jpg", "e.jpg"}, 3, l.lookup)

	assert.Equal(t, []string{"https://img/a", "https://img/c"}, got)
	assert.Equal(t, []string{"a.jpg", "b.jpg", "c.jpg"}, l.calls)
}

func TestResolveImages_SkipsEntriesWithoutResponsiveURLs(t *testing.T) {
	t.Parallel()

	video := ImageMeta{Filename: "clip.webm", Info: ImageInfo{Asset: Asset{Kind: AssetVideo, Duration: 3}}}
	l := newLookup(
		imageMeta("map.png"),
		video,
		imageMeta("bird.jpg", "https://img/bird-1.5x", "https://img/bird-2x"),
	)

	got := ResolveImages([]string{"map.png", "clip.webm", "bird.jpg"}, 0, l.lookup)
	assert.Equal(t, []string{"https://img/bird-1.5x"}, got, "first responsive URL only")
}

func TestResolveImages_DedupesByResolvedFilename(t *testing.T) {
	t.Parallel()

	// Two candidate names resolving to the same index entry yield one URL.
	entry := imageMeta("Quetzal.jpg", "https://img/quetzal")
	lookup := func(filename string) (*ImageMeta, bool) {
		switch filename {
		case "Quetzal.jpg", "quetzal.jpg":
			return &entry, true
		}
		return nil, false
	}

	got := ResolveImages([]string{"Quetzal.jpg", "quetzal.jpg"}, 0, lookup)
	assert.Equal(t, []string{"https://img/quetzal"}, got)
}

func TestResolveImages_EmptyInputs(t *testing.T) {
	t.Parallel()

	l := newLookup()
	assert.Empty(t, ResolveImages(nil, 0, l.lookup))
	assert.Empty(t, ResolveImages([]string{"missing.jpg"}, 3, l.lookup))
}

func TestResolveImages_NegativeLimitIsUnbounded(t *testing.T) {
	t.Parallel()

	l := newLookup(
		imageMeta("a.jpg", "https://img/a"),
		imageMeta("b.jpg", "https://img/b"),
	)
	assert.Len(t, ResolveImages([]string{"a.jpg", "b.jpg"}, -1, l.lookup), 2)
}

func TestSpeciesImages(t *testing.T) {
	t.Parallel()

	rec := &recordingRecorder{}
	c := loadBundled(t, WithRecorder(rec))

	tests := []struct {
		title       string
		wantAll     []string
		wantPreview []string
	}{
		{
			title:       "Great_Tinamou",
			wantAll:     []string{greatTinamouURL, tinamouEggsURL},
			wantPreview: []string{greatTinamouURL, tinamouEggsURL},
		},
		{
			title:       "Resplendent_Quetzal",
			wantAll:     []string{quetzalMaleURL, quetzalFemaleURL, quetzalCostaURL, quetzalMonteURL},
			wantPreview: []string{quetzalMaleURL, quetzalFemaleURL},
		},
		{
			title:       "Little_Tinamou",
			wantAll:     []string{littleTinamouURL},
			wantPreview: []string{littleTinamouURL},
		},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			s := mustFindSpecies(t, c, tt.title)
			assert.Equal(t, tt.wantAll, c.AllImages(s))
			assert.Equal(t, tt.wantPreview, c.PreviewImages(s))
		})
	}

	assert.Equal(t, 3, rec.resolutions["species"])
	assert.Equal(t, 3, rec.resolutions["species_preview"])
}

func TestSpeciesWithoutDetailHasNoImages(t *testing.T) {
	t.Parallel()

	c := loadBundled(t)
	s := mustFindSpecies(t, c, "Slaty-breasted_Tinamou")

	assert.Nil(t, c.AllImages(s))
	assert.Nil(t, c.PreviewImages(s))
	assert.Nil(t, c.AllImages(nil))
}

func TestResolveEach_KeepsDuplicatesOneToOne(t *testing.T) {
	t.Parallel()

	l := newLookup(
		imageMeta("Trogon_bairdii.jpg", "https://example.org/bairdii-1.5x.jpg"),
		imageMeta("Trogon_caligatus.jpg", "https://example.org/caligatus-1.5x.jpg"),
		imageMeta("Trogon_badge.svg"),
	)

	got := ResolveEach([]string{
		"Trogon_bairdii.jpg",
		"Trogon_badge.svg",
		"Trogon_caligatus.jpg",
		"Unknown.jpg",
		"Trogon_bairdii.jpg",
	}, l.lookup)

	assert.Equal(t, []string{
		"https://example.org/bairdii-1.5x.jpg",
		"https://example.org/caligatus-1.5x.jpg",
		"https://example.org/bairdii-1.5x.jpg",
	}, got)
	assert.Len(t, l.calls, 5, "every group file is looked up, duplicates included")
	assert.Empty(t, ResolveEach(nil, l.lookup))
}

func TestGroupImages(t *testing.T) {
	t.Parallel()

	c := loadBundled(t)

	trogons, ok := c.Group("Trogons")
	require.True(t, ok)
	assert.Equal(t, []string{quetzalMaleURL, bairdsTrogonURL, garteredTrogonURL}, c.GroupImages(trogons))
	assert.Equal(t, []string{quetzalMaleURL, bairdsTrogonURL}, c.GroupPreviewImages(trogons),
		"the denied badge still uses a preview slot")

	pigeons, ok := c.Group("Pigeons and doves")
	require.True(t, ok)
	assert.Empty(t, c.GroupImages(pigeons))

	assert.Nil(t, c.GroupImages(nil))
}
