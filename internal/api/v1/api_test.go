package api

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/birdcatalog/internal/errors"
	"github.com/tphakala/birdcatalog/internal/imageprovider"
)

func TestNewRequiresDependencies(t *testing.T) {
	t.Parallel()

	_, err := New(nil, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryValidation))

	_, err = New(echo.New(), nil, nil)
	require.Error(t, err)
}

func TestListGroups(t *testing.T) {
	t.Parallel()

	c := newTestController(t, nil)
	rec := doGet(t, c, "/api/v1/groups")
	require.Equal(t, http.StatusOK, rec.Code)

	groups := decodeJSON[[]GroupSummary](t, rec)
	require.Len(t, groups, 4)
	assert.Equal(t, "Tinamous", groups[0].Category)
	assert.Equal(t, 4, groups[0].MemberCount)

	trogons := groups[1]
	assert.Equal(t, "Trogons", trogons.Category)
	assert.Equal(t, []string{quetzalMaleURL, bairdsTrogonURL}, trogons.PreviewImages)

	pigeons := groups[3]
	assert.NotNil(t, pigeons.PreviewImages)
	assert.Empty(t, pigeons.PreviewImages)
}

func TestGetGroup(t *testing.T) {
	t.Parallel()

	c := newTestController(t, nil)

	rec := doGet(t, c, "/api/v1/groups/Trogons")
	require.Equal(t, http.StatusOK, rec.Code)
	g := decodeJSON[GroupDetail](t, rec)
	assert.Equal(t, "Trogons", g.Category)
	require.Len(t, g.Species, 4)
	assert.Equal(t, "Resplendent_Quetzal", g.Species[0].Title)

	rec = doGet(t, c, "/api/v1/groups/"+url.PathEscape("Pigeons and doves")+"/species")
	require.Equal(t, http.StatusOK, rec.Code)
	species := decodeJSON[[]SpeciesSummary](t, rec)
	require.Len(t, species, 3)
	assert.Equal(t, "introduced", species[0].Tag)
	assert.Equal(t, "Introduced", species[0].TagName)
}

func TestGetGroupImages(t *testing.T) {
	t.Parallel()

	c := newTestController(t, nil)

	rec := doGet(t, c, "/api/v1/groups/Trogons/images")
	require.Equal(t, http.StatusOK, rec.Code)
	all := decodeJSON[ImageList](t, rec)
	assert.False(t, all.Preview)
	assert.Equal(t, 3, all.Count)

	rec = doGet(t, c, "/api/v1/groups/Trogons/images?preview=true")
	require.Equal(t, http.StatusOK, rec.Code)
	preview := decodeJSON[ImageList](t, rec)
	assert.True(t, preview.Preview)
	assert.Equal(t, []string{quetzalMaleURL, bairdsTrogonURL}, preview.Images)
}

func TestGroupNotFound(t *testing.T) {
	t.Parallel()

	c := newTestController(t, nil)

	for _, path := range []string{"/api/v1/groups/Penguins", "/api/v1/groups/Penguins/species", "/api/v1/groups/Penguins/images"} {
		rec := doGet(t, c, path)
		require.Equal(t, http.StatusNotFound, rec.Code, path)

		resp := decodeJSON[ErrorResponse](t, rec)
		assert.Equal(t, "Group not found", resp.Message)
		assert.Equal(t, http.StatusNotFound, resp.Code)
		_, err := uuid.Parse(resp.CorrelationID)
		assert.NoError(t, err, "correlation id should be a UUID")
	}
}

func TestGetSpecies(t *testing.T) {
	t.Parallel()

	c := newTestController(t, nil)

	rec := doGet(t, c, "/api/v1/species/Resplendent_Quetzal")
	require.Equal(t, http.StatusOK, rec.Code)
	info := decodeJSON[SpeciesInfo](t, rec)
	assert.Equal(t, "Resplendent Quetzal", info.Name)
	assert.Equal(t, "Trogons", info.Group)
	assert.True(t, info.HasDetail)
	assert.NotEmpty(t, info.Summary)
	assert.Equal(t, []string{quetzalMaleURL, quetzalFemaleURL}, info.PreviewImages)

	rec = doGet(t, c, "/api/v1/species/Slaty-breasted_Tinamou")
	require.Equal(t, http.StatusOK, rec.Code)
	info = decodeJSON[SpeciesInfo](t, rec)
	assert.False(t, info.HasDetail)
	assert.Empty(t, info.PreviewImages)

	rec = doGet(t, c, "/api/v1/species/Dodo")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetSpeciesImages(t *testing.T) {
	t.Parallel()

	c := newTestController(t, nil)

	rec := doGet(t, c, "/api/v1/species/Resplendent_Quetzal/images")
	require.Equal(t, http.StatusOK, rec.Code)
	all := decodeJSON[ImageList](t, rec)
	assert.Equal(t, "Resplendent_Quetzal", all.Subject)
	assert.Equal(t, []string{quetzalMaleURL, quetzalFemaleURL, quetzalCostaURL, quetzalMonteURL}, all.Images)

	rec = doGet(t, c, "/api/v1/species/Resplendent_Quetzal/images?preview=1")
	require.Equal(t, http.StatusOK, rec.Code)
	preview := decodeJSON[ImageList](t, rec)
	assert.Equal(t, 2, preview.Count)

	rec = doGet(t, c, "/api/v1/species/Slaty-breasted_Tinamou/images")
	require.Equal(t, http.StatusOK, rec.Code)
	none := decodeJSON[ImageList](t, rec)
	assert.Equal(t, 0, none.Count)
	assert.NotNil(t, none.Images)
}

func TestGetImage(t *testing.T) {
	t.Parallel()

	images := &stubImages{images: map[string]imageprovider.Image{
		quetzalMaleURL: {URL: quetzalMaleURL, Data: jpegBytes, MIME: "image/jpeg", Extension: "jpg"},
	}}
	c := newTestController(t, images)

	rec := doGet(t, c, "/api/v1/images?url="+url.QueryEscape(quetzalMaleURL))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/jpeg", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, imageCacheControl, rec.Header().Get(echo.HeaderCacheControl))
	assert.Equal(t, jpegBytes, rec.Body.Bytes())
	assert.Equal(t, []string{quetzalMaleURL}, images.calls)
}

func TestGetImageRejectsUnknownURLs(t *testing.T) {
	t.Parallel()

	images := &stubImages{}
	c := newTestController(t, images)

	rec := doGet(t, c, "/api/v1/images")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doGet(t, c, "/api/v1/images?url="+url.QueryEscape("http://169.254.169.254/latest/meta-data"))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	assert.Empty(t, images.calls, "unknown URLs must never reach the fetcher")
}

func TestGetImageFetchErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "upstream not found",
			err: errors.New(&imageprovider.FetchError{URL: quetzalMaleURL, Kind: imageprovider.KindStatus, StatusCode: 404, Err: imageprovider.ErrBadStatus}).
				Category(errors.CategoryImageFetch).Build(),
			want: http.StatusNotFound,
		},
		{
			name: "not an image",
			err: errors.New(&imageprovider.FetchError{URL: quetzalMaleURL, Kind: imageprovider.KindNotImage, Err: imageprovider.ErrUndecodableImage}).
				Category(errors.CategoryImageFetch).Build(),
			want: http.StatusBadGateway,
		},
		{
			name: "cancelled",
			err:  errors.Newf("context canceled").Category(errors.CategoryCancellation).Build(),
			want: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newTestController(t, &stubImages{err: tt.err})
			rec := doGet(t, c, "/api/v1/images?url="+url.QueryEscape(quetzalMaleURL))
			assert.Equal(t, tt.want, rec.Code)

			resp := decodeJSON[ErrorResponse](t, rec)
			assert.Equal(t, "Failed to fetch image", resp.Message)
		})
	}
}

func TestGetImageWithoutImageService(t *testing.T) {
	t.Parallel()

	c := newTestController(t, nil)
	rec := doGet(t, c, "/api/v1/images?url="+url.QueryEscape(quetzalMaleURL))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestNewErrorResponse(t *testing.T) {
	t.Parallel()

	resp := NewErrorResponse(nil, "Species not found", http.StatusNotFound)
	assert.Equal(t, "Species not found", resp.Error)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	other := NewErrorResponse(assert.AnError, "Failed", http.StatusBadGateway)
	assert.Equal(t, assert.AnError.Error(), other.Error)
	assert.NotEqual(t, resp.CorrelationID, other.CorrelationID)
}
