package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/birdcatalog/internal/catalog"
	"github.com/tphakala/birdcatalog/internal/catalog/data"
	"github.com/tphakala/birdcatalog/internal/imageprovider"
	"github.com/tphakala/birdcatalog/internal/logger"
)

const (
	quetzalMaleURL   = "https://upload.wikimedia.org/wikipedia/commons/thumb/2/29/Resplendent_Quetzal_male_2.jpg/330px-Resplendent_Quetzal_male_2.jpg"
	quetzalFemaleURL = "https://upload.wikimedia.org/wikipedia/commons/thumb/b/bf/Pharomachrus_mocinno_female.jpg/330px-Pharomachrus_mocinno_female.jpg"
	quetzalCostaURL  = "https://upload.wikimedia.org/wikipedia/commons/thumb/2/2d/Pharomachrus_mocinno_costaricensis_2.jpg/330px-Pharomachrus_mocinno_costaricensis_2.jpg"
	quetzalMonteURL  = "https://upload.wikimedia.org/wikipedia/commons/thumb/f/f4/Quetzal_Monteverde.jpg/330px-Quetzal_Monteverde.jpg"
	bairdsTrogonURL  = "https://upload.wikimedia.org/wikipedia/commons/thumb/4/46/Trogon_bairdii_-Costa_Rica-8.jpg/330px-Trogon_bairdii_-Costa_Rica-8.jpg"
)

var jpegBytes = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}

// stubImages answers Fetch from a fixed table.
type stubImages struct {
	mu     sync.Mutex
	images map[string]imageprovider.Image
	err    error
	calls  []string
}

func (s *stubImages) Fetch(_ context.Context, url string) (imageprovider.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, url)
	if s.err != nil {
		return imageprovider.Image{}, s.err
	}
	return s.images[url], nil
}

func newTestController(t *testing.T, images ImageFetcher) *Controller {
	t.Helper()

	quiet := logger.NewSlogLogger(io.Discard, logger.LogLevelError)
	cat, err := catalog.LoadFS(data.FS, catalog.DefaultPaths, catalog.WithLogger(quiet))
	require.NoError(t, err)

	c, err := New(echo.New(), cat, images, WithLogger(quiet))
	require.NoError(t, err)
	return c
}

func doGet(t *testing.T, c *Controller, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	c.Echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, http.NoBody))
	return rec
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}
