package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tphakala/birdcatalog/internal/errors"
	"github.com/tphakala/birdcatalog/internal/imageprovider"
)

// imageCacheControl lets browsers keep proxied photographs for a day.
const imageCacheControl = "public, max-age=86400"

// initImageRoutes registers the image proxy endpoint
func (c *Controller) initImageRoutes() {
	c.Group.GET("/images", c.GetImage)
}

// GetImage serves an image through the fetch cache. Only URLs the catalog
// itself resolves are accepted.
func (c *Controller) GetImage(ctx echo.Context) error {
	url := strings.TrimSpace(ctx.QueryParam("url"))
	if url == "" {
		return c.HandleError(ctx, errors.Newf("url parameter is required").
			Category(errors.CategoryValidation).
			Component("api-images").
			Build(), "Missing required parameter", http.StatusBadRequest)
	}

	if c.Images == nil {
		return c.HandleError(ctx, errors.Newf("image service unavailable").
			Category(errors.CategorySystem).
			Component("api-images").
			Build(), "Image service unavailable", http.StatusServiceUnavailable)
	}

	if !c.Catalog.HasImageURL(url) {
		return c.HandleError(ctx, errors.Newf("image URL is not part of the catalog").
			Category(errors.CategoryNotFound).
			Context("url", url).
			Component("api-images").
			Build(), "Image not found", http.StatusNotFound)
	}

	img, err := c.Images.Fetch(ctx.Request().Context(), url)
	if err != nil {
		return c.HandleError(ctx, err, "Failed to fetch image", fetchErrorStatus(err))
	}

	ctx.Response().Header().Set(echo.HeaderCacheControl, imageCacheControl)
	return ctx.Blob(http.StatusOK, img.MIME, img.Data)
}

// fetchErrorStatus maps a fetch failure to the status returned to the client.
func fetchErrorStatus(err error) int {
	if errors.IsCategory(err, errors.CategoryCancellation) {
		return http.StatusServiceUnavailable
	}

	var fe *imageprovider.FetchError
	if errors.As(err, &fe) && fe.Kind == imageprovider.KindStatus && fe.StatusCode == http.StatusNotFound {
		return http.StatusNotFound
	}
	return http.StatusBadGateway
}
