package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tphakala/birdcatalog/internal/catalog"
	"github.com/tphakala/birdcatalog/internal/errors"
)

// SpeciesSummary is a species as listed within a group.
type SpeciesSummary struct {
	Name    string `json:"name"`
	Title   string `json:"title"`
	Latin   string `json:"latin"`
	Link    string `json:"link"`
	Tag     string `json:"tag,omitempty"`
	TagName string `json:"tag_name,omitempty"`
}

// SpeciesInfo is the full species view.
type SpeciesInfo struct {
	SpeciesSummary
	Group          string   `json:"group"`
	TagDescription string   `json:"tag_description,omitempty"`
	Summary        string   `json:"summary,omitempty"`
	HasDetail      bool     `json:"has_detail"`
	PreviewImages  []string `json:"preview_images"`
}

// initSpeciesRoutes registers all species-related API endpoints
func (c *Controller) initSpeciesRoutes() {
	c.Group.GET("/species/:title", c.GetSpecies)
	c.Group.GET("/species/:title/images", c.GetSpeciesImages)
}

// GetSpecies returns one species with its summary and preview strip.
func (c *Controller) GetSpecies(ctx echo.Context) error {
	s, g, err := c.lookupSpecies(ctx)
	if err != nil || s == nil {
		return err
	}

	info := SpeciesInfo{
		SpeciesSummary: speciesSummary(s),
		Group:          g.Category,
		TagDescription: s.Tag.Description(),
		PreviewImages:  nonNil(c.Catalog.PreviewImages(s)),
	}
	if detail, ok := c.Catalog.DetailFor(s); ok {
		info.HasDetail = true
		info.Summary = detail.Summary
	}

	return ctx.JSON(http.StatusOK, info)
}

// GetSpeciesImages returns every resolvable image URL of a species, or the
// first few when preview is set. A species without detail has no images.
func (c *Controller) GetSpeciesImages(ctx echo.Context) error {
	s, _, err := c.lookupSpecies(ctx)
	if err != nil || s == nil {
		return err
	}

	preview := wantsPreview(ctx)
	var urls []string
	if preview {
		urls = c.Catalog.PreviewImages(s)
	} else {
		urls = c.Catalog.AllImages(s)
	}

	return ctx.JSON(http.StatusOK, ImageList{
		Subject: s.Title(),
		Preview: preview,
		Count:   len(urls),
		Images:  nonNil(urls),
	})
}

func (c *Controller) lookupSpecies(ctx echo.Context) (*catalog.Species, *catalog.Group, error) {
	title := pathParam(ctx, "title")
	s, g, ok := c.Catalog.FindSpecies(title)
	if !ok {
		return nil, nil, c.HandleError(ctx, errors.Newf("species %q not found", title).
			Category(errors.CategoryNotFound).
			Context("title", title).
			Component("api-species").
			Build(), "Species not found", http.StatusNotFound)
	}
	return s, g, nil
}

func speciesSummary(s *catalog.Species) SpeciesSummary {
	return SpeciesSummary{
		Name:    s.Name,
		Title:   s.Title(),
		Latin:   s.Latin,
		Link:    s.Link,
		Tag:     s.Tag.String(),
		TagName: s.Tag.DisplayName(),
	}
}

func speciesSummaries(list []catalog.Species) []SpeciesSummary {
	out := make([]SpeciesSummary, 0, len(list))
	for i := range list {
		out = append(out, speciesSummary(&list[i]))
	}
	return out
}
