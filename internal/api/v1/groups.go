package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tphakala/birdcatalog/internal/catalog"
	"github.com/tphakala/birdcatalog/internal/errors"
)

// GroupSummary is a group as listed by /groups.
type GroupSummary struct {
	Category      string        `json:"category"`
	Order         catalog.Taxon `json:"order"`
	Family        catalog.Taxon `json:"family"`
	Summary       string        `json:"summary"`
	MemberCount   int           `json:"member_count"`
	PreviewImages []string      `json:"preview_images"`
}

// GroupDetail adds the member list to a group summary.
type GroupDetail struct {
	GroupSummary
	Species []SpeciesSummary `json:"species"`
}

// ImageList is the response of every image listing endpoint.
type ImageList struct {
	Subject string   `json:"subject"`
	Preview bool     `json:"preview"`
	Count   int      `json:"count"`
	Images  []string `json:"images"`
}

// initGroupRoutes registers all group-related API endpoints
func (c *Controller) initGroupRoutes() {
	c.Group.GET("/groups", c.ListGroups)
	c.Group.GET("/groups/:category", c.GetGroup)
	c.Group.GET("/groups/:category/species", c.GetGroupSpecies)
	c.Group.GET("/groups/:category/images", c.GetGroupImages)
}

// ListGroups returns every group in catalog order.
func (c *Controller) ListGroups(ctx echo.Context) error {
	groups := c.Catalog.Groups()
	out := make([]GroupSummary, 0, len(groups))
	for i := range groups {
		out = append(out, c.groupSummary(&groups[i]))
	}
	return ctx.JSON(http.StatusOK, out)
}

// GetGroup returns one group with its members.
func (c *Controller) GetGroup(ctx echo.Context) error {
	g, err := c.lookupGroup(ctx)
	if err != nil {
		return err
	}
	if g == nil {
		return nil
	}

	return ctx.JSON(http.StatusOK, GroupDetail{
		GroupSummary: c.groupSummary(g),
		Species:      speciesSummaries(c.Catalog.Species(g)),
	})
}

// GetGroupSpecies returns the members of a group.
func (c *Controller) GetGroupSpecies(ctx echo.Context) error {
	g, err := c.lookupGroup(ctx)
	if err != nil {
		return err
	}
	if g == nil {
		return nil
	}
	return ctx.JSON(http.StatusOK, speciesSummaries(c.Catalog.Species(g)))
}

// GetGroupImages returns the group's image URLs, bounded when preview is set.
func (c *Controller) GetGroupImages(ctx echo.Context) error {
	g, err := c.lookupGroup(ctx)
	if err != nil {
		return err
	}
	if g == nil {
		return nil
	}

	preview := wantsPreview(ctx)
	var urls []string
	if preview {
		urls = c.Catalog.GroupPreviewImages(g)
	} else {
		urls = c.Catalog.GroupImages(g)
	}

	return ctx.JSON(http.StatusOK, ImageList{
		Subject: g.Category,
		Preview: preview,
		Count:   len(urls),
		Images:  nonNil(urls),
	})
}

// lookupGroup resolves the :category parameter. When the group does not
// exist the error response has already been written and both results are nil.
func (c *Controller) lookupGroup(ctx echo.Context) (*catalog.Group, error) {
	category := pathParam(ctx, "category")
	g, ok := c.Catalog.Group(category)
	if !ok {
		return nil, c.HandleError(ctx, errors.Newf("group %q not found", category).
			Category(errors.CategoryNotFound).
			Context("category", category).
			Component("api-groups").
			Build(), "Group not found", http.StatusNotFound)
	}
	return g, nil
}

func (c *Controller) groupSummary(g *catalog.Group) GroupSummary {
	return GroupSummary{
		Category:      g.Category,
		Order:         g.Order,
		Family:        g.Family,
		Summary:       g.PlainSummary(),
		MemberCount:   g.MemberCount(),
		PreviewImages: nonNil(c.Catalog.GroupPreviewImages(g)),
	}
}
