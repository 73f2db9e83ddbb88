// Package catalog holds the decoded bird catalog and turns species and group
// records into lists of displayable image URLs.
//
// A Catalog is built once by Load and is read-only afterwards. Pointers
// returned by its lookups refer to shared data and must not be modified.
package catalog

import (
	"slices"

	"github.com/tphakala/birdcatalog/internal/logger"
)

type speciesRef struct {
	group int
	index int
}

// Catalog is the immutable, indexed catalog.
type Catalog struct {
	groups    []Group
	details   []SpeciesDetail
	imageMeta []ImageMeta
	groupMeta []ImageMeta

	groupByCategory map[string]int
	speciesByTitle  map[string]speciesRef
	detailByTitle   map[string]int
	imageIndex      map[string]int
	groupImageIndex map[string]int
	displayURLs     map[string]struct{}

	log      logger.Logger
	recorder Recorder
}

// Stats summarizes a loaded catalog.
type Stats struct {
	Groups         int `json:"groups"`
	Species        int `json:"species"`
	Details        int `json:"details"`
	ImageMeta      int `json:"imageMeta"`
	GroupImageMeta int `json:"groupImageMeta"`
}

func newCatalog(groups []Group, details []SpeciesDetail, imageMeta, groupMeta []ImageMeta, log logger.Logger, recorder Recorder) *Catalog {
	c := &Catalog{
		groups:          groups,
		details:         details,
		imageMeta:       imageMeta,
		groupMeta:       groupMeta,
		groupByCategory: make(map[string]int, len(groups)),
		speciesByTitle:  make(map[string]speciesRef),
		detailByTitle:   make(map[string]int, len(details)),
		imageIndex:      indexByFilename(imageMeta),
		groupImageIndex: indexByFilename(groupMeta),
		displayURLs:     make(map[string]struct{}),
		log:             log,
		recorder:        recorder,
	}

	for gi := range groups {
		if _, ok := c.groupByCategory[groups[gi].Category]; !ok {
			c.groupByCategory[groups[gi].Category] = gi
		}
		for si := range groups[gi].Birds {
			title := groups[gi].Birds[si].Title()
			if _, ok := c.speciesByTitle[title]; !ok {
				c.speciesByTitle[title] = speciesRef{group: gi, index: si}
			}
		}
	}

	for _, entries := range [][]ImageMeta{imageMeta, groupMeta} {
		for i := range entries {
			if u, ok := entries[i].Info.DisplayURL(); ok {
				c.displayURLs[u] = struct{}{}
			}
		}
	}

	for i := range details {
		if _, ok := c.detailByTitle[details[i].BirdTitle]; !ok {
			c.detailByTitle[details[i].BirdTitle] = i
		}
	}

	return c
}

// indexByFilename maps each filename to its first entry.
func indexByFilename(entries []ImageMeta) map[string]int {
	idx := make(map[string]int, len(entries))
	for i := range entries {
		if _, ok := idx[entries[i].Filename]; !ok {
			idx[entries[i].Filename] = i
		}
	}
	return idx
}

// Stats returns the catalog's record counts.
func (c *Catalog) Stats() Stats {
	species := 0
	for i := range c.groups {
		species += len(c.groups[i].Birds)
	}
	return Stats{
		Groups:         len(c.groups),
		Species:        species,
		Details:        len(c.details),
		ImageMeta:      len(c.imageMeta),
		GroupImageMeta: len(c.groupMeta),
	}
}

// Groups returns every group in source order.
func (c *Catalog) Groups() []Group {
	return slices.Clone(c.groups)
}

// Group returns the first group whose category equals category.
func (c *Catalog) Group(category string) (*Group, bool) {
	i, ok := c.groupByCategory[category]
	if !ok {
		return nil, false
	}
	return &c.groups[i], true
}

// Species returns the members of g in source order.
func (c *Catalog) Species(g *Group) []Species {
	if g == nil {
		return nil
	}
	return slices.Clone(g.Birds)
}

// FindSpecies looks a species up by its title and returns it with its group.
func (c *Catalog) FindSpecies(title string) (*Species, *Group, bool) {
	ref, ok := c.speciesByTitle[title]
	if !ok {
		return nil, nil, false
	}
	g := &c.groups[ref.group]
	return &g.Birds[ref.index], g, true
}

// DetailFor returns the first detail record whose BirdTitle equals the
// species title.
func (c *Catalog) DetailFor(s *Species) (*SpeciesDetail, bool) {
	if s == nil {
		return nil, false
	}
	i, ok := c.detailByTitle[s.Title()]
	if !ok {
		return nil, false
	}
	return &c.details[i], true
}

// ImageMetaFor looks filename up in the denylist-filtered global index.
func (c *Catalog) ImageMetaFor(filename string) (*ImageMeta, bool) {
	i, ok := c.imageIndex[filename]
	if !ok {
		return nil, false
	}
	return &c.imageMeta[i], true
}

// GroupImageMetaFor looks filename up in the denylist-filtered group index.
func (c *Catalog) GroupImageMetaFor(filename string) (*ImageMeta, bool) {
	i, ok := c.groupImageIndex[filename]
	if !ok {
		return nil, false
	}
	return &c.groupMeta[i], true
}

// HasImageURL reports whether url is the display URL of some indexed image.
func (c *Catalog) HasImageURL(url string) bool {
	_, ok := c.displayURLs[url]
	return ok
}
