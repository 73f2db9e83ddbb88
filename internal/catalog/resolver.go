package catalog

import "github.com/tphakala/birdcatalog/internal/logger"

// PreviewLimit is the number of candidate images used for preview strips.
const PreviewLimit = 3

// MetaLookup resolves a filename against an image index.
type MetaLookup func(filename string) (*ImageMeta, bool)

// ResolveImages turns filenames into display URLs. Filenames are deduplicated
// keeping first occurrence, truncated to limit before lookup (limit <= 0
// means no limit), resolved through lookup and deduplicated again by the
// resolved filename. Misses and entries without responsive URLs are skipped,
// so the result may be shorter than limit or empty.
func ResolveImages(filenames []string, limit int, lookup MetaLookup) []string {
	candidates := dedupe(filenames)
	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}

	seen := make(map[string]struct{}, len(candidates))
	urls := make([]string, 0, len(candidates))
	for _, name := range candidates {
		meta, ok := lookup(name)
		if !ok {
			continue
		}
		if _, dup := seen[meta.Filename]; dup {
			continue
		}
		seen[meta.Filename] = struct{}{}

		if url, ok := meta.Info.DisplayURL(); ok {
			urls = append(urls, url)
		}
	}
	return urls
}

// ResolveEach maps every filename to its display URL one-to-one, keeping
// duplicates and order. Misses and entries without responsive URLs are
// skipped.
func ResolveEach(filenames []string, lookup MetaLookup) []string {
	urls := make([]string, 0, len(filenames))
	for _, name := range filenames {
		meta, ok := lookup(name)
		if !ok {
			continue
		}
		if url, ok := meta.Info.DisplayURL(); ok {
			urls = append(urls, url)
		}
	}
	return urls
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// AllImages resolves every image of a species against the global index. A
// species without a detail record yields nil.
func (c *Catalog) AllImages(s *Species) []string {
	return c.speciesImages(s, 0, "species")
}

// PreviewImages resolves up to PreviewLimit candidate images of a species.
func (c *Catalog) PreviewImages(s *Species) []string {
	return c.speciesImages(s, PreviewLimit, "species_preview")
}

// GroupImages resolves each of a group's own images against the group index,
// one URL per group file.
func (c *Catalog) GroupImages(g *Group) []string {
	if g == nil {
		return nil
	}
	urls := ResolveEach(g.ImageFilenames(), c.GroupImageMetaFor)
	c.record("group", len(urls))
	return urls
}

// GroupPreviewImages resolves up to PreviewLimit distinct candidate images of
// a group.
func (c *Catalog) GroupPreviewImages(g *Group) []string {
	if g == nil {
		return nil
	}
	urls := ResolveImages(g.ImageFilenames(), PreviewLimit, c.GroupImageMetaFor)
	c.record("group_preview", len(urls))
	return urls
}

func (c *Catalog) speciesImages(s *Species, limit int, kind string) []string {
	detail, ok := c.DetailFor(s)
	if !ok {
		if s != nil {
			c.log.Debug("no detail record for species", logger.String("title", s.Title()))
		}
		return nil
	}
	urls := ResolveImages(detail.ImageFiles, limit, c.ImageMetaFor)
	c.record(kind, len(urls))
	return urls
}

func (c *Catalog) record(kind string, n int) {
	if c.recorder != nil {
		c.recorder.RecordResolution(kind, n)
	}
}
