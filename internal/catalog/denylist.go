package catalog

// defaultDenylist holds files scraped along with species articles that are
// page furniture rather than bird photographs.
var defaultDenylist = []string{
	"Edit-clear.svg",
	"Wiki_letter_w_cropped.svg",
	"Commons-logo.svg",
	"Wikispecies-logo.svg",
	"Wikidata-logo.svg",
	"Wikiquote-logo.svg",
	"Folder_Hexagonal_Icon.svg",
	"Symbol_category_class.svg",
	"Symbol_support_vote.svg",
	"Featured_article_star.svg",
	"Cscr-featured.svg",
	"Good_article_star.svg",
	"Status_iucn3.1_LC.svg",
	"Status_iucn3.1_NT.svg",
	"Status_iucn3.1_VU.svg",
	"Status_iucn3.1_EN.svg",
	"Red_Pencil_Icon.png",
	"Ambox_important.svg",
	"Question_book-new.svg",
	"Lock-green.svg",
	"Sound-icon.svg",
	"Speakerlink-new.svg",
}

// DefaultDenylist returns a copy of the built-in denylist.
func DefaultDenylist() []string {
	out := make([]string, len(defaultDenylist))
	copy(out, defaultDenylist)
	return out
}

type denylist map[string]struct{}

func newDenylist(base []string, extra []string) denylist {
	d := make(denylist, len(base)+len(extra))
	for _, name := range base {
		d[name] = struct{}{}
	}
	for _, name := range extra {
		d[name] = struct{}{}
	}
	return d
}

func (d denylist) contains(filename string) bool {
	_, ok := d[filename]
	return ok
}

// filter drops denied entries and reports how many were removed.
func (d denylist) filter(entries []ImageMeta) ([]ImageMeta, int) {
	kept := make([]ImageMeta, 0, len(entries))
	for i := range entries {
		if d.contains(entries[i].Filename) {
			continue
		}
		kept = append(kept, entries[i])
	}
	return kept, len(entries) - len(kept)
}
