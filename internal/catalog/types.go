package catalog

import (
	"encoding/json"
	"strings"

	"github.com/k3a/html2text"
)

// Taxon names an order or family together with its reference link.
type Taxon struct {
	Name string `json:"name"`
	Link string `json:"link"`
}

// GroupFile is an image attached to a group.
type GroupFile struct {
	Filename string `json:"filename"`
	Title    string `json:"title"`
}

// Group is a family-level grouping of species.
type Group struct {
	Category    string      `json:"category"`
	Order       Taxon       `json:"order"`
	Family      Taxon       `json:"family"`
	Summary     string      `json:"summary"`
	SummaryHTML string      `json:"summaryHTML"`
	Images      []GroupFile `json:"images"`
	Birds       []Species   `json:"birds"`
}

// MemberCount returns the number of species in the group.
func (g *Group) MemberCount() int {
	return len(g.Birds)
}

// ImageFilenames returns the group's image filenames in declaration order.
func (g *Group) ImageFilenames() []string {
	names := make([]string, 0, len(g.Images))
	for _, f := range g.Images {
		names = append(names, f.Filename)
	}
	return names
}

// PlainSummary returns the plain-text summary, rendering SummaryHTML when
// no plain variant was provided.
func (g *Group) PlainSummary() string {
	if s := strings.TrimSpace(g.Summary); s != "" {
		return s
	}
	if g.SummaryHTML == "" {
		return ""
	}
	return strings.TrimSpace(html2text.HTML2Text(g.SummaryHTML))
}

// Species is one bird in a group.
type Species struct {
	Name  string `json:"name"`
	Link  string `json:"link"`
	Latin string `json:"latin"`
	Tag   Tag    `json:"tag,omitempty"`
}

// Title is the name with spaces replaced by underscores. It is the join key
// into species details.
func (s Species) Title() string {
	return strings.ReplaceAll(s.Name, " ", "_")
}

// UnmarshalJSON takes the tag from "tag" when present. Otherwise it is derived
// from the "displayed" string and finally from the name itself, in which case
// the checklist suffix is stripped from the name.
func (s *Species) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name      string `json:"name"`
		Link      string `json:"link"`
		Latin     string `json:"latin"`
		Tag       string `json:"tag"`
		Displayed string `json:"displayed"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*s = Species{Name: raw.Name, Link: raw.Link, Latin: raw.Latin}

	switch {
	case raw.Tag != "":
		if err := s.Tag.UnmarshalText([]byte(raw.Tag)); err != nil {
			return err
		}
	case raw.Displayed != "":
		s.Tag, _ = ParseTag(raw.Displayed)
	default:
		if tag, ok := ParseTag(raw.Name); ok {
			s.Tag = tag
			s.Name = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw.Name), tag.Suffix()))
		}
	}

	return nil
}

// SpeciesDetail holds the article summary and image filenames for a species.
// ImageFiles may repeat a filename.
type SpeciesDetail struct {
	BirdTitle  string   `json:"birdTitle"`
	Summary    string   `json:"summary"`
	ImageFiles []string `json:"imageFiles"`
}

// ImageMeta is one entry of an image metadata index.
type ImageMeta struct {
	Filename string    `json:"filename"`
	Info     ImageInfo `json:"info"`
}
