package catalog

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Tag is the residency status printed after a species name in the regional
// checklist. The zero value means the species carries no tag.
type Tag int

const (
	TagNone Tag = iota
	TagAccidental
	TagResidenceUncertain
	TagEndemic
	TagRegionalEndemic
	TagIntroduced
)

type tagInfo struct {
	name        string
	suffix      string
	description string
}

var tagTable = map[Tag]tagInfo{
	TagAccidental: {
		name:        "accidental",
		suffix:      "(A)",
		description: "A species that rarely or accidentally occurs in Costa Rica",
	},
	TagResidenceUncertain: {
		name:        "residence-uncertain",
		suffix:      "(R?)",
		description: "A species which might be resident",
	},
	TagEndemic: {
		name:        "endemic",
		suffix:      "(E)",
		description: "A species endemic to Costa Rica",
	},
	TagRegionalEndemic: {
		name:        "regional-endemic",
		suffix:      "(E-R)",
		description: "A species found only in Costa Rica and Panama",
	},
	TagIntroduced: {
		name:        "introduced",
		suffix:      "(I)",
		description: "A species introduced to Costa Rica as a consequence, direct or indirect, of human actions",
	},
}

// suffixOrder lists tags by descending suffix length so a longer suffix is
// always tried before any shorter one.
var suffixOrder = []Tag{
	TagRegionalEndemic,
	TagResidenceUncertain,
	TagAccidental,
	TagEndemic,
	TagIntroduced,
}

// Tags returns every defined tag in declaration order.
func Tags() []Tag {
	return []Tag{TagAccidental, TagResidenceUncertain, TagEndemic, TagRegionalEndemic, TagIntroduced}
}

// ParseTag derives a tag from a rendered display string such as
// "Resplendent Quetzal (E)". It reports false when no known suffix matches.
func ParseTag(display string) (Tag, bool) {
	display = strings.TrimSpace(display)
	for _, tag := range suffixOrder {
		if strings.HasSuffix(display, tagTable[tag].suffix) {
			return tag, true
		}
	}
	return TagNone, false
}

// tagFromName accepts a tag name ("regional-endemic"), its camel-case form
// ("regionalEndemic") or its checklist suffix ("(E-R)").
func tagFromName(s string) (Tag, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for _, tag := range Tags() {
		info := tagTable[tag]
		if normalized == info.name ||
			normalized == strings.ReplaceAll(info.name, "-", "") ||
			normalized == strings.ToLower(info.suffix) {
			return tag, nil
		}
	}
	return TagNone, fmt.Errorf("unknown species tag %q", s)
}

// String returns the kebab-case tag name, or "" for TagNone.
func (t Tag) String() string {
	return tagTable[t].name
}

// Suffix returns the checklist marker, for example "(E)".
func (t Tag) Suffix() string {
	return tagTable[t].suffix
}

// Description explains the tag in one sentence.
func (t Tag) Description() string {
	return tagTable[t].description
}

// DisplayName returns the title-cased tag name, e.g. "Regional Endemic".
func (t Tag) DisplayName() string {
	if t == TagNone {
		return ""
	}
	// Casers carry state and are not shared between goroutines.
	return cases.Title(language.English).String(strings.ReplaceAll(t.String(), "-", " "))
}

// MarshalText implements encoding.TextMarshaler.
func (t Tag) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tag) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*t = TagNone
		return nil
	}
	tag, err := tagFromName(string(text))
	if err != nil {
		return err
	}
	*t = tag
	return nil
}
