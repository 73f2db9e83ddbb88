package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		display string
		want    Tag
		wantOK  bool
	}{
		{"Resplendent Quetzal (E)", TagEndemic, true},
		{"Some Bird (R?)", TagResidenceUncertain, true},
		{"Plain Bird", TagNone, false},
		{"Baird's Trogon (E-R)", TagRegionalEndemic, true},
		{"Rufous Hummingbird (A)", TagAccidental, true},
		{"Rock Pigeon (I) ", TagIntroduced, true},
		{"(E) Bird", TagNone, false},
		{"", TagNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.display, func(t *testing.T) {
			t.Parallel()
			got, ok := ParseTag(tt.display)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTagNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "regional-endemic", TagRegionalEndemic.String())
	assert.Equal(t, "Regional Endemic", TagRegionalEndemic.DisplayName())
	assert.Equal(t, "Residence Uncertain", TagResidenceUncertain.DisplayName())
	assert.Equal(t, "(E-R)", TagRegionalEndemic.Suffix())
	assert.Contains(t, TagEndemic.Description(), "endemic to Costa Rica")
	assert.Empty(t, TagNone.String())
	assert.Empty(t, TagNone.DisplayName())

	for _, tag := range Tags() {
		parsed, ok := ParseTag("Bird " + tag.Suffix())
		require.True(t, ok)
		assert.Equal(t, tag, parsed)
	}
}

func TestTagUnmarshalText(t *testing.T) {
	t.Parallel()

	for input, want := range map[string]Tag{
		"endemic":             TagEndemic,
		"regionalEndemic":     TagRegionalEndemic,
		"residence-uncertain": TagResidenceUncertain,
		"(I)":                 TagIntroduced,
		"":                    TagNone,
	} {
		var tag Tag
		require.NoError(t, tag.UnmarshalText([]byte(input)), input)
		assert.Equal(t, want, tag, input)
	}

	var tag Tag
	assert.Error(t, tag.UnmarshalText([]byte("rare")))
}

func TestSpeciesUnmarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		json      string
		wantName  string
		wantTag   Tag
		wantTitle string
		wantErr   bool
	}{
		{
			name:      "explicit tag",
			json:      `{"name":"Coppery-headed Emerald","latin":"Microchera cupreiceps","tag":"endemic"}`,
			wantName:  "Coppery-headed Emerald",
			wantTag:   TagEndemic,
			wantTitle: "Coppery-headed_Emerald",
		},
		{
			name:      "displayed string",
			json:      `{"name":"Lattice-tailed Trogon","displayed":"Lattice-tailed Trogon (E-R)"}`,
			wantName:  "Lattice-tailed Trogon",
			wantTag:   TagRegionalEndemic,
			wantTitle: "Lattice-tailed_Trogon",
		},
		{
			name:      "suffix on name is stripped",
			json:      `{"name":"Rufous Hummingbird (A)"}`,
			wantName:  "Rufous Hummingbird",
			wantTag:   TagAccidental,
			wantTitle: "Rufous_Hummingbird",
		},
		{
			name:      "no tag",
			json:      `{"name":"Great Tinamou"}`,
			wantName:  "Great Tinamou",
			wantTag:   TagNone,
			wantTitle: "Great_Tinamou",
		},
		{
			name:    "unknown tag",
			json:    `{"name":"Great Tinamou","tag":"mythical"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var s Species
			err := json.Unmarshal([]byte(tt.json), &s)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, s.Name)
			assert.Equal(t, tt.wantTag, s.Tag)
			assert.Equal(t, tt.wantTitle, s.Title())
		})
	}
}

func TestSpeciesMarshalOmitsEmptyTag(t *testing.T) {
	t.Parallel()

	out, err := json.Marshal(Species{Name: "Great Tinamou"})
	require.NoError(t, err)
	assert.NotContains(t, string(out), `"tag"`)

	out, err = json.Marshal(Species{Name: "Baird's Trogon", Tag: TagRegionalEndemic})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"tag":"regional-endemic"`)
}
