package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_JSONRoundTrip(t *testing.T) {
	doc := SampleDocument()

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var decoded Document
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, *doc, decoded)
}

func TestDocument_DecodesSettingsKeys(t *testing.T) {
	raw := `{
		"profile": {"name": "A"},
		"settings": {
			"titles": {"skills": "Toolbox"},
			"layout": {"left": ["skills"], "right": ["summary"]},
			"fontScale": 1.1
		}
	}`

	var doc Document
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	assert.Equal(t, []string{"skills"}, doc.Settings.Layout.Left)
	assert.Equal(t, []string{"summary"}, doc.Settings.Layout.Right)
	assert.InDelta(t, 1.1, doc.Settings.FontScale, 1e-9)
	assert.Equal(t, "Toolbox", doc.Title(SectionSkills))
}

func TestDocument_Title_FallsBackToKey(t *testing.T) {
	doc := &Document{}
	assert.Equal(t, "projects", doc.Title(SectionProjects))

	doc.SetTitle(SectionProjects, "Side Projects")
	assert.Equal(t, "Side Projects", doc.Title(SectionProjects))
}

func TestDocument_EffectiveLayout(t *testing.T) {
	doc := &Document{}
	assert.Equal(t, DefaultLayout(), doc.EffectiveLayout())

	doc.Settings.Layout = Layout{Left: []string{SectionSkills}}
	assert.Equal(t, []string{SectionSkills}, doc.EffectiveLayout().Keys())
}

func TestDocument_EffectiveFontScale(t *testing.T) {
	doc := &Document{}
	assert.Equal(t, DefaultFontScale, doc.EffectiveFontScale())

	doc.Settings.FontScale = 1.2
	assert.Equal(t, 1.2, doc.EffectiveFontScale())
}

func TestLayout_KeysKeepsDuplicates(t *testing.T) {
	l := Layout{Left: []string{"a", "b"}, Right: []string{"a"}}
	assert.Equal(t, []string{"a", "b", "a"}, l.Keys())
}

func TestDocument_ItemCount(t *testing.T) {
	doc := SampleDocument()

	n, ok := doc.ItemCount(SectionExperience)
	assert.True(t, ok)
	assert.Equal(t, 2, n)

	_, ok = doc.ItemCount(SectionSummary)
	assert.False(t, ok)

	_, ok = doc.ItemCount("hobbies")
	assert.False(t, ok)
}

func TestDocument_Validate(t *testing.T) {
	doc := SampleDocument()
	require.NoError(t, doc.Validate())

	doc.Profile.Email = "not-an-email"
	assert.Error(t, doc.Validate())

	doc = SampleDocument()
	doc.Experience[0].Role = ""
	assert.Error(t, doc.Validate())

	doc = SampleDocument()
	doc.Settings.FontScale = -1
	assert.Error(t, doc.Validate())
}

func TestIsSection(t *testing.T) {
	assert.True(t, IsSection(SectionEngagements))
	assert.False(t, IsSection("profile"))
}
