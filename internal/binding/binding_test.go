package binding

import (
	"strings"
	"testing"

	"github.com/jonathan/resume-studio/internal/fieldpath"
	"github.com/jonathan/resume-studio/internal/rendering"
	"github.com/jonathan/resume-studio/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderEditor(t *testing.T, doc *types.Document) string {
	t.Helper()
	r, err := rendering.New()
	require.NoError(t, err)
	page, err := r.RenderString(doc, rendering.PageOptions{Mode: rendering.ModeEditor})
	require.NoError(t, err)
	return page
}

func TestRoundTrip_NoOpEditsReproduceDocument(t *testing.T) {
	original := types.SampleDocument()
	original.Experience[0].Bullets[0] = `Cut <span style="font-size: 12pt">p99</span> latency, the team's top goal`
	original.Skills[0].Items = "Go & SQL"
	original.Profile.Title = "R&D <Lead>"

	nodes, err := Scan(strings.NewReader(renderEditor(t, original)))
	require.NoError(t, err)
	require.NotEmpty(t, nodes)

	target := types.SampleDocument()
	target.Experience[0].Bullets[0] = original.Experience[0].Bullets[0]
	target.Skills[0].Items = original.Skills[0].Items
	target.Profile.Title = original.Profile.Title

	_, err = ApplyAll(target, nodes)
	require.NoError(t, err)
	assert.Equal(t, original, target)
}

func TestRoundTrip_AmpersandsInRichFields(t *testing.T) {
	original := types.SampleDocument()
	original.Summary = "Led R&D for AT&T"
	original.Experience[0].Bullets[0] = "Owned P&L"
	original.Skills[1].Items = "CI&CD, Q&A"

	nodes, err := Scan(strings.NewReader(renderEditor(t, original)))
	require.NoError(t, err)

	target := types.SampleDocument()
	target.Summary = original.Summary
	target.Experience[0].Bullets[0] = original.Experience[0].Bullets[0]
	target.Skills[1].Items = original.Skills[1].Items

	_, err = ApplyAll(target, nodes)
	require.NoError(t, err)
	assert.Equal(t, original, target)
}

func TestRoundTrip_UntitledSectionsStayUntitled(t *testing.T) {
	original := types.SampleDocument()
	original.Settings.Titles = nil

	nodes, err := Scan(strings.NewReader(renderEditor(t, original)))
	require.NoError(t, err)

	target := types.SampleDocument()
	target.Settings.Titles = nil

	_, err = ApplyAll(target, nodes)
	require.NoError(t, err)
	assert.Nil(t, target.Settings.Titles)
	assert.Equal(t, original, target)
}

func TestRoundTrip_CapturesIntoEmptyDocument(t *testing.T) {
	original := types.SampleDocument()
	nodes, err := Scan(strings.NewReader(renderEditor(t, original)))
	require.NoError(t, err)

	// Same shape, every leaf blanked.
	blank := types.SampleDocument()
	for _, n := range nodes {
		_, err := Apply(blank, n.Path, "")
		require.NoError(t, err)
	}
	assert.Empty(t, blank.Summary)
	assert.Empty(t, blank.Experience[1].Bullets[0])

	_, err = ApplyAll(blank, nodes)
	require.NoError(t, err)
	assert.Equal(t, original, blank)
}

func TestScan_CapturesByFormat(t *testing.T) {
	page := `<div>
		<h1 data-path="profile.name" data-format="plain">A &amp; <b>B</b></h1>
		<p data-path="summary" data-format="rich">x <b>y</b></p>
		<span data-path="profile.email">no format</span>
	</div>`

	nodes, err := Scan(strings.NewReader(page))
	require.NoError(t, err)
	require.Len(t, nodes, 3)
	assert.Equal(t, Node{Path: "profile.name", Format: "plain", Value: "A & B"}, nodes[0])
	assert.Equal(t, Node{Path: "summary", Format: "rich", Value: "x <b>y</b>"}, nodes[1])
	assert.Equal(t, "plain", nodes[2].Format)
}

func TestApply_Policies(t *testing.T) {
	doc := types.SampleDocument()

	e, err := Apply(doc, "profile.name", "<i>Literal</i>")
	require.NoError(t, err)
	assert.Equal(t, "<i>Literal</i>", doc.Profile.Name)
	assert.Equal(t, "profile.name", e.Path)

	e, err = Apply(doc, "experience.0.bullets.0", `<i>Kept</i><script>x</script> <span style="font-size:9pt;color:red">s</span>`)
	require.NoError(t, err)
	assert.Equal(t, `<i>Kept</i> <span style="font-size: 9pt">s</span>`, doc.Experience[0].Bullets[0])
	assert.Equal(t, doc.Experience[0].Bullets[0], e.Value)
}

func TestApply_Title(t *testing.T) {
	doc := types.SampleDocument()
	_, err := Apply(doc, "settings.titles.skills", "Toolbox")
	require.NoError(t, err)
	assert.Equal(t, "Toolbox", doc.Title(types.SectionSkills))
}

func TestApply_UnresolvedPathLeavesDocument(t *testing.T) {
	doc := types.SampleDocument()
	before := types.SampleDocument()

	_, err := Apply(doc, "experience.7.role", "x")
	assert.ErrorIs(t, err, fieldpath.ErrOutOfRange)

	_, err = Apply(doc, "settings.layout.left", "x")
	assert.ErrorIs(t, err, fieldpath.ErrUnknownField)

	assert.Equal(t, before, doc)
}

func TestApplyAll_LastWriterWins(t *testing.T) {
	doc := types.SampleDocument()
	edits, err := ApplyAll(doc, []Node{
		{Path: "summary", Value: "first"},
		{Path: "summary", Value: "second"},
	})
	require.NoError(t, err)
	assert.Len(t, edits, 2)
	assert.Equal(t, "second", doc.Summary)
}

func TestApplyAll_StopsAtFirstFailure(t *testing.T) {
	doc := types.SampleDocument()
	edits, err := ApplyAll(doc, []Node{
		{Path: "summary", Value: "kept"},
		{Path: "bogus", Value: "x"},
		{Path: "profile.name", Value: "never"},
	})
	assert.Error(t, err)
	assert.Len(t, edits, 1)
	assert.Equal(t, "kept", doc.Summary)
	assert.Equal(t, "Jordan Rivera", doc.Profile.Name)
}

func TestScanLayout(t *testing.T) {
	doc := types.SampleDocument()
	doc.Settings.Layout = types.Layout{
		Left:  []string{types.SectionExperience, types.SectionSummary},
		Right: []string{types.SectionSkills, types.SectionEducation},
	}

	r, err := rendering.New()
	require.NoError(t, err)

	for _, mode := range []rendering.Mode{rendering.ModeEditor, rendering.ModeViewer} {
		t.Run(mode.String(), func(t *testing.T) {
			page, err := r.RenderString(doc, rendering.PageOptions{Mode: mode})
			require.NoError(t, err)

			layout, ok, err := ScanLayout(strings.NewReader(page))
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, doc.Settings.Layout, layout)
		})
	}
}

func TestScanLayout_NoSections(t *testing.T) {
	_, ok, err := ScanLayout(strings.NewReader("<html><body><p>plain</p></body></html>"))
	require.NoError(t, err)
	assert.False(t, ok)
}
