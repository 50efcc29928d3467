package richtext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeRich(t *testing.T) {
	cases := map[string]string{
		"":                                "",
		"plain text":                      "plain text",
		"<b>bold</b> and <i>it</i>":       "<b>bold</b> and <i>it</i>",
		"a<script>alert(1)</script>b":     "ab",
		`<b class="x" onclick="y">b</b>`:  "<b>b</b>",
		`<span class="a">x</span>`:        "x",
		`<div>a</div><p>b</p>`:            "ab",
		"line<br/>two":                    "line<br>two",
		`<a href="javascript:x">link</a>`: "link",
		"<!-- note -->text":               "text",
	}
	for in, want := range cases {
		assert.Equal(t, want, SanitizeRich(in), in)
	}
}

func TestSanitizeRich_KeepsOnlyFontSize(t *testing.T) {
	got := SanitizeRich(`<span style="color: red; font-size:12PT;">x</span>`)
	assert.Equal(t, `<span style="font-size: 12pt">x</span>`, got)
}

func TestSanitizeRich_Entities(t *testing.T) {
	assert.Equal(t, "Jordan's A & B", SanitizeRich("Jordan's A & B"))
	assert.Equal(t, "R&D for AT&T", SanitizeRich("R&D for AT&T"))
	assert.Equal(t, "R&D", SanitizeRich("R&amp;D"))
	assert.Equal(t, "&amp;copy &amp;amp; &amp;#39;", SanitizeRich("&amp;copy &amp;amp; &amp;#39;"))
	assert.Equal(t, "P&L &# &;", SanitizeRich("P&L &# &;"))
	assert.Equal(t, "&lt;tag&gt;", SanitizeRich("&lt;tag&gt;"))
	assert.Equal(t, "a\u00a0b", SanitizeRich("a&nbsp;b"))
}

func TestSanitizeRich_Idempotent(t *testing.T) {
	inputs := []string{
		"R&D <b>team</b>",
		"AT&amp;T &amp;copy",
		`<span style="font-size: 14px">big</span> &amp; small`,
		"GopherCon 2023\nLocal Go meetup",
		"<em>x</em><br><u>y</u>",
	}
	for _, in := range inputs {
		once := SanitizeRich(in)
		assert.Equal(t, once, SanitizeRich(once), in)
	}
}

func TestPlainText(t *testing.T) {
	assert.Equal(t, "a & b\nc", PlainText("<b>a</b> &amp; b<br>c"))
	assert.Equal(t, "keep", PlainText("keep<script>drop</script>"))
}

func TestFontSizeStyle(t *testing.T) {
	style, ok := FontSizeStyle("font-size:12.50PT")
	assert.True(t, ok)
	assert.Equal(t, "font-size: 12.5pt", style)

	_, ok = FontSizeStyle("color: red")
	assert.False(t, ok)

	_, ok = FontSizeStyle("font-size: 0pt")
	assert.False(t, ok)
}

func TestWriteNodes_KeepsAttributes(t *testing.T) {
	nodes, err := ParseFragment(`<a href="x?a=1&amp;b=2" title='say "hi"'>l</a>`)
	assert.NoError(t, err)
	assert.Equal(t, `<a href="x?a=1&amp;b=2" title="say &quot;hi&quot;">l</a>`, WriteNodes(nodes))
}
