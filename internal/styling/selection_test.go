package styling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapRange_PlainText(t *testing.T) {
	got, err := WrapRange("hello world", 0, 5, FontSize(12))
	require.NoError(t, err)
	assert.Equal(t, `<span style="font-size: 12pt">hello</span> world`, got)
}

func TestWrapRange_CrossesElement(t *testing.T) {
	got, err := WrapRange("ab<b>cd</b>ef", 1, 5, FontSize(9.5))
	require.NoError(t, err)
	assert.Equal(t, `a<span style="font-size: 9.5pt">b<b>cd</b>e</span>f`, got)
}

func TestWrapRange_InsideElement(t *testing.T) {
	got, err := WrapRange("<b>abcd</b>", 1, 3, FontSize(12))
	require.NoError(t, err)
	assert.Equal(t, `<b>a</b><span style="font-size: 12pt"><b>bc</b></span><b>d</b>`, got)
}

func TestWrapRange_WholeText(t *testing.T) {
	got, err := WrapRange("all", 0, 3, FontSize(12))
	require.NoError(t, err)
	assert.Equal(t, `<span style="font-size: 12pt">all</span>`, got)
}

func TestWrapRange_Runes(t *testing.T) {
	got, err := WrapRange("héllo", 1, 2, FontSize(12))
	require.NoError(t, err)
	assert.Equal(t, `h<span style="font-size: 12pt">é</span>llo`, got)
}

func TestWrapRange_Errors(t *testing.T) {
	_, err := WrapRange("abc", 1, 1, FontSize(12))
	assert.ErrorIs(t, err, ErrEmptyRange)

	_, err = WrapRange("abc", 2, 9, FontSize(12))
	assert.ErrorIs(t, err, ErrRangeBounds)

	_, err = WrapRange("abc", 2, 1, FontSize(12))
	assert.ErrorIs(t, err, ErrRangeBounds)

	_, err = WrapRange("abc", -1, 1, FontSize(12))
	assert.ErrorIs(t, err, ErrRangeBounds)
}
