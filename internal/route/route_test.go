package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdeck/internal/overview"
)

func TestFormatAndParse(t *testing.T) {
	cases := []struct {
		sel overview.Selection
		loc string
	}{
		{overview.Selection{}, "/daily-overview"},
		{overview.Selection{ListID: "A", ItemID: "1"}, "/daily-overview/A/1"},
		{overview.Selection{ListID: "A", ItemID: "1", SubtaskID: "s"}, "/daily-overview/A/1/s"},
		{overview.Selection{ListID: "gh:review requested", ItemID: "o/r#1"}, "/daily-overview/gh:review%20requested/o%2Fr%231"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.loc, Format(tc.sel))
		p, err := Parse(tc.loc)
		require.NoError(t, err)
		assert.Equal(t, tc.sel, p.Selection())
	}
}

func TestFormatWithoutItemIsBarePrefix(t *testing.T) {
	assert.Equal(t, Prefix, Format(overview.Selection{ListID: "A"}))
}

func TestParseRejectsOtherLocations(t *testing.T) {
	for _, loc := range []string{"/settings", "/daily-overviewx/A", "/daily-overview/a/b/c/d"} {
		_, err := Parse(loc)
		assert.ErrorIs(t, err, ErrNotOverview, loc)
	}
}

func TestParsePartialLocation(t *testing.T) {
	p, err := Parse("/daily-overview/A/")
	require.NoError(t, err)
	assert.Equal(t, Params{OverviewViewID: "A"}, p)
}

func TestHistoryReplaceDoesNotGrowBackStack(t *testing.T) {
	h := NewHistory("")
	h.Push("/daily-overview/A/1")
	h.Replace("/daily-overview/B/2")
	assert.Equal(t, 2, h.Len())
	assert.Equal(t, overview.Selection{ListID: "B", ItemID: "2"}, h.Selection())

	require.True(t, h.Back())
	assert.Equal(t, Prefix, h.Current())
	assert.False(t, h.Back())
}

func TestHistoryPushSkipsDuplicates(t *testing.T) {
	h := NewHistory("/daily-overview/A/1")
	h.Push("/daily-overview/A/1")
	assert.Equal(t, 1, h.Len())
	h.Push("/settings")
	assert.Equal(t, Params{}, h.Params())
}
