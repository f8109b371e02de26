package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"taskdeck/internal/toolbar"
)

func TestInspectMarks(t *testing.T) {
	line := "plain **bold** _em_ <u>under</u> ~~gone~~ `code`"
	cases := []struct {
		col  int
		want toolbar.TextFormatting
	}{
		{0, toolbar.TextFormatting{}},
		{9, toolbar.TextFormatting{StrongActive: true}},
		{17, toolbar.TextFormatting{EmActive: true}},
		{25, toolbar.TextFormatting{UnderlineActive: true}},
		{37, toolbar.TextFormatting{StrikeActive: true}},
		{45, toolbar.TextFormatting{CodeActive: true}},
	}
	for _, tc := range cases {
		got, _ := Inspect(line, tc.col)
		assert.Equal(t, tc.want, got, "col %d", tc.col)
	}
}

func TestInspectLists(t *testing.T) {
	_, lists := Inspect("  3. item", 0)
	assert.Equal(t, toolbar.ListState{OrderedListActive: true}, lists)
	_, lists = Inspect("- item", 0)
	assert.Equal(t, toolbar.ListState{BulletListActive: true}, lists)
	_, lists = Inspect("**not a bullet**", 0)
	assert.Equal(t, toolbar.ListState{}, lists)
}

func TestToggleMarkWrapsWordAndUnwraps(t *testing.T) {
	line, col := ToggleMarkAt("hello world", 2, toolbar.MarkStrong)
	assert.Equal(t, "**hello** world", line)
	assert.Equal(t, 9, col)

	formatting, _ := Inspect(line, 4)
	assert.True(t, formatting.StrongActive)

	line, col = ToggleMarkAt(line, 4, toolbar.MarkStrong)
	assert.Equal(t, "hello world", line)
	assert.Equal(t, 2, col)
}

func TestToggleMarkOnBlankInsertsPair(t *testing.T) {
	line, col := ToggleMarkAt("", 0, toolbar.MarkCode)
	assert.Equal(t, "``", line)
	assert.Equal(t, 1, col)

	line, col = ToggleMarkAt("a  b", 2, toolbar.MarkUnderline)
	assert.Equal(t, "a <u></u> b", line)
	assert.Equal(t, 5, col)
}

func TestToggleMarkHandlesMultibyte(t *testing.T) {
	line, col := ToggleMarkAt("día libre", 1, toolbar.MarkEm)
	assert.Equal(t, "_día_ libre", line)
	assert.Equal(t, 5, col)
}

func TestToggleListLine(t *testing.T) {
	line, delta := ToggleListLine("buy milk", toolbar.BulletList, 1)
	assert.Equal(t, "- buy milk", line)
	assert.Equal(t, 2, delta)

	line, delta = ToggleListLine(line, toolbar.OrderedList, 4)
	assert.Equal(t, "4. buy milk", line)
	assert.Equal(t, 1, delta)

	line, delta = ToggleListLine(line, toolbar.OrderedList, 1)
	assert.Equal(t, "buy milk", line)
	assert.Equal(t, -3, delta)

	line, _ = ToggleListLine("  nested", toolbar.BulletList, 1)
	assert.Equal(t, "  - nested", line)
}

func TestNextOrderedNumber(t *testing.T) {
	assert.Equal(t, 1, NextOrderedNumber("plain"))
	assert.Equal(t, 3, NextOrderedNumber("2. second"))
}
